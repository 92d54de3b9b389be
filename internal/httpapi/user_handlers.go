package httpapi

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"pitchbase.org/internal/audit"
	"pitchbase.org/internal/auth"
	"pitchbase.org/internal/query"
)

type createUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type updateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type userListResponse struct {
	Items []*auth.User `json:"items"`
}

func (a *API) listUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sort, err := query.ParseSort(q.Get("sort"), q.Get("order"), auth.UserSortFields)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	filter := auth.UserFilter{
		Email: q.Get("email"),
		Role:  q.Get("role"),
	}
	users, err := a.users.List(r.Context(), filter, sort)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userListResponse{Items: users})
}

func (a *API) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := a.users.Find(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (a *API) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeError(w, r, http.StatusBadRequest, "email and password are required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	role := req.Role
	if role == "" {
		role = auth.RoleUser
	}
	user := &auth.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := a.users.Create(r.Context(), user); err != nil {
		handleDomainError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "user.create", map[string]any{
		"user_id": user.ID,
		"role":    user.Role,
	})

	w.Header().Set("Location", "/v1/users/"+user.ID)
	writeJSON(w, http.StatusCreated, user)
}

func (a *API) updateUser(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var hash string
	if req.Password != "" {
		var err error
		hash, err = auth.HashPassword(req.Password)
		if err != nil {
			writeError(w, r, http.StatusInternalServerError, "internal error")
			return
		}
	}
	user := &auth.User{
		ID:           chi.URLParam(r, "id"),
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
	}
	if err := a.users.Update(r.Context(), user); err != nil {
		handleDomainError(w, r, err)
		return
	}
	updated, err := a.users.Find(r.Context(), user.ID)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "user.update", map[string]any{
		"user_id": user.ID,
	})

	writeJSON(w, http.StatusOK, updated)
}

func (a *API) deleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := a.users.SoftDelete(r.Context(), id); err != nil {
		handleDomainError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "user.delete", map[string]any{
		"user_id": id,
	})

	w.WriteHeader(http.StatusNoContent)
}
