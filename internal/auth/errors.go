package auth

import "errors"

var (
	// ErrInvalidToken indicates the token failed signature or temporal validation.
	ErrInvalidToken = errors.New("auth: invalid token")
	// ErrNotFound indicates no identity record matches the lookup key.
	ErrNotFound = errors.New("auth: not found")
	// ErrAlreadyExists indicates a conflicting identity record.
	ErrAlreadyExists = errors.New("auth: already exists")
	// ErrInvalidInput indicates rejected caller input.
	ErrInvalidInput = errors.New("auth: invalid input")
	// ErrUnauthorized indicates missing or insufficient credentials.
	ErrUnauthorized = errors.New("auth: unauthorized")
)
