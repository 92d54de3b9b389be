package pg

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"pitchbase.org/internal/auth"
	"pitchbase.org/internal/league"
	"pitchbase.org/internal/query"
	"pitchbase.org/internal/visibility"
)

func newMock(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewStore(db), mock
}

func teamRows() *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{"id", "name", "city", "venue_id", "founded_year", "is_active", "created_at", "updated_at"}).
		AddRow("T1", "Arsenal", "London", "", 1886, true, now, now)
}

func TestListTeamsNeutralQuery(t *testing.T) {
	store, mock := newMock(t)

	// No filters, no scope: no WHERE clause at all, default order by id.
	mock.ExpectQuery(`select .* from teams t ORDER BY t\.id ASC$`).
		WillReturnRows(teamRows())

	teams, err := store.ListTeams(context.Background(), league.TeamFilter{}, query.Sort{})
	if err != nil {
		t.Fatalf("ListTeams: %v", err)
	}
	if len(teams) != 1 || teams[0].Name != "Arsenal" {
		t.Fatalf("unexpected teams: %v", teams)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListTeamsScopedAndFiltered(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectQuery(`select .* from teams t WHERE t\.is_active = TRUE AND t\.name ILIKE \$1 AND t\.city ILIKE \$2 ORDER BY t\.name ASC, t\.id ASC`).
		WithArgs("%al%", "%lon%").
		WillReturnRows(teamRows())

	ctx, scope := visibility.NewContext(context.Background())
	scope.Activate()

	_, err := store.ListTeams(ctx, league.TeamFilter{Name: "al", City: "lon"}, query.Sort{Field: "name"})
	if err != nil {
		t.Fatalf("ListTeams: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetTeamNotFound(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectQuery(`select .* from teams t WHERE t\.id = \$1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "city", "venue_id", "founded_year", "is_active", "created_at", "updated_at"}))

	if _, err := store.GetTeam(context.Background(), "missing"); !errors.Is(err, league.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListPlayersTeamNameJoin(t *testing.T) {
	store, mock := newMock(t)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "team_id", "name", "position", "goals", "is_active", "created_at", "updated_at"}).
		AddRow("P1", "T1", "Saka", "FW", 12, true, now, now)

	min := 5
	mock.ExpectQuery(`select .* from players p join teams t on t\.id = p\.team_id WHERE p\.goals >= \$1 AND t\.name ILIKE \$2 ORDER BY p\.goals DESC, p\.id ASC`).
		WithArgs(5, "%arse%").
		WillReturnRows(rows)

	players, err := store.ListPlayers(context.Background(),
		league.PlayerFilter{TeamName: "arse", MinGoals: &min},
		query.Sort{Field: "goals", Desc: true})
	if err != nil {
		t.Fatalf("ListPlayers: %v", err)
	}
	if len(players) != 1 || players[0].Name != "Saka" {
		t.Fatalf("unexpected players: %v", players)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSoftDeleteTeamMissing(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectExec(`update teams set is_active = FALSE`).
		WithArgs("missing", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := store.SoftDeleteTeam(context.Background(), "missing"); !errors.Is(err, league.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFindByEmailAppliesScope(t *testing.T) {
	store, mock := newMock(t)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "role", "is_active", "created_at", "updated_at"}).
		AddRow("U1", "alice@example.org", "hash", auth.RoleAdmin, true, now, now)

	mock.ExpectQuery(`select .* from users u WHERE u\.email = \$1 AND u\.is_active = TRUE`).
		WithArgs("alice@example.org").
		WillReturnRows(rows)

	ctx, scope := visibility.NewContext(context.Background())
	scope.Activate()

	u, err := store.FindByEmail(ctx, " Alice@Example.org ")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if u.ID != "U1" || u.Role != auth.RoleAdmin {
		t.Fatalf("unexpected user: %+v", u)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSetMatchResultCancelled(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectQuery(`update matches m`).
		WithArgs("M1", 2, 1, league.MatchPlayed, sqlmock.AnyArg(), league.MatchCancelled).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`select status from matches`).
		WithArgs("M1").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(league.MatchCancelled))

	if _, err := store.SetMatchResult(context.Background(), "M1", 2, 1); !errors.Is(err, league.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
