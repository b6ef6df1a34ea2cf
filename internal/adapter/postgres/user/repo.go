// Package user implements user lookup and provisioning using PostgreSQL.
package user

import (
	"context"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/heartmarshall/lexinote-backend/internal/adapter/postgres"
	"github.com/heartmarshall/lexinote-backend/internal/domain"
)

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new user repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type userRow struct {
	ID        int64     `db:"id"`
	Email     string    `db:"email"`
	Name      *string   `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

const getByIDSQL = `SELECT id, email, name, created_at FROM users WHERE id = $1`

const upsertByEmailSQL = `
INSERT INTO users (email, name)
VALUES ($1, $2)
ON CONFLICT (email) DO UPDATE SET name = COALESCE(EXCLUDED.name, users.name)
RETURNING id, email, name, created_at`

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var row userRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, getByIDSQL, id); err != nil {
		return nil, postgres.MapError(err, "user", id)
	}
	return toDomain(row), nil
}

// GetOrCreateByEmail returns the user with the email, creating it if needed.
func (r *Repo) GetOrCreateByEmail(ctx context.Context, email string, name *string) (*domain.User, error) {
	var row userRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, upsertByEmailSQL, email, name); err != nil {
		return nil, postgres.MapError(err, "user", email)
	}
	return toDomain(row), nil
}

func toDomain(row userRow) *domain.User {
	return &domain.User{
		ID:        row.ID,
		Email:     row.Email,
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
	}
}
