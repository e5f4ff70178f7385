package readstore

import (
	"context"

	"roombook/internal/infra"
	"roombook/internal/pkg/pgconv"
	"roombook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserReadStore struct {
	db *pgxpool.Pool
}

func NewUserReadStore(db *pgxpool.Pool) *UserReadStore {
	return &UserReadStore{db: db}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	const query = `
		SELECT id, name, email, role, is_active, last_login, created_at
		FROM users
		WHERE id = $1`

	view, _, err := scanUser(r.db.QueryRow(ctx, query, id), false)
	return view, err
}

func (r *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	const query = `
		SELECT id, name, email, role, is_active, last_login, created_at, password_hash
		FROM users
		WHERE email = $1`

	return scanUser(r.db.QueryRow(ctx, query, email), true)
}

func scanUser(row scanner, withHash bool) (*queries.AuthorizedUserView, string, error) {
	var (
		view      queries.AuthorizedUserView
		lastLogin pgtype.Timestamptz
		createdAt pgtype.Timestamptz
		hash      string
	)

	dest := []any{&view.ID, &view.Name, &view.Email, &view.Role, &view.IsActive, &lastLogin, &createdAt}
	if withHash {
		dest = append(dest, &hash)
	}

	if err := row.Scan(dest...); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find user", err, infra.ClassifyPgErr(err))
	}

	if lastLogin.Valid {
		view.LastLogin = &lastLogin.Time
	}
	view.CreatedAt = createdAt.Time
	return &view, hash, nil
}
