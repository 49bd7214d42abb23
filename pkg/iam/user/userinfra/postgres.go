package userinfra

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riderota/core/pkg/errx"
	"github.com/riderota/core/pkg/iam/user"
	"github.com/riderota/core/pkg/kernel"
)

const uniqueViolation = "23505"

type PostgresUserRepository struct {
	db *sqlx.DB
}

func NewPostgresUserRepository(db *sqlx.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const userColumns = `id, email, name, password_hash, role, tenant_slug, status, created_at, updated_at`

func (r *PostgresUserRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES (:id, :email, :name, :password_hash, :role, :tenant_slug, :status, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, u); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return user.ErrIdentityConflict().
				WithDetail("tenant", u.TenantSlug.String()).
				WithCause(err)
		}
		return errx.Wrap(err, "failed to create user", errx.TypeInternal).
			WithDetail("tenant", u.TenantSlug.String())
	}
	return nil
}

func (r *PostgresUserRepository) FindByEmail(ctx context.Context, tenant kernel.TenantSlug, email string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE tenant_slug = $1 AND email = $2`

	var u user.User
	if err := r.db.GetContext(ctx, &u, query, tenant.String(), email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrNotFound()
		}
		return nil, errx.Wrap(err, "failed to find user by email", errx.TypeInternal)
	}
	return &u, nil
}

func (r *PostgresUserRepository) FindByID(ctx context.Context, tenant kernel.TenantSlug, id kernel.UserID) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE tenant_slug = $1 AND id = $2`

	var u user.User
	if err := r.db.GetContext(ctx, &u, query, tenant.String(), id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrNotFound().WithDetail("user_id", id.String())
		}
		return nil, errx.Wrap(err, "failed to find user by id", errx.TypeInternal).
			WithDetail("user_id", id.String())
	}
	return &u, nil
}
