package invitationinfra

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riderota/core/pkg/errx"
	"github.com/riderota/core/pkg/iam/invitation"
)

// PostgresInvitationRepository stores invitations in the invitations table.
type PostgresInvitationRepository struct {
	db *sqlx.DB
}

func NewPostgresInvitationRepository(db *sqlx.DB) *PostgresInvitationRepository {
	return &PostgresInvitationRepository{db: db}
}

const invitationColumns = `id, token, email, role, tenant_slug, welcome_message, invited_by, expires_at, redeemed_at, created_at`

func (r *PostgresInvitationRepository) Save(ctx context.Context, inv *invitation.Invitation) error {
	query := `
		INSERT INTO invitations (` + invitationColumns + `)
		VALUES (:id, :token, :email, :role, :tenant_slug, :welcome_message, :invited_by, :expires_at, :redeemed_at, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, inv); err != nil {
		return errx.Wrap(err, "failed to save invitation", errx.TypeInternal).
			WithDetail("invitation_id", inv.ID)
	}
	return nil
}

func (r *PostgresInvitationRepository) FindByToken(ctx context.Context, token string) (*invitation.Invitation, error) {
	query := `
		SELECT ` + invitationColumns + `
		FROM invitations
		WHERE token = $1 AND redeemed_at IS NULL`

	var inv invitation.Invitation
	if err := r.db.GetContext(ctx, &inv, query, token); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, invitation.ErrNotFound()
		}
		return nil, errx.Wrap(err, "failed to find invitation by token", errx.TypeInternal)
	}
	return &inv, nil
}

func (r *PostgresInvitationRepository) MarkRedeemed(ctx context.Context, token string, at time.Time) error {
	query := `UPDATE invitations SET redeemed_at = $2 WHERE token = $1 AND redeemed_at IS NULL`

	res, err := r.db.ExecContext(ctx, query, token, at)
	if err != nil {
		return errx.Wrap(err, "failed to redeem invitation", errx.TypeInternal)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to redeem invitation", errx.TypeInternal)
	}
	if n == 0 {
		return invitation.ErrAlreadyRedeemed()
	}
	return nil
}
