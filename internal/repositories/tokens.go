package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/cwngan/cu2m-backend/internal/interfaces"
	"github.com/cwngan/cu2m-backend/internal/schemas"
)

// ResetTokenRepository manages password reset tokens. Each username holds at
// most one token; requesting a new one replaces the old.
type ResetTokenRepository struct {
	db interfaces.Querier
}

func NewResetTokenRepository(db interfaces.Querier) *ResetTokenRepository {
	return &ResetTokenRepository{db: db}
}

func (r *ResetTokenRepository) WithTx(tx pgx.Tx) *ResetTokenRepository {
	return &ResetTokenRepository{db: tx}
}

// Upsert stores a new token hash for the username, replacing any previous
// token regardless of whether it had expired.
func (r *ResetTokenRepository) Upsert(ctx context.Context, username, tokenHash string, expiresAt time.Time) error {
	query := `INSERT INTO reset_tokens (username, token_hash, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO UPDATE SET token_hash = EXCLUDED.token_hash, expires_at = EXCLUDED.expires_at`
	_, err := r.db.Exec(ctx, query, username, tokenHash, expiresAt)
	return err
}

// GetLive returns the username's token if one exists and has not expired.
// Expired rows are treated as absent; PurgeExpired removes them eventually.
func (r *ResetTokenRepository) GetLive(ctx context.Context, username string) (*schemas.ResetToken, error) {
	query := "SELECT username, token_hash, expires_at FROM reset_tokens WHERE username = $1 AND expires_at > now()"

	token := &schemas.ResetToken{}
	err := r.db.QueryRow(ctx, query, username).Scan(&token.Username, &token.TokenHash, &token.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return token, nil
}

// Delete removes the username's token. Deleting an absent token is not an
// error.
func (r *ResetTokenRepository) Delete(ctx context.Context, username string) error {
	_, err := r.db.Exec(ctx, "DELETE FROM reset_tokens WHERE username = $1", username)
	return err
}

// PurgeExpired removes all expired tokens.
func (r *ResetTokenRepository) PurgeExpired(ctx context.Context) error {
	_, err := r.db.Exec(ctx, "DELETE FROM reset_tokens WHERE expires_at <= now()")
	return err
}
