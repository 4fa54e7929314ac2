package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cwngan/cu2m-backend/internal/interfaces"
	"github.com/cwngan/cu2m-backend/internal/schemas"
)

const userColumns = "user_id, email, username, first_name, last_name, major, password_hash, license_key_hash, activated_at, last_login"

// UserRepository reads and writes the users table. A user row starts out
// pre-created (activated_at at the epoch, only email and license key hash
// set) and is filled in once by the signup flow.
type UserRepository struct {
	db interfaces.Querier
}

func NewUserRepository(db interfaces.Querier) *UserRepository {
	return &UserRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *UserRepository) WithTx(tx pgx.Tx) *UserRepository {
	return &UserRepository{db: tx}
}

func scanUser(row pgx.Row) (*schemas.User, error) {
	user := &schemas.User{}
	err := row.Scan(&user.ID, &user.Email, &user.Username, &user.FirstName,
		&user.LastName, &user.Major, &user.PasswordHash, &user.LicenseKeyHash,
		&user.ActivatedAt, &user.LastLogin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetPreCreatedByEmail returns the not-yet-activated user registered under
// the given email, if any.
func (r *UserRepository) GetPreCreatedByEmail(ctx context.Context, email string) (*schemas.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE email = $1 AND activated_at = to_timestamp(0)"
	return scanUser(r.db.QueryRow(ctx, query, email))
}

// GetByEmail returns the activated user registered under the given email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*schemas.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE email = $1 AND activated_at > to_timestamp(0)"
	return scanUser(r.db.QueryRow(ctx, query, email))
}

// GetByUsername returns the activated user holding the given username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*schemas.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE username = $1"
	return scanUser(r.db.QueryRow(ctx, query, username))
}

// Activate fills in a pre-created user's profile and marks it activated.
// The conditional update makes the pre-created-to-activated transition
// one-shot even under concurrent signups; a second attempt sees ErrNotFound.
// A username collision surfaces as ErrDuplicateKey.
func (r *UserRepository) Activate(ctx context.Context, id uuid.UUID, username, firstName, lastName, major, passwordHash string) (*schemas.User, error) {
	query := `UPDATE users
		SET username = $2, first_name = $3, last_name = $4, major = $5, password_hash = $6,
			activated_at = now(), last_login = now()
		WHERE user_id = $1 AND activated_at = to_timestamp(0)
		RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRow(ctx, query, id, username, firstName, lastName, major, passwordHash))
	if err != nil && isUniqueViolation(err) {
		return nil, ErrDuplicateKey
	}
	return user, err
}

// UpdateLastLogin stamps the user's last successful login and returns the
// updated row.
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID) (*schemas.User, error) {
	query := "UPDATE users SET last_login = now() WHERE user_id = $1 RETURNING " + userColumns
	return scanUser(r.db.QueryRow(ctx, query, id))
}

// UpdatePassword replaces the password hash of an activated user.
func (r *UserRepository) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	query := "UPDATE users SET password_hash = $2 WHERE username = $1 AND activated_at > to_timestamp(0)"
	tag, err := r.db.Exec(ctx, query, username, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CreatePreCreated inserts a fresh pre-created user holding only the email
// and license key hash. A duplicate email surfaces as ErrDuplicateKey.
func (r *UserRepository) CreatePreCreated(ctx context.Context, email, licenseKeyHash string) (*schemas.User, error) {
	query := `INSERT INTO users (email, license_key_hash, password_hash, activated_at)
		VALUES ($1, $2, '', to_timestamp(0))
		RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRow(ctx, query, email, licenseKeyHash))
	if err != nil && isUniqueViolation(err) {
		return nil, ErrDuplicateKey
	}
	return user, err
}
