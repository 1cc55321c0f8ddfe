package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/eosbot/internal/bot/models"
	"github.com/dmitrijs2005/eosbot/internal/common"
	"github.com/dmitrijs2005/eosbot/internal/dbx"
)

// PostgresRepository implements Repository over dbx.DBTX (satisfied by
// *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Ensure(ctx context.Context, userID int64) error {
	query := `
		INSERT INTO users (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID int64) (*models.User, error) {
	query := `
		SELECT user_id, eos_account_name, eos_public_key, eos_private_key, permission_name, session_expiration
		FROM users
		WHERE user_id = $1
	`
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&user.UserID, &user.AccountName, &user.PublicKey,
		&user.EncryptedPrivateKey, &user.PermissionName, &user.SessionExpiration)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func (r *PostgresRepository) SetCredential(ctx context.Context, userID int64, accountName, publicKey, encryptedKey, permission string) error {
	query := `
		UPDATE users
		SET eos_account_name = $1, eos_public_key = $2, eos_private_key = $3, permission_name = $4
		WHERE user_id = $5
	`
	if _, err := r.db.ExecContext(ctx, query, accountName, publicKey, encryptedKey, permission, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SetAccountSelection(ctx context.Context, userID int64, accountName, permission string) error {
	query := `
		UPDATE users
		SET eos_account_name = $1, permission_name = $2
		WHERE user_id = $3
	`
	if _, err := r.db.ExecContext(ctx, query, accountName, permission, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ClearCredential(ctx context.Context, userID int64) error {
	query := `
		UPDATE users
		SET eos_account_name = NULL, eos_public_key = NULL, eos_private_key = NULL,
		    permission_name = NULL, session_expiration = NULL
		WHERE user_id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SetSessionExpiration(ctx context.Context, userID int64, expiresAt time.Time) error {
	query := `
		UPDATE users
		SET session_expiration = $1
		WHERE user_id = $2
	`
	if _, err := r.db.ExecContext(ctx, query, expiresAt, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
