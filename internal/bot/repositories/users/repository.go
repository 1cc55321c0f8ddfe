// Package users provides the repository for the users table: chat
// identity plus the (nullable) account credential and persisted session
// expiry.
package users

import (
	"context"
	"time"

	"github.com/dmitrijs2005/eosbot/internal/bot/models"
)

// Repository is the persistence contract for user credential rows.
type Repository interface {
	// Ensure inserts a bare row for userID if none exists yet.
	Ensure(ctx context.Context, userID int64) error

	// GetByID returns the user row or common.ErrorNotFound.
	GetByID(ctx context.Context, userID int64) (*models.User, error)

	// SetCredential writes the full account credential in one statement.
	SetCredential(ctx context.Context, userID int64, accountName, publicKey, encryptedKey, permission string) error

	// SetAccountSelection completes a multi-account import by fixing the
	// chosen account name and permission.
	SetAccountSelection(ctx context.Context, userID int64, accountName, permission string) error

	// ClearCredential resets all four credential fields to NULL atomically.
	ClearCredential(ctx context.Context, userID int64) error

	// SetSessionExpiration persists the unlock expiry timestamp.
	SetSessionExpiration(ctx context.Context, userID int64, expiresAt time.Time) error
}
