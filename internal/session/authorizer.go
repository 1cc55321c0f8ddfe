package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/eosbot/internal/bot/models"
	"github.com/dmitrijs2005/eosbot/internal/vault"
)

var (
	// ErrPasswordIncorrect means the vault ciphertext did not open with
	// the supplied password. An existing session is left untouched.
	ErrPasswordIncorrect = errors.New("password incorrect")
	// ErrNoCredential means the user has no stored account to unlock.
	ErrNoCredential = errors.New("no stored credential")
)

// UserSource is the slice of the users repository the authorizer needs.
type UserSource interface {
	GetByID(ctx context.Context, userID int64) (*models.User, error)
	SetSessionExpiration(ctx context.Context, userID int64, expiresAt time.Time) error
}

// Expiration is the remaining lifetime of a session broken into calendar
// units plus the absolute deadline.
type Expiration struct {
	Days    int
	Hours   int
	Minutes int
	At      time.Time
}

// Authorizer opens and queries signing sessions. The decrypted key lives
// only in the Store; the database keeps just the expiry timestamp.
type Authorizer struct {
	store Store
	users UserSource
	now   func() time.Time
}

func NewAuthorizer(store Store, users UserSource) *Authorizer {
	return &Authorizer{store: store, users: users, now: time.Now}
}

// Authorize decrypts the user's stored key with the password and grants a
// session for the given duration. A repeated call replaces the previous
// grant wholesale.
func (a *Authorizer) Authorize(ctx context.Context, userID int64, password string, duration time.Duration) error {
	user, err := a.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("loading user: %w", err)
	}
	if !user.HasAccount() {
		return ErrNoCredential
	}

	privateKey, err := vault.Decrypt(user.EncryptedPrivateKey.String, password)
	if err != nil {
		if errors.Is(err, vault.ErrDecryptionFailed) {
			return ErrPasswordIncorrect
		}
		return err
	}

	expiresAt := a.now().Add(duration)
	a.store.Put(userID, Session{PrivateKey: privateKey, ExpiresAt: expiresAt})

	if err := a.users.SetSessionExpiration(ctx, userID, expiresAt); err != nil {
		return fmt.Errorf("persisting session expiration: %w", err)
	}
	return nil
}

// IsActive reports whether the user holds a live session. An expired
// record is deleted on the way out.
func (a *Authorizer) IsActive(userID int64) bool {
	sess, ok := a.store.Get(userID)
	if !ok {
		return false
	}
	if !a.now().Before(sess.ExpiresAt) {
		a.store.Delete(userID)
		return false
	}
	return true
}

// PrivateKey returns the decrypted key for signing. It is the only
// accessor to the key material.
func (a *Authorizer) PrivateKey(userID int64) (string, bool) {
	sess, ok := a.store.Get(userID)
	if !ok || !a.now().Before(sess.ExpiresAt) {
		return "", false
	}
	return sess.PrivateKey, true
}

// Expiration returns the remaining session lifetime, false when no live
// session exists.
func (a *Authorizer) Expiration(userID int64) (Expiration, bool) {
	sess, ok := a.store.Get(userID)
	if !ok {
		return Expiration{}, false
	}
	remaining := int(sess.ExpiresAt.Sub(a.now()).Seconds())
	if remaining <= 0 {
		a.store.Delete(userID)
		return Expiration{}, false
	}
	return Expiration{
		Days:    remaining / 86400,
		Hours:   remaining % 86400 / 3600,
		Minutes: remaining % 3600 / 60,
		At:      sess.ExpiresAt,
	}, true
}

// Revoke drops the user's session, if any.
func (a *Authorizer) Revoke(userID int64) {
	a.store.Delete(userID)
}
