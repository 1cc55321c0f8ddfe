// Package accountorders provides the repository for provisional
// account-creation orders.
package accountorders

import (
	"context"

	"github.com/dmitrijs2005/eosbot/internal/bot/models"
)

// Repository is the persistence contract for account orders. The "at most
// one unactivated order per user" invariant is enforced by the service
// layer and backed by a partial unique index.
type Repository interface {
	// Create inserts a new unactivated order and returns it with OrderID set.
	Create(ctx context.Context, order *models.AccountOrder) (*models.AccountOrder, error)

	// GetPendingByUser returns the user's unactivated order or
	// common.ErrorNotFound.
	GetPendingByUser(ctx context.Context, userID int64) (*models.AccountOrder, error)

	// MarkActivated flags the order as promoted to a live credential.
	MarkActivated(ctx context.Context, orderID int64) error

	// DeletePendingByUser removes the user's unactivated order, if any.
	DeletePendingByUser(ctx context.Context, userID int64) error
}
