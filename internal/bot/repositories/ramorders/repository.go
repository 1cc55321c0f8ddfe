// Package ramorders provides the repository for RAM limit orders.
package ramorders

import (
	"context"

	"github.com/dmitrijs2005/eosbot/internal/bot/models"
)

// Repository is the persistence contract for RAM limit orders. Status
// transitions are owned by the external matching worker, so the bot side
// only inserts, counts, lists and deletes.
type Repository interface {
	// Create inserts a new pending order.
	Create(ctx context.Context, order *models.RAMOrder) error

	// CountPending returns the number of the user's pending orders.
	CountPending(ctx context.Context, userID int64) (int, error)

	// CountAll returns the total number of the user's orders in any state.
	CountAll(ctx context.Context, userID int64) (int, error)

	// ListPage returns one page of the user's orders, newest first.
	ListPage(ctx context.Context, userID int64, limit, offset int) ([]*models.RAMOrder, error)

	// DeleteAllByUser removes every order of the user.
	DeleteAllByUser(ctx context.Context, userID int64) error
}
