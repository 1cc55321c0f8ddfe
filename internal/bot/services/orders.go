package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/eosbot/internal/bot/models"
	"github.com/dmitrijs2005/eosbot/internal/bot/repositories/repomanager"
	"github.com/google/uuid"
)

// MaxPendingOrders caps how many RAM limit orders a user may keep open.
const MaxPendingOrders = 5

// OrderPageSize is the page length for the order listing.
const OrderPageSize = 5

// OrderService records and lists RAM limit orders. Execution belongs to
// the external matching worker; this service never changes a status.
type OrderService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewOrderService(db *sql.DB, m repomanager.RepositoryManager) *OrderService {
	return &OrderService{db: db, repomanager: m, now: time.Now}
}

// Place records a new pending order unless the user is at the cap.
func (s *OrderService) Place(ctx context.Context, userID int64, accountName string, ramBytes uint64, pricePerKb float64) (*models.RAMOrder, error) {
	repo := s.repomanager.RAMOrders(s.db)

	pending, err := repo.CountPending(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("counting pending orders: %w", err)
	}
	if pending >= MaxPendingOrders {
		return nil, ErrPendingLimitExceeded
	}

	order := &models.RAMOrder{
		OrderID:     uuid.NewString(),
		UserID:      userID,
		AccountName: accountName,
		RAMBytes:    ramBytes,
		PricePerKB:  pricePerKb,
		Status:      models.OrderStatusPending,
		OrderDate:   s.now(),
	}
	if err := repo.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// List returns one page of the user's orders, newest first, along with the
// total count so callers can derive page controls. Pages start at 1.
func (s *OrderService) List(ctx context.Context, userID int64, page int) ([]*models.RAMOrder, int, error) {
	if page < 1 {
		page = 1
	}
	repo := s.repomanager.RAMOrders(s.db)

	total, err := repo.CountAll(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("counting orders: %w", err)
	}
	orders, err := repo.ListPage(ctx, userID, OrderPageSize, (page-1)*OrderPageSize)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// Clear removes all of the user's orders regardless of status.
func (s *OrderService) Clear(ctx context.Context, userID int64) error {
	return s.repomanager.RAMOrders(s.db).DeleteAllByUser(ctx, userID)
}
