package ramorders

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/eosbot/internal/bot/models"
	"github.com/dmitrijs2005/eosbot/internal/dbx"
)

// PostgresRepository implements Repository over dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, order *models.RAMOrder) error {
	query := `
		INSERT INTO ram_orders (order_id, user_id, eos_account_name, ram_bytes, price_per_kb, order_status, order_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		order.OrderID, order.UserID, order.AccountName,
		order.RAMBytes, order.PricePerKB, order.Status, order.OrderDate)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) CountPending(ctx context.Context, userID int64) (int, error) {
	query := `
		SELECT COUNT(*) FROM ram_orders
		WHERE user_id = $1 AND order_status = $2
	`
	var n int
	if err := r.db.QueryRowContext(ctx, query, userID, models.OrderStatusPending).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) CountAll(ctx context.Context, userID int64) (int, error) {
	query := `
		SELECT COUNT(*) FROM ram_orders
		WHERE user_id = $1
	`
	var n int
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) ListPage(ctx context.Context, userID int64, limit, offset int) ([]*models.RAMOrder, error) {
	query := `
		SELECT order_id, user_id, eos_account_name, ram_bytes, price_per_kb, order_status, order_date, transaction_id, failure_reason
		FROM ram_orders
		WHERE user_id = $1
		ORDER BY order_date DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var orders []*models.RAMOrder
	for rows.Next() {
		order := &models.RAMOrder{}
		err := rows.Scan(&order.OrderID, &order.UserID, &order.AccountName,
			&order.RAMBytes, &order.PricePerKB, &order.Status,
			&order.OrderDate, &order.TransactionID, &order.FailureReason)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return orders, nil
}

func (r *PostgresRepository) DeleteAllByUser(ctx context.Context, userID int64) error {
	query := `
		DELETE FROM ram_orders
		WHERE user_id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
