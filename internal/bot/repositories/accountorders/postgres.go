package accountorders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/eosbot/internal/bot/models"
	"github.com/dmitrijs2005/eosbot/internal/common"
	"github.com/dmitrijs2005/eosbot/internal/dbx"
)

// PostgresRepository implements Repository over dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, order *models.AccountOrder) (*models.AccountOrder, error) {
	query := `
		INSERT INTO account_orders (user_id, eos_account_name, eos_public_key, eos_private_key, activated)
		VALUES ($1, $2, $3, $4, FALSE)
		RETURNING order_id
	`
	err := r.db.QueryRowContext(ctx, query,
		order.UserID, order.AccountName, order.PublicKey, order.EncryptedPrivateKey).Scan(&order.OrderID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return order, nil
}

func (r *PostgresRepository) GetPendingByUser(ctx context.Context, userID int64) (*models.AccountOrder, error) {
	query := `
		SELECT order_id, user_id, eos_account_name, eos_public_key, eos_private_key, activated
		FROM account_orders
		WHERE user_id = $1 AND NOT activated
	`
	order := &models.AccountOrder{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&order.OrderID, &order.UserID, &order.AccountName,
		&order.PublicKey, &order.EncryptedPrivateKey, &order.Activated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return order, nil
}

func (r *PostgresRepository) MarkActivated(ctx context.Context, orderID int64) error {
	query := `
		UPDATE account_orders
		SET activated = TRUE
		WHERE order_id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, orderID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeletePendingByUser(ctx context.Context, userID int64) error {
	query := `
		DELETE FROM account_orders
		WHERE user_id = $1 AND NOT activated
	`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
