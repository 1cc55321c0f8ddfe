package models

import (
	"database/sql"
	"time"
)

// RAM order statuses. Only the external matching worker moves an order
// out of pending.
const (
	OrderStatusPending = "pending"
	OrderStatusSuccess = "success"
	OrderStatusFailed  = "failed"
)

// RAMOrder is a limit order for a RAM purchase. TransactionID is set iff
// the order succeeded; FailureReason is set iff it failed.
type RAMOrder struct {
	OrderID       string
	UserID        int64
	AccountName   string
	RAMBytes      uint64
	PricePerKB    float64
	Status        string
	OrderDate     time.Time
	TransactionID sql.NullString
	FailureReason sql.NullString
}
