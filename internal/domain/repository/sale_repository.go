package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/bytechef-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var (
	// ErrSaleNotFound is returned when a sale id matches no row
	ErrSaleNotFound = errors.New("sale not found")
	// ErrSaleAlreadyClosed is returned when closing a sale that already has payments
	ErrSaleAlreadyClosed = errors.New("sale already closed")
)

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	// CreateOpen assigns the next per-day sale number for sale.BusinessDay and
	// inserts the sale with its items in one transaction.
	CreateOpen(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	// Close stores the payments, stamps the total and flips the status to
	// CLOSED in one transaction. Only OPEN sales can be closed.
	Close(ctx context.Context, id uuid.UUID, payments []entity.SalePayment, total decimal.Decimal) error
	// ListByDay returns the day's sales with items, products and payments,
	// oldest first.
	ListByDay(ctx context.Context, day string) ([]entity.Sale, error)
	ListClosedByDay(ctx context.Context, day string) ([]entity.Sale, error)
	// PurgeDay deletes the day's payments, items and sales and resets the
	// day's counter. Returns the number of sales removed.
	PurgeDay(ctx context.Context, day string) (int64, error)
}
