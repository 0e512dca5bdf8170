package repository

import (
	"context"
	"time"

	"github.com/sangkips/bytechef-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// MonthlySaleRepository defines the interface for the monthly ledger
type MonthlySaleRepository interface {
	// AddToDay creates the row for day with amount, or increments the existing
	// total by amount. It never overwrites.
	AddToDay(ctx context.Context, day time.Time, amount decimal.Decimal) (*entity.MonthlySale, error)
	List(ctx context.Context) ([]entity.MonthlySale, error)
	// ListBetween returns rows with from <= date < to, ascending
	ListBetween(ctx context.Context, from, to time.Time) ([]entity.MonthlySale, error)
}
