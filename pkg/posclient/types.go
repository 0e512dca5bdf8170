package posclient

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry as served by GET /products
type Product struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// OpenItem is one line of an open-sale request
type OpenItem struct {
	ProductID uuid.UUID       `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// SaleItem is a captured sale line
type SaleItem struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Product   *Product        `json:"product,omitempty"`
}

// Payment is one tendered amount
type Payment struct {
	Method string          `json:"method"`
	Amount decimal.Decimal `json:"amount"`
}

// Sale mirrors the server's sale representation
type Sale struct {
	ID         uuid.UUID       `json:"id"`
	SaleNumber int             `json:"saleNumber"`
	Status     string          `json:"status"`
	Date       time.Time       `json:"date"`
	Total      decimal.Decimal `json:"total"`
	Items      []SaleItem      `json:"items"`
	Payments   []Payment       `json:"payments"`
}

// MonthlySale is one row of the monthly ledger
type MonthlySale struct {
	ID    uuid.UUID       `json:"id"`
	Date  time.Time       `json:"date"`
	Total decimal.Decimal `json:"total"`
}

// Rollup is the answer to a send-to-monthly request. TotalAmount and
// Monthly are nil when nothing was closed today.
type Rollup struct {
	Message     string           `json:"message"`
	TotalAmount *decimal.Decimal `json:"totalAmount,omitempty"`
	Monthly     *MonthlySale     `json:"monthly,omitempty"`
}

// MethodTotal is the daily amount per payment method
type MethodTotal struct {
	Method    string          `json:"method"`
	Label     string          `json:"label"`
	Amount    decimal.Decimal `json:"amount"`
	Formatted string          `json:"formatted"`
}

// DailyReport summarizes today's sales
type DailyReport struct {
	Date           string          `json:"date"`
	SalesCount     int             `json:"salesCount"`
	OpenCount      int             `json:"openCount"`
	ClosedCount    int             `json:"closedCount"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	FormattedTotal string          `json:"formattedTotal"`
	ByMethod       []MethodTotal   `json:"byMethod"`
}

// MonthlyDay is one day of a monthly report
type MonthlyDay struct {
	Date      string          `json:"date"`
	Total     decimal.Decimal `json:"total"`
	Formatted string          `json:"formatted"`
}

// MonthlyReport summarizes one calendar month of the ledger
type MonthlyReport struct {
	Month          string          `json:"month"`
	Days           []MonthlyDay    `json:"days"`
	Total          decimal.Decimal `json:"total"`
	FormattedTotal string          `json:"formattedTotal"`
}

type messageBody struct {
	Message string `json:"message"`
}

type errorBody struct {
	Error string `json:"error"`
}
