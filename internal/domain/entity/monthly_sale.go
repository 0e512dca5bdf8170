package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MonthlySale accumulates the rolled up closed-sale totals of one day.
// Rows are only ever incremented.
type MonthlySale struct {
	ID    uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Date  time.Time       `gorm:"not null;uniqueIndex" json:"date"`
	Total decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"-"`
}

// MarshalJSON renders the total as a JSON number
func (m MonthlySale) MarshalJSON() ([]byte, error) {
	type Alias MonthlySale
	return json.Marshal(&struct {
		Alias
		Total float64 `json:"total"`
	}{
		Alias: Alias(m),
		Total: m.Total.InexactFloat64(),
	})
}

// BeforeCreate generates a UUID before creating a new monthly row
func (m *MonthlySale) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the MonthlySale model
func (MonthlySale) TableName() string {
	return "monthly_sales"
}

// DailySaleCounter hands out per-day sale numbers
type DailySaleCounter struct {
	Day        string `gorm:"size:10;primaryKey"`
	LastNumber int    `gorm:"not null"`
}

// TableName returns the table name for the DailySaleCounter model
func (DailySaleCounter) TableName() string {
	return "daily_sale_counters"
}
