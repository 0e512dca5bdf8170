package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a catalog entry. Products are only created by seeding.
type Product struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name      string          `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"-"`
	CreatedAt time.Time       `json:"-"`
	UpdatedAt time.Time       `json:"-"`
}

// MarshalJSON renders the price as a JSON number
func (p Product) MarshalJSON() ([]byte, error) {
	type Alias Product
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
	}{
		Alias: Alias(p),
		Price: p.Price.InexactFloat64(),
	})
}

// UnmarshalJSON reads the price from a JSON number or string
func (p *Product) UnmarshalJSON(data []byte) error {
	type Alias Product
	aux := &struct {
		*Alias
		Price decimal.Decimal `json:"price"`
	}{Alias: (*Alias)(p)}
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	p.Price = aux.Price
	return nil
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}
