package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bytechef-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sale is one customer transaction. It is created OPEN with its items and
// becomes CLOSED once payments are recorded.
type Sale struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	SaleNumber  int             `gorm:"not null;uniqueIndex:idx_sales_day_number,priority:2" json:"saleNumber"`
	BusinessDay string          `gorm:"size:10;not null;uniqueIndex:idx_sales_day_number,priority:1" json:"-"`
	Status      enum.SaleStatus `gorm:"not null;default:0;index" json:"status"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
	Total       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"-"`

	// Relationships
	Items    []SaleItem    `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"items"`
	Payments []SalePayment `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"payments"`
}

// MarshalJSON renders the total as a JSON number and empty relations as []
func (s Sale) MarshalJSON() ([]byte, error) {
	type Alias Sale
	if s.Items == nil {
		s.Items = []SaleItem{}
	}
	if s.Payments == nil {
		s.Payments = []SalePayment{}
	}
	return json.Marshal(&struct {
		Alias
		Total float64 `json:"total"`
	}{
		Alias: Alias(s),
		Total: s.Total.InexactFloat64(),
	})
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// IsClosed reports whether payments were already recorded
func (s *Sale) IsClosed() bool {
	return s.Status == enum.SaleStatusClosed
}

// ItemsTotal is the sum of quantity x price over the sale's items.
// It is informational only; the sale total comes from its payments.
func (s *Sale) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// SaleItem is one product line captured at sale time
type SaleItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	SaleID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"saleId"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"productId"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"-"`
	Position  int             `gorm:"not null;default:0" json:"-"` // insertion order within the sale

	// Relationships
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// MarshalJSON renders the captured price as a JSON number
func (i SaleItem) MarshalJSON() ([]byte, error) {
	type Alias SaleItem
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
	}{
		Alias: Alias(i),
		Price: i.Price.InexactFloat64(),
	})
}

// BeforeCreate generates a UUID before creating a new sale item
func (i *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}

// LineTotal returns quantity x captured price
func (i *SaleItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// SalePayment is one tendered amount against a closed sale
type SalePayment struct {
	ID       uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	SaleID   uuid.UUID          `gorm:"type:uuid;not null;index" json:"saleId"`
	Method   enum.PaymentMethod `gorm:"size:20;not null" json:"method"`
	Amount   decimal.Decimal    `gorm:"type:decimal(12,2);not null" json:"-"`
	Position int                `gorm:"not null;default:0" json:"-"`
}

// MarshalJSON renders the amount as a JSON number
func (p SalePayment) MarshalJSON() ([]byte, error) {
	type Alias SalePayment
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(p),
		Amount: p.Amount.InexactFloat64(),
	})
}

// BeforeCreate generates a UUID before creating a new payment
func (p *SalePayment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SalePayment model
func (SalePayment) TableName() string {
	return "sale_payments"
}
