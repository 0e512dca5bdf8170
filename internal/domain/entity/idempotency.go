package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IdempotencyKey stores processed requests to prevent duplicates
type IdempotencyKey struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Key          string    `gorm:"size:255;not null;uniqueIndex:idx_idempotency_key_endpoint"` // The idempotency key from client
	Endpoint     string    `gorm:"size:255;not null;uniqueIndex:idx_idempotency_key_endpoint"` // e.g. "POST /sales/daily/sendToMonthly"
	ResponseCode int       `gorm:"not null"`
	ResponseBody string    `gorm:"type:text"`
	CreatedAt    time.Time
	ExpiresAt    time.Time `gorm:"not null;index"`
}

// BeforeCreate generates a UUID before storing the key
func (i *IdempotencyKey) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for IdempotencyKey
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsExpired checks if the idempotency key has expired at the given instant
func (i *IdempotencyKey) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}
