package repository

import (
	"github.com/sangkips/bytechef-api/internal/domain/entity"
	"github.com/sangkips/bytechef-api/internal/domain/enum"
	"gorm.io/gorm"
)

// BusinessDayScope returns a GORM scope that keeps the sales of one business day
func BusinessDayScope(day string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("sales.business_day = ?", day)
	}
}

// SaleStatusScope returns a GORM scope that filters sales by status
func SaleStatusScope(status enum.SaleStatus) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("sales.status = ?", status)
	}
}

// withSaleRelations preloads items (with product) and payments in insertion order
func withSaleRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sale_items.position ASC")
		}).
		Preload("Items.Product").
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("sale_payments.position ASC")
		})
}

// daySaleIDs selects the ids of one day's sales, for use as a subquery
func daySaleIDs(tx *gorm.DB, day string) *gorm.DB {
	return tx.Model(&entity.Sale{}).Select("id").Scopes(BusinessDayScope(day))
}
