package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/bytechef-api/internal/domain/entity"
	"github.com/sangkips/bytechef-api/internal/domain/enum"
	domainRepo "github.com/sangkips/bytechef-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) CreateOpen(ctx context.Context, sale *entity.Sale) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		number, err := nextSaleNumber(tx, sale.BusinessDay)
		if err != nil {
			return err
		}
		sale.SaleNumber = number
		sale.Status = enum.SaleStatusOpen
		return tx.Create(sale).Error
	})
}

// nextSaleNumber increments the day's counter, creating it at 1, and reads it back.
// The row lock taken by the upsert serializes concurrent opens of the same day.
func nextSaleNumber(tx *gorm.DB, day string) (int, error) {
	counter := entity.DailySaleCounter{Day: day, LastNumber: 1}
	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "day"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"last_number": gorm.Expr("daily_sale_counters.last_number + 1"),
		}),
	}).Create(&counter).Error
	if err != nil {
		return 0, err
	}

	var current entity.DailySaleCounter
	if err := tx.Where("day = ?", day).First(&current).Error; err != nil {
		return 0, err
	}
	return current.LastNumber, nil
}

func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).
		Scopes(withSaleRelations).
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) Close(ctx context.Context, id uuid.UUID, payments []entity.SalePayment, total decimal.Decimal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Conditional update so two concurrent closes cannot both succeed
		result := tx.Model(&entity.Sale{}).
			Where("id = ? AND status = ?", id, enum.SaleStatusOpen).
			Updates(map[string]interface{}{
				"status": enum.SaleStatusClosed,
				"total":  total,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&entity.Sale{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return domainRepo.ErrSaleNotFound
			}
			return domainRepo.ErrSaleAlreadyClosed
		}

		for i := range payments {
			payments[i].SaleID = id
			payments[i].Position = i + 1
		}
		if len(payments) == 0 {
			return nil
		}
		return tx.Create(&payments).Error
	})
}

func (r *saleRepository) ListByDay(ctx context.Context, day string) ([]entity.Sale, error) {
	sales := []entity.Sale{}
	err := r.db.WithContext(ctx).
		Scopes(BusinessDayScope(day), withSaleRelations).
		Order("sales.date ASC").
		Order("sales.sale_number ASC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepository) ListClosedByDay(ctx context.Context, day string) ([]entity.Sale, error) {
	sales := []entity.Sale{}
	err := r.db.WithContext(ctx).
		Scopes(BusinessDayScope(day), SaleStatusScope(enum.SaleStatusClosed)).
		Order("sales.date ASC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepository) PurgeDay(ctx context.Context, day string) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Children first so the delete also works without FK cascades
		if err := tx.Where("sale_id IN (?)", daySaleIDs(tx, day)).
			Delete(&entity.SalePayment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("sale_id IN (?)", daySaleIDs(tx, day)).
			Delete(&entity.SaleItem{}).Error; err != nil {
			return err
		}

		result := tx.Where("business_day = ?", day).Delete(&entity.Sale{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected

		return tx.Where("day = ?", day).Delete(&entity.DailySaleCounter{}).Error
	})
	return deleted, err
}
