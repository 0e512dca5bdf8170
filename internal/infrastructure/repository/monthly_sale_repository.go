package repository

import (
	"context"
	"time"

	"github.com/sangkips/bytechef-api/internal/domain/entity"
	domainRepo "github.com/sangkips/bytechef-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type monthlySaleRepository struct {
	db *gorm.DB
}

// NewMonthlySaleRepository creates a new monthly ledger repository
func NewMonthlySaleRepository(db *gorm.DB) domainRepo.MonthlySaleRepository {
	return &monthlySaleRepository{db: db}
}

func (r *monthlySaleRepository) AddToDay(ctx context.Context, day time.Time, amount decimal.Decimal) (*entity.MonthlySale, error) {
	var row entity.MonthlySale
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		insert := entity.MonthlySale{Date: day, Total: amount}
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"total": gorm.Expr("monthly_sales.total + ?", amount),
			}),
		}).Create(&insert).Error
		if err != nil {
			return err
		}
		return tx.Where("monthly_sales.date = ?", day).First(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *monthlySaleRepository) List(ctx context.Context) ([]entity.MonthlySale, error) {
	rows := []entity.MonthlySale{}
	err := r.db.WithContext(ctx).Order("monthly_sales.date ASC").Find(&rows).Error
	return rows, err
}

func (r *monthlySaleRepository) ListBetween(ctx context.Context, from, to time.Time) ([]entity.MonthlySale, error) {
	rows := []entity.MonthlySale{}
	err := r.db.WithContext(ctx).
		Where("monthly_sales.date >= ? AND monthly_sales.date < ?", from, to).
		Order("monthly_sales.date ASC").
		Find(&rows).Error
	return rows, err
}
