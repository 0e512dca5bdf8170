package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/sangkips/bytechef-api/internal/config"
	"github.com/sangkips/bytechef-api/internal/domain/entity"
	"github.com/sangkips/bytechef-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(LogLevel(cfg.LogLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)

	log.Info("connected to PostgreSQL", zap.String("host", cfg.Host), zap.String("database", cfg.Name))
	return db, nil
}

// LogLevel maps DB_LOG_LEVEL to a GORM log level. Unknown values mean warn.
func LogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// Models lists every persisted entity in migration order.
func Models() []interface{} {
	return []interface{}{
		&entity.Product{},
		&entity.Sale{},
		&entity.SaleItem{},
		&entity.SalePayment{},
		&entity.DailySaleCounter{},
		&entity.MonthlySale{},
		&entity.IdempotencyKey{},
	}
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")

	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("database migrations completed")
	return nil
}

// DefaultProducts is the catalog seeded on first start.
func DefaultProducts() []entity.Product {
	return []entity.Product{
		{Name: "Marmitex Grande", Price: decimal.NewFromInt(20)},
		{Name: "Marmitex Médio", Price: decimal.NewFromInt(18)},
		{Name: "Refrigerante Lata", Price: decimal.RequireFromString("4.50")},
	}
}

// SeedDefaultData inserts the default catalog, skipping products that already exist by name
func SeedDefaultData(ctx context.Context, productRepo repository.ProductRepository, log *zap.Logger) error {
	products := DefaultProducts()
	created := 0

	for i := range products {
		existing, err := productRepo.GetByName(ctx, products[i].Name)
		if err != nil {
			return fmt.Errorf("failed to check product %s: %w", products[i].Name, err)
		}
		if existing != nil {
			continue
		}
		if err := productRepo.Create(ctx, &products[i]); err != nil {
			return fmt.Errorf("failed to create product %s: %w", products[i].Name, err)
		}
		created++
	}

	log.Info("catalog seeding completed", zap.Int("created", created))
	return nil
}
