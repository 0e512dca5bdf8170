package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/bytechef-api/internal/domain/entity"
)

// ProductRepository defines the interface for catalog data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	// GetByIDs retrieves multiple products by their IDs in a single query (prevents N+1)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	GetByName(ctx context.Context, name string) (*entity.Product, error)
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, error)
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	// Search matches a case-insensitive name or id substring
	Search string
}
