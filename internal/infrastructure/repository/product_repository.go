package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/bytechef-api/internal/domain/entity"
	domainRepo "github.com/sangkips/bytechef-api/internal/domain/repository"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// GetByIDs retrieves multiple products by their IDs in a single query
func (r *productRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	if len(ids) == 0 {
		return []entity.Product{}, nil
	}
	var products []entity.Product
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&products).Error
	return products, err
}

func (r *productRepository) GetByName(ctx context.Context, name string) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).First(&product, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *productRepository) List(ctx context.Context, params *domainRepo.ProductFilterParams) ([]entity.Product, error) {
	products := []entity.Product{}

	query := r.db.WithContext(ctx).Model(&entity.Product{})
	if params != nil && strings.TrimSpace(params.Search) != "" {
		pattern := "%" + escapeLike(strings.ToLower(strings.TrimSpace(params.Search))) + "%"
		// LOWER + LIKE instead of ILIKE so the query also runs on SQLite
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(CAST(id AS TEXT)) LIKE ? ESCAPE '\'`, pattern, pattern)
	}

	err := query.Order("name ASC").Find(&products).Error
	return products, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// escapeLike makes LIKE wildcards in user input match literally
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
