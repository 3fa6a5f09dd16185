package repository

import (
	"context"

	"github.com/quirodesk/clinica-api/internal/domain/entity"
	"github.com/quirodesk/clinica-api/internal/domain/enum"
	"github.com/quirodesk/clinica-api/pkg/pagination"
)

// ProductRepository defines the interface for product and service catalog operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uint) (*entity.Product, error)
	// GetByIDs retrieves multiple products by their IDs in a single query (prevents N+1)
	GetByIDs(ctx context.Context, ids []uint) ([]entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	// ListSellable returns active products excluding the given kind, ordered by name.
	ListSellable(ctx context.Context, exclude enum.ProductKind) ([]entity.Product, error)
	// AtomicDecrementStock atomically decrements stock only if sufficient.
	// Returns (true, nil) if successful, (false, nil) if insufficient stock, (false, err) on error.
	AtomicDecrementStock(ctx context.Context, id uint, amount int) (bool, error)
	// IncrementStock adds the given amount to the product's stock.
	IncrementStock(ctx context.Context, id uint, amount int) error
}

// ProductFilterParams contains filtering parameters for catalog queries
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Kind       *enum.ProductKind
	ActiveOnly bool
	SortBy     string
	SortOrder  string
}
