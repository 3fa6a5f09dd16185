package service

import (
	"context"

	"github.com/quirodesk/clinica-api/internal/domain/entity"
	"github.com/quirodesk/clinica-api/internal/domain/enum"
	"github.com/quirodesk/clinica-api/internal/domain/repository"
	"github.com/quirodesk/clinica-api/pkg/apperror"
)

// ProductService handles product and service catalog operations
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name         string
	InternalCost float64
	SalePrice    float64
	Kind         enum.ProductKind
	Stock        int
}

// CreateProduct adds a new entry to the catalog
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Product name is required")
	}
	if input.SalePrice < 0 || input.InternalCost < 0 {
		return nil, apperror.NewBadRequestError("Prices cannot be negative")
	}

	product := &entity.Product{
		Name:         input.Name,
		InternalCost: input.InternalCost,
		SalePrice:    input.SalePrice,
		Kind:         input.Kind,
		Active:       true,
		Stock:        input.Stock,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uint) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	ID           uint
	Name         *string
	InternalCost *float64
	SalePrice    *float64
	Kind         *enum.ProductKind
	Active       *bool
}

// UpdateProduct updates catalog fields. Edits never rewrite past receipts:
// line items freeze their description and price at sale time.
func (s *ProductService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.Name != nil && *input.Name != "" {
		product.Name = *input.Name
	}
	if input.InternalCost != nil {
		if *input.InternalCost < 0 {
			return nil, apperror.NewBadRequestError("Prices cannot be negative")
		}
		product.InternalCost = *input.InternalCost
	}
	if input.SalePrice != nil {
		if *input.SalePrice < 0 {
			return nil, apperror.NewBadRequestError("Prices cannot be negative")
		}
		product.SalePrice = *input.SalePrice
	}
	if input.Kind != nil {
		product.Kind = *input.Kind
	}
	if input.Active != nil {
		product.Active = *input.Active
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// ListProducts lists catalog entries with filtering and pagination
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	return s.productRepo.List(ctx, params)
}

// ListSellable returns the entries the point-of-sale product picker offers:
// active products and services, therapies excluded.
func (s *ProductService) ListSellable(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.ListSellable(ctx, enum.ProductKindTherapy)
}

// AddStock records a stock entry for a physical product
func (s *ProductService) AddStock(ctx context.Context, id uint, amount int) (*entity.Product, error) {
	if amount <= 0 {
		return nil, apperror.NewBadRequestError("Stock entry must be positive")
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	if !product.Kind.TracksStock() {
		return nil, apperror.NewBadRequestError("Only physical products carry stock")
	}

	if err := s.productRepo.IncrementStock(ctx, id, amount); err != nil {
		return nil, err
	}
	return s.productRepo.GetByID(ctx, id)
}

// DeactivateProduct hides a catalog entry from the point-of-sale picker
func (s *ProductService) DeactivateProduct(ctx context.Context, id uint) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}

	product.Active = false
	return s.productRepo.Update(ctx, product)
}
