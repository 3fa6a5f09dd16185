package repository

import (
	"context"
	"errors"

	"github.com/quirodesk/clinica-api/internal/domain/entity"
	"github.com/quirodesk/clinica-api/internal/domain/enum"
	domainRepo "github.com/quirodesk/clinica-api/internal/domain/repository"
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

func (r *productRepository) GetByID(ctx context.Context, id uint) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).First(&product, "id_prod = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *productRepository) GetByIDs(ctx context.Context, ids []uint) ([]entity.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var products []entity.Product
	err := r.db.WithContext(ctx).Where("id_prod IN ?", ids).Find(&products).Error
	return products, err
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Product{}, "id_prod = ?", id).Error
}

func (r *productRepository) List(ctx context.Context, params *domainRepo.ProductFilterParams) ([]entity.Product, int64, error) {
	var products []entity.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Product{})

	if params.Search != "" {
		query = query.Where("nombre ILIKE ?", "%"+params.Search+"%")
	}
	if params.Kind != nil {
		query = query.Where("adicional = ?", *params.Kind)
	}
	if params.ActiveOnly {
		query = query.Where("esta_activo = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := params.SortBy
	if sortBy == "" {
		sortBy = "nombre"
	}
	sortOrder := params.SortOrder
	if sortOrder != "desc" {
		sortOrder = "asc"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(sortBy + " " + sortOrder).
		Find(&products).Error

	return products, total, err
}

func (r *productRepository) ListSellable(ctx context.Context, exclude enum.ProductKind) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).
		Where("esta_activo = ? AND adicional <> ?", true, exclude).
		Order("nombre ASC").
		Find(&products).Error
	return products, err
}

// AtomicDecrementStock decrements stock only if sufficient quantity exists.
// Uses: UPDATE products SET stock_actual = stock_actual - amount WHERE id_prod = ? AND stock_actual >= amount
func (r *productRepository) AtomicDecrementStock(ctx context.Context, id uint, amount int) (bool, error) {
	result := r.db.WithContext(ctx).Model(&entity.Product{}).
		Where("id_prod = ? AND stock_actual >= ?", id, amount).
		Update("stock_actual", gorm.Expr("stock_actual - ?", amount))

	if result.Error != nil {
		return false, result.Error
	}

	// If no rows were affected, insufficient stock
	return result.RowsAffected > 0, nil
}

func (r *productRepository) IncrementStock(ctx context.Context, id uint, amount int) error {
	return r.db.WithContext(ctx).Model(&entity.Product{}).
		Where("id_prod = ?", id).
		Update("stock_actual", gorm.Expr("stock_actual + ?", amount)).Error
}
