package request

// CreateProductRequest represents a catalog create request
type CreateProductRequest struct {
	Name         string  `json:"nombre" binding:"required,max=255"`
	InternalCost float64 `json:"costo" binding:"omitempty,gte=0"`
	SalePrice    float64 `json:"venta" binding:"required,gte=0"`
	Kind         int     `json:"adicional" binding:"omitempty,oneof=0 1 2"`
	Stock        int     `json:"stock_actual" binding:"omitempty,gte=0"`
}

// UpdateProductRequest represents a catalog update request
type UpdateProductRequest struct {
	Name         *string  `json:"nombre" binding:"omitempty,max=255"`
	InternalCost *float64 `json:"costo" binding:"omitempty,gte=0"`
	SalePrice    *float64 `json:"venta" binding:"omitempty,gte=0"`
	Kind         *int     `json:"adicional" binding:"omitempty,oneof=0 1 2"`
	Active       *bool    `json:"esta_activo"`
}

// AddStockRequest represents a stock entry request
type AddStockRequest struct {
	Amount int `json:"cantidad" binding:"required,gt=0"`
}
