package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/quirodesk/clinica-api/internal/application/service"
	"github.com/quirodesk/clinica-api/internal/domain/enum"
	"github.com/quirodesk/clinica-api/internal/domain/repository"
	"github.com/quirodesk/clinica-api/internal/presentation/http/dto/request"
	"github.com/quirodesk/clinica-api/internal/presentation/http/dto/response"
	"github.com/quirodesk/clinica-api/pkg/pagination"
)

// ProductHandler handles catalog HTTP requests
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Create adds a new catalog entry
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &service.CreateProductInput{
		Name:         req.Name,
		InternalCost: req.InternalCost,
		SalePrice:    req.SalePrice,
		Kind:         enum.ProductKind(req.Kind),
		Stock:        req.Stock,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created", product)
}

// Get returns a catalog entry by ID
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved", product)
}

// Update modifies a catalog entry
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.UpdateProductInput{
		ID:           id,
		Name:         req.Name,
		InternalCost: req.InternalCost,
		SalePrice:    req.SalePrice,
		Active:       req.Active,
	}
	if req.Kind != nil {
		kind := enum.ProductKind(*req.Kind)
		input.Kind = &kind
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated", product)
}

// List handles listing catalog entries with filtering and pagination
func (h *ProductHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.ProductFilterParams{
		Pagination: &pagination.PaginationParams{Page: page, PerPage: perPage},
		Search:     c.Query("search"),
		ActiveOnly: c.Query("activos") == "true",
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}

	if kindStr := c.Query("adicional"); kindStr != "" {
		kindVal, err := strconv.Atoi(kindStr)
		if err != nil {
			response.BadRequest(c, "Invalid product kind")
			return
		}
		kind := enum.ProductKind(kindVal)
		params.Kind = &kind
	}

	products, total, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(products, pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Products retrieved", result)
}

// Sellable returns the entries the point-of-sale form can add
func (h *ProductHandler) Sellable(c *gin.Context) {
	products, err := h.productService.ListSellable(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sellable products", products)
}

// AddStock registers a stock entry for a physical product
func (h *ProductHandler) AddStock(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.AddStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.productService.AddStock(c.Request.Context(), id, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock updated", product)
}

// Deactivate retires a catalog entry without touching past receipts
func (h *ProductHandler) Deactivate(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.DeactivateProduct(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product deactivated", nil)
}
