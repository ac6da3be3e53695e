package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"myStoreCloud/domain"
	"myStoreCloud/internal/middleware"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	ProductHandler struct {
		validate       *validator.Validate
		productService ProductService
	}

	ProductService interface {
		GetAllProducts(ctx context.Context, tenantID string) ([]domain.Product, error)
		GetProductByID(ctx context.Context, tenantID string, id uint64) (domain.Product, error)
		CreateProduct(ctx context.Context, tenantID string, product *domain.Product) error
		UpdateProduct(ctx context.Context, tenantID string, product *domain.Product) error
		DeleteProduct(ctx context.Context, tenantID string, id uint64) error
	}

	ProductRequest struct {
		ProductSKU  string  `json:"product_sku,omitempty"`
		ProductName string  `json:"product_name" validate:"required"`
		Description string  `json:"description,omitempty"`
		NormalPrice float64 `json:"normal_price" validate:"gte=0"`
		SalePrice   float64 `json:"sale_price" validate:"gte=0"`
		Quantity    float64 `json:"quantity" validate:"gte=0"`
		IsActive    bool    `json:"is_active"`
	}
)

func NewProductHandler(svc ProductService) *ProductHandler {
	return &ProductHandler{
		validate:       validator.New(),
		productService: svc,
	}
}

func tenantError(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrTenantNotFound) {
		return c.JSON(http.StatusNotFound, ResponseError{Message: "store not found"})
	}
	return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
}

// GET /api/v1/products
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.productService.GetAllProducts(c.Request().Context(), middleware.TenantID(c))
	if err != nil {
		return tenantError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(products))
}

// GET /api/v1/products/:id
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	product, err := h.productService.GetProductByID(c.Request().Context(), middleware.TenantID(c), id)
	if err != nil {
		if errors.Is(err, domain.ErrTenantNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: "store not found"})
		}
		return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(product))
}

// POST /api/v1/products
func (h *ProductHandler) Create(c echo.Context) error {
	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	product := domain.Product{
		ProductSKU:  req.ProductSKU,
		ProductName: req.ProductName,
		Description: req.Description,
		NormalPrice: req.NormalPrice,
		SalePrice:   req.SalePrice,
		Quantity:    req.Quantity,
		IsActive:    req.IsActive,
	}

	if err := h.productService.CreateProduct(c.Request().Context(), middleware.TenantID(c), &product); err != nil {
		return tenantError(c, err)
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(product))
}

// PUT /api/v1/products/:id
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	product := domain.Product{
		ID:          id,
		ProductSKU:  req.ProductSKU,
		ProductName: req.ProductName,
		Description: req.Description,
		NormalPrice: req.NormalPrice,
		SalePrice:   req.SalePrice,
		Quantity:    req.Quantity,
		IsActive:    req.IsActive,
	}

	if err := h.productService.UpdateProduct(c.Request().Context(), middleware.TenantID(c), &product); err != nil {
		return tenantError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(product))
}

// DELETE /api/v1/products/:id
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	if err := h.productService.DeleteProduct(c.Request().Context(), middleware.TenantID(c), id); err != nil {
		return tenantError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Product deleted successfully"))
}
