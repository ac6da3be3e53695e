package rest

import (
	"context"
	"net/http"
	"strconv"

	"myStoreCloud/domain"
	"myStoreCloud/internal/middleware"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	CategoryHandler struct {
		validate        *validator.Validate
		categoryService CategoryService
	}

	CategoryService interface {
		CreateCategory(ctx context.Context, tenantID string, category *domain.Category) error
		GetAllCategories(ctx context.Context, tenantID string) ([]domain.Category, error)
		DeleteCategory(ctx context.Context, tenantID string, id uint64) error
		AssignProductCategories(ctx context.Context, tenantID string, productID uint64, categoryIDs []uint64) error
	}

	CategoryRequest struct {
		CategoryName string `json:"category_name" validate:"required"`
	}

	AssignCategoriesRequest struct {
		CategoryIDs []uint64 `json:"category_ids" validate:"required"`
	}
)

func NewCategoryHandler(svc CategoryService) *CategoryHandler {
	return &CategoryHandler{
		validate:        validator.New(),
		categoryService: svc,
	}
}

// GET /api/v1/categories
func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.categoryService.GetAllCategories(c.Request().Context(), middleware.TenantID(c))
	if err != nil {
		return tenantError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(categories))
}

// POST /api/v1/categories
func (h *CategoryHandler) Create(c echo.Context) error {
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	category := domain.Category{
		CategoryName: req.CategoryName,
	}

	if err := h.categoryService.CreateCategory(c.Request().Context(), middleware.TenantID(c), &category); err != nil {
		return tenantError(c, err)
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(category))
}

// DELETE /api/v1/categories/:id
func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid category id"})
	}

	if err := h.categoryService.DeleteCategory(c.Request().Context(), middleware.TenantID(c), id); err != nil {
		return tenantError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Category deleted successfully"))
}

// PUT /api/v1/products/:id/categories
func (h *CategoryHandler) AssignToProduct(c echo.Context) error {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || productID == 0 {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	var req AssignCategoriesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	err = h.categoryService.AssignProductCategories(c.Request().Context(), middleware.TenantID(c), productID, req.CategoryIDs)
	if err != nil {
		return tenantError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Categories assigned successfully"))
}
