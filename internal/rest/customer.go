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
	CustomerHandler struct {
		validate        *validator.Validate
		customerService CustomerService
	}

	CustomerService interface {
		RegisterCustomer(ctx context.Context, tenantID string, customer *domain.Customer) error
		GetCustomerByID(ctx context.Context, tenantID string, id uint64) (domain.Customer, error)
	}

	CustomerRequest struct {
		FullName string `json:"full_name,omitempty"`
		Email    string `json:"email" validate:"required,email"`
	}
)

func NewCustomerHandler(svc CustomerService) *CustomerHandler {
	return &CustomerHandler{
		validate:        validator.New(),
		customerService: svc,
	}
}

// POST /api/v1/customers
func (h *CustomerHandler) Create(c echo.Context) error {
	var req CustomerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	customer := domain.Customer{
		FullName: req.FullName,
		Email:    req.Email,
	}

	if err := h.customerService.RegisterCustomer(c.Request().Context(), middleware.TenantID(c), &customer); err != nil {
		return tenantError(c, err)
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(customer))
}

// GET /api/v1/customers/:id
func (h *CustomerHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid customer id"})
	}

	customer, err := h.customerService.GetCustomerByID(c.Request().Context(), middleware.TenantID(c), id)
	if err != nil {
		return tenantError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(customer))
}
