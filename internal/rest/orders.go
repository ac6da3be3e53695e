package rest

import (
	"context"
	"net/http"
	"strconv"

	"myStoreCloud/business/orders"
	"myStoreCloud/domain"
	"myStoreCloud/internal/middleware"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	OrdersHandler struct {
		validate      *validator.Validate
		ordersService OrdersService
	}

	OrdersService interface {
		CreateOrder(ctx context.Context, in orders.CreateOrderInput) (domain.Orders, error)
		GetOrder(ctx context.Context, tenantID string, id uint64) (domain.Orders, error)
		GetOrdersByCustomer(ctx context.Context, tenantID string, customerID uint64) ([]domain.Orders, error)
		UpdateOrderStatus(ctx context.Context, tenantID string, id uint64, status string) error
	}

	CreateOrderRequest struct {
		CustomerID    uint64 `json:"customer_id" validate:"required"`
		SessionID     string `json:"session_id" validate:"required"`
		ProductID     uint64 `json:"product_id" validate:"required"`
		Quantity      int    `json:"quantity" validate:"required,gt=0"`
		PaymentMethod string `json:"payment_method,omitempty"`
	}

	UpdateOrderStatusRequest struct {
		Status string `json:"status" validate:"required,oneof=pending paid shipped cancelled"`
	}
)

func NewOrdersHandler(svc OrdersService) *OrdersHandler {
	return &OrdersHandler{
		validate:      validator.New(),
		ordersService: svc,
	}
}

// POST /api/v1/orders
func (h *OrdersHandler) Create(c echo.Context) error {
	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	orderItem, err := h.ordersService.CreateOrder(c.Request().Context(), orders.CreateOrderInput{
		TenantID:      middleware.TenantID(c),
		CustomerID:    req.CustomerID,
		SessionID:     req.SessionID,
		ProductID:     req.ProductID,
		Quantity:      req.Quantity,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		return tenantError(c, err)
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(orderItem))
}

// GET /api/v1/orders/:id
func (h *OrdersHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid order id"})
	}

	order, err := h.ordersService.GetOrder(c.Request().Context(), middleware.TenantID(c), id)
	if err != nil {
		return tenantError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(order))
}

// GET /api/v1/customers/:id/orders
func (h *OrdersHandler) ListByCustomer(c echo.Context) error {
	customerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || customerID == 0 {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid customer id"})
	}

	ordersList, err := h.ordersService.GetOrdersByCustomer(c.Request().Context(), middleware.TenantID(c), customerID)
	if err != nil {
		return tenantError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(ordersList))
}

// PUT /api/v1/orders/:id/status
func (h *OrdersHandler) UpdateStatus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid order id"})
	}

	var req UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.ordersService.UpdateOrderStatus(c.Request().Context(), middleware.TenantID(c), id, req.Status); err != nil {
		return tenantError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Order updated successfully"))
}
