package rest

import (
	"context"
	"errors"
	"net/http"

	"myStoreCloud/business/behavior"
	"myStoreCloud/domain"
	"myStoreCloud/internal/middleware"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	BehaviorHandler struct {
		validate        *validator.Validate
		behaviorService BehaviorService
	}

	BehaviorService interface {
		TrackBehavior(ctx context.Context, in behavior.BehaviorInput) error
		TrackProductView(ctx context.Context, in behavior.ProductViewInput) error
	}

	BehaviorEventRequest struct {
		CustomerID  *uint64        `json:"customer_id,omitempty"`
		SessionID   string         `json:"session_id" validate:"required"`
		Action      string         `json:"action" validate:"required,oneof=view add_to_cart remove_from_cart purchase search"`
		ProductID   *uint64        `json:"product_id,omitempty"`
		SearchQuery string         `json:"search_query,omitempty"`
		DeviceType  string         `json:"device_type,omitempty"`
		Source      string         `json:"source,omitempty"`
		TimeSpent   int            `json:"time_spent,omitempty"`
		Metadata    map[string]any `json:"metadata,omitempty"`
	}

	ProductViewRequest struct {
		CustomerID   *uint64 `json:"customer_id,omitempty"`
		SessionID    string  `json:"session_id" validate:"required"`
		ProductID    uint64  `json:"product_id" validate:"required"`
		ViewDuration int     `json:"view_duration,omitempty"`
		Referrer     string  `json:"referrer,omitempty"`
	}
)

func NewBehaviorHandler(svc BehaviorService) *BehaviorHandler {
	return &BehaviorHandler{
		validate:        validator.New(),
		behaviorService: svc,
	}
}

// POST /api/v1/events
func (h *BehaviorHandler) TrackEvent(c echo.Context) error {
	var req BehaviorEventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	err := h.behaviorService.TrackBehavior(c.Request().Context(), behavior.BehaviorInput{
		TenantID:    middleware.TenantID(c),
		CustomerID:  req.CustomerID,
		SessionID:   req.SessionID,
		Action:      req.Action,
		ProductID:   req.ProductID,
		SearchQuery: req.SearchQuery,
		DeviceType:  req.DeviceType,
		Source:      req.Source,
		TimeSpent:   req.TimeSpent,
		Metadata:    req.Metadata,
	})
	if err != nil {
		if errors.Is(err, domain.ErrTenantNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: "store not found"})
		}
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated("event recorded"))
}

// POST /api/v1/views
func (h *BehaviorHandler) TrackView(c echo.Context) error {
	var req ProductViewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	err := h.behaviorService.TrackProductView(c.Request().Context(), behavior.ProductViewInput{
		TenantID:     middleware.TenantID(c),
		CustomerID:   req.CustomerID,
		SessionID:    req.SessionID,
		ProductID:    req.ProductID,
		ViewDuration: req.ViewDuration,
		Referrer:     req.Referrer,
	})
	if err != nil {
		if errors.Is(err, domain.ErrTenantNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: "store not found"})
		}
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated("view recorded"))
}
