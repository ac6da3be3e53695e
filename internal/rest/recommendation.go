package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"myStoreCloud/business/recommendation"
	"myStoreCloud/domain"
	"myStoreCloud/internal/middleware"
	"myStoreCloud/pkg/logger"
	"myStoreCloud/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	RecommendationHandler struct {
		validate   *validator.Validate
		recService RecommendationService
	}

	RecommendationService interface {
		Generate(ctx context.Context, req recommendation.Request) ([]domain.RecommendationResult, error)
		TrackFeedback(ctx context.Context, in recommendation.FeedbackInput) error
		Analytics(ctx context.Context, tenantID string, days int) ([]domain.RecommendationAnalytics, error)
		UpdatePreferences(ctx context.Context, tenantID string, customerID uint64) error
	}

	RecommendQuery struct {
		Type       string   `query:"type"`
		Limit      int      `query:"limit"`
		CustomerID *uint64  `query:"customer_id"`
		SessionID  string   `query:"session_id" validate:"required"`
		Exclude    []uint64 `query:"exclude"`
	}

	RecFeedbackRequest struct {
		CustomerID *uint64 `json:"customer_id,omitempty"`
		SessionID  string  `json:"session_id" validate:"required"`
		ProductID  uint64  `json:"product_id" validate:"required"`
		Action     string  `json:"action" validate:"required,oneof=shown clicked purchased"`
	}
)

func NewRecommendationHandler(svc RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		validate:   validator.New(),
		recService: svc,
	}
}

// GET /api/v1/recommendations?type=hybrid&limit=10&session_id=abc
func (h *RecommendationHandler) Recommend(c echo.Context) error {
	var q RecommendQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	start := time.Now()

	results, err := h.recService.Generate(c.Request().Context(), recommendation.Request{
		TenantID:          middleware.TenantID(c),
		CustomerID:        q.CustomerID,
		SessionID:         q.SessionID,
		Limit:             q.Limit,
		ExcludeProductIDs: q.Exclude,
		Type:              q.Type,
	})
	if err != nil {
		if errors.Is(err, domain.ErrTenantNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: "store not found"})
		}
		logger.Error("failed to generate recommendations", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	metrics.RecommendationLatency.Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, fres.Response.StatusOK(results))
}

// POST /api/v1/recommendations/feedback
func (h *RecommendationHandler) Feedback(c echo.Context) error {
	var req RecFeedbackRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	err := h.recService.TrackFeedback(c.Request().Context(), recommendation.FeedbackInput{
		TenantID:   middleware.TenantID(c),
		CustomerID: req.CustomerID,
		SessionID:  req.SessionID,
		ProductID:  req.ProductID,
		Action:     req.Action,
	})
	if err != nil {
		if errors.Is(err, domain.ErrTenantNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: "store not found"})
		}
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated("feedback recorded"))
}

// GET /api/v1/recommendations/analytics?days=30
func (h *RecommendationHandler) Analytics(c echo.Context) error {
	days := 0
	if raw := c.QueryParam("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid days parameter"})
		}
		days = parsed
	}

	stats, err := h.recService.Analytics(c.Request().Context(), middleware.TenantID(c), days)
	if err != nil {
		if errors.Is(err, domain.ErrTenantNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: "store not found"})
		}
		logger.Error("failed to aggregate recommendation analytics", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(stats))
}

// POST /api/v1/customers/:id/preferences/refresh
func (h *RecommendationHandler) RefreshPreferences(c echo.Context) error {
	customerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || customerID == 0 {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid customer id"})
	}

	err = h.recService.UpdatePreferences(c.Request().Context(), middleware.TenantID(c), customerID)
	if err != nil {
		if errors.Is(err, domain.ErrTenantNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: "store not found"})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("preferences refreshed"))
}
