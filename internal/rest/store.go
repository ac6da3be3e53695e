package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"myStoreCloud/business/store"
	"myStoreCloud/domain"
	"myStoreCloud/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	StoreHandler struct {
		validate     *validator.Validate
		storeService StoreService
		timeout      time.Duration
	}

	StoreService interface {
		CreateStore(ctx context.Context, in store.CreateStoreInput) (domain.Store, error)
		GetStore(ctx context.Context, id uint64) (domain.Store, error)
		GetStoresByOwner(ctx context.Context, ownerID uint) ([]domain.Store, error)
		SetActive(ctx context.Context, id uint64, ownerID uint, active bool) (domain.Store, error)
		UpdateStore(ctx context.Context, id uint64, ownerID uint, storeName string) (domain.Store, error)
		DeleteStore(ctx context.Context, id uint64, ownerID uint) error
	}

	CreateStoreRequest struct {
		StoreName string `json:"store_name" validate:"required"`
		Subdomain string `json:"subdomain" validate:"required"`
	}

	UpdateStoreRequest struct {
		StoreName string `json:"store_name,omitempty"`
		IsActive  *bool  `json:"is_active,omitempty"`
	}
)

func NewStoreHandler(svc StoreService) *StoreHandler {
	return &StoreHandler{
		validate:     validator.New(),
		storeService: svc,
		timeout:      30 * time.Second,
	}
}

// POST /api/v1/stores
func (h *StoreHandler) Create(c echo.Context) error {
	ownerID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req CreateStoreRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	// provisioning creates a database, give it room
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	newStore, err := h.storeService.CreateStore(ctx, store.CreateStoreInput{
		OwnerID:   ownerID,
		StoreName: req.StoreName,
		Subdomain: req.Subdomain,
	})
	if err != nil {
		logger.Error("failed to create store", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(newStore))
}

// GET /api/v1/stores
func (h *StoreHandler) ListMine(c echo.Context) error {
	ownerID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	stores, err := h.storeService.GetStoresByOwner(c.Request().Context(), ownerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(stores))
}

// PUT /api/v1/stores/:id
func (h *StoreHandler) Update(c echo.Context) error {
	ownerID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	storeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || storeID == 0 {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid store id"})
	}

	var req UpdateStoreRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx := c.Request().Context()

	updated, err := h.storeService.UpdateStore(ctx, storeID, ownerID, req.StoreName)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if req.IsActive != nil {
		updated, err = h.storeService.SetActive(ctx, storeID, ownerID, *req.IsActive)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(updated))
}

// DELETE /api/v1/stores/:id
func (h *StoreHandler) Delete(c echo.Context) error {
	ownerID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	storeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || storeID == 0 {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid store id"})
	}

	if err := h.storeService.DeleteStore(c.Request().Context(), storeID, ownerID); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Store deleted successfully"))
}
