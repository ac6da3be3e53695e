package behavior

import (
	"context"
	"errors"
	"fmt"

	"myStoreCloud/domain"
	"myStoreCloud/pkg/logger"
	"myStoreCloud/pkg/metrics"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BehaviorRepository contract interface
type BehaviorRepository interface {
	SaveEvent(ctx context.Context, event *domain.BehaviorEvent) error
	SaveView(ctx context.Context, view *domain.ProductView) error
}

// TenantResolver maps a tenant identifier to its isolated database
// handle.
type TenantResolver interface {
	Resolve(ctx context.Context, tenantID string) (*gorm.DB, error)
}

// RepositoryFactory builds a tenant-scoped repository from a resolved
// handle.
type RepositoryFactory func(db *gorm.DB) BehaviorRepository

type Service struct {
	tenants TenantResolver
	repos   RepositoryFactory
}

func NewService(tenants TenantResolver, repos RepositoryFactory) *Service {
	return &Service{
		tenants: tenants,
		repos:   repos,
	}
}

var validActions = map[string]bool{
	domain.ActionView:           true,
	domain.ActionAddToCart:      true,
	domain.ActionRemoveFromCart: true,
	domain.ActionPurchase:       true,
	domain.ActionSearch:         true,
}

type BehaviorInput struct {
	TenantID    string
	CustomerID  *uint64
	SessionID   string
	Action      string
	ProductID   *uint64
	SearchQuery string
	DeviceType  string
	Source      string
	TimeSpent   int
	Metadata    map[string]any
}

type ProductViewInput struct {
	TenantID     string
	CustomerID   *uint64
	SessionID    string
	ProductID    uint64
	ViewDuration int
	Referrer     string
}

// TrackBehavior appends one event to the behavior log. Validation and
// tenant resolution surface to the caller; a storage failure does not.
// Tracking is best effort and must never break the user flow it rides
// on, so write errors are logged and swallowed.
func (s *Service) TrackBehavior(ctx context.Context, in BehaviorInput) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if in.TenantID == "" {
		return errors.New("tenant id is required")
	}
	if in.SessionID == "" {
		return errors.New("session id is required")
	}
	if !validActions[in.Action] {
		return fmt.Errorf("invalid action %q", in.Action)
	}

	db, err := s.tenants.Resolve(ctx, in.TenantID)
	if err != nil {
		return err
	}

	event := domain.BehaviorEvent{
		CustomerID:  in.CustomerID,
		SessionID:   in.SessionID,
		Action:      in.Action,
		ProductID:   in.ProductID,
		SearchQuery: in.SearchQuery,
		DeviceType:  in.DeviceType,
		Source:      in.Source,
		TimeSpent:   in.TimeSpent,
	}
	if in.Metadata != nil {
		event.Metadata = datatypes.JSONMap(in.Metadata)
	}

	if err := s.repos(db).SaveEvent(ctx, &event); err != nil {
		logger.Error("failed to save behavior event",
			"tenant", in.TenantID,
			"session_id", in.SessionID,
			"action", in.Action,
			"error", err,
		)
		return nil
	}

	metrics.BehaviorEventsTotal.WithLabelValues(in.Action).Inc()

	return nil
}

// TrackProductView writes the product view row and then the paired view
// behavior event carrying the duration as time spent. Same best-effort
// policy as TrackBehavior.
func (s *Service) TrackProductView(ctx context.Context, in ProductViewInput) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if in.TenantID == "" {
		return errors.New("tenant id is required")
	}
	if in.SessionID == "" {
		return errors.New("session id is required")
	}
	if in.ProductID == 0 {
		return errors.New("product id is required")
	}

	db, err := s.tenants.Resolve(ctx, in.TenantID)
	if err != nil {
		return err
	}

	view := domain.ProductView{
		CustomerID:   in.CustomerID,
		SessionID:    in.SessionID,
		ProductID:    in.ProductID,
		ViewDuration: in.ViewDuration,
		Referrer:     in.Referrer,
	}

	if err := s.repos(db).SaveView(ctx, &view); err != nil {
		logger.Error("failed to save product view",
			"tenant", in.TenantID,
			"session_id", in.SessionID,
			"product_id", in.ProductID,
			"error", err,
		)
	}

	productID := in.ProductID

	return s.TrackBehavior(ctx, BehaviorInput{
		TenantID:   in.TenantID,
		CustomerID: in.CustomerID,
		SessionID:  in.SessionID,
		Action:     domain.ActionView,
		ProductID:  &productID,
		TimeSpent:  in.ViewDuration,
	})
}
