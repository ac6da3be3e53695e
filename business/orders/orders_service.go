package orders

import (
	"context"
	"errors"
	"fmt"

	"myStoreCloud/business/behavior"
	"myStoreCloud/business/product"
	"myStoreCloud/domain"
	"myStoreCloud/pkg/logger"

	"gorm.io/gorm"
)

type OrdersRepository interface {
	Create(ctx context.Context, order *domain.Orders) error
	FindByID(ctx context.Context, id uint64) (domain.Orders, error)
	FindByCustomer(ctx context.Context, customerID uint64) ([]domain.Orders, error)
	UpdateStatus(ctx context.Context, id uint64, status string) error
}

// Repositories bundles the per-tenant data access of one order flow.
type Repositories struct {
	Orders   OrdersRepository
	Products product.ProductRepository
}

// TenantResolver maps a tenant identifier to its isolated database
// handle.
type TenantResolver interface {
	Resolve(ctx context.Context, tenantID string) (*gorm.DB, error)
}

// RepositoryFactory builds tenant-scoped repositories from a resolved
// handle.
type RepositoryFactory func(db *gorm.DB) Repositories

// PurchaseTracker feeds completed purchases into the behavior log so
// the collaborative strategy learns from them.
type PurchaseTracker interface {
	TrackBehavior(ctx context.Context, in behavior.BehaviorInput) error
}

type OrdersService struct {
	tenants TenantResolver
	repos   RepositoryFactory
	tracker PurchaseTracker
}

func NewOrdersService(tenants TenantResolver, repos RepositoryFactory, tracker PurchaseTracker) *OrdersService {
	return &OrdersService{
		tenants: tenants,
		repos:   repos,
		tracker: tracker,
	}
}

const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusShipped   = "shipped"
	StatusCancelled = "cancelled"
)

var validStatuses = map[string]bool{
	StatusPending:   true,
	StatusPaid:      true,
	StatusShipped:   true,
	StatusCancelled: true,
}

type CreateOrderInput struct {
	TenantID      string
	CustomerID    uint64
	SessionID     string
	ProductID     uint64
	Quantity      int
	PaymentMethod string
}

func (s *OrdersService) reposFor(ctx context.Context, tenantID string) (Repositories, error) {
	if tenantID == "" {
		return Repositories{}, errors.New("tenant id is required")
	}

	db, err := s.tenants.Resolve(ctx, tenantID)
	if err != nil {
		return Repositories{}, err
	}

	return s.repos(db), nil
}

// CreateOrder prices the order from the current catalog and appends a
// purchase event to the behavior log. The event write is best effort.
func (s *OrdersService) CreateOrder(ctx context.Context, in CreateOrderInput) (domain.Orders, error) {
	if err := ctx.Err(); err != nil {
		return domain.Orders{}, fmt.Errorf("context error: %w", err)
	}

	if in.CustomerID == 0 {
		return domain.Orders{}, errors.New("customer id is required")
	}
	if in.SessionID == "" {
		return domain.Orders{}, errors.New("session id is required")
	}
	if in.ProductID == 0 {
		return domain.Orders{}, errors.New("product id is required")
	}
	if in.Quantity <= 0 {
		return domain.Orders{}, errors.New("quantity must be positive")
	}

	repos, err := s.reposFor(ctx, in.TenantID)
	if err != nil {
		return domain.Orders{}, err
	}

	prod, err := repos.Products.FindByID(ctx, in.ProductID)
	if err != nil {
		return domain.Orders{}, err
	}

	priceEach := prod.NormalPrice
	if prod.SalePrice > 0 && prod.SalePrice < prod.NormalPrice {
		priceEach = prod.SalePrice
	}

	order := domain.Orders{
		CustomerID:    in.CustomerID,
		ProductID:     in.ProductID,
		Quantity:      in.Quantity,
		PriceEach:     priceEach,
		Subtotal:      priceEach * float64(in.Quantity),
		OrderStatus:   StatusPending,
		PaymentMethod: in.PaymentMethod,
	}

	if err := repos.Orders.Create(ctx, &order); err != nil {
		logger.Error("failed to create order", "tenant", in.TenantID, "error", err)
		return domain.Orders{}, err
	}

	if s.tracker != nil {
		customerID := in.CustomerID
		productID := in.ProductID
		err := s.tracker.TrackBehavior(ctx, behavior.BehaviorInput{
			TenantID:   in.TenantID,
			CustomerID: &customerID,
			SessionID:  in.SessionID,
			Action:     domain.ActionPurchase,
			ProductID:  &productID,
			Source:     "checkout",
		})
		if err != nil {
			logger.Warn("failed to track purchase event", "tenant", in.TenantID, "order_id", order.ID, "error", err)
		}
	}

	return order, nil
}

func (s *OrdersService) GetOrder(ctx context.Context, tenantID string, id uint64) (domain.Orders, error) {
	repos, err := s.reposFor(ctx, tenantID)
	if err != nil {
		return domain.Orders{}, err
	}

	return repos.Orders.FindByID(ctx, id)
}

func (s *OrdersService) GetOrdersByCustomer(ctx context.Context, tenantID string, customerID uint64) ([]domain.Orders, error) {
	if customerID == 0 {
		return nil, errors.New("customer id is required")
	}

	repos, err := s.reposFor(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	return repos.Orders.FindByCustomer(ctx, customerID)
}

func (s *OrdersService) UpdateOrderStatus(ctx context.Context, tenantID string, id uint64, status string) error {
	if !validStatuses[status] {
		return fmt.Errorf("invalid order status %q", status)
	}

	repos, err := s.reposFor(ctx, tenantID)
	if err != nil {
		return err
	}

	if err := repos.Orders.UpdateStatus(ctx, id, status); err != nil {
		logger.Error("failed to update order status", "tenant", tenantID, "order_id", id, "error", err)
		return err
	}

	return nil
}
