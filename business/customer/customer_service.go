package customer

import (
	"context"
	"errors"
	"fmt"

	"myStoreCloud/domain"
	"myStoreCloud/pkg/logger"

	"gorm.io/gorm"
)

// CustomerRepository contract interface
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	FindByID(ctx context.Context, id uint64) (domain.Customer, error)
	FindByEmail(ctx context.Context, email string) (domain.Customer, error)
}

// TenantResolver maps a tenant identifier to its isolated database
// handle.
type TenantResolver interface {
	Resolve(ctx context.Context, tenantID string) (*gorm.DB, error)
}

// RepositoryFactory builds a tenant-scoped repository from a resolved
// handle.
type RepositoryFactory func(db *gorm.DB) CustomerRepository

type customerService struct {
	tenants TenantResolver
	repos   RepositoryFactory
}

func NewCustomerService(tenants TenantResolver, repos RepositoryFactory) *customerService {
	return &customerService{
		tenants: tenants,
		repos:   repos,
	}
}

func (s *customerService) repoFor(ctx context.Context, tenantID string) (CustomerRepository, error) {
	if tenantID == "" {
		return nil, errors.New("tenant id is required")
	}

	db, err := s.tenants.Resolve(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	return s.repos(db), nil
}

// RegisterCustomer creates the shopper account that orders and behavior
// events reference by customer id. Email is unique per store.
func (s *customerService) RegisterCustomer(ctx context.Context, tenantID string, customer *domain.Customer) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if customer.Email == "" {
		return errors.New("email is required")
	}

	repo, err := s.repoFor(ctx, tenantID)
	if err != nil {
		return err
	}

	existing, err := repo.FindByEmail(ctx, customer.Email)
	if err == nil && existing.ID > 0 {
		logger.Error("customer email already exists", "tenant", tenantID, "email", customer.Email)
		return errors.New("email already registered")
	}

	if err := repo.Create(ctx, customer); err != nil {
		logger.Error("failed to create customer", "tenant", tenantID, "error", err)
		return err
	}

	return nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, tenantID string, id uint64) (domain.Customer, error) {
	if id == 0 {
		return domain.Customer{}, errors.New("invalid customer id")
	}

	if err := ctx.Err(); err != nil {
		return domain.Customer{}, fmt.Errorf("context error: %w", err)
	}

	repo, err := s.repoFor(ctx, tenantID)
	if err != nil {
		return domain.Customer{}, err
	}

	customer, err := repo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to find customer by id", "tenant", tenantID, "customer_id", id, "error", err)
		return domain.Customer{}, err
	}

	return customer, nil
}
