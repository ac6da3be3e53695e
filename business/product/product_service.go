package product

import (
	"context"
	"errors"
	"fmt"

	"myStoreCloud/domain"
	"myStoreCloud/pkg/logger"

	"gorm.io/gorm"
)

// ProductRepository contract interface
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uint64) (domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uint64) error
}

// TenantResolver maps a tenant identifier to its isolated database
// handle.
type TenantResolver interface {
	Resolve(ctx context.Context, tenantID string) (*gorm.DB, error)
}

// RepositoryFactory builds a tenant-scoped repository from a resolved
// handle.
type RepositoryFactory func(db *gorm.DB) ProductRepository

type productService struct {
	tenants TenantResolver
	repos   RepositoryFactory
}

func NewProductService(tenants TenantResolver, repos RepositoryFactory) *productService {
	return &productService{
		tenants: tenants,
		repos:   repos,
	}
}

func (s *productService) repoFor(ctx context.Context, tenantID string) (ProductRepository, error) {
	if tenantID == "" {
		return nil, errors.New("tenant id is required")
	}

	db, err := s.tenants.Resolve(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	return s.repos(db), nil
}

func (s *productService) GetAllProducts(ctx context.Context, tenantID string) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	repo, err := s.repoFor(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	products, err := repo.FindAll(ctx)
	if err != nil {
		logger.Error("failed to find all products", "tenant", tenantID, "error", err)
		return nil, err
	}

	return products, nil
}

func (s *productService) GetProductByID(ctx context.Context, tenantID string, id uint64) (domain.Product, error) {
	if id == 0 {
		return domain.Product{}, errors.New("invalid product id")
	}

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("context error: %w", err)
	}

	repo, err := s.repoFor(ctx, tenantID)
	if err != nil {
		return domain.Product{}, err
	}

	product, err := repo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to find product by id", "tenant", tenantID, "product_id", id, "error", err)
		return domain.Product{}, err
	}

	return product, nil
}

func (s *productService) CreateProduct(ctx context.Context, tenantID string, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if product.ProductName == "" {
		return errors.New("product name is required")
	}
	if product.NormalPrice < 0 || product.SalePrice < 0 {
		return errors.New("price cannot be negative")
	}

	repo, err := s.repoFor(ctx, tenantID)
	if err != nil {
		return err
	}

	if err := repo.Create(ctx, product); err != nil {
		logger.Error("failed to create product", "tenant", tenantID, "error", err)
		return err
	}

	return nil
}

func (s *productService) UpdateProduct(ctx context.Context, tenantID string, product *domain.Product) error {
	if product.ID == 0 {
		return errors.New("invalid product id")
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	repo, err := s.repoFor(ctx, tenantID)
	if err != nil {
		return err
	}

	if err := repo.Update(ctx, product); err != nil {
		logger.Error("failed to update product", "tenant", tenantID, "product_id", product.ID, "error", err)
		return err
	}

	return nil
}

func (s *productService) DeleteProduct(ctx context.Context, tenantID string, id uint64) error {
	if id == 0 {
		return errors.New("invalid product id")
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	repo, err := s.repoFor(ctx, tenantID)
	if err != nil {
		return err
	}

	if err := repo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete product", "tenant", tenantID, "product_id", id, "error", err)
		return err
	}

	return nil
}
