package category

import (
	"context"
	"errors"
	"fmt"

	"myStoreCloud/domain"
	"myStoreCloud/pkg/logger"

	"gorm.io/gorm"
)

// CategoryRepository contract interface
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	FindByID(ctx context.Context, id uint64) (domain.Category, error)
	FindAll(ctx context.Context) ([]domain.Category, error)
	Delete(ctx context.Context, id uint64) error
	ReplaceProductCategories(ctx context.Context, productID uint64, categoryIDs []uint64) error
}

// TenantResolver maps a tenant identifier to its isolated database
// handle.
type TenantResolver interface {
	Resolve(ctx context.Context, tenantID string) (*gorm.DB, error)
}

// RepositoryFactory builds a tenant-scoped repository from a resolved
// handle.
type RepositoryFactory func(db *gorm.DB) CategoryRepository

type categoryService struct {
	tenants TenantResolver
	repos   RepositoryFactory
}

func NewCategoryService(tenants TenantResolver, repos RepositoryFactory) *categoryService {
	return &categoryService{
		tenants: tenants,
		repos:   repos,
	}
}

func (s *categoryService) repoFor(ctx context.Context, tenantID string) (CategoryRepository, error) {
	if tenantID == "" {
		return nil, errors.New("tenant id is required")
	}

	db, err := s.tenants.Resolve(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	return s.repos(db), nil
}

func (s *categoryService) CreateCategory(ctx context.Context, tenantID string, category *domain.Category) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if category.CategoryName == "" {
		return errors.New("category name is required")
	}

	repo, err := s.repoFor(ctx, tenantID)
	if err != nil {
		return err
	}

	if err := repo.Create(ctx, category); err != nil {
		logger.Error("failed to create category", "tenant", tenantID, "error", err)
		return err
	}

	return nil
}

func (s *categoryService) GetAllCategories(ctx context.Context, tenantID string) ([]domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	repo, err := s.repoFor(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	return repo.FindAll(ctx)
}

func (s *categoryService) DeleteCategory(ctx context.Context, tenantID string, id uint64) error {
	if id == 0 {
		return errors.New("invalid category id")
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	repo, err := s.repoFor(ctx, tenantID)
	if err != nil {
		return err
	}

	if err := repo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete category", "tenant", tenantID, "category_id", id, "error", err)
		return err
	}

	return nil
}

// AssignProductCategories rewrites the category set of a product. The
// content-based strategy reads these mappings, so category hygiene
// directly shapes recommendation quality.
func (s *categoryService) AssignProductCategories(ctx context.Context, tenantID string, productID uint64, categoryIDs []uint64) error {
	if productID == 0 {
		return errors.New("invalid product id")
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	repo, err := s.repoFor(ctx, tenantID)
	if err != nil {
		return err
	}

	if err := repo.ReplaceProductCategories(ctx, productID, categoryIDs); err != nil {
		logger.Error("failed to assign product categories", "tenant", tenantID, "product_id", productID, "error", err)
		return err
	}

	return nil
}
