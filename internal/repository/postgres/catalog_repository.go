package postgres

import (
	"context"
	"fmt"

	"myStoreCloud/domain"

	"gorm.io/gorm"
)

// CatalogRepository reads the category structure of one tenant's
// catalog.
type CatalogRepository struct {
	DB *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{
		DB: db,
	}
}

func (r *CatalogRepository) CategoriesForProducts(ctx context.Context, productIDs []uint64) ([]domain.ProductCategoryMapping, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if len(productIDs) == 0 {
		return []domain.ProductCategoryMapping{}, nil
	}

	var mappings []domain.ProductCategoryMapping
	err := r.DB.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Find(&mappings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load product categories: %w", err)
	}

	return mappings, nil
}

func (r *CatalogRepository) ProductsInCategories(ctx context.Context, categoryIDs []uint64) ([]domain.ProductCategoryMapping, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if len(categoryIDs) == 0 {
		return []domain.ProductCategoryMapping{}, nil
	}

	var mappings []domain.ProductCategoryMapping
	err := r.DB.WithContext(ctx).
		Where("category_id IN ?", categoryIDs).
		Find(&mappings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load category products: %w", err)
	}

	return mappings, nil
}

func (r *CatalogRepository) CategoriesByID(ctx context.Context, categoryIDs []uint64) ([]domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if len(categoryIDs) == 0 {
		return []domain.Category{}, nil
	}

	var categories []domain.Category
	err := r.DB.WithContext(ctx).
		Where("category_id IN ?", categoryIDs).
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	return categories, nil
}
