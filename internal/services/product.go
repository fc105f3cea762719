package services

import (
	"context"
	"fmt"

	"github.com/ggorockee/storefront/internal/database"
	"github.com/ggorockee/storefront/internal/models"
)

// FeaturedLimit is the number of newest products shown as featured
const FeaturedLimit = 3

type ProductService struct {
	db *database.DB
}

func NewProductService(db *database.DB) *ProductService {
	return &ProductService{db: db}
}

type ProductFilter struct {
	CategoryID string
	Limit      int
}

// Featured returns the newest products with their category attached
func (s *ProductService) Featured(ctx context.Context) ([]models.Product, error) {
	return s.List(ctx, &ProductFilter{Limit: FeaturedLimit})
}

// List returns products newest first, optionally restricted to one category
func (s *ProductService) List(ctx context.Context, filter *ProductFilter) ([]models.Product, error) {
	products := []models.Product{}

	query := s.db.WithContext(ctx).
		Preload("Category").
		Order("created_at DESC")

	if filter != nil {
		if filter.CategoryID != "" {
			query = query.Where("category_id = ?", filter.CategoryID)
		}
		if filter.Limit > 0 {
			query = query.Limit(filter.Limit)
		}
	}

	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}
