package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ggorockee/storefront/internal/database"
	"github.com/ggorockee/storefront/internal/models"
	"gorm.io/gorm"
)

var ErrCategoryNameRequired = errors.New("category name is required")

type CategoryService struct {
	db *database.DB
}

func NewCategoryService(db *database.DB) *CategoryService {
	return &CategoryService{db: db}
}

type CreateCategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// List retrieves all categories ordered by name
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// Create stores a new category. The name must be non-empty.
func (s *CategoryService) Create(ctx context.Context, req *CreateCategoryRequest) (*models.Category, error) {
	if req == nil || req.Name == "" {
		return nil, ErrCategoryNameRequired
	}

	category := models.Category{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.db.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &category, nil
}

// Delete removes the category with the given id and returns the removed record.
// An unknown id yields an error wrapping gorm.ErrRecordNotFound.
func (s *CategoryService) Delete(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&category).Error; err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
	if err != nil {
		return nil, fmt.Errorf("delete category %s: %w", id, err)
	}
	return &category, nil
}
