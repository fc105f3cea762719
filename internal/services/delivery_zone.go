package services

import (
	"context"
	"fmt"

	"github.com/ggorockee/storefront/internal/database"
	"github.com/ggorockee/storefront/internal/models"
)

type DeliveryZoneService struct {
	db *database.DB
}

func NewDeliveryZoneService(db *database.DB) *DeliveryZoneService {
	return &DeliveryZoneService{db: db}
}

// ListActive retrieves active zones ordered by city
func (s *DeliveryZoneService) ListActive(ctx context.Context) ([]models.DeliveryZone, error) {
	zones := []models.DeliveryZone{}
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("city ASC").
		Find(&zones).Error
	if err != nil {
		return nil, fmt.Errorf("list delivery zones: %w", err)
	}
	return zones, nil
}
