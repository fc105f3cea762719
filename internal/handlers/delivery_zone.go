package handlers

import (
	"github.com/ggorockee/storefront/internal/database"
	"github.com/ggorockee/storefront/internal/logger"
	"github.com/ggorockee/storefront/internal/services"
	"github.com/gofiber/fiber/v2"
)

type DeliveryZoneHandler struct {
	service *services.DeliveryZoneService
	zones   listing
}

func NewDeliveryZoneHandler(db *database.DB, policy FailurePolicy) *DeliveryZoneHandler {
	return &DeliveryZoneHandler{
		service: services.NewDeliveryZoneService(db),
		zones: listing{
			endpoint: "delivery_zones",
			key:      "zones",
			policy:   policy,
			log:      logger.Named("delivery_zones"),
		},
	}
}

func SetupDeliveryZoneRoutes(router fiber.Router, db *database.DB, policy FailurePolicy) {
	h := NewDeliveryZoneHandler(db, policy)

	router.Get("/", h.List)
}

// List godoc
// @Summary List active delivery zones
// @Description Ordered by city. Store failures answer 200 with an empty list by default.
// @Tags delivery-zones
// @Produce json
// @Success 200 {object} map[string][]models.DeliveryZone
// @Router /api/delivery-zones [get]
func (h *DeliveryZoneHandler) List(c *fiber.Ctx) error {
	zones, err := h.service.ListActive(c.UserContext())
	return h.zones.respond(c, zones, err)
}
