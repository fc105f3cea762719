package handlers

import (
	"github.com/ggorockee/storefront/internal/database"
	"github.com/ggorockee/storefront/internal/logger"
	"github.com/ggorockee/storefront/internal/models"
	"github.com/ggorockee/storefront/internal/services"
	"github.com/ggorockee/storefront/internal/storefront"
	"github.com/gofiber/fiber/v2"
)

// ProductResponse is a product with its image URL resolved for display
type ProductResponse struct {
	models.Product
	ImageURL string `json:"image_url"`
}

type ProductPolicies struct {
	Featured FailurePolicy
	List     FailurePolicy
}

type ProductHandler struct {
	service     *services.ProductService
	fallbackURL string
	featured    listing
	list        listing
}

func NewProductHandler(db *database.DB, fallbackURL string, policies ProductPolicies) *ProductHandler {
	log := logger.Named("products")
	return &ProductHandler{
		service:     services.NewProductService(db),
		fallbackURL: fallbackURL,
		featured:    listing{endpoint: "products_featured", key: "products", policy: policies.Featured, log: log},
		list:        listing{endpoint: "products", key: "products", policy: policies.List, log: log},
	}
}

func SetupProductRoutes(router fiber.Router, db *database.DB, fallbackURL string, policies ProductPolicies) {
	h := NewProductHandler(db, fallbackURL, policies)

	router.Get("/", h.List)
	router.Get("/featured", h.Featured)
}

// Featured godoc
// @Summary Featured products
// @Description The 3 newest products with their category. Store failures answer 200 with an empty list by default.
// @Tags products
// @Produce json
// @Success 200 {object} map[string][]ProductResponse
// @Router /api/products/featured [get]
func (h *ProductHandler) Featured(c *fiber.Ctx) error {
	products, err := h.service.Featured(c.UserContext())
	if err != nil {
		return h.featured.respond(c, nil, err)
	}
	return h.featured.respond(c, h.present(products), nil)
}

// List godoc
// @Summary List products
// @Tags products
// @Produce json
// @Param category query string false "Filter by category id"
// @Success 200 {object} map[string][]ProductResponse
// @Router /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	filter := services.ProductFilter{
		CategoryID: c.Query(storefront.CategoryParam),
	}

	products, err := h.service.List(c.UserContext(), &filter)
	if err != nil {
		return h.list.respond(c, nil, err)
	}
	return h.list.respond(c, h.present(products), nil)
}

func (h *ProductHandler) present(products []models.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ProductResponse{
			Product:  p,
			ImageURL: storefront.ResolveImage(p.ImageURL, h.fallbackURL),
		})
	}
	return out
}
