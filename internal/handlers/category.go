package handlers

import (
	"github.com/ggorockee/storefront/internal/database"
	"github.com/ggorockee/storefront/internal/logger"
	"github.com/ggorockee/storefront/internal/models"
	"github.com/ggorockee/storefront/internal/services"
	"github.com/ggorockee/storefront/internal/storefront"
	"github.com/gofiber/fiber/v2"
)

// defaultFilterTarget is the page category links point at when the client
// does not say where it is
const defaultFilterTarget = "/api/products"

// CategoryResponse is a category with the link that selects it as filter
type CategoryResponse struct {
	models.Category
	FilterURL string `json:"filter_url"`
}

type CategoryHandler struct {
	service    *services.CategoryService
	categories listing
}

func NewCategoryHandler(db *database.DB, policy FailurePolicy) *CategoryHandler {
	return &CategoryHandler{
		service: services.NewCategoryService(db),
		categories: listing{
			endpoint: "categories",
			key:      "categories",
			policy:   policy,
			log:      logger.Named("categories"),
		},
	}
}

func SetupCategoryRoutes(router fiber.Router, db *database.DB, policy FailurePolicy) {
	h := NewCategoryHandler(db, policy)

	router.Get("/", h.List)
}

// List godoc
// @Summary List categories with filter links
// @Description Each category carries the URL of the current page with the category filter applied.
// @Tags categories
// @Produce json
// @Param url query string false "Current page URL (defaults to /api/products)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Router /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	current := c.Query("url", defaultFilterTarget)

	// "전체" 선택은 필터 제거
	allURL, err := storefront.FilterURL(current, "")
	if err != nil {
		return badRequest(c, "Invalid url")
	}

	categories, err := h.service.List(c.UserContext())
	if err != nil {
		return h.categories.respond(c, nil, err)
	}

	out := make([]CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		link, err := storefront.FilterURL(current, cat.ID)
		if err != nil {
			return badRequest(c, "Invalid url")
		}
		out = append(out, CategoryResponse{Category: cat, FilterURL: link})
	}

	return c.JSON(fiber.Map{
		"categories": out,
		"all_url":    allURL,
	})
}
