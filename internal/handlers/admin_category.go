package handlers

import (
	"errors"

	"github.com/ggorockee/storefront/internal/database"
	"github.com/ggorockee/storefront/internal/logger"
	"github.com/ggorockee/storefront/internal/middleware"
	"github.com/ggorockee/storefront/internal/models"
	"github.com/ggorockee/storefront/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AdminCategoryHandler struct {
	service *services.CategoryService
	log     *zap.Logger
}

func NewAdminCategoryHandler(db *database.DB) *AdminCategoryHandler {
	return &AdminCategoryHandler{
		service: services.NewCategoryService(db),
		log:     logger.Named("admin.categories"),
	}
}

// SetupAdminCategoryRoutes mounts the category management routes. Callers
// are expected to have attached LoadSession; the admin role check is applied here.
func SetupAdminCategoryRoutes(router fiber.Router, db *database.DB) {
	h := NewAdminCategoryHandler(db)

	router.Use(middleware.RequireRole(models.RoleAdmin))
	router.Get("/", h.List)
	router.Post("/", h.Create)
	router.Delete("/:id", h.Delete)
}

// List godoc
// @Summary List categories (admin)
// @Tags admin
// @Produce json
// @Security SessionAuth
// @Success 200 {object} map[string][]models.Category
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/admin/categories [get]
func (h *AdminCategoryHandler) List(c *fiber.Ctx) error {
	categories, err := h.service.List(c.UserContext())
	if err != nil {
		h.log.Error("list categories", zap.Error(err))
		return internalError(c)
	}

	return c.JSON(fiber.Map{"categories": categories})
}

// Create godoc
// @Summary Create category
// @Tags admin
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param request body services.CreateCategoryRequest true "Category"
// @Success 201 {object} models.Category
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/admin/categories [post]
func (h *AdminCategoryHandler) Create(c *fiber.Ctx) error {
	var req services.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	category, err := h.service.Create(c.UserContext(), &req)
	if errors.Is(err, services.ErrCategoryNameRequired) {
		return badRequest(c, "Name is required")
	}
	if err != nil {
		h.log.Error("create category", zap.String("name", req.Name), zap.Error(err))
		return internalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(category)
}

// Delete godoc
// @Summary Delete category
// @Description Unknown ids are reported as 500, same as any other store failure.
// @Tags admin
// @Produce json
// @Security SessionAuth
// @Param id path string true "Category ID"
// @Success 200 {object} models.Category
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/admin/categories/{id} [delete]
func (h *AdminCategoryHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")

	// not found도 500으로 응답 (store 에러와 구분하지 않음)
	category, err := h.service.Delete(c.UserContext(), id)
	if err != nil {
		h.log.Error("delete category", zap.String("category_id", id), zap.Error(err))
		return internalError(c)
	}

	return c.JSON(category)
}
