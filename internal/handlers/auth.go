package handlers

import (
	"errors"
	"time"

	"github.com/ggorockee/storefront/internal/config"
	"github.com/ggorockee/storefront/internal/database"
	"github.com/ggorockee/storefront/internal/logger"
	"github.com/ggorockee/storefront/internal/middleware"
	"github.com/ggorockee/storefront/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthHandler struct {
	service *services.AuthService
	cfg     *config.Config
	log     *zap.Logger
}

func NewAuthHandler(db *database.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		service: services.NewAuthService(db, cfg),
		cfg:     cfg,
		log:     logger.Named("auth"),
	}
}

func SetupAuthRoutes(router fiber.Router, db *database.DB, cfg *config.Config) {
	h := NewAuthHandler(db, cfg)

	router.Post("/login", h.Login)
	router.Post("/logout", h.Logout)
	router.Get("/session", middleware.RequireSession(), h.Session)
}

// Login godoc
// @Summary Sign in
// @Description Issues a session token and sets it as an HTTP-only cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.LoginRequest true "Login credentials"
// @Success 200 {object} services.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req services.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return badRequest(c, "Email and password are required")
	}

	response, err := h.service.Login(c.UserContext(), &req)
	if errors.Is(err, services.ErrInvalidCredentials) {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: "Invalid credentials"})
	}
	if err != nil {
		h.log.Error("login", zap.Error(err))
		return internalError(c)
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.SessionCookieName,
		Value:    response.Token,
		Path:     "/",
		Expires:  response.ExpiresAt,
		HTTPOnly: true,
		Secure:   !h.cfg.IsDevelopment(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.JSON(response)
}

// Logout godoc
// @Summary Sign out
// @Tags auth
// @Success 204
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   !h.cfg.IsDevelopment(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.SendStatus(fiber.StatusNoContent)
}

// Session godoc
// @Summary Current session
// @Tags auth
// @Produce json
// @Security SessionAuth
// @Success 200 {object} map[string]services.UserResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/auth/session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	session, _ := middleware.SessionFromCtx(c)

	user, err := h.service.GetUser(c.UserContext(), session.UserID)
	if err != nil {
		// 토큰은 유효하지만 사용자가 삭제된 경우
		return unauthorized(c)
	}

	return c.JSON(fiber.Map{"user": user})
}
