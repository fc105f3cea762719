package middleware

import (
	"strings"

	"github.com/ggorockee/storefront/internal/config"
	"github.com/ggorockee/storefront/internal/models"
	"github.com/ggorockee/storefront/pkg/auth"
	"github.com/gofiber/fiber/v2"
)

const sessionKey = "session"

// Session is the authenticated caller attached to a request
type Session struct {
	UserID string
	Email  string
	Role   models.Role
}

// Can reports whether the session holds the given role
func (s *Session) Can(role models.Role) bool {
	return s != nil && s.Role == role
}

// SessionFromCtx returns the session stored by LoadSession, if any
func SessionFromCtx(c *fiber.Ctx) (*Session, bool) {
	s, ok := c.Locals(sessionKey).(*Session)
	return s, ok && s != nil
}

// LoadSession attaches the session found in the session cookie or, when the
// cookie is missing or invalid, a Bearer header. Requests without a valid
// session continue anonymously.
func LoadSession(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 쿠키가 만료/손상된 경우 Bearer 헤더로 재시도
		for _, token := range []string{c.Cookies(cfg.SessionCookieName), bearerToken(c)} {
			if s := sessionFromToken(token, cfg.SessionSecretKey); s != nil {
				c.Locals(sessionKey, s)
				break
			}
		}
		return c.Next()
	}
}

func sessionFromToken(token, secret string) *Session {
	if token == "" {
		return nil
	}
	claims, err := auth.ValidateSessionToken(token, secret)
	if err != nil {
		return nil
	}
	role := models.Role(claims.Role)
	if !role.Valid() {
		return nil
	}
	return &Session{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   role,
	}
}

// RequireSession rejects anonymous requests with 401
func RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := SessionFromCtx(c); !ok {
			return unauthorized(c)
		}
		return c.Next()
	}
}

// RequireRole rejects requests whose session does not carry role with 401.
// The handler chain stops here, so no data access happens.
func RequireRole(role models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, ok := SessionFromCtx(c)
		if !ok || !s.Can(role) {
			return unauthorized(c)
		}
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Unauthorized",
	})
}

func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
