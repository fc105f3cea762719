package telemetry

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDisabledWithoutEndpoint(t *testing.T) {
	ctx := context.Background()

	shutdownTracer, err := InitTracer(ctx, "storefront-test", "")
	require.NoError(t, err)
	require.NoError(t, shutdownTracer(ctx))

	shutdownMeter, err := InitMeter(ctx, "storefront-test", "")
	require.NoError(t, err)
	require.NoError(t, shutdownMeter(ctx))
}

func TestMiddlewarePassesThrough(t *testing.T) {
	app := fiber.New()
	app.Use(New())

	var spanSeen bool
	app.Get("/ping", func(c *fiber.Ctx) error {
		spanSeen = SpanFromContext(c) != nil
		return c.SendString("pong")
	})
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, spanSeen)

	resp, err = app.Test(httptest.NewRequest("GET", "/healthz", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
