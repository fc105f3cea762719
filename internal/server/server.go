package server

import (
	"fmt"

	_ "github.com/ggorockee/storefront/docs"
	"github.com/ggorockee/storefront/internal/config"
	"github.com/ggorockee/storefront/internal/database"
	"github.com/ggorockee/storefront/internal/handlers"
	"github.com/ggorockee/storefront/internal/middleware"
	"github.com/ggorockee/storefront/internal/telemetry"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
)

const ServiceName = "storefront-api"

type policies struct {
	zones      handlers.FailurePolicy
	featured   handlers.FailurePolicy
	products   handlers.FailurePolicy
	categories handlers.FailurePolicy
}

func loadPolicies(cfg *config.Config) (policies, error) {
	var p policies
	for _, item := range []struct {
		env   string
		value string
		dst   *handlers.FailurePolicy
	}{
		{"DELIVERY_ZONES_FAILURE_POLICY", cfg.DeliveryZonesFailurePolicy, &p.zones},
		{"FEATURED_PRODUCTS_FAILURE_POLICY", cfg.FeaturedProductsFailurePolicy, &p.featured},
		{"PRODUCTS_FAILURE_POLICY", cfg.ProductsFailurePolicy, &p.products},
		{"CATEGORIES_FAILURE_POLICY", cfg.CategoriesFailurePolicy, &p.categories},
	} {
		policy, err := handlers.ParseFailurePolicy(item.value)
		if err != nil {
			return p, fmt.Errorf("%s: %w", item.env, err)
		}
		*item.dst = policy
	}
	return p, nil
}

// New builds the Fiber app with middleware and all routes mounted
func New(db *database.DB, cfg *config.Config) (*fiber.App, error) {
	p, err := loadPolicies(cfg)
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		AppName:      "Storefront API",
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format:     `{"time":"${time}","request_id":"${locals:requestid}","status":${status},"latency":"${latency}","ip":"${ip}","method":"${method}","path":"${path}","error":"${error}"}` + "\n",
		TimeFormat: "2006-01-02T15:04:05Z07:00",
		TimeZone:   "UTC",
	}))
	app.Use(telemetry.New(telemetry.Config{
		ServiceName: ServiceName,
		Skip: func(c *fiber.Ctx) bool {
			return c.Path() == "/healthz" || c.Path() == "/metrics"
		},
	}))
	if cfg.MetricsEnabled {
		app.Use(middleware.Prometheus())
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET, POST, DELETE, OPTIONS",
		AllowHeaders:     "Accept, Authorization, Content-Type, Origin, X-Requested-With",
		AllowCredentials: false, // AllowOrigins가 "*"일 때는 false여야 함
		ExposeHeaders:    "Content-Length, Content-Type, X-Request-ID",
		MaxAge:           86400,
	}))
	app.Use(middleware.LoadSession(cfg))

	setupRoutes(app, db, cfg, p)
	return app, nil
}

func setupRoutes(app *fiber.App, db *database.DB, cfg *config.Config, p policies) {
	// Health check endpoints for k8s probes
	app.Get("/healthz", handlers.HealthCheck)
	app.Get("/api/health", handlers.HealthCheck)
	app.Get("/api/readiness", handlers.ReadinessCheck(db))

	if cfg.MetricsEnabled {
		app.Get("/metrics", middleware.PrometheusHandler())
	}

	// Swagger UI
	app.Get("/api/docs/*", swagger.HandlerDefault)

	api := app.Group("/api")

	handlers.SetupAuthRoutes(api.Group("/auth"), db, cfg)

	// Admin routes (ADMIN role required)
	handlers.SetupAdminCategoryRoutes(api.Group("/admin/categories"), db)

	// Public routes
	handlers.SetupDeliveryZoneRoutes(api.Group("/delivery-zones"), db, p.zones)
	handlers.SetupCategoryRoutes(api.Group("/categories"), db, p.categories)
	handlers.SetupProductRoutes(api.Group("/products"), db, cfg.DefaultImageURL, handlers.ProductPolicies{
		Featured: p.featured,
		List:     p.products,
	})
}
