package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ggorockee/storefront/internal/config"
	"github.com/ggorockee/storefront/internal/database"
	"github.com/ggorockee/storefront/internal/middleware"
	"github.com/ggorockee/storefront/internal/models"
	"github.com/ggorockee/storefront/internal/testutil"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db  *database.DB
	cfg *config.Config
	app *fiber.App
}

func newEnv(t *testing.T, name string, zones, featured FailurePolicy) *testEnv {
	t.Helper()
	db := testutil.OpenDB(t, name)
	cfg := testutil.Config(name)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(middleware.LoadSession(cfg))
	api := app.Group("/api")
	SetupAuthRoutes(api.Group("/auth"), db, cfg)
	SetupAdminCategoryRoutes(api.Group("/admin/categories"), db)
	SetupDeliveryZoneRoutes(api.Group("/delivery-zones"), db, zones)
	SetupCategoryRoutes(api.Group("/categories"), db, DegradeToEmpty)
	SetupProductRoutes(api.Group("/products"), db, cfg.DefaultImageURL, ProductPolicies{Featured: featured, List: DegradeToEmpty})
	app.Get("/api/readiness", ReadinessCheck(db))

	return &testEnv{db: db, cfg: cfg, app: app}
}

func (e *testEnv) do(t *testing.T, method, path, body, token string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: e.cfg.SessionCookieName, Value: token})
	}
	resp, err := e.app.Test(req)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func (e *testEnv) categoryCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(&models.Category{}).Count(&n).Error)
	return n
}

func strPtr(s string) *string { return &s }

func TestAdminCategoriesRejectNonAdmins(t *testing.T) {
	env := newEnv(t, "h_admin_reject", DegradeToEmpty, DegradeToEmpty)
	existing := testutil.CreateCategory(t, env.db, "Existing", nil)
	customer := testutil.CreateUser(t, env.db, "c@shop.test", models.RoleCustomer)

	for _, token := range []string{"", testutil.SessionToken(t, customer), "not-a-token"} {
		resp := env.do(t, http.MethodGet, "/api/admin/categories", "", token)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		resp = env.do(t, http.MethodPost, "/api/admin/categories", `{"name":"Sneaky"}`, token)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		var errBody ErrorResponse
		decode(t, resp, &errBody)
		assert.Equal(t, "Unauthorized", errBody.Error)

		resp = env.do(t, http.MethodDelete, "/api/admin/categories/"+existing.ID, "", token)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}

	assert.Equal(t, int64(1), env.categoryCount(t), "no mutation without admin session")
}

func TestAdminCategoryList(t *testing.T) {
	env := newEnv(t, "h_admin_list", DegradeToEmpty, DegradeToEmpty)
	admin := testutil.CreateUser(t, env.db, "a@shop.test", models.RoleAdmin)
	testutil.CreateCategory(t, env.db, "Snacks", nil)
	testutil.CreateCategory(t, env.db, "Bakery", strPtr("Bread"))

	resp := env.do(t, http.MethodGet, "/api/admin/categories", "", testutil.SessionToken(t, admin))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Categories []models.Category `json:"categories"`
	}
	decode(t, resp, &body)
	require.Len(t, body.Categories, 2)
	assert.Equal(t, "Bakery", body.Categories[0].Name)
	assert.Equal(t, "Snacks", body.Categories[1].Name)
}

func TestAdminCategoryCreate(t *testing.T) {
	env := newEnv(t, "h_admin_create", DegradeToEmpty, DegradeToEmpty)
	admin := testutil.CreateUser(t, env.db, "a@shop.test", models.RoleAdmin)
	token := testutil.SessionToken(t, admin)

	resp := env.do(t, http.MethodPost, "/api/admin/categories", `{"name":"Snacks","description":"Salty snacks"}`, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Category
	decode(t, resp, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Snacks", created.Name)
	require.NotNil(t, created.Description)
	assert.Equal(t, "Salty snacks", *created.Description)

	resp = env.do(t, http.MethodPost, "/api/admin/categories", `{"name":"Plain"}`, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var plain models.Category
	decode(t, resp, &plain)
	assert.Nil(t, plain.Description)

	assert.Equal(t, int64(2), env.categoryCount(t))
}

func TestAdminCategoryCreateRequiresName(t *testing.T) {
	env := newEnv(t, "h_admin_create_400", DegradeToEmpty, DegradeToEmpty)
	admin := testutil.CreateUser(t, env.db, "a@shop.test", models.RoleAdmin)
	token := testutil.SessionToken(t, admin)

	for _, body := range []string{`{}`, `{"name":""}`, `{"description":"only"}`} {
		resp := env.do(t, http.MethodPost, "/api/admin/categories", body, token)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
		var errBody ErrorResponse
		decode(t, resp, &errBody)
		assert.Equal(t, "Name is required", errBody.Error)
	}

	resp := env.do(t, http.MethodPost, "/api/admin/categories", `{"name":`, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	assert.Equal(t, int64(0), env.categoryCount(t))
}

func TestAdminCategoryDelete(t *testing.T) {
	env := newEnv(t, "h_admin_delete", DegradeToEmpty, DegradeToEmpty)
	admin := testutil.CreateUser(t, env.db, "a@shop.test", models.RoleAdmin)
	token := testutil.SessionToken(t, admin)
	keep := testutil.CreateCategory(t, env.db, "Keep", nil)
	drop := testutil.CreateCategory(t, env.db, "Drop", strPtr("bye"))

	resp := env.do(t, http.MethodDelete, "/api/admin/categories/"+drop.ID, "", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var deleted models.Category
	decode(t, resp, &deleted)
	assert.Equal(t, drop.ID, deleted.ID)
	assert.Equal(t, "Drop", deleted.Name)
	assert.Equal(t, "bye", *deleted.Description)

	var ids []string
	require.NoError(t, env.db.Model(&models.Category{}).Pluck("id", &ids).Error)
	assert.Equal(t, []string{keep.ID}, ids)
}

func TestAdminCategoryDeleteUnknownIsServerError(t *testing.T) {
	env := newEnv(t, "h_admin_delete_404", DegradeToEmpty, DegradeToEmpty)
	admin := testutil.CreateUser(t, env.db, "a@shop.test", models.RoleAdmin)
	testutil.CreateCategory(t, env.db, "Keep", nil)

	resp := env.do(t, http.MethodDelete, "/api/admin/categories/missing", "", testutil.SessionToken(t, admin))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var errBody ErrorResponse
	decode(t, resp, &errBody)
	assert.Equal(t, "Internal Server Error", errBody.Error)
	assert.Equal(t, int64(1), env.categoryCount(t))
}

func TestAdminCategoryStoreFailure(t *testing.T) {
	env := newEnv(t, "h_admin_broken", DegradeToEmpty, DegradeToEmpty)
	admin := testutil.CreateUser(t, env.db, "a@shop.test", models.RoleAdmin)
	token := testutil.SessionToken(t, admin)
	testutil.Break(t, env.db)

	resp := env.do(t, http.MethodGet, "/api/admin/categories", "", token)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/admin/categories", `{"name":"Snacks"}`, token)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestDeliveryZones(t *testing.T) {
	env := newEnv(t, "h_zones", DegradeToEmpty, DegradeToEmpty)

	resp := env.do(t, http.MethodGet, "/api/delivery-zones", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"zones":[]}`, string(raw))

	zones := []models.DeliveryZone{
		{City: "Seoul", IsActive: true},
		{City: "Busan", IsActive: true},
		{City: "Closed", IsActive: false},
	}
	require.NoError(t, env.db.Create(&zones).Error)

	resp = env.do(t, http.MethodGet, "/api/delivery-zones", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Zones []models.DeliveryZone `json:"zones"`
	}
	decode(t, resp, &body)
	require.Len(t, body.Zones, 2)
	assert.Equal(t, "Busan", body.Zones[0].City)
	assert.Equal(t, "Seoul", body.Zones[1].City)
}

func TestDeliveryZonesDegradeOnStoreFailure(t *testing.T) {
	env := newEnv(t, "h_zones_broken", DegradeToEmpty, DegradeToEmpty)
	testutil.Break(t, env.db)

	resp := env.do(t, http.MethodGet, "/api/delivery-zones", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"zones":[]}`, string(raw))
}

func TestDeliveryZonesPropagatePolicy(t *testing.T) {
	env := newEnv(t, "h_zones_propagate", PropagateError, PropagateError)
	testutil.Break(t, env.db)

	resp := env.do(t, http.MethodGet, "/api/delivery-zones", "", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/products/featured", "", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestFeaturedProducts(t *testing.T) {
	env := newEnv(t, "h_featured", DegradeToEmpty, DegradeToEmpty)
	snacks := testutil.CreateCategory(t, env.db, "Snacks", nil)

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"oldest", "older", "middle", "newer", "newest"} {
		testutil.CreateProduct(t, env.db, name, snacks.ID, base.Add(time.Duration(i)*time.Minute))
	}

	resp := env.do(t, http.MethodGet, "/api/products/featured", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Products []ProductResponse `json:"products"`
	}
	decode(t, resp, &body)
	require.Len(t, body.Products, 3)
	assert.Equal(t, "newest", body.Products[0].Name)
	assert.Equal(t, "newer", body.Products[1].Name)
	assert.Equal(t, "middle", body.Products[2].Name)
	for _, p := range body.Products {
		require.NotNil(t, p.Category)
		assert.Equal(t, snacks.ID, p.Category.ID)
		assert.Equal(t, "/image.jpg", p.ImageURL)
	}
}

func TestFeaturedProductsDegradeOnStoreFailure(t *testing.T) {
	env := newEnv(t, "h_featured_broken", DegradeToEmpty, DegradeToEmpty)
	testutil.Break(t, env.db)

	resp := env.do(t, http.MethodGet, "/api/products/featured", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"products":[]}`, string(raw))
}

func TestProductListFilterAndImages(t *testing.T) {
	env := newEnv(t, "h_products", DegradeToEmpty, DegradeToEmpty)
	snacks := testutil.CreateCategory(t, env.db, "Snacks", nil)
	drinks := testutil.CreateCategory(t, env.db, "Drinks", nil)

	now := time.Now()
	chips := testutil.CreateProduct(t, env.db, "chips", snacks.ID, now.Add(-time.Minute))
	require.NoError(t, env.db.Model(chips).Update("image_url", " /img/chips.png ").Error)
	cola := testutil.CreateProduct(t, env.db, "cola", drinks.ID, now)
	require.NoError(t, env.db.Model(cola).Update("image_url", "not a url").Error)

	resp := env.do(t, http.MethodGet, "/api/products?category="+snacks.ID, "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Products []ProductResponse `json:"products"`
	}
	decode(t, resp, &body)
	require.Len(t, body.Products, 1)
	assert.Equal(t, "chips", body.Products[0].Name)
	assert.Equal(t, "/img/chips.png", body.Products[0].ImageURL)

	resp = env.do(t, http.MethodGet, "/api/products", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body.Products = nil
	decode(t, resp, &body)
	require.Len(t, body.Products, 2)
	assert.Equal(t, "cola", body.Products[0].Name)
	assert.Equal(t, "/image.jpg", body.Products[0].ImageURL)
}

func TestPublicCategoriesCarryFilterLinks(t *testing.T) {
	env := newEnv(t, "h_public_categories", DegradeToEmpty, DegradeToEmpty)
	snacks := testutil.CreateCategory(t, env.db, "Snacks", nil)

	resp := env.do(t, http.MethodGet, "/api/categories?url=%2Fshop%3Fpage%3D2%26category%3Dold", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Categories []CategoryResponse `json:"categories"`
		AllURL     string             `json:"all_url"`
	}
	decode(t, resp, &body)
	require.Len(t, body.Categories, 1)
	assert.Equal(t, "/shop?category="+snacks.ID+"&page=2", body.Categories[0].FilterURL)
	assert.Equal(t, "/shop?page=2", body.AllURL)

	resp = env.do(t, http.MethodGet, "/api/categories", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &body)
	assert.Equal(t, "/api/products?category="+snacks.ID, body.Categories[0].FilterURL)
	assert.Equal(t, "/api/products", body.AllURL)
}

func TestAuthFlow(t *testing.T) {
	env := newEnv(t, "h_auth", DegradeToEmpty, DegradeToEmpty)
	testutil.CreateUser(t, env.db, "admin@shop.test", models.RoleAdmin)

	resp := env.do(t, http.MethodPost, "/api/auth/login", `{"email":"admin@shop.test","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/auth/login", `{"email":"admin@shop.test"}`, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/auth/login", `{"email":"admin@shop.test","password":"password"}`, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var sessionCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == env.cfg.SessionCookieName {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie)
	assert.True(t, sessionCookie.HttpOnly)

	var login struct {
		Token string `json:"token"`
		User  struct {
			Role string `json:"role"`
		} `json:"user"`
	}
	decode(t, resp, &login)
	assert.Equal(t, sessionCookie.Value, login.Token)
	assert.Equal(t, "ADMIN", login.User.Role)

	resp = env.do(t, http.MethodGet, "/api/auth/session", "", sessionCookie.Value)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// 로그인한 세션으로 관리자 API 접근
	resp = env.do(t, http.MethodGet, "/api/admin/categories", "", sessionCookie.Value)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/auth/session", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/auth/logout", "", sessionCookie.Value)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestReadiness(t *testing.T) {
	env := newEnv(t, "h_ready", DegradeToEmpty, DegradeToEmpty)

	resp := env.do(t, http.MethodGet, "/api/readiness", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	testutil.Break(t, env.db)
	resp = env.do(t, http.MethodGet, "/api/readiness", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestParseFailurePolicy(t *testing.T) {
	p, err := ParseFailurePolicy("propagate")
	require.NoError(t, err)
	assert.Equal(t, PropagateError, p)

	p, err = ParseFailurePolicy(" Degrade ")
	require.NoError(t, err)
	assert.Equal(t, DegradeToEmpty, p)

	p, err = ParseFailurePolicy("")
	require.NoError(t, err)
	assert.Equal(t, DegradeToEmpty, p)

	_, err = ParseFailurePolicy("explode")
	require.Error(t, err)

	assert.Equal(t, "degrade", DegradeToEmpty.String())
	assert.Equal(t, "propagate", PropagateError.String())
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/teapot", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusTeapot, "short and stout") })
	app.Get("/boom", func(c *fiber.Ctx) error { return io.ErrUnexpectedEOF })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/teapot", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"short and stout"}`, string(raw))
	var body ErrorResponse

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	decode(t, resp, &body)
	assert.Equal(t, "Internal Server Error", body.Error)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
