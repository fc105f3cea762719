package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/ggorockee/storefront/internal/config"
	"github.com/ggorockee/storefront/internal/database"
	"github.com/ggorockee/storefront/internal/models"
	"github.com/ggorockee/storefront/pkg/auth"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const SessionSecret = "test-session-secret"

// Config returns a configuration backed by a named in-memory SQLite database.
func Config(name string) *config.Config {
	return &config.Config{
		ServerEnv:                     "test",
		DatabaseDriver:                "sqlite",
		DatabaseURL:                   "file:" + name + "?mode=memory&cache=shared",
		DBMaxOpenConns:                1,
		DBMaxIdleConns:                1,
		DBConnMaxLifetime:             time.Hour,
		DBConnectAttempts:             1,
		SessionSecretKey:              SessionSecret,
		SessionExpireHours:            1,
		SessionCookieName:             "session",
		DefaultImageURL:               "/image.jpg",
		DeliveryZonesFailurePolicy:    "degrade",
		FeaturedProductsFailurePolicy: "degrade",
		ProductsFailurePolicy:         "degrade",
		CategoriesFailurePolicy:       "degrade",
	}
}

// OpenDB connects and migrates an in-memory database that is closed on cleanup.
// Each test should pass a unique name so databases don't leak between tests.
func OpenDB(t *testing.T, name string) *database.DB {
	t.Helper()
	db, err := database.Connect(context.Background(), Config(name))
	require.NoError(t, err, "open test db")
	require.NoError(t, database.Migrate(db), "migrate test db")
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// CreateUser stores a user whose password is "password".
func CreateUser(t *testing.T, db *database.DB, email string, role models.Role) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{Email: email, Name: email, Password: string(hash), Role: role}
	require.NoError(t, db.Create(user).Error)
	return user
}

// SessionToken mints a session token for the given user.
func SessionToken(t *testing.T, user *models.User) string {
	t.Helper()
	token, _, err := auth.GenerateSessionToken(user.ID, user.Email, string(user.Role), SessionSecret, 1)
	require.NoError(t, err)
	return token
}

// CreateCategory stores a category with an optional description.
func CreateCategory(t *testing.T, db *database.DB, name string, description *string) *models.Category {
	t.Helper()
	c := &models.Category{Name: name, Description: description}
	require.NoError(t, db.Create(c).Error)
	return c
}

// CreateProduct stores a product with the given creation time.
func CreateProduct(t *testing.T, db *database.DB, name string, categoryID string, createdAt time.Time) *models.Product {
	t.Helper()
	p := &models.Product{Name: name, Price: 9.99, CategoryID: categoryID, Stock: 3}
	p.CreatedAt = createdAt
	require.NoError(t, db.Create(p).Error)
	return p
}

// Break closes the underlying pool so every following query fails.
func Break(t *testing.T, db *database.DB) {
	t.Helper()
	require.NoError(t, db.Close())
}
