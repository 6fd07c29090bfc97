package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"storefront/internal/config"
	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var dbCounter int64

// setupApp builds a Fiber app over a fresh in-memory SQLite database
// with all repositories, services and handlers wired the way main does.
func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	cfg := &config.Config{
		AccessSecret:    "test_access_secret",
		RefreshSecret:   "test_refresh_secret",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
		BcryptCost:      bcrypt.MinCost,
	}

	// A named shared-cache in-memory database so every pooled connection
	// sees the same data, unique per test for isolation.
	dsn := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", atomic.AddInt64(&dbCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}, &models.Order{}, &models.OrderItem{}, &models.Comment{}))

	userRepo := repositories.NewGORMUserRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	commentRepo := repositories.NewGORMCommentRepository(db)

	authService := services.NewAuthService(userRepo, cfg)
	userService := services.NewUserService(userRepo, cfg.BcryptCost)
	productService := services.NewProductService(productRepo)
	orderService := services.NewOrderService(orderRepo, productRepo, userRepo, nil)
	commentService := services.NewCommentService(commentRepo, productRepo, userRepo)

	app := fiber.New()
	auth := middleware.AuthRequired(authService)
	api := app.Group("/api")
	handlers.NewUserHandler(authService, userService).RegisterRoutes(api, auth)
	handlers.NewProductHandler(productService).RegisterRoutes(api, auth)
	handlers.NewOrderHandler(orderService).RegisterRoutes(api, auth)
	handlers.NewCommentHandler(commentService).RegisterRoutes(api, auth)

	return app, db
}

// TestMain suppresses logging during tests for cleaner output.
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]json.RawMessage) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	fields := map[string]json.RawMessage{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &fields))
	}
	return resp, fields
}

func registerUser(t *testing.T, app *fiber.App, email string) {
	t.Helper()
	resp, _ := doJSON(t, app, http.MethodPost, "/api/users/register", "", map[string]string{
		"email":     email,
		"password":  "a-long-enough-password",
		"firstName": "Jane",
		"lastName":  "Doe",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func loginUser(t *testing.T, app *fiber.App, email string) (accessToken, refreshToken, userID string) {
	t.Helper()
	resp, fields := doJSON(t, app, http.MethodPost, "/api/users/login", "", map[string]string{
		"email":    email,
		"password": "a-long-enough-password",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, json.Unmarshal(fields["accessToken"], &accessToken))
	require.NoError(t, json.Unmarshal(fields["refreshToken"], &refreshToken))
	var user models.User
	require.NoError(t, json.Unmarshal(fields["user"], &user))
	return accessToken, refreshToken, user.ID
}

// promoteToAdmin flips a user's role directly in the database; the
// caller must log in again afterwards to pick up an admin token.
func promoteToAdmin(t *testing.T, db *gorm.DB, email string) {
	t.Helper()
	require.NoError(t, db.Model(&models.User{}).Where("email = ?", email).Update("role", models.RoleAdmin).Error)
}

func createProduct(t *testing.T, app *fiber.App, adminToken string, name string, price float64, available int, category string) models.Product {
	t.Helper()
	resp, fields := doJSON(t, app, http.MethodPost, "/api/products/create", adminToken, map[string]interface{}{
		"name":        name,
		"description": "A perfectly reasonable product description",
		"price":       price,
		"available":   available,
		"category":    category,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var product models.Product
	require.NoError(t, json.Unmarshal(fields["product"], &product))
	return product
}

func errorMessage(t *testing.T, fields map[string]json.RawMessage) string {
	t.Helper()
	var msg string
	require.NoError(t, json.Unmarshal(fields["error"], &msg))
	return msg
}

func TestRegisterAndLogin(t *testing.T) {
	app, _ := setupApp(t)

	// Successful registration returns the user without any hash.
	resp, fields := doJSON(t, app, http.MethodPost, "/api/users/register", "", map[string]string{
		"email":     "Jane@Example.com",
		"password":  "a-long-enough-password",
		"firstName": "Jane",
		"lastName":  "Doe",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var user models.User
	require.NoError(t, json.Unmarshal(fields["user"], &user))
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotContains(t, string(fields["user"]), "a-long-enough-password")
	assert.NotContains(t, string(fields["user"]), "passHash")

	// A 5-character password is rejected with the documented message.
	resp, fields = doJSON(t, app, http.MethodPost, "/api/users/register", "", map[string]string{
		"email":     "short@example.com",
		"password":  "short",
		"firstName": "Jane",
		"lastName":  "Doe",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Password length should be at least 12 characters long", errorMessage(t, fields))

	// Re-registering the same email is a conflict.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/users/register", "", map[string]string{
		"email":     "jane@example.com",
		"password":  "a-long-enough-password",
		"firstName": "Jane",
		"lastName":  "Doe",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Wrong password fails with a generic 401.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/users/login", "", map[string]string{
		"email":    "jane@example.com",
		"password": "definitely-not-the-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Correct credentials produce both tokens.
	accessToken, refreshToken, _ := loginUser(t, app, "jane@example.com")
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
}

func TestRefreshAndLogout(t *testing.T) {
	app, _ := setupApp(t)
	registerUser(t, app, "jane@example.com")
	accessToken, refreshToken, _ := loginUser(t, app, "jane@example.com")

	// The stored refresh token mints a new access token.
	resp, fields := doJSON(t, app, http.MethodPost, "/api/users/refresh", "", map[string]string{"token": refreshToken})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, string(fields["accessToken"]))

	// Garbage is rejected.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/users/refresh", "", map[string]string{"token": "not.a.token"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Logout clears the stored token; the old refresh token is now dead.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/users/logout", accessToken, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/users/refresh", "", map[string]string{"token": refreshToken})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestProductCatalog(t *testing.T) {
	app, db := setupApp(t)
	registerUser(t, app, "admin@example.com")
	registerUser(t, app, "user@example.com")
	promoteToAdmin(t, db, "admin@example.com")
	adminToken, _, _ := loginUser(t, app, "admin@example.com")
	userToken, _, _ := loginUser(t, app, "user@example.com")

	// A plain user cannot create products.
	resp, _ := doJSON(t, app, http.MethodPost, "/api/products/create", userToken, map[string]interface{}{
		"name":        "Widget",
		"description": "A perfectly reasonable product description",
		"price":       9.99,
		"available":   3,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	laptop := createProduct(t, app, adminToken, "Laptop", 1200.00, 10, "electronics")
	createProduct(t, app, adminToken, "Keyboard", 75.00, 25, "electronics")
	createProduct(t, app, adminToken, "Desk Lamp", 39.99, 30, "home")

	// Public listing with a case-insensitive substring filter.
	resp, _ = doJSON(t, app, http.MethodGet, "/api/products?query=LAPTOP", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Category filter.
	req := httptest.NewRequest(http.MethodGet, "/api/products?category=electronics", nil)
	r, err := app.Test(req, -1)
	require.NoError(t, err)
	var products []models.Product
	require.NoError(t, json.NewDecoder(r.Body).Decode(&products))
	r.Body.Close()
	assert.Len(t, products, 2)

	// Category enumeration.
	resp, fields := doJSON(t, app, http.MethodGet, "/api/products/categories", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var categories []string
	require.NoError(t, json.Unmarshal(fields["categories"], &categories))
	assert.Equal(t, []string{"electronics", "home"}, categories)

	// Single product fetch.
	resp, fields = doJSON(t, app, http.MethodGet, "/api/products/"+laptop.ID, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched models.Product
	require.NoError(t, json.Unmarshal(fields["product"], &fetched))
	assert.True(t, decimal.NewFromFloat(1200.00).Equal(fetched.Price))

	// Unknown product.
	resp, _ = doJSON(t, app, http.MethodGet, "/api/products/does-not-exist", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOrderCreationFlow(t *testing.T) {
	app, db := setupApp(t)
	registerUser(t, app, "admin@example.com")
	registerUser(t, app, "buyer@example.com")
	promoteToAdmin(t, db, "admin@example.com")
	adminToken, _, _ := loginUser(t, app, "admin@example.com")
	buyerToken, _, buyerID := loginUser(t, app, "buyer@example.com")

	widget := createProduct(t, app, adminToken, "Widget", 9.99, 3, "")

	// Creating an order without a token is rejected outright.
	resp, _ := doJSON(t, app, http.MethodPost, "/api/orders/create", "", map[string]interface{}{
		"userId": buyerID,
		"items":  []map[string]interface{}{{"productId": widget.ID, "quantity": 2}},
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Ordering for someone else is always a 403 for a plain user, even
	// when the target user does not exist.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/orders/create", buyerToken, map[string]interface{}{
		"userId": "no-such-user",
		"items":  []map[string]interface{}{{"productId": widget.ID, "quantity": 2}},
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// The happy path: 2 × 9.99 = 19.98, status pending.
	resp, fields := doJSON(t, app, http.MethodPost, "/api/orders/create", buyerToken, map[string]interface{}{
		"userId": buyerID,
		"items":  []map[string]interface{}{{"productId": widget.ID, "quantity": 2}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var order models.Order
	require.NoError(t, json.Unmarshal(fields["order"], &order))
	assert.True(t, decimal.NewFromFloat(19.98).Equal(order.TotalPrice), "expected 19.98, got %s", order.TotalPrice)
	assert.Equal(t, models.StatusPending, order.Status)

	// Stock was decremented as part of the same write.
	resp, fields = doJSON(t, app, http.MethodGet, "/api/products/"+widget.ID, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var after models.Product
	require.NoError(t, json.Unmarshal(fields["product"], &after))
	assert.Equal(t, 1, after.Available)

	// Requesting more than the remaining stock fails all-or-nothing and
	// leaves the stock untouched.
	resp, fields = doJSON(t, app, http.MethodPost, "/api/orders/create", buyerToken, map[string]interface{}{
		"userId": buyerID,
		"items":  []map[string]interface{}{{"productId": widget.ID, "quantity": 2}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, errorMessage(t, fields), "insufficient stock for product Widget")

	resp, fields = doJSON(t, app, http.MethodGet, "/api/products/"+widget.ID, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(fields["product"], &after))
	assert.Equal(t, 1, after.Available)

	// Splitting the request over two lines of the same product must not
	// get around the stock check: 1+1 against 1 fails and rolls back.
	resp, fields = doJSON(t, app, http.MethodPost, "/api/orders/create", buyerToken, map[string]interface{}{
		"userId": buyerID,
		"items": []map[string]interface{}{
			{"productId": widget.ID, "quantity": 1},
			{"productId": widget.ID, "quantity": 1},
		},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, errorMessage(t, fields), "insufficient stock")

	resp, fields = doJSON(t, app, http.MethodGet, "/api/products/"+widget.ID, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(fields["product"], &after))
	assert.Equal(t, 1, after.Available)

	// An unknown product fails the whole batch.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/orders/create", buyerToken, map[string]interface{}{
		"userId": buyerID,
		"items": []map[string]interface{}{
			{"productId": widget.ID, "quantity": 1},
			{"productId": "ghost", "quantity": 1},
		},
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// The checkout façade uses the token identity as the owner.
	resp, fields = doJSON(t, app, http.MethodPost, "/api/orders/checkout", buyerToken, map[string]interface{}{
		"items": []map[string]interface{}{{"productId": widget.ID, "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var checkoutOrder models.Order
	require.NoError(t, json.Unmarshal(fields["order"], &checkoutOrder))
	assert.Equal(t, buyerID, checkoutOrder.UserID)

	// The owner and an admin can read the order, a stranger cannot.
	registerUser(t, app, "stranger@example.com")
	strangerToken, _, _ := loginUser(t, app, "stranger@example.com")

	resp, _ = doJSON(t, app, http.MethodGet, "/api/orders/"+order.ID, buyerToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodGet, "/api/orders/"+order.ID, adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodGet, "/api/orders/"+order.ID, strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Listing a user's orders is self-or-admin.
	resp, fields = doJSON(t, app, http.MethodGet, "/api/orders/user_orders/"+buyerID, buyerToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var orders []models.Order
	require.NoError(t, json.Unmarshal(fields["orders"], &orders))
	assert.Len(t, orders, 2)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/orders/user_orders/"+buyerID, strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestOrderStatusTransitions(t *testing.T) {
	app, db := setupApp(t)
	registerUser(t, app, "admin@example.com")
	registerUser(t, app, "buyer@example.com")
	promoteToAdmin(t, db, "admin@example.com")
	adminToken, _, _ := loginUser(t, app, "admin@example.com")
	buyerToken, _, buyerID := loginUser(t, app, "buyer@example.com")

	widget := createProduct(t, app, adminToken, "Widget", 9.99, 10, "")

	_, fields := doJSON(t, app, http.MethodPost, "/api/orders/create", buyerToken, map[string]interface{}{
		"userId": buyerID,
		"items":  []map[string]interface{}{{"productId": widget.ID, "quantity": 1}},
	})
	var order models.Order
	require.NoError(t, json.Unmarshal(fields["order"], &order))

	// A plain user has no route to change status.
	resp, _ := doJSON(t, app, http.MethodPatch, "/api/orders/change_status/"+order.ID, buyerToken, map[string]string{"status": models.StatusShipped})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Re-submitting the current status is a 400 no-op.
	resp, fields = doJSON(t, app, http.MethodPatch, "/api/orders/change_status/"+order.ID, adminToken, map[string]string{"status": models.StatusPending})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "The status provided is already set", errorMessage(t, fields))

	// An unknown status is a 400.
	resp, _ = doJSON(t, app, http.MethodPatch, "/api/orders/change_status/"+order.ID, adminToken, map[string]string{"status": "teleported"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// A valid, different status goes through.
	resp, _ = doJSON(t, app, http.MethodPatch, "/api/orders/change_status/"+order.ID, adminToken, map[string]string{"status": models.StatusProcessing})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Owner cancellation only while pending.
	resp, fields = doJSON(t, app, http.MethodPost, "/api/orders/cancel/"+order.ID, buyerToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, errorMessage(t, fields), "Only pending orders can be cancelled")

	_, fields = doJSON(t, app, http.MethodPost, "/api/orders/create", buyerToken, map[string]interface{}{
		"userId": buyerID,
		"items":  []map[string]interface{}{{"productId": widget.ID, "quantity": 1}},
	})
	var pendingOrder models.Order
	require.NoError(t, json.Unmarshal(fields["order"], &pendingOrder))

	resp, _ = doJSON(t, app, http.MethodPost, "/api/orders/cancel/"+pendingOrder.ID, buyerToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, fields = doJSON(t, app, http.MethodGet, "/api/orders/"+pendingOrder.ID, buyerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cancelled models.Order
	require.NoError(t, json.Unmarshal(fields["order"], &cancelled))
	assert.Equal(t, models.StatusCancelled, cancelled.Status)

	// Cancellation returned the order's unit to stock: the two orders
	// took the count from 10 to 8, the cancel brings it back to 9.
	resp, fields = doJSON(t, app, http.MethodGet, "/api/products/"+widget.ID, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var restocked models.Product
	require.NoError(t, json.Unmarshal(fields["product"], &restocked))
	assert.Equal(t, 9, restocked.Available)
}

func TestCommentFlow(t *testing.T) {
	app, db := setupApp(t)
	registerUser(t, app, "admin@example.com")
	registerUser(t, app, "author@example.com")
	registerUser(t, app, "stranger@example.com")
	promoteToAdmin(t, db, "admin@example.com")
	adminToken, _, _ := loginUser(t, app, "admin@example.com")
	authorToken, _, _ := loginUser(t, app, "author@example.com")
	strangerToken, _, _ := loginUser(t, app, "stranger@example.com")

	widget := createProduct(t, app, adminToken, "Widget", 9.99, 10, "")

	// Posting requires a token.
	resp, _ := doJSON(t, app, http.MethodPost, "/api/comments/"+widget.ID, "", map[string]string{"body": "Nice product"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// A too-short body is rejected.
	resp, fields := doJSON(t, app, http.MethodPost, "/api/comments/"+widget.ID, authorToken, map[string]string{"body": " a "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Body length should be at least 3 characters long", errorMessage(t, fields))

	// The author's display name is snapshotted from the users table.
	resp, fields = doJSON(t, app, http.MethodPost, "/api/comments/"+widget.ID, authorToken, map[string]string{"body": "Nice product"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var comment models.Comment
	require.NoError(t, json.Unmarshal(fields["comment"], &comment))
	assert.Equal(t, "Jane", comment.UserFirstName)
	assert.Equal(t, "Doe", comment.UserLastName)

	// Public listing works without a token.
	resp, fields = doJSON(t, app, http.MethodGet, "/api/comments/"+widget.ID, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var comments []models.Comment
	require.NoError(t, json.Unmarshal(fields["comments"], &comments))
	assert.Len(t, comments, 1)

	// Comments under an unknown product are a 404.
	resp, _ = doJSON(t, app, http.MethodGet, "/api/comments/ghost", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// A third user cannot delete the comment; the author and admin can.
	resp, _ = doJSON(t, app, http.MethodDelete, "/api/comments/"+comment.ID, strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/comments/"+comment.ID, authorToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Deleting it again is a 404.
	resp, _ = doJSON(t, app, http.MethodDelete, "/api/comments/"+comment.ID, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUserAdministration(t *testing.T) {
	app, db := setupApp(t)
	registerUser(t, app, "admin@example.com")
	registerUser(t, app, "user@example.com")
	promoteToAdmin(t, db, "admin@example.com")
	adminToken, _, _ := loginUser(t, app, "admin@example.com")
	userToken, _, userID := loginUser(t, app, "user@example.com")

	// Listing users is admin-only and never includes hashes.
	resp, _ := doJSON(t, app, http.MethodGet, "/api/users/", userToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/api/users/", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	r, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, _ := io.ReadAll(r.Body)
	r.Body.Close()
	assert.Equal(t, http.StatusOK, r.StatusCode)
	assert.NotContains(t, string(raw), "passHash")

	// A user updates their own name.
	resp, fields := doJSON(t, app, http.MethodPut, "/api/users/update/"+userID, userToken, map[string]string{"firstName": "Janet"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var updated models.User
	require.NoError(t, json.Unmarshal(fields["user"], &updated))
	assert.Equal(t, "Janet", updated.FirstName)

	// Deleting is admin-only.
	resp, _ = doJSON(t, app, http.MethodDelete, "/api/users/delete/"+userID, userToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/users/delete/"+userID, adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/users/delete/"+userID, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
