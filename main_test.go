package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"inventory/internal/middleware"
	"inventory/internal/repositories"
	"inventory/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T, health func(context.Context) error) (*fiber.App, *test.Hook) {
	t.Helper()

	log, hook := test.NewNullLogger()
	reg := prometheus.NewRegistry()
	service := services.NewProductService(repositories.NewMemoryProductRepository(), log, services.NewMetrics(reg), nil)

	app := newApp(appDeps{
		service:  service,
		health:   health,
		gatherer: reg,
		log:      log,
	})
	return app, hook
}

func get(t *testing.T, app *fiber.App, target string) (*http.Response, string) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestApp_HomeRedirectsToProducts(t *testing.T) {
	app, _ := setupTestApp(t, nil)

	resp, _ := get(t, app, "/")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/products", resp.Header.Get(fiber.HeaderLocation))
}

func TestApp_HealthCheck(t *testing.T) {
	app, _ := setupTestApp(t, func(context.Context) error { return nil })

	resp, body := get(t, app, "/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"status":"healthy"`)

	app, _ = setupTestApp(t, func(context.Context) error { return errors.New("database is gone") })
	resp, body = get(t, app, "/health")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, body, `"status":"unhealthy"`)
}

func TestApp_ProductSurfacesShareTheStore(t *testing.T) {
	app, _ := setupTestApp(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/products",
		strings.NewReader(`{"name":"Teclado","description":"Mecánico","price":45.50,"stock":20}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := get(t, app, "/products")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Teclado")

	_, body = get(t, app, "/metrics")
	assert.Contains(t, body, "inventory_products_created_total 1")
}

func TestApp_RequestIDAndAccessLog(t *testing.T) {
	app, hook := setupTestApp(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-42")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "req-42", resp.Header.Get(middleware.RequestIDHeader))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "http request", entry.Message)
	assert.Equal(t, "req-42", entry.Data["request_id"])
	assert.Equal(t, http.StatusOK, entry.Data["status"])
}

func TestApp_RecoversFromPanics(t *testing.T) {
	app, _ := setupTestApp(t, nil)
	app.Get("/api/panic", func(c *fiber.Ctx) error { panic("boom") })

	resp, body := get(t, app, "/api/panic")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, body, "Internal server error")
}
