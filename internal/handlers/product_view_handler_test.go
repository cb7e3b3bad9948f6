package handlers_test

import (
	"net/http"
	"net/url"
	"testing"

	"inventory/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tecladoForm() url.Values {
	return url.Values{
		"name":        {"Teclado"},
		"description": {"Mecánico"},
		"price":       {"45.50"},
		"stock":       {"20"},
	}
}

func TestView_ListEmpty(t *testing.T) {
	app := setupApp(t)

	resp := doGet(t, app, "/products")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/html")
	assert.Contains(t, readBody(t, resp), "No products yet.")
}

func TestView_NewForm(t *testing.T) {
	app := setupApp(t)

	resp := doGet(t, app, "/products/new")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := readBody(t, resp)
	assert.Contains(t, body, "Create product")
	assert.Contains(t, body, `action="/products"`)
	assert.NotContains(t, body, "is-invalid")
}

func TestView_CreateRedirectsToList(t *testing.T) {
	app := setupApp(t)

	resp := doForm(t, app, "/products", tecladoForm())
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/products", resp.Header.Get(fiber.HeaderLocation))

	body := readBody(t, doGet(t, app, "/products"))
	assert.Contains(t, body, "Teclado")
	assert.Contains(t, body, "45.50")
	assert.Contains(t, body, `href="/products/1/edit"`)
}

func TestView_CreateInvalidRerendersForm(t *testing.T) {
	app := setupApp(t)

	resp := doForm(t, app, "/products", url.Values{
		"name":  {""},
		"price": {"-1"},
		"stock": {"-5"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := readBody(t, resp)
	assert.Contains(t, body, "must not be blank")
	assert.Contains(t, body, "must be greater than or equal to 0.01")
	assert.Contains(t, body, "must be greater than or equal to 0")
	assert.Contains(t, body, `value="-5"`)

	var products []models.Product
	decodeBody(t, doJSON(t, app, http.MethodGet, "/api/products", nil), &products)
	assert.Empty(t, products)
}

func TestView_CreateUnparsableNumbers(t *testing.T) {
	app := setupApp(t)

	form := tecladoForm()
	form.Set("price", "cheap")
	form.Set("stock", "2.5")

	resp := doForm(t, app, "/products", form)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := readBody(t, resp)
	assert.Contains(t, body, "must be a valid number")
	assert.Contains(t, body, "must be a whole number")
	assert.NotContains(t, body, "is required")
	assert.Contains(t, body, `value="cheap"`)
}

func TestView_Detail(t *testing.T) {
	app := setupApp(t)
	doForm(t, app, "/products", tecladoForm())

	resp := doGet(t, app, "/products/1")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := readBody(t, resp)
	assert.Contains(t, body, "Teclado")
	assert.Contains(t, body, "Mecánico")
	assert.Contains(t, body, "45.50")
}

func TestView_EditFormIsPrefilled(t *testing.T) {
	app := setupApp(t)
	doForm(t, app, "/products", tecladoForm())

	resp := doGet(t, app, "/products/1/edit")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := readBody(t, resp)
	assert.Contains(t, body, "Edit product")
	assert.Contains(t, body, `action="/products/1"`)
	assert.Contains(t, body, `value="Teclado"`)
	assert.Contains(t, body, `value="45.50"`)
	assert.Contains(t, body, `value="20"`)
}

func TestView_Update(t *testing.T) {
	app := setupApp(t)
	doForm(t, app, "/products", tecladoForm())

	form := tecladoForm()
	form.Set("price", "39.99")
	form.Set("stock", "15")

	resp := doForm(t, app, "/products/1", form)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/products", resp.Header.Get(fiber.HeaderLocation))

	var product models.Product
	decodeBody(t, doJSON(t, app, http.MethodGet, "/api/products/1", nil), &product)
	assert.Equal(t, "39.99", product.Price.StringFixed(2))
	assert.Equal(t, 15, product.Stock)
}

func TestView_UpdateInvalidKeepsStoredValues(t *testing.T) {
	app := setupApp(t)
	doForm(t, app, "/products", tecladoForm())

	form := tecladoForm()
	form.Set("price", "")

	resp := doForm(t, app, "/products/1", form)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "is required")

	var product models.Product
	decodeBody(t, doJSON(t, app, http.MethodGet, "/api/products/1", nil), &product)
	assert.Equal(t, "45.50", product.Price.StringFixed(2))
}

func TestView_Delete(t *testing.T) {
	app := setupApp(t)
	doForm(t, app, "/products", tecladoForm())

	resp := doForm(t, app, "/products/1/delete", url.Values{})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/products", resp.Header.Get(fiber.HeaderLocation))

	resp = doGet(t, app, "/products/1")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestView_MissingProductRendersNotFoundPage(t *testing.T) {
	app := setupApp(t)

	targets := []string{"/products/999", "/products/999/edit"}
	for _, target := range targets {
		t.Run(target, func(t *testing.T) {
			resp := doGet(t, app, target)
			require.Equal(t, http.StatusNotFound, resp.StatusCode)
			assert.Contains(t, readBody(t, resp), "product with id 999 not found")
		})
	}

	resp := doForm(t, app, "/products/999", tecladoForm())
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doForm(t, app, "/products/999/delete", url.Values{})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestView_UnknownRouteRendersErrorPage(t *testing.T) {
	app := setupApp(t)

	resp := doGet(t, app, "/nowhere")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Back to list")
}
