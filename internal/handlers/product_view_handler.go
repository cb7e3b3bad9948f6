package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"inventory/internal/models"
	"inventory/internal/services"
	"inventory/internal/validation"
	"inventory/internal/views"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

const productsPath = "/products"

// productForm holds the raw form values so a rejected submission can be
// shown back to the user exactly as typed.
type productForm struct {
	Name        string
	Description string
	Price       string
	Stock       string
}

// formPage describes one rendering of the create/edit form.
type formPage struct {
	title       string
	action      string
	submitLabel string
	productID   uint64
}

// ProductViewHandler serves the server-rendered HTML pages for products.
type ProductViewHandler struct {
	service  ProductService
	validate *validation.Validator
}

// NewProductViewHandler creates a new ProductViewHandler.
func NewProductViewHandler(service ProductService, validate *validation.Validator) *ProductViewHandler {
	return &ProductViewHandler{
		service:  service,
		validate: validate,
	}
}

// RegisterRoutes registers the HTML routes under /products.
func (h *ProductViewHandler) RegisterRoutes(router fiber.Router) {
	pages := router.Group(productsPath)
	pages.Get("/", h.HandleList)
	pages.Get("/new", h.HandleNewForm)
	pages.Post("/", h.HandleCreate)
	pages.Get("/:id", h.HandleDetail)
	pages.Get("/:id/edit", h.HandleEditForm)
	pages.Post("/:id", h.HandleUpdate)
	pages.Post("/:id/delete", h.HandleDelete)
}

// HandleList renders every product.
func (h *ProductViewHandler) HandleList(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		return err
	}
	return c.Render("products/list", fiber.Map{
		"Title":    "Product inventory",
		"Products": products,
	}, views.Layout)
}

// HandleNewForm renders an empty creation form.
func (h *ProductViewHandler) HandleNewForm(c *fiber.Ctx) error {
	return h.renderForm(c, createPage(), productForm{}, nil)
}

// HandleCreate validates the submitted form and creates the product.
func (h *ProductViewHandler) HandleCreate(c *fiber.Ctx) error {
	form := readForm(c)
	req, errs := h.toRequest(form)
	if len(errs) > 0 {
		return h.renderForm(c, createPage(), form, errs)
	}

	if _, err := h.service.CreateProduct(c.UserContext(), req); err != nil {
		return err
	}
	return c.Redirect(productsPath)
}

// HandleDetail renders a single product.
func (h *ProductViewHandler) HandleDetail(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return renderError(c, fiber.StatusBadRequest, err.Error())
	}

	product, err := h.service.GetProductByID(c.UserContext(), id)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.Render("products/detail", fiber.Map{
		"Title":   "Product: " + product.Name,
		"Product": product,
	}, views.Layout)
}

// HandleEditForm renders the form pre-filled with the stored values.
func (h *ProductViewHandler) HandleEditForm(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return renderError(c, fiber.StatusBadRequest, err.Error())
	}

	req, err := h.service.GetProductForm(c.UserContext(), id)
	if err != nil {
		return h.serviceError(c, err)
	}
	return h.renderForm(c, editPage(id), formFromRequest(req), nil)
}

// HandleUpdate validates the submitted form and updates the product.
func (h *ProductViewHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return renderError(c, fiber.StatusBadRequest, err.Error())
	}

	form := readForm(c)
	req, errs := h.toRequest(form)
	if len(errs) > 0 {
		return h.renderForm(c, editPage(id), form, errs)
	}

	if _, err := h.service.UpdateProduct(c.UserContext(), id, req); err != nil {
		return h.serviceError(c, err)
	}
	return c.Redirect(productsPath)
}

// HandleDelete removes the product and goes back to the list.
func (h *ProductViewHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return renderError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		return h.serviceError(c, err)
	}
	return c.Redirect(productsPath)
}

func (h *ProductViewHandler) renderForm(c *fiber.Ctx, page formPage, form productForm, errs []validation.FieldError) error {
	return c.Render("products/form", fiber.Map{
		"Title":       page.title,
		"FormAction":  page.action,
		"SubmitLabel": page.submitLabel,
		"ProductID":   page.productID,
		"IsEdit":      page.productID != 0,
		"Product":     form,
		"Errors":      validation.ByField(errs),
	}, views.Layout)
}

// toRequest converts the raw form into a request and validates it. Values
// that cannot be parsed are reported once, instead of also as missing.
func (h *ProductViewHandler) toRequest(form productForm) (models.ProductRequest, []validation.FieldError) {
	req := models.ProductRequest{
		Name:        form.Name,
		Description: form.Description,
	}

	var errs []validation.FieldError
	if s := strings.TrimSpace(form.Price); s != "" {
		price, err := decimal.NewFromString(s)
		if err != nil {
			errs = append(errs, validation.FieldError{Field: "price", Message: "must be a valid number"})
		} else {
			req.Price = &price
		}
	}
	if s := strings.TrimSpace(form.Stock); s != "" {
		stock, err := strconv.Atoi(s)
		if err != nil {
			errs = append(errs, validation.FieldError{Field: "stock", Message: "must be a whole number"})
		} else {
			req.Stock = &stock
		}
	}

	unparsable := validation.ByField(errs)
	for _, e := range h.validate.Validate(req) {
		if _, seen := unparsable[e.Field]; !seen {
			errs = append(errs, e)
		}
	}
	return req, errs
}

func (h *ProductViewHandler) serviceError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrProductNotFound) {
		return renderError(c, fiber.StatusNotFound, err.Error())
	}
	return err
}

func readForm(c *fiber.Ctx) productForm {
	return productForm{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Price:       c.FormValue("price"),
		Stock:       c.FormValue("stock"),
	}
}

func formFromRequest(req models.ProductRequest) productForm {
	form := productForm{
		Name:        req.Name,
		Description: req.Description,
	}
	if req.Price != nil {
		form.Price = req.Price.StringFixed(models.PriceScale)
	}
	if req.Stock != nil {
		form.Stock = strconv.Itoa(*req.Stock)
	}
	return form
}

func createPage() formPage {
	return formPage{
		title:       "Create product",
		action:      productsPath,
		submitLabel: "Save",
	}
}

func editPage(id uint64) formPage {
	return formPage{
		title:       "Edit product",
		action:      fmt.Sprintf("%s/%d", productsPath, id),
		submitLabel: "Update",
		productID:   id,
	}
}
