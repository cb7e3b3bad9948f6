package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"inventory/internal/models"
	"inventory/internal/services"
	"inventory/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// ProductService is what both product surfaces need from the service layer.
type ProductService interface {
	GetAllProducts(ctx context.Context) ([]models.Product, error)
	GetProductByID(ctx context.Context, id uint64) (*models.Product, error)
	CreateProduct(ctx context.Context, req models.ProductRequest) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uint64, req models.ProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uint64) error
	GetProductForm(ctx context.Context, id uint64) (models.ProductRequest, error)
}

// ProductAPIHandler handles JSON requests for products.
type ProductAPIHandler struct {
	service  ProductService
	validate *validation.Validator
	log      logrus.FieldLogger
}

// NewProductAPIHandler creates a new ProductAPIHandler.
func NewProductAPIHandler(service ProductService, validate *validation.Validator, log logrus.FieldLogger) *ProductAPIHandler {
	return &ProductAPIHandler{
		service:  service,
		validate: validate,
		log:      log,
	}
}

// RegisterRoutes registers the product API routes under /products.
func (h *ProductAPIHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleGetProducts returns every product.
func (h *ProductAPIHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// HandleGetProductByID returns a single product.
func (h *ProductAPIHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	product, err := h.service.GetProductByID(c.UserContext(), id)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(product)
}

// HandleCreateProduct validates the body, creates the product and answers
// 201 with a Location header.
func (h *ProductAPIHandler) HandleCreateProduct(c *fiber.Ctx) error {
	req, ok, err := h.bindRequest(c)
	if !ok {
		return err
	}

	product, err := h.service.CreateProduct(c.UserContext(), req)
	if err != nil {
		return err
	}

	c.Location(fmt.Sprintf("/api/products/%d", product.ID))
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct overwrites an existing product.
func (h *ProductAPIHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	req, ok, err := h.bindRequest(c)
	if !ok {
		return err
	}

	product, err := h.service.UpdateProduct(c.UserContext(), id, req)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(product)
}

// HandleDeleteProduct removes a product and answers 204.
func (h *ProductAPIHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		return h.serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// bindRequest parses and validates the body. When ok is false the response
// has already been written and err is the result to return from the handler.
func (h *ProductAPIHandler) bindRequest(c *fiber.Ctx) (models.ProductRequest, bool, error) {
	var req models.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		h.log.WithError(err).Debug("Error parsing product request body")
		return req, false, jsonError(c, fiber.StatusBadRequest, "Malformed request body")
	}

	if errs := h.validate.Validate(req); len(errs) > 0 {
		return req, false, jsonValidationError(c, errs)
	}
	return req, true, nil
}

func (h *ProductAPIHandler) serviceError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrProductNotFound) {
		return jsonError(c, fiber.StatusNotFound, err.Error())
	}
	return err
}

func parseID(c *fiber.Ctx) (uint64, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid product id %q", c.Params("id"))
	}
	return id, nil
}
