package services

import (
	"context"
	"fmt"
	"time"

	"inventory/internal/models"
	"inventory/internal/repositories"

	"github.com/sirupsen/logrus"
)

// EventPublisher delivers product events to interested consumers.
type EventPublisher interface {
	PublishProductEvent(event models.ProductEvent) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	mapper    ProductMapper
	log       logrus.FieldLogger
	metrics   *Metrics
	publisher EventPublisher
}

// NewProductService creates a new ProductService. metrics and publisher may
// be nil.
func NewProductService(repo repositories.ProductRepository, log logrus.FieldLogger, metrics *Metrics, publisher EventPublisher) *ProductService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &ProductService{
		repo:      repo,
		log:       log,
		metrics:   metrics,
		publisher: publisher,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	s.log.Info("Listing all products")
	return s.repo.FindAll(ctx)
}

// GetProductByID retrieves a single product by its ID, or a *NotFoundError.
func (s *ProductService) GetProductByID(ctx context.Context, id uint64) (*models.Product, error) {
	s.log.WithField("product_id", id).Info("Looking up product")
	return s.findOrFail(ctx, id)
}

// CreateProduct stores a new product built from req.
func (s *ProductService) CreateProduct(ctx context.Context, req models.ProductRequest) (*models.Product, error) {
	s.log.WithField("name", req.Name).Info("Creating product")

	product := s.mapper.ToEntity(req)
	if err := s.repo.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.metrics.Created.Inc()
	s.publish(models.EventProductCreated, product)
	return product, nil
}

// UpdateProduct overwrites the editable fields of an existing product.
func (s *ProductService) UpdateProduct(ctx context.Context, id uint64, req models.ProductRequest) (*models.Product, error) {
	s.log.WithField("product_id", id).Info("Updating product")

	product, err := s.findOrFail(ctx, id)
	if err != nil {
		return nil, err
	}

	s.mapper.UpdateEntity(req, product)
	if err := s.repo.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product %d: %w", id, err)
	}

	s.metrics.Updated.Inc()
	s.publish(models.EventProductUpdated, product)
	return product, nil
}

// DeleteProduct removes an existing product.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint64) error {
	s.log.WithField("product_id", id).Info("Deleting product")

	product, err := s.findOrFail(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, product); err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}

	s.metrics.Deleted.Inc()
	s.publish(models.EventProductDeleted, product)
	return nil
}

// GetProductForm returns the editable fields of a product for form pre-fill.
func (s *ProductService) GetProductForm(ctx context.Context, id uint64) (models.ProductRequest, error) {
	product, err := s.findOrFail(ctx, id)
	if err != nil {
		return models.ProductRequest{}, err
	}
	return s.mapper.ToRequest(product), nil
}

func (s *ProductService) findOrFail(ctx context.Context, id uint64) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	if product == nil {
		return nil, &NotFoundError{ID: id}
	}
	return product, nil
}

// publish never fails the calling operation; delivery problems are logged.
func (s *ProductService) publish(eventType string, product *models.Product) {
	if s.publisher == nil {
		return
	}

	event := models.ProductEvent{
		EventType: eventType,
		ProductID: product.ID,
		Name:      product.Name,
		Timestamp: time.Now().UTC(),
	}
	if err := s.publisher.PublishProductEvent(event); err != nil {
		s.log.WithFields(logrus.Fields{
			"event_type": eventType,
			"product_id": product.ID,
		}).WithError(err).Warn("Failed to publish product event")
	}
}
