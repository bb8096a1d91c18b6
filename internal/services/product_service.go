package services

import (
	"context"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"

	"katalog/internal/models"
	"katalog/internal/repositories"
)

// EventPublisher publishes product lifecycle events to a message broker.
// *rabbitmq.Client satisfies it; a nil publisher disables publication.
type EventPublisher interface {
	PublishProductEvent(event string, payload map[string]interface{}) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo     repositories.ProductRepository
	events   EventPublisher
	validate *validator.Validate
}

// NewProductService creates a new ProductService. events may be nil when no
// broker is configured.
func NewProductService(repo repositories.ProductRepository, events EventPublisher) *ProductService {
	return &ProductService{
		repo:     repo,
		events:   events,
		validate: validator.New(),
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.GetAll(ctx)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct validates and persists a new product, returning the
// identifier the backend assigned.
func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product) (string, error) {
	if err := s.validate.Struct(product); err != nil {
		return "", fmt.Errorf("invalid product: %w", err)
	}

	id, err := s.repo.Create(ctx, product)
	if err != nil {
		return "", err
	}

	s.publishEvent("product.created", product)
	return id, nil
}

// UpdateProduct validates and replaces an existing product in full.
func (s *ProductService) UpdateProduct(ctx context.Context, product *models.Product) error {
	if err := s.validate.Struct(product); err != nil {
		return fmt.Errorf("invalid product: %w", err)
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return err
	}

	s.publishEvent("product.updated", product)
	return nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.events != nil {
		if err := s.events.PublishProductEvent("product.deleted", map[string]interface{}{
			"productID": id,
		}); err != nil {
			log.Printf("Warning: Failed to publish product.deleted event for product %s: %v", id, err)
		}
	}
	return nil
}

// publishEvent sends a product lifecycle event. Event delivery is
// best-effort: a broker failure never fails the data operation itself.
func (s *ProductService) publishEvent(event string, product *models.Product) {
	if s.events == nil {
		return
	}
	payload := map[string]interface{}{
		"productID":   product.ID.Hex(),
		"name":        product.Name,
		"price":       product.Price,
		"category":    product.Category,
		"description": product.Description,
	}
	if err := s.events.PublishProductEvent(event, payload); err != nil {
		log.Printf("Warning: Failed to publish %s event for product %s: %v", event, product.ID.Hex(), err)
	}
}
