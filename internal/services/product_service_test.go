package services_test

import (
	"context"
	"fmt"
	"testing"

	"katalog/internal/models"
	"katalog/internal/repositories"
	"katalog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) (string, error) {
	args := m.Called(ctx, product)
	return args.String(0), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishProductEvent(event string, payload map[string]interface{}) error {
	args := m.Called(event, payload)
	return args.Error(0)
}

func TestProductService_GetAllProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)
	ctx := context.Background()

	expectedProducts := []models.Product{
		{ID: primitive.NewObjectID(), Name: "Product A", Price: 10.0, Category: "Office", Description: "First"},
		{ID: primitive.NewObjectID(), Name: "Product B", Price: 20.0, Category: "Office", Description: "Second"},
	}

	mockRepo.On("GetAll", ctx).Return(expectedProducts, nil).Once()

	products, err := service.GetAllProducts(ctx)

	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, expectedProducts, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)
	ctx := context.Background()

	id := primitive.NewObjectID()
	expectedProduct := &models.Product{ID: id, Name: "Product A", Price: 10.0, Category: "Office", Description: "First"}

	// Test successful retrieval
	mockRepo.On("GetByID", ctx, id.Hex()).Return(expectedProduct, nil).Once()
	product, err := service.GetProductByID(ctx, id.Hex())
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)
	mockRepo.AssertExpectations(t)

	// Test product not found
	missing := primitive.NewObjectID().Hex()
	mockRepo.On("GetByID", ctx, missing).Return(nil, repositories.ErrProductNotFound).Once()
	product, err = service.GetProductByID(ctx, missing)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	assert.Nil(t, product)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockEvents := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockEvents)
	ctx := context.Background()

	newProduct := &models.Product{Name: "Pen", Price: 1.50, Category: "Office", Description: "Blue ink"}
	assignedID := primitive.NewObjectID().Hex()

	// Test successful creation publishes a product.created event
	mockRepo.On("Create", ctx, newProduct).Return(assignedID, nil).Once()
	mockEvents.On("PublishProductEvent", "product.created", mock.Anything).Return(nil).Once()
	id, err := service.CreateProduct(ctx, newProduct)
	assert.NoError(t, err)
	assert.Equal(t, assignedID, id)
	mockRepo.AssertExpectations(t)
	mockEvents.AssertExpectations(t)

	// Test creation failure (e.g., database error)
	mockRepo.On("Create", ctx, newProduct).Return("", fmt.Errorf("database error")).Once()
	_, err = service.CreateProduct(ctx, newProduct)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct_Invalid(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	// Missing required fields must never reach the repository.
	incomplete := &models.Product{Name: "Nameless"}
	_, err := service.CreateProduct(context.Background(), incomplete)
	assert.Error(t, err)

	var validationErrs validator.ValidationErrors
	assert.ErrorAs(t, err, &validationErrs)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductService_CreateProduct_PublishFailureDoesNotFail(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockEvents := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockEvents)
	ctx := context.Background()

	newProduct := &models.Product{Name: "Pen", Price: 1.50, Category: "Office", Description: "Blue ink"}
	assignedID := primitive.NewObjectID().Hex()

	mockRepo.On("Create", ctx, newProduct).Return(assignedID, nil).Once()
	mockEvents.On("PublishProductEvent", "product.created", mock.Anything).Return(fmt.Errorf("broker down")).Once()

	id, err := service.CreateProduct(ctx, newProduct)
	assert.NoError(t, err)
	assert.Equal(t, assignedID, id)
	mockRepo.AssertExpectations(t)
	mockEvents.AssertExpectations(t)
}

func TestProductService_UpdateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockEvents := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockEvents)
	ctx := context.Background()

	updatedProduct := &models.Product{ID: primitive.NewObjectID(), Name: "Product A Updated", Price: 12.0, Category: "Office", Description: "Updated"}

	// Test successful update publishes a product.updated event
	mockRepo.On("Update", ctx, updatedProduct).Return(nil).Once()
	mockEvents.On("PublishProductEvent", "product.updated", mock.Anything).Return(nil).Once()
	err := service.UpdateProduct(ctx, updatedProduct)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockEvents.AssertExpectations(t)

	// Test update of a non-existent product
	missingProduct := &models.Product{ID: primitive.NewObjectID(), Name: "NonExistent", Price: 1.0, Category: "Office", Description: "Ghost"}
	mockRepo.On("Update", ctx, missingProduct).Return(repositories.ErrProductNotFound).Once()
	err = service.UpdateProduct(ctx, missingProduct)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	mockRepo.AssertExpectations(t)
	mockEvents.AssertNotCalled(t, "PublishProductEvent", "product.updated", mock.Anything)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockEvents := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockEvents)
	ctx := context.Background()

	id := primitive.NewObjectID().Hex()

	// Test successful deletion publishes a product.deleted event
	mockRepo.On("Delete", ctx, id).Return(nil).Once()
	mockEvents.On("PublishProductEvent", "product.deleted", mock.Anything).Return(nil).Once()
	err := service.DeleteProduct(ctx, id)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockEvents.AssertExpectations(t)

	// Test deletion of a non-existent product
	missing := primitive.NewObjectID().Hex()
	mockRepo.On("Delete", ctx, missing).Return(repositories.ErrProductNotFound).Once()
	err = service.DeleteProduct(ctx, missing)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	mockRepo.AssertExpectations(t)
}
