package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"katalog/internal/models"
)

// MongoProductRepository is a MongoDB implementation of ProductRepository.
// It holds a single shared collection handle and translates contract calls
// into driver primitives; the driver's client is safe for concurrent use.
type MongoProductRepository struct {
	collection *mongo.Collection
}

// NewMongoProductRepository creates a new MongoProductRepository bound to
// the given collection. It fails fast when the handle is missing.
func NewMongoProductRepository(collection *mongo.Collection) (*MongoProductRepository, error) {
	if collection == nil {
		return nil, errors.New("product collection handle is required")
	}
	return &MongoProductRepository{
		collection: collection,
	}, nil
}

// GetAll retrieves all products from the collection.
func (r *MongoProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the collection.
func (r *MongoProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// An id that is not valid ObjectID hex cannot match any document.
		return nil, ErrProductNotFound
	}

	var product models.Product
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// Create inserts the given product and returns the assigned ID.
func (r *MongoProductRepository) Create(ctx context.Context, product *models.Product) (string, error) {
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	res, err := r.collection.InsertOne(ctx, product)
	if err != nil {
		return "", fmt.Errorf("failed to create product: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		product.ID = oid
	}
	return product.ID.Hex(), nil
}

// Update replaces the stored product matching product.ID in full.
func (r *MongoProductRepository) Update(ctx context.Context, product *models.Product) error {
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": product.ID}, product)
	if err != nil {
		return fmt.Errorf("failed to update product %s: %w", product.ID.Hex(), err)
	}
	if res.MatchedCount == 0 {
		// ReplaceOne without upsert reports zero matches instead of an
		// error, so not-found is derived from MatchedCount.
		return ErrProductNotFound
	}
	return nil
}

// Delete removes the product matching id from the collection.
func (r *MongoProductRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrProductNotFound
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}
