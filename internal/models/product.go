package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Product represents a product in the catalog. The ID is assigned by the
// storage backend on creation and never changes afterwards.
type Product struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name" validate:"required"`
	Price       float64            `json:"price" bson:"price" validate:"required"`
	Category    string             `json:"category" bson:"category" validate:"required"`
	Description string             `json:"description" bson:"description" validate:"required"`
}
