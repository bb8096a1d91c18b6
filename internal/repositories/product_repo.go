package repositories

import (
	"context"
	"errors"

	"katalog/internal/models"
)

// ErrProductNotFound is returned when no product matches the given ID.
// It distinguishes "nothing matched" from a backend fault, so callers can
// map it to a 404 instead of guessing from a boolean acknowledgment.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for product data access. It is
// the only way callers interact with persisted products; the concrete
// backend can be swapped (e.g. for the in-memory implementation in tests)
// without changing callers.
type ProductRepository interface {
	// GetAll returns every stored product. No ordering is guaranteed.
	GetAll(ctx context.Context) ([]models.Product, error)
	// GetByID returns the matching product or ErrProductNotFound. A
	// well-formed but non-existent ID is not a fault.
	GetByID(ctx context.Context, id string) (*models.Product, error)
	// Create persists a new product and returns the assigned ID. The
	// product's ID field is also populated as a convenience.
	Create(ctx context.Context, product *models.Product) (string, error)
	// Update replaces the stored record matching product.ID in full.
	// Returns ErrProductNotFound when no record matched; it never upserts.
	Update(ctx context.Context, product *models.Product) error
	// Delete removes the record matching id. Returns ErrProductNotFound
	// when nothing matched, so a second delete reports not-found rather
	// than faulting.
	Delete(ctx context.Context, id string) error
}
