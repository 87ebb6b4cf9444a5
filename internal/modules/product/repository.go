package product

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Changes is a coalescing update. Nil pointers keep the stored value.
// ClearInitialQuantity / ClearQuantityLimit null the column instead.
type Changes struct {
	Name                 *string
	Description          *string
	Points               *int32
	InitialQuantity      *int32
	ClearInitialQuantity bool
	QuantityLimit        *bool
	ClearQuantityLimit   bool
	ModifiedDate         time.Time
	ModifiedBy           *uuid.UUID
}

// Repository defines the interface for product data storage.
type Repository interface {
	// Create inserts p and overwrites it with the stored row, including the generated id.
	Create(ctx context.Context, p *Product) error
	List(ctx context.Context) ([]*Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	// Update applies c to the active product with the given id.
	Update(ctx context.Context, id uuid.UUID, c Changes) (*Product, error)
	// SoftDelete stamps the deletion markers on the active product with the given id.
	SoftDelete(ctx context.Context, id uuid.UUID, deletedDate time.Time, deletedBy *uuid.UUID) (*Product, error)
}

// StatusRepository defines the interface for status lookups.
type StatusRepository interface {
	GetStatusByName(ctx context.Context, name string) (*Status, error)
}
