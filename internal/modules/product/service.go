package product

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/oapi-codegen/nullable"
)

// Service defines the product lifecycle business logic.
type Service interface {
	// CreateProduct validates the request and stores a new PUBLISHED product.
	CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error)

	// ListProducts returns every product, deleted ones included, in store order.
	ListProducts(ctx context.Context) ([]*Product, error)

	// GetProduct returns a product by id regardless of its deletion state.
	GetProduct(ctx context.Context, id string) (*Product, error)

	// UpdateProduct applies a coalescing update to an active product.
	UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*Product, error)

	// SoftDeleteProduct marks an active product as deleted.
	SoftDeleteProduct(ctx context.Context, id string, req SoftDeleteProductRequest) (*Product, error)
}

// CreateProductRequest holds the data for creating a product.
type CreateProductRequest struct {
	EventID         string  `json:"event_id"`
	VendorID        string  `json:"vendor_id"`
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	Points          *int32  `json:"points"`
	InitialQuantity *int32  `json:"initial_quantity"`
	QuantityLimit   *bool   `json:"quantity_limit"`
	CreatedBy       *string `json:"created_by"`
}

// UpdateProductRequest holds the fields of a coalescing update. Absent fields keep
// their stored value; null clears initial_quantity and quantity_limit.
type UpdateProductRequest struct {
	Name            nullable.Nullable[string] `json:"name,omitempty"`
	Description     nullable.Nullable[string] `json:"description,omitempty"`
	Points          nullable.Nullable[int32]  `json:"points,omitempty"`
	InitialQuantity nullable.Nullable[int32]  `json:"initial_quantity,omitempty"`
	QuantityLimit   nullable.Nullable[bool]   `json:"quantity_limit,omitempty"`
	ModifiedBy      *string                   `json:"modified_by"`
}

// SoftDeleteProductRequest holds the optional actor of a soft delete.
type SoftDeleteProductRequest struct {
	DeletedBy *string `json:"deleted_by"`
}

type service struct {
	repo       Repository
	statusRepo StatusRepository
	now        func() time.Time
}

// NewService creates a new product service.
func NewService(repo Repository, statusRepo StatusRepository) Service {
	return &service{
		repo:       repo,
		statusRepo: statusRepo,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	eventID, err := parseID("event_id", req.EventID)
	if err != nil {
		return nil, err
	}
	vendorID, err := parseID("vendor_id", req.VendorID)
	if err != nil {
		return nil, err
	}
	// An absent actor is stored as the nil UUID, meaning "unattributed".
	createdBy := uuid.Nil
	if req.CreatedBy != nil {
		if createdBy, err = parseID("created_by", *req.CreatedBy); err != nil {
			return nil, err
		}
	}
	switch {
	case req.Name == nil:
		return nil, fmt.Errorf("%w: name is required", ErrInvalidArgument)
	case req.Description == nil:
		return nil, fmt.Errorf("%w: description is required", ErrInvalidArgument)
	case req.Points == nil:
		return nil, fmt.Errorf("%w: points is required", ErrInvalidArgument)
	}

	published, err := s.statusRepo.GetStatusByName(ctx, StatusPublished)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get default status: %w", ErrUnavailable, err)
	}

	p := &Product{
		EventID:         eventID,
		VendorID:        vendorID,
		Name:            *req.Name,
		Description:     *req.Description,
		Points:          *req.Points,
		InitialQuantity: req.InitialQuantity,
		QuantityLimit:   req.QuantityLimit,
		StatusID:        published.ID,
		CreatedDate:     s.now(),
		CreatedBy:       createdBy,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, storeError(err)
	}
	return p, nil
}

func (s *service) ListProducts(ctx context.Context) ([]*Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return products, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	pid, err := parseID("product id", id)
	if err != nil {
		return nil, err
	}
	p, err := s.repo.GetByID(ctx, pid)
	if err != nil {
		return nil, storeError(err)
	}
	return p, nil
}

func (s *service) UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*Product, error) {
	pid, err := parseID("product id", id)
	if err != nil {
		return nil, err
	}
	// Unlike create, an absent actor stays NULL here.
	modifiedBy, err := parseOptionalID("modified_by", req.ModifiedBy)
	if err != nil {
		return nil, err
	}

	c := Changes{
		Name:                 valueOf(req.Name),
		Description:          valueOf(req.Description),
		Points:               valueOf(req.Points),
		InitialQuantity:      valueOf(req.InitialQuantity),
		ClearInitialQuantity: cleared(req.InitialQuantity),
		QuantityLimit:        valueOf(req.QuantityLimit),
		ClearQuantityLimit:   cleared(req.QuantityLimit),
		ModifiedDate:         s.now(),
		ModifiedBy:           modifiedBy,
	}
	p, err := s.repo.Update(ctx, pid, c)
	if err != nil {
		return nil, storeError(err)
	}
	return p, nil
}

func (s *service) SoftDeleteProduct(ctx context.Context, id string, req SoftDeleteProductRequest) (*Product, error) {
	pid, err := parseID("product id", id)
	if err != nil {
		return nil, err
	}
	deletedBy, err := parseOptionalID("deleted_by", req.DeletedBy)
	if err != nil {
		return nil, err
	}
	p, err := s.repo.SoftDelete(ctx, pid, s.now(), deletedBy)
	if err != nil {
		return nil, storeError(err)
	}
	return p, nil
}

func parseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid %s", ErrInvalidArgument, field)
	}
	return id, nil
}

func parseOptionalID(field string, raw *string) (*uuid.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := parseID(field, *raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// storeError passes ErrNotFound through and classifies everything else as unavailable.
func storeError(err error) error {
	if errors.Is(err, ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: DB error: %w", ErrUnavailable, err)
}

// valueOf returns the sent value, or nil when the field was absent or null.
func valueOf[T any](n nullable.Nullable[T]) *T {
	v, err := n.Get()
	if err != nil {
		return nil
	}
	return &v
}

func cleared[T any](n nullable.Nullable[T]) bool {
	return n.IsSpecified() && n.IsNull()
}
