package product

import (
	"time"

	"github.com/google/uuid"
)

// StatusPublished is the status every new product starts in.
const StatusPublished = "PUBLISHED"

// Product is a redeemable item offered by a vendor at an event.
// A product is active while DeletedDate is nil; once set it is terminal.
type Product struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	EventID         uuid.UUID  `db:"event_id" json:"event_id"`
	VendorID        uuid.UUID  `db:"vendor_id" json:"vendor_id"`
	Name            string     `db:"name" json:"name"`
	Description     string     `db:"description" json:"description"`
	Points          int32      `db:"points" json:"points"`
	InitialQuantity *int32     `db:"initial_quantity" json:"initial_quantity"`
	QuantityLimit   *bool      `db:"quantity_limit" json:"quantity_limit"`
	StatusID        uuid.UUID  `db:"status_id" json:"status_id"`
	CreatedDate     time.Time  `db:"created_date" json:"created_date"`
	CreatedBy       uuid.UUID  `db:"created_by" json:"created_by"`
	ModifiedDate    *time.Time `db:"modified_date" json:"modified_date"`
	ModifiedBy      *uuid.UUID `db:"modified_by" json:"modified_by"`
	DeletedDate     *time.Time `db:"deleted_date" json:"deleted_date"`
	DeletedBy       *uuid.UUID `db:"deleted_by" json:"deleted_by"`
}

// IsActive reports whether the product has not been soft-deleted.
func (p *Product) IsActive() bool { return p.DeletedDate == nil }

// Status maps a lifecycle status name to its identifier.
type Status struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Name string    `db:"name" json:"name"`
}
