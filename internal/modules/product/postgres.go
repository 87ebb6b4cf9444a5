package product

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const productColumns = `id, event_id, vendor_id, name, description, points, initial_quantity, quantity_limit,
	status_id, created_date, created_by, modified_date, modified_by, deleted_date, deleted_by`

type postgresRepo struct{ db *sqlx.DB }

// NewPostgresRepository returns a Repository backed by the product table.
func NewPostgresRepository(db *sqlx.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, p *Product) error {
	return r.db.GetContext(ctx, p, `
		INSERT INTO product
		  (event_id, vendor_id, name, description, points, initial_quantity, quantity_limit,
		   status_id, created_date, created_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING `+productColumns,
		p.EventID, p.VendorID, p.Name, p.Description, p.Points,
		p.InitialQuantity, p.QuantityLimit, p.StatusID, p.CreatedDate, p.CreatedBy)
}

func (r *postgresRepo) List(ctx context.Context) ([]*Product, error) {
	products := []*Product{}
	if err := r.db.SelectContext(ctx, &products, `SELECT `+productColumns+` FROM product`); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	p := &Product{}
	err := r.db.GetContext(ctx, p, `SELECT `+productColumns+` FROM product WHERE id=$1`, id)
	return rowOrNotFound(p, err)
}

func (r *postgresRepo) Update(ctx context.Context, id uuid.UUID, c Changes) (*Product, error) {
	p := &Product{}
	err := r.db.GetContext(ctx, p, `
		UPDATE product
		SET name = COALESCE($1, name),
		    description = COALESCE($2, description),
		    points = COALESCE($3, points),
		    initial_quantity = CASE WHEN $4 THEN NULL ELSE COALESCE($5, initial_quantity) END,
		    quantity_limit = CASE WHEN $6 THEN NULL ELSE COALESCE($7, quantity_limit) END,
		    modified_date = $8,
		    modified_by = $9
		WHERE id = $10 AND deleted_date IS NULL
		RETURNING `+productColumns,
		c.Name, c.Description, c.Points,
		c.ClearInitialQuantity, c.InitialQuantity,
		c.ClearQuantityLimit, c.QuantityLimit,
		c.ModifiedDate, c.ModifiedBy, id)
	return rowOrNotFound(p, err)
}

// SoftDelete is a single conditional update, so two concurrent deletes of the
// same product cannot both succeed.
func (r *postgresRepo) SoftDelete(ctx context.Context, id uuid.UUID, deletedDate time.Time, deletedBy *uuid.UUID) (*Product, error) {
	p := &Product{}
	err := r.db.GetContext(ctx, p, `
		UPDATE product
		SET deleted_date = $1, deleted_by = $2
		WHERE id = $3 AND deleted_date IS NULL
		RETURNING `+productColumns,
		deletedDate, deletedBy, id)
	return rowOrNotFound(p, err)
}

func rowOrNotFound(p *Product, err error) (*Product, error) {
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

type statusPostgres struct{ db *sqlx.DB }

// NewStatusPostgresRepository returns a StatusRepository backed by the status table.
func NewStatusPostgresRepository(db *sqlx.DB) StatusRepository { return &statusPostgres{db: db} }

func (r *statusPostgres) GetStatusByName(ctx context.Context, name string) (*Status, error) {
	s := &Status{}
	if err := r.db.GetContext(ctx, s, `SELECT id, name FROM status WHERE name = $1`, name); err != nil {
		return nil, err
	}
	return s, nil
}
