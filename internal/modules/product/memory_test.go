package product

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memoryRepo is an in-memory Repository that mirrors the SQL statements.
type memoryRepo struct {
	mu       sync.Mutex
	products []*Product
	calls    int
	err      error
}

func newMemoryRepo() *memoryRepo { return &memoryRepo{} }

func (r *memoryRepo) Create(ctx context.Context, p *Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return r.err
	}
	p.ID = uuid.New()
	stored := *p
	r.products = append(r.products, &stored)
	return nil
}

func (r *memoryRepo) List(ctx context.Context) ([]*Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	out := make([]*Product, 0, len(r.products))
	for _, p := range r.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	for _, p := range r.products {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryRepo) Update(ctx context.Context, id uuid.UUID, c Changes) (*Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	p := r.active(id)
	if p == nil {
		return nil, ErrNotFound
	}
	if c.Name != nil {
		p.Name = *c.Name
	}
	if c.Description != nil {
		p.Description = *c.Description
	}
	if c.Points != nil {
		p.Points = *c.Points
	}
	switch {
	case c.ClearInitialQuantity:
		p.InitialQuantity = nil
	case c.InitialQuantity != nil:
		v := *c.InitialQuantity
		p.InitialQuantity = &v
	}
	switch {
	case c.ClearQuantityLimit:
		p.QuantityLimit = nil
	case c.QuantityLimit != nil:
		v := *c.QuantityLimit
		p.QuantityLimit = &v
	}
	modified := c.ModifiedDate
	p.ModifiedDate = &modified
	p.ModifiedBy = c.ModifiedBy
	cp := *p
	return &cp, nil
}

func (r *memoryRepo) SoftDelete(ctx context.Context, id uuid.UUID, deletedDate time.Time, deletedBy *uuid.UUID) (*Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	p := r.active(id)
	if p == nil {
		return nil, ErrNotFound
	}
	p.DeletedDate = &deletedDate
	p.DeletedBy = deletedBy
	cp := *p
	return &cp, nil
}

func (r *memoryRepo) active(id uuid.UUID) *Product {
	for _, p := range r.products {
		if p.ID == id && p.IsActive() {
			return p
		}
	}
	return nil
}

func (r *memoryRepo) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

// memoryStatusRepo resolves names from a fixed map.
type memoryStatusRepo struct {
	statuses map[string]uuid.UUID
	calls    int
}

func newMemoryStatusRepo() *memoryStatusRepo {
	return &memoryStatusRepo{statuses: map[string]uuid.UUID{StatusPublished: publishedID}}
}

func (r *memoryStatusRepo) GetStatusByName(ctx context.Context, name string) (*Status, error) {
	r.calls++
	id, ok := r.statuses[name]
	if !ok {
		return nil, errors.New("sql: no rows in result set")
	}
	return &Status{ID: id, Name: name}, nil
}

var publishedID = uuid.MustParse("6f1c0c3e-2b8a-4e57-9d43-0f6a3a1d9b10")

var fixedNow = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

func newTestService() (*service, *memoryRepo, *memoryStatusRepo) {
	repo := newMemoryRepo()
	statuses := newMemoryStatusRepo()
	svc := NewService(repo, statuses).(*service)
	svc.now = func() time.Time { return fixedNow }
	return svc, repo, statuses
}

func ptr[T any](v T) *T { return &v }
