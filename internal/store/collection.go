// Package store holds investor records in memory. A Store is built per
// request from persisted rows or a mirrored snapshot and is owned by a single
// goroutine.
package store

import (
	apperrors "fundportal/internal/errors"
	"fundportal/internal/models"
)

// Collection is an insertion-ordered set of records keyed by identifier.
type Collection[T models.Record] struct {
	items []T
	index map[string]int
}

// NewCollection builds a collection from items, rejecting invalid records and
// duplicate identifiers.
func NewCollection[T models.Record](items ...T) (*Collection[T], error) {
	c := &Collection[T]{index: make(map[string]int, len(items))}
	for _, item := range items {
		if err := c.Create(item); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// FindByID returns the record with the given id or ErrRecordNotFound.
func (c *Collection[T]) FindByID(id string) (T, error) {
	if i, ok := c.index[id]; ok {
		return c.items[i], nil
	}
	var zero T
	return zero, apperrors.WithMessage(apperrors.ErrRecordNotFound, "record "+id+" not found")
}

// Has reports whether a record with the given id exists.
func (c *Collection[T]) Has(id string) bool {
	_, ok := c.index[id]
	return ok
}

// Create appends a new record. An existing id is ErrDuplicateIdentifier.
func (c *Collection[T]) Create(record T) error {
	if err := record.Validate(); err != nil {
		return err
	}
	if c.Has(record.GetID()) {
		return apperrors.WithMessage(apperrors.ErrDuplicateIdentifier, "record "+record.GetID()+" already exists")
	}
	c.append(record)
	return nil
}

// Upsert replaces the record with the same id in place, or appends it when
// the id is new.
func (c *Collection[T]) Upsert(record T) error {
	if err := record.Validate(); err != nil {
		return err
	}
	if i, ok := c.index[record.GetID()]; ok {
		c.items[i] = record
		return nil
	}
	c.append(record)
	return nil
}

// Remove deletes the record with the given id. Unknown ids are ignored.
func (c *Collection[T]) Remove(id string) {
	i, ok := c.index[id]
	if !ok {
		return
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	delete(c.index, id)
	for j := i; j < len(c.items); j++ {
		c.index[c.items[j].GetID()] = j
	}
}

// RemoveWhere deletes every record matching fn and returns how many went.
func (c *Collection[T]) RemoveWhere(fn func(T) bool) int {
	kept := c.items[:0]
	removed := 0
	for _, item := range c.items {
		if fn(item) {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	c.items = kept
	c.reindex()
	return removed
}

// All returns a copy of the records in insertion order.
func (c *Collection[T]) All() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Filter returns the records matching fn, in insertion order.
func (c *Collection[T]) Filter(fn func(T) bool) []T {
	out := make([]T, 0)
	for _, item := range c.items {
		if fn(item) {
			out = append(out, item)
		}
	}
	return out
}

// Len returns the number of records.
func (c *Collection[T]) Len() int { return len(c.items) }

func (c *Collection[T]) append(record T) {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	c.index[record.GetID()] = len(c.items)
	c.items = append(c.items, record)
}

func (c *Collection[T]) reindex() {
	c.index = make(map[string]int, len(c.items))
	for i, item := range c.items {
		c.index[item.GetID()] = i
	}
}
