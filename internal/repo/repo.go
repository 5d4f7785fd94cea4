// Package repo provides the generic in-memory id-keyed store used for
// every entity type. It is not safe for concurrent use; the service layer
// serializes access.
package repo

import (
	"sort"

	"github.com/mkessler/taskan/internal/model"
)

// Entity is anything addressable by a string id
type Entity interface {
	ID() string
}

// Repository stores entities of one kind by id. Ids are unique; inserting
// a taken id is an error, looking up a missing one is not.
type Repository[T Entity] struct {
	kind  string
	items map[string]T
}

// New creates an empty repository. The kind names the entity type in
// error messages ("board", "card", ...).
func New[T Entity](kind string) *Repository[T] {
	return &Repository[T]{
		kind:  kind,
		items: make(map[string]T),
	}
}

// Add stores the item under its own id. Returns a DuplicateIDError when
// the id is already taken; the stored item is left intact.
func (r *Repository[T]) Add(item T) error {
	id := item.ID()
	if _, ok := r.items[id]; ok {
		return &model.DuplicateIDError{Kind: r.kind, ID: id}
	}
	r.items[id] = item
	return nil
}

// Remove deletes the item with the given id. Returns a NotFoundError when
// no such item exists.
func (r *Repository[T]) Remove(id string) error {
	if _, ok := r.items[id]; !ok {
		return &model.NotFoundError{Kind: r.kind, ID: id}
	}
	delete(r.items, id)
	return nil
}

// GetAll returns every stored item sorted by id, so repeated calls over
// unchanged contents always list in the same order.
func (r *Repository[T]) GetAll() []T {
	ids := make([]string, 0, len(r.items))
	for id := range r.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	items := make([]T, 0, len(ids))
	for _, id := range ids {
		items = append(items, r.items[id])
	}
	return items
}

// FindByID returns the item and whether it exists. Absence is not an
// error.
func (r *Repository[T]) FindByID(id string) (T, bool) {
	item, ok := r.items[id]
	return item, ok
}

// Exists reports whether an item with the given id is stored
func (r *Repository[T]) Exists(id string) bool {
	_, ok := r.items[id]
	return ok
}

// Size returns the number of stored items
func (r *Repository[T]) Size() int {
	return len(r.items)
}

// Clear removes all items
func (r *Repository[T]) Clear() {
	r.items = make(map[string]T)
}
