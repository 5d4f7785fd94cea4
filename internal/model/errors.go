package model

import (
	"errors"
	"fmt"
)

// Entity kinds used in error reporting
const (
	KindBoard  = "board"
	KindColumn = "column"
	KindCard   = "card"
	KindTag    = "tag"
	KindUser   = "user"
)

// ErrNotFound is the sentinel matched by errors.Is for any missing entity
var ErrNotFound = errors.New("not found")

// ErrDuplicateID is the sentinel matched by errors.Is for id collisions
var ErrDuplicateID = errors.New("duplicate id")

// NotFoundError reports a reference to an entity that does not exist
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// DuplicateIDError reports an insertion with an id that is already taken
type DuplicateIDError struct {
	Kind string
	ID   string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("%s already exists: %s", e.Kind, e.ID)
}

func (e *DuplicateIDError) Unwrap() error {
	return ErrDuplicateID
}
