// Package storage persists marketplace entities. Every read and write runs
// inside a UnitOfWork that is committed once or rolled back.
package storage

import (
	"context"
	"errors"

	"github.com/Joan938/holbertonschool-hbnb/entity"
)

var (
	// ErrNotFound is returned when a record, or a record it references, is absent.
	ErrNotFound = errors.New("storage: not found")
	// ErrConflict is returned when a write violates a uniqueness constraint.
	ErrConflict = errors.New("storage: conflict")
	// ErrUnknownField is returned when filtering on a field that is not filterable.
	ErrUnknownField = errors.New("storage: unknown field")
	// ErrClosed is returned when a unit of work is used after Commit.
	ErrClosed = errors.New("storage: unit of work closed")
)

// Collection is the per-entity contract every store implements.
type Collection[T any] interface {
	Get(ctx context.Context, id string) (T, error)
	All(ctx context.Context) ([]T, error)
	// Filter returns the records whose field equals value.
	Filter(ctx context.Context, field string, value any) ([]T, error)
	Add(ctx context.Context, v T) error
	Update(ctx context.Context, v T) error
	Delete(ctx context.Context, id string) error
}

// Links holds the place to amenity association.
type Links interface {
	// List returns the amenity ids attached to placeID, sorted.
	List(ctx context.Context, placeID string) ([]string, error)
	// Replace sets the amenities of placeID to the members of amenityIDs
	// that still exist. A missing place is ErrNotFound.
	Replace(ctx context.Context, placeID string, amenityIDs []string) error
}

// UnitOfWork groups the collections that share one transaction.
type UnitOfWork interface {
	Users() Collection[entity.User]
	Amenities() Collection[entity.Amenity]
	Places() Collection[entity.Place]
	Reviews() Collection[entity.Review]
	PlaceAmenities() Links
	Commit(ctx context.Context) error
	// Rollback discards uncommitted writes. It is a no-op after Commit.
	Rollback(ctx context.Context) error
}

// Store opens units of work.
type Store interface {
	Begin(ctx context.Context) (UnitOfWork, error)
}
