// Package ledger maintains the place to amenity association. Amenity
// references are soft: identifiers that resolve to nothing are dropped
// instead of failing the operation.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/Joan938/holbertonschool-hbnb/entity"
	"github.com/Joan938/holbertonschool-hbnb/storage"
)

// Ref names an amenity. Both raw identifiers and resolved records
// implement it, so callers never branch on which one they hold.
type Ref interface {
	AmenityRef() string
}

// ID is an unresolved amenity identifier.
type ID string

func (id ID) AmenityRef() string { return string(id) }

// IDs wraps raw identifiers as refs.
func IDs(ids ...string) []Ref {
	refs := make([]Ref, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, ID(id))
	}
	return refs
}

// ParseRefs converts the decoded "amenities" value of an update body.
// null clears the association; any non-list value is a type error.
func ParseRefs(v any) ([]Ref, error) {
	switch list := v.(type) {
	case nil:
		return []Ref{}, nil
	case []Ref:
		return list, nil
	case []string:
		return IDs(list...), nil
	case []entity.Amenity:
		refs := make([]Ref, 0, len(list))
		for _, a := range list {
			refs = append(refs, a)
		}
		return refs, nil
	case []any:
		refs := make([]Ref, 0, len(list))
		for _, item := range list {
			switch x := item.(type) {
			case string:
				refs = append(refs, ID(x))
			case Ref:
				refs = append(refs, x)
			default:
				return nil, typeError()
			}
		}
		return refs, nil
	default:
		return nil, typeError()
	}
}

func typeError() error {
	return &entity.ValidationError{Field: "amenities", Reason: "must be a list of amenity ids", Kind: entity.KindType}
}

// Resolve normalizes refs to identifiers, drops duplicates and every
// identifier the store does not know, and returns the rest sorted.
// Pre-resolved records are looked up again like raw ids.
func Resolve(ctx context.Context, amenities storage.Collection[entity.Amenity], refs []Ref) ([]string, error) {
	seen := make(map[string]bool, len(refs))
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		if ref == nil {
			continue
		}
		id := ref.AmenityRef()
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true

		if _, err := amenities.Get(ctx, id); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("ledger: resolve amenity %s: %w", id, err)
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Replace clears the amenities of placeID and attaches the resolved refs.
// An amenity deleted between resolution and the write is dropped like any
// other unknown id, so the returned set is read back from the store.
// Applying the same refs twice leaves the same set.
func Replace(ctx context.Context, uow storage.UnitOfWork, placeID string, refs []Ref) ([]string, error) {
	ids, err := Resolve(ctx, uow.Amenities(), refs)
	if err != nil {
		return nil, err
	}
	if err := uow.PlaceAmenities().Replace(ctx, placeID, ids); err != nil {
		return nil, fmt.Errorf("ledger: replace amenities of %s: %w", placeID, err)
	}
	return Attached(ctx, uow, placeID)
}

// Attached returns the amenity ids currently associated with placeID.
func Attached(ctx context.Context, uow storage.UnitOfWork, placeID string) ([]string, error) {
	ids, err := uow.PlaceAmenities().List(ctx, placeID)
	if err != nil {
		return nil, fmt.Errorf("ledger: list amenities of %s: %w", placeID, err)
	}
	return ids, nil
}

// Expand loads the amenity records for ids, skipping any that vanished.
func Expand(ctx context.Context, amenities storage.Collection[entity.Amenity], ids []string) ([]entity.Amenity, error) {
	out := make([]entity.Amenity, 0, len(ids))
	for _, id := range ids {
		a, err := amenities.Get(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("ledger: load amenity %s: %w", id, err)
		}
		out = append(out, a)
	}
	return out, nil
}
