package facade

import (
	"errors"
	"fmt"

	"github.com/Joan938/holbertonschool-hbnb/entity"
	"github.com/Joan938/holbertonschool-hbnb/storage"
)

var (
	// ErrNotFound signals a missing target or referenced entity.
	ErrNotFound = errors.New("facade: not found")
	// ErrConflict signals a uniqueness violation.
	ErrConflict = errors.New("facade: conflict")
	// ErrForbidden signals an authenticated caller without permission.
	ErrForbidden = errors.New("facade: forbidden")
	// ErrUnauthenticated signals an operation that needs a caller.
	ErrUnauthenticated = errors.New("facade: authentication required")
	// ErrInvalidCredentials signals a wrong email or password.
	ErrInvalidCredentials = errors.New("facade: invalid credentials")
)

func notFound(kind, id string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
}

func forbidden(reason string) error {
	return fmt.Errorf("%w: %s", ErrForbidden, reason)
}

func conflict(reason string) error {
	return fmt.Errorf("%w: %s", ErrConflict, reason)
}

func immutable(field string) error {
	return entity.NewValidationError(field, "cannot be changed")
}

func requireCaller(caller Identity) error {
	if !caller.Authenticated() {
		return ErrUnauthenticated
	}
	return nil
}

func requireAdmin(caller Identity) error {
	if err := requireCaller(caller); err != nil {
		return err
	}
	if !caller.IsAdmin {
		return forbidden("administrator role required")
	}
	return nil
}

// lookup maps a storage miss for kind/id onto ErrNotFound.
func lookup(err error, kind, id string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return notFound(kind, id)
	}
	return err
}

// persisted maps constraint violations raised while writing onto the same
// errors the pre-checks return. Other errors pass through unmodified.
func persisted(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrConflict):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return err
}

func rejectFields(fields entity.Fields, names ...string) error {
	for _, name := range names {
		if fields.Has(name) {
			return immutable(name)
		}
	}
	return nil
}
