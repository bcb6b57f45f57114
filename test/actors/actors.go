package actors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Joan938/holbertonschool-hbnb/entity"
	"github.com/Joan938/holbertonschool-hbnb/facade"
)

// Registrar keeps registering the same email. Only the first attempt may win.
func Registrar(ctx context.Context, svc *facade.Service, email string, rng *rand.Rand, stop <-chan struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			return nil
		default:
		}
		_, err := svc.CreateUser(ctx, facade.CreateUserInput{
			FirstName: "Racing",
			LastName:  "Registrar",
			Email:     email,
			Password:  "password1",
		})
		if !tolerated(ctx, err) {
			return fmt.Errorf("registrar: %w", err)
		}
		pause(rng, 10, 20)
	}
}

// Reviewer races other reviewers acting as the same guest, creating and
// deleting the guest's review of placeID.
func Reviewer(ctx context.Context, svc *facade.Service, guest facade.Identity, placeID string, rng *rand.Rand, stop <-chan struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			return nil
		default:
		}
		r, err := svc.CreateReview(ctx, guest, facade.CreateReviewInput{
			Text:    "Stayed here",
			Rating:  1 + rng.Intn(5),
			PlaceID: placeID,
		})
		if !tolerated(ctx, err) {
			return fmt.Errorf("reviewer create: %w", err)
		}
		if err == nil && rng.Intn(2) == 0 {
			if err := svc.DeleteReview(ctx, guest, r.ID); !tolerated(ctx, err) {
				return fmt.Errorf("reviewer delete: %w", err)
			}
		}
		pause(rng, 15, 30)
	}
}

// SelfReviewer has the owner try to review their own place. Every attempt
// must be refused.
func SelfReviewer(ctx context.Context, svc *facade.Service, owner facade.Identity, placeID string, rng *rand.Rand, stop <-chan struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			return nil
		default:
		}
		_, err := svc.CreateReview(ctx, owner, facade.CreateReviewInput{Text: "Mine", Rating: 5, PlaceID: placeID})
		if err == nil {
			return errors.New("self reviewer: owner review accepted")
		}
		if !errors.Is(err, facade.ErrForbidden) && !tolerated(ctx, err) {
			return fmt.Errorf("self reviewer: %w", err)
		}
		pause(rng, 30, 50)
	}
}

// AmenityToggler replaces the place's amenity set with random subsets of
// the current amenities, racing AmenityChurner deleting some of them.
func AmenityToggler(ctx context.Context, svc *facade.Service, owner facade.Identity, placeID string, rng *rand.Rand, stop <-chan struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			return nil
		default:
		}
		amenities, err := svc.ListAmenities(ctx)
		if !tolerated(ctx, err) {
			return fmt.Errorf("amenity toggler list: %w", err)
		}
		subset := make([]any, 0, len(amenities))
		for _, a := range amenities {
			if rng.Intn(2) == 0 {
				subset = append(subset, a.ID)
			}
		}
		_, err = svc.UpdatePlace(ctx, owner, placeID, entity.Fields{
			"amenities": subset,
			"price":     float64(rng.Intn(500)),
		})
		if !tolerated(ctx, err) {
			return fmt.Errorf("amenity toggler: %w", err)
		}
		pause(rng, 20, 40)
	}
}

// AmenityChurner creates and deletes a short-lived amenity named name.
func AmenityChurner(ctx context.Context, svc *facade.Service, admin facade.Identity, name string, rng *rand.Rand, stop <-chan struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			return nil
		default:
		}
		a, err := svc.CreateAmenity(ctx, admin, facade.CreateAmenityInput{Name: name})
		if !tolerated(ctx, err) {
			return fmt.Errorf("amenity churner create: %w", err)
		}
		if err == nil {
			pause(rng, 40, 80)
			if err := svc.DeleteAmenity(ctx, admin, a.ID); !tolerated(ctx, err) {
				return fmt.Errorf("amenity churner delete: %w", err)
			}
		}
		pause(rng, 20, 40)
	}
}

func pause(rng *rand.Rand, minMs, spreadMs int) {
	time.Sleep(time.Duration(minMs+rng.Intn(spreadMs)) * time.Millisecond)
}

// tolerated reports whether err is an expected outcome under contention
// or injected backend failures.
func tolerated(ctx context.Context, err error) bool {
	if err == nil || ctx.Err() != nil {
		return true
	}
	if errors.Is(err, facade.ErrConflict) || errors.Is(err, facade.ErrNotFound) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 08: connection exception, 57P: operator intervention, 40: rollback.
		return strings.HasPrefix(pgErr.Code, "08") || strings.HasPrefix(pgErr.Code, "57P") || strings.HasPrefix(pgErr.Code, "40")
	}
	var netErr net.Error
	return errors.As(err, &netErr) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, pgx.ErrTxClosed) ||
		pgconn.SafeToRetry(err) ||
		strings.Contains(err.Error(), "conn closed")
}
