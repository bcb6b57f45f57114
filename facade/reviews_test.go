package facade

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/Joan938/holbertonschool-hbnb/entity"
	"github.com/Joan938/holbertonschool-hbnb/storage"
)

func TestReviewLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, owner := f.user(t, "owner@example.com")
	_, guest := f.user(t, "guest@example.com")
	p := f.place(t, owner)

	r, err := f.svc.CreateReview(ctx, guest, CreateReviewInput{Text: "Lovely stay", Rating: 5, PlaceID: p.ID})
	require.NoError(t, err)
	assert.Equal(t, guest.UserID, r.UserID)
	assert.Equal(t, p.ID, r.PlaceID)

	byPlace, err := f.svc.ListReviewsByPlace(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []entity.Review{r}, byPlace)

	updated, err := f.svc.UpdateReview(ctx, guest, r.ID, entity.Fields{"rating": 4, "text": "Good stay"})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Rating)
	assert.Equal(t, "Good stay", updated.Text)

	require.NoError(t, f.svc.DeleteReview(ctx, guest, r.ID))
	_, err = f.svc.GetReview(ctx, r.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateReviewChecks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, owner := f.user(t, "owner@example.com")
	_, guest := f.user(t, "guest@example.com")
	p := f.place(t, owner)

	_, err := f.svc.CreateReview(ctx, guest, CreateReviewInput{Text: "Hi", Rating: 3, PlaceID: "ghost"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.CreateReview(ctx, Identity{}, CreateReviewInput{Text: "Hi", Rating: 3, PlaceID: p.ID})
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = f.svc.CreateReview(ctx, guest, CreateReviewInput{Text: "Hi", Rating: 3})
	requireValidation(t, err, "place_id", entity.KindValue)

	// Self-review is refused even with an invalid rating.
	_, err = f.svc.CreateReview(ctx, owner, CreateReviewInput{Text: "Mine", Rating: 9, PlaceID: p.ID})
	assert.ErrorIs(t, err, ErrForbidden)

	for _, rating := range []int{0, 6} {
		_, err = f.svc.CreateReview(ctx, guest, CreateReviewInput{Text: "Hi", Rating: rating, PlaceID: p.ID})
		requireValidation(t, err, "rating", entity.KindValue)
	}
	_, err = f.svc.CreateReview(ctx, guest, CreateReviewInput{Text: "", Rating: 3, PlaceID: p.ID})
	requireValidation(t, err, "text", entity.KindValue)

	_, err = f.svc.CreateReview(ctx, guest, CreateReviewInput{Text: "First", Rating: 3, PlaceID: p.ID})
	require.NoError(t, err)

	// Duplicate is reported even with an invalid rating.
	_, err = f.svc.CreateReview(ctx, guest, CreateReviewInput{Text: "Second", Rating: 0, PlaceID: p.ID})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestUpdateReviewImmutableFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, owner := f.user(t, "owner@example.com")
	_, guest := f.user(t, "guest@example.com")
	p := f.place(t, owner)
	other := f.place(t, owner)
	r, err := f.svc.CreateReview(ctx, guest, CreateReviewInput{Text: "Fine", Rating: 3, PlaceID: p.ID})
	require.NoError(t, err)

	updated, err := f.svc.UpdateReview(ctx, guest, r.ID, entity.Fields{
		"text":     "Fine indeed",
		"place_id": other.ID,
		"user_id":  owner.UserID,
	})
	require.NoError(t, err)
	assert.Equal(t, p.ID, updated.PlaceID)
	assert.Equal(t, guest.UserID, updated.UserID)
	assert.Equal(t, "Fine indeed", updated.Text)

	_, err = f.svc.UpdateReview(ctx, guest, r.ID, entity.Fields{"rating": 4.5})
	requireValidation(t, err, "rating", entity.KindType)

	_, err = f.svc.UpdateReview(ctx, owner, r.ID, entity.Fields{"rating": 0})
	assert.ErrorIs(t, err, ErrForbidden)

	assert.ErrorIs(t, f.svc.DeleteReview(ctx, owner, r.ID), ErrForbidden)
	assert.ErrorIs(t, f.svc.DeleteReview(ctx, guest, "ghost"), ErrNotFound)
}

func TestListReviewsByPlace(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, owner := f.user(t, "owner@example.com")
	p := f.place(t, owner)

	reviews, err := f.svc.ListReviewsByPlace(ctx, p.ID)
	require.NoError(t, err)
	assert.NotNil(t, reviews)
	assert.Empty(t, reviews)

	_, err = f.svc.ListReviewsByPlace(ctx, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConcurrentDuplicateReviews(t *testing.T) {
	f := newFixture(t)
	_, owner := f.user(t, "owner@example.com")
	_, guest := f.user(t, "guest@example.com")
	p := f.place(t, owner)

	var created, conflicts atomic.Int32
	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < 16; i++ {
		g.Go(func() error {
			_, err := f.svc.CreateReview(ctx, guest, CreateReviewInput{Text: "Again", Rating: 4, PlaceID: p.ID})
			switch {
			case err == nil:
				created.Add(1)
			case errors.Is(err, ErrConflict):
				conflicts.Add(1)
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, int32(1), created.Load())
	assert.Equal(t, int32(15), conflicts.Load())
}

// staleStore hides existing reviews and users from filters, as a
// concurrent writer that committed after the pre-check would.
type staleStore struct{ storage.Store }

func (s staleStore) Begin(ctx context.Context) (storage.UnitOfWork, error) {
	uow, err := s.Store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return staleUnit{uow}, nil
}

type staleUnit struct{ storage.UnitOfWork }

func (u staleUnit) Reviews() storage.Collection[entity.Review] {
	return blindFilter[entity.Review]{u.UnitOfWork.Reviews()}
}

func (u staleUnit) Users() storage.Collection[entity.User] {
	return blindFilter[entity.User]{u.UnitOfWork.Users()}
}

type blindFilter[T any] struct{ storage.Collection[T] }

func (blindFilter[T]) Filter(context.Context, string, any) ([]T, error) { return []T{}, nil }

func TestStorageUniquenessBacksPreChecks(t *testing.T) {
	mem := storage.NewMemStore()
	f := newFixtureWithStore(t, mem)
	_, owner := f.user(t, "owner@example.com")
	_, guest := f.user(t, "guest@example.com")
	p := f.place(t, owner)
	_, err := f.svc.CreateReview(context.Background(), guest, CreateReviewInput{Text: "One", Rating: 4, PlaceID: p.ID})
	require.NoError(t, err)

	stale := newFixtureWithStore(t, staleStore{mem})
	n := 0
	stale.svc.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("stale-%d", n)
	})

	_, err = stale.svc.CreateReview(context.Background(), guest, CreateReviewInput{Text: "Two", Rating: 4, PlaceID: p.ID})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = stale.svc.CreateUser(context.Background(), CreateUserInput{
		FirstName: "Dup", LastName: "User", Email: "guest@example.com", Password: testPassword,
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCreateReviewChecksAuthorizationBeforeTypes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, owner := f.user(t, "owner@example.com")
	_, guest := f.user(t, "guest@example.com")
	p := f.place(t, owner)

	_, err := f.svc.CreateReview(ctx, owner, entity.Fields{"text": "Mine", "rating": 4.5, "place_id": p.ID})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.CreateReview(ctx, guest, entity.Fields{"text": 12, "rating": 4.5, "place_id": "ghost"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.CreateReview(ctx, guest, entity.Fields{"text": "Nice", "rating": 4.5, "place_id": p.ID})
	requireValidation(t, err, "rating", entity.KindType)

	_, err = f.svc.CreateReview(ctx, guest, entity.Fields{"text": "Nice", "rating": 4, "place_id": 7})
	requireValidation(t, err, "place_id", entity.KindType)

	r, err := f.svc.CreateReview(ctx, guest, entity.Fields{"text": "Nice", "rating": float64(4), "place_id": p.ID})
	require.NoError(t, err)
	assert.Equal(t, 4, r.Rating)

	_, err = f.svc.CreateReview(ctx, guest, entity.Fields{"text": true, "rating": "five", "place_id": p.ID})
	assert.ErrorIs(t, err, ErrConflict)
}
