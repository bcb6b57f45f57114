package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Joan938/holbertonschool-hbnb/entity"
)

// runStoreSuite checks the behaviour every Store implementation shares.
// newStore must return an empty store.
func runStoreSuite(t *testing.T, newStore func(t *testing.T) Store) {
	t.Run("add and get", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		owner := seedUser(t, s, "owner@example.com")

		got := view(t, s, func(u UnitOfWork) any {
			v, err := u.Users().Get(ctx, owner.ID)
			require.NoError(t, err)
			return v
		}).(entity.User)
		assert.Equal(t, owner.Email, got.Email)
		assert.Equal(t, owner.PasswordHash, got.PasswordHash)
		assert.True(t, owner.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("missing record", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		uow, err := s.Begin(ctx)
		require.NoError(t, err)
		defer uow.Rollback(ctx)

		_, err = uow.Places().Get(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, uow.Reviews().Delete(ctx, "nope"), ErrNotFound)
		assert.ErrorIs(t, uow.Amenities().Update(ctx, entity.Amenity{ID: "nope", Name: "x"}), ErrNotFound)
	})

	t.Run("empty listing", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		uow, err := s.Begin(ctx)
		require.NoError(t, err)
		defer uow.Rollback(ctx)

		all, err := uow.Amenities().All(ctx)
		require.NoError(t, err)
		assert.NotNil(t, all)
		assert.Empty(t, all)
	})

	t.Run("duplicate email", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		seedUser(t, s, "dup@example.com")

		uow, err := s.Begin(ctx)
		require.NoError(t, err)
		defer uow.Rollback(ctx)
		err = uow.Users().Add(ctx, testUser("dup@example.com"))
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("duplicate review pair", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		owner := seedUser(t, s, "owner@example.com")
		guest := seedUser(t, s, "guest@example.com")
		place := seedPlace(t, s, owner.ID)

		commit(t, s, func(u UnitOfWork) error {
			return u.Reviews().Add(ctx, testReview(place.ID, guest.ID))
		})

		uow, err := s.Begin(ctx)
		require.NoError(t, err)
		defer uow.Rollback(ctx)
		err = uow.Reviews().Add(ctx, testReview(place.ID, guest.ID))
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("dangling reference", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		uow, err := s.Begin(ctx)
		require.NoError(t, err)
		defer uow.Rollback(ctx)

		p, err := entity.NewPlace("Loft", "", 10, 0, 0, "ghost")
		require.NoError(t, err)
		p.ID = "p-ghost"
		p.CreatedAt, p.UpdatedAt = now(), now()
		assert.ErrorIs(t, uow.Places().Add(ctx, p), ErrNotFound)
	})

	t.Run("filter by field", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		a := seedUser(t, s, "a@example.com")
		seedUser(t, s, "b@example.com")

		uow, err := s.Begin(ctx)
		require.NoError(t, err)
		defer uow.Rollback(ctx)

		found, err := uow.Users().Filter(ctx, "email", "a@example.com")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, a.ID, found[0].ID)

		none, err := uow.Users().Filter(ctx, "email", "A@example.com")
		require.NoError(t, err)
		assert.Empty(t, none)

		_, err = uow.Users().Filter(ctx, "password_hash", "x")
		assert.ErrorIs(t, err, ErrUnknownField)
	})

	t.Run("rollback discards writes", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		uow, err := s.Begin(ctx)
		require.NoError(t, err)
		require.NoError(t, uow.Users().Add(ctx, testUser("gone@example.com")))
		require.NoError(t, uow.Rollback(ctx))

		users := view(t, s, func(u UnitOfWork) any {
			all, err := u.Users().All(ctx)
			require.NoError(t, err)
			return all
		}).([]entity.User)
		assert.Empty(t, users)
	})

	t.Run("rollback after commit is a no-op", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		uow, err := s.Begin(ctx)
		require.NoError(t, err)
		require.NoError(t, uow.Users().Add(ctx, testUser("kept@example.com")))
		require.NoError(t, uow.Commit(ctx))
		require.NoError(t, uow.Rollback(ctx))

		users := view(t, s, func(u UnitOfWork) any {
			all, err := u.Users().All(ctx)
			require.NoError(t, err)
			return all
		}).([]entity.User)
		assert.Len(t, users, 1)
	})

	t.Run("place amenity links", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		owner := seedUser(t, s, "owner@example.com")
		place := seedPlace(t, s, owner.ID)
		wifi := seedAmenity(t, s, "Wi-Fi")
		pool := seedAmenity(t, s, "Pool")

		commit(t, s, func(u UnitOfWork) error {
			return u.PlaceAmenities().Replace(ctx, place.ID, []string{wifi.ID, pool.ID})
		})
		commit(t, s, func(u UnitOfWork) error {
			return u.PlaceAmenities().Replace(ctx, place.ID, []string{pool.ID})
		})

		ids := view(t, s, func(u UnitOfWork) any {
			ids, err := u.PlaceAmenities().List(ctx, place.ID)
			require.NoError(t, err)
			return ids
		}).([]string)
		assert.Equal(t, []string{pool.ID}, ids)

		commit(t, s, func(u UnitOfWork) error {
			return u.PlaceAmenities().Replace(ctx, place.ID, []string{"vanished", pool.ID})
		})
		ids = view(t, s, func(u UnitOfWork) any {
			ids, err := u.PlaceAmenities().List(ctx, place.ID)
			require.NoError(t, err)
			return ids
		}).([]string)
		assert.Equal(t, []string{pool.ID}, ids)

		commit(t, s, func(u UnitOfWork) error {
			return u.Amenities().Delete(ctx, pool.ID)
		})
		ids = view(t, s, func(u UnitOfWork) any {
			ids, err := u.PlaceAmenities().List(ctx, place.ID)
			require.NoError(t, err)
			return ids
		}).([]string)
		assert.Empty(t, ids)
	})

	t.Run("deleting a place removes its reviews", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		owner := seedUser(t, s, "owner@example.com")
		guest := seedUser(t, s, "guest@example.com")
		place := seedPlace(t, s, owner.ID)
		commit(t, s, func(u UnitOfWork) error {
			return u.Reviews().Add(ctx, testReview(place.ID, guest.ID))
		})

		commit(t, s, func(u UnitOfWork) error {
			return u.Places().Delete(ctx, place.ID)
		})

		reviews := view(t, s, func(u UnitOfWork) any {
			all, err := u.Reviews().All(ctx)
			require.NoError(t, err)
			return all
		}).([]entity.Review)
		assert.Empty(t, reviews)
	})

	t.Run("update keeps identity", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		owner := seedUser(t, s, "owner@example.com")
		place := seedPlace(t, s, owner.ID)

		place.Title = "Renamed"
		place.UpdatedAt = now().Add(time.Minute)
		commit(t, s, func(u UnitOfWork) error {
			return u.Places().Update(ctx, place)
		})

		got := view(t, s, func(u UnitOfWork) any {
			v, err := u.Places().Get(ctx, place.ID)
			require.NoError(t, err)
			return v
		}).(entity.Place)
		assert.Equal(t, "Renamed", got.Title)
		assert.Equal(t, owner.ID, got.OwnerID)
	})
}

var clock = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func now() time.Time {
	clock = clock.Add(time.Second)
	return clock
}

type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "hash:" + p, nil }

func testUser(email string) entity.User {
	u, err := entity.NewUser("Test", "User", email, "password1", false, plainHasher{})
	if err != nil {
		panic(err)
	}
	u.ID = "u-" + email
	u.CreatedAt, u.UpdatedAt = now(), now()
	return u
}

func testReview(placeID, userID string) entity.Review {
	r, err := entity.NewReview("Lovely", 4, placeID, userID)
	if err != nil {
		panic(err)
	}
	r.ID = "r-" + placeID + "-" + userID + "-" + now().Format("150405")
	r.CreatedAt, r.UpdatedAt = now(), now()
	return r
}

func seedUser(t *testing.T, s Store, email string) entity.User {
	t.Helper()
	u := testUser(email)
	commit(t, s, func(uow UnitOfWork) error { return uow.Users().Add(context.Background(), u) })
	return u
}

func seedPlace(t *testing.T, s Store, ownerID string) entity.Place {
	t.Helper()
	p, err := entity.NewPlace("Loft", "Bright", 100, 48.8, 2.3, ownerID)
	require.NoError(t, err)
	p.ID = "p-" + ownerID
	p.CreatedAt, p.UpdatedAt = now(), now()
	commit(t, s, func(uow UnitOfWork) error { return uow.Places().Add(context.Background(), p) })
	return p
}

func seedAmenity(t *testing.T, s Store, name string) entity.Amenity {
	t.Helper()
	a, err := entity.NewAmenity(name)
	require.NoError(t, err)
	a.ID = "a-" + name
	a.CreatedAt, a.UpdatedAt = now(), now()
	commit(t, s, func(uow UnitOfWork) error { return uow.Amenities().Add(context.Background(), a) })
	return a
}

func commit(t *testing.T, s Store, fn func(UnitOfWork) error) {
	t.Helper()
	ctx := context.Background()
	uow, err := s.Begin(ctx)
	require.NoError(t, err)
	defer uow.Rollback(ctx)
	require.NoError(t, fn(uow))
	require.NoError(t, uow.Commit(ctx))
}

func view(t *testing.T, s Store, fn func(UnitOfWork) any) any {
	t.Helper()
	ctx := context.Background()
	uow, err := s.Begin(ctx)
	require.NoError(t, err)
	defer uow.Rollback(ctx)
	return fn(uow)
}
