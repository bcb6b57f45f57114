package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStore(t *testing.T) {
	runStoreSuite(t, func(*testing.T) Store { return NewMemStore() })
}

func TestMemStoreSerializesUnits(t *testing.T) {
	s := NewMemStore()
	first, err := s.Begin(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = s.Begin(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, first.Rollback(context.Background()))
	second, err := s.Begin(context.Background())
	require.NoError(t, err)
	require.NoError(t, second.Rollback(context.Background()))
}

func TestMemStoreClosedUnit(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()
	uow, err := s.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, uow.Commit(ctx))

	_, err = uow.Users().All(ctx)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, uow.Commit(ctx), ErrClosed)
}

func TestMemStoreDeletingUserCascades(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()
	owner := seedUser(t, s, "owner@example.com")
	guest := seedUser(t, s, "guest@example.com")
	place := seedPlace(t, s, owner.ID)
	commit(t, s, func(u UnitOfWork) error {
		return u.Reviews().Add(ctx, testReview(place.ID, guest.ID))
	})

	commit(t, s, func(u UnitOfWork) error { return u.Users().Delete(ctx, owner.ID) })

	uow, err := s.Begin(ctx)
	require.NoError(t, err)
	defer uow.Rollback(ctx)
	places, err := uow.Places().All(ctx)
	require.NoError(t, err)
	assert.Empty(t, places)
	reviews, err := uow.Reviews().All(ctx)
	require.NoError(t, err)
	assert.Empty(t, reviews)
}
