package storage

import (
	"context"
	"fmt"
	"sort"

	"github.com/Joan938/holbertonschool-hbnb/entity"
)

// MemStore keeps everything in process. Units of work are serialized and
// operate on a private copy that replaces the shared state on Commit, so
// the same uniqueness and reference rules as the Postgres schema hold.
type MemStore struct {
	sem   chan struct{}
	state memState
}

func NewMemStore() *MemStore {
	return &MemStore{
		sem:   make(chan struct{}, 1),
		state: newMemState(),
	}
}

func (s *MemStore) Begin(ctx context.Context) (UnitOfWork, error) {
	select {
	case s.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, fmt.Errorf("storage: begin: %w", ctx.Err())
	}
	return &memUnit{store: s, work: s.state.clone()}, nil
}

type memState struct {
	users     map[string]entity.User
	amenities map[string]entity.Amenity
	places    map[string]entity.Place
	reviews   map[string]entity.Review
	links     map[string]map[string]struct{}
}

func newMemState() memState {
	return memState{
		users:     map[string]entity.User{},
		amenities: map[string]entity.Amenity{},
		places:    map[string]entity.Place{},
		reviews:   map[string]entity.Review{},
		links:     map[string]map[string]struct{}{},
	}
}

func (m memState) clone() memState {
	out := newMemState()
	for k, v := range m.users {
		out.users[k] = v
	}
	for k, v := range m.amenities {
		out.amenities[k] = v
	}
	for k, v := range m.places {
		out.places[k] = v
	}
	for k, v := range m.reviews {
		out.reviews[k] = v
	}
	for place, set := range m.links {
		cp := make(map[string]struct{}, len(set))
		for id := range set {
			cp[id] = struct{}{}
		}
		out.links[place] = cp
	}
	return out
}

type memUnit struct {
	store *MemStore
	work  memState
	done  bool
}

func (u *memUnit) Users() Collection[entity.User] {
	return &memCollection[entity.User]{u: u, rows: u.work.users, t: usersTable, check: u.checkUser, cascade: u.deleteUserDeps}
}

func (u *memUnit) Amenities() Collection[entity.Amenity] {
	return &memCollection[entity.Amenity]{u: u, rows: u.work.amenities, t: amenitiesTable, check: u.checkAmenity, cascade: u.deleteAmenityDeps}
}

func (u *memUnit) Places() Collection[entity.Place] {
	return &memCollection[entity.Place]{u: u, rows: u.work.places, t: placesTable, check: u.checkPlace, cascade: u.deletePlaceDeps,
		store: func(p entity.Place) entity.Place {
			p.Amenities = nil
			return p
		}}
}

func (u *memUnit) Reviews() Collection[entity.Review] {
	return &memCollection[entity.Review]{u: u, rows: u.work.reviews, t: reviewsTable, check: u.checkReview}
}

func (u *memUnit) PlaceAmenities() Links {
	return memLinks{u: u}
}

func (u *memUnit) Commit(context.Context) error {
	if u.done {
		return ErrClosed
	}
	u.done = true
	u.store.state = u.work
	<-u.store.sem
	return nil
}

func (u *memUnit) Rollback(context.Context) error {
	if u.done {
		return nil
	}
	u.done = true
	<-u.store.sem
	return nil
}

func (u *memUnit) checkUser(v entity.User) error {
	for _, other := range u.work.users {
		if other.ID != v.ID && other.Email == v.Email {
			return fmt.Errorf("%w: users_email_key", ErrConflict)
		}
	}
	return nil
}

func (u *memUnit) checkAmenity(v entity.Amenity) error {
	for _, other := range u.work.amenities {
		if other.ID != v.ID && other.Name == v.Name {
			return fmt.Errorf("%w: amenities_name_key", ErrConflict)
		}
	}
	return nil
}

func (u *memUnit) checkPlace(v entity.Place) error {
	if _, ok := u.work.users[v.OwnerID]; !ok {
		return fmt.Errorf("%w: places_owner_id_fkey", ErrNotFound)
	}
	return nil
}

func (u *memUnit) checkReview(v entity.Review) error {
	if _, ok := u.work.places[v.PlaceID]; !ok {
		return fmt.Errorf("%w: reviews_place_id_fkey", ErrNotFound)
	}
	if _, ok := u.work.users[v.UserID]; !ok {
		return fmt.Errorf("%w: reviews_user_id_fkey", ErrNotFound)
	}
	for _, other := range u.work.reviews {
		if other.ID != v.ID && other.UserID == v.UserID && other.PlaceID == v.PlaceID {
			return fmt.Errorf("%w: reviews_user_id_place_id_key", ErrConflict)
		}
	}
	return nil
}

func (u *memUnit) deleteUserDeps(id string) {
	for pid, p := range u.work.places {
		if p.OwnerID == id {
			delete(u.work.places, pid)
			u.deletePlaceDeps(pid)
		}
	}
	for rid, r := range u.work.reviews {
		if r.UserID == id {
			delete(u.work.reviews, rid)
		}
	}
}

func (u *memUnit) deletePlaceDeps(id string) {
	delete(u.work.links, id)
	for rid, r := range u.work.reviews {
		if r.PlaceID == id {
			delete(u.work.reviews, rid)
		}
	}
}

func (u *memUnit) deleteAmenityDeps(id string) {
	for _, set := range u.work.links {
		delete(set, id)
	}
}

type memCollection[T any] struct {
	u       *memUnit
	rows    map[string]T
	t       table[T]
	check   func(T) error
	cascade func(id string)
	store   func(T) T
}

func (c *memCollection[T]) Get(_ context.Context, id string) (T, error) {
	var zero T
	if c.u.done {
		return zero, ErrClosed
	}
	v, ok := c.rows[id]
	if !ok {
		return zero, fmt.Errorf("%w: %s %s", ErrNotFound, c.t.name, id)
	}
	return v, nil
}

func (c *memCollection[T]) All(context.Context) ([]T, error) {
	if c.u.done {
		return nil, ErrClosed
	}
	out := make([]T, 0, len(c.rows))
	for _, v := range c.rows {
		out = append(out, v)
	}
	c.sort(out)
	return out, nil
}

func (c *memCollection[T]) Filter(_ context.Context, field string, value any) ([]T, error) {
	if c.u.done {
		return nil, ErrClosed
	}
	if !c.t.filterable[field] {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownField, c.t.name, field)
	}
	out := []T{}
	for _, v := range c.rows {
		if c.t.column(v, field) == value {
			out = append(out, v)
		}
	}
	c.sort(out)
	return out, nil
}

func (c *memCollection[T]) Add(_ context.Context, v T) error {
	if c.u.done {
		return ErrClosed
	}
	id := c.t.id(v)
	if _, exists := c.rows[id]; exists {
		return fmt.Errorf("%w: %s_pkey", ErrConflict, c.t.name)
	}
	if err := c.check(v); err != nil {
		return err
	}
	c.rows[id] = c.stored(v)
	return nil
}

func (c *memCollection[T]) Update(_ context.Context, v T) error {
	if c.u.done {
		return ErrClosed
	}
	id := c.t.id(v)
	if _, exists := c.rows[id]; !exists {
		return fmt.Errorf("%w: %s %s", ErrNotFound, c.t.name, id)
	}
	if err := c.check(v); err != nil {
		return err
	}
	c.rows[id] = c.stored(v)
	return nil
}

func (c *memCollection[T]) Delete(_ context.Context, id string) error {
	if c.u.done {
		return ErrClosed
	}
	if _, exists := c.rows[id]; !exists {
		return fmt.Errorf("%w: %s %s", ErrNotFound, c.t.name, id)
	}
	delete(c.rows, id)
	if c.cascade != nil {
		c.cascade(id)
	}
	return nil
}

func (c *memCollection[T]) stored(v T) T {
	if c.store != nil {
		return c.store(v)
	}
	return v
}

func (c *memCollection[T]) sort(rows []T) {
	sort.Slice(rows, func(i, j int) bool {
		ci, cj := c.t.created(rows[i]), c.t.created(rows[j])
		if !ci.Equal(cj) {
			return ci.Before(cj)
		}
		return c.t.id(rows[i]) < c.t.id(rows[j])
	})
}

type memLinks struct {
	u *memUnit
}

func (l memLinks) List(_ context.Context, placeID string) ([]string, error) {
	if l.u.done {
		return nil, ErrClosed
	}
	ids := make([]string, 0, len(l.u.work.links[placeID]))
	for id := range l.u.work.links[placeID] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (l memLinks) Replace(_ context.Context, placeID string, amenityIDs []string) error {
	if l.u.done {
		return ErrClosed
	}
	if _, ok := l.u.work.places[placeID]; !ok {
		return fmt.Errorf("%w: place_amenities_place_id_fkey", ErrNotFound)
	}
	set := make(map[string]struct{}, len(amenityIDs))
	for _, id := range amenityIDs {
		if _, ok := l.u.work.amenities[id]; ok {
			set[id] = struct{}{}
		}
	}
	l.u.work.links[placeID] = set
	return nil
}
