package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Joan938/holbertonschool-hbnb/entity"
)

var dialect = goqu.Dialect("postgres")

// TxBeginner is satisfied by *pgxpool.Pool and *pgx.Conn.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PGStore runs each unit of work in its own Postgres transaction.
type PGStore struct {
	db TxBeginner
}

func NewPGStore(db TxBeginner) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Begin(ctx context.Context) (UnitOfWork, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage: begin: %w", err)
	}
	return &pgUnit{tx: tx}, nil
}

type pgUnit struct {
	tx pgx.Tx
}

func (u *pgUnit) Users() Collection[entity.User] {
	return pgCollection[entity.User]{tx: u.tx, t: usersTable}
}

func (u *pgUnit) Amenities() Collection[entity.Amenity] {
	return pgCollection[entity.Amenity]{tx: u.tx, t: amenitiesTable}
}

func (u *pgUnit) Places() Collection[entity.Place] {
	return pgCollection[entity.Place]{tx: u.tx, t: placesTable}
}

func (u *pgUnit) Reviews() Collection[entity.Review] {
	return pgCollection[entity.Review]{tx: u.tx, t: reviewsTable}
}

func (u *pgUnit) PlaceAmenities() Links {
	return pgLinks{tx: u.tx}
}

func (u *pgUnit) Commit(ctx context.Context) error {
	if err := u.tx.Commit(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return ErrClosed
		}
		return translate(err)
	}
	return nil
}

func (u *pgUnit) Rollback(ctx context.Context) error {
	if err := u.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("storage: rollback: %w", err)
	}
	return nil
}

type pgCollection[T any] struct {
	tx pgx.Tx
	t  table[T]
}

func (c pgCollection[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	ds := dialect.From(c.t.name).Where(goqu.C("id").Eq(id))
	rows, err := c.query(ctx, ds)
	if err != nil {
		return zero, err
	}
	v, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, fmt.Errorf("%w: %s %s", ErrNotFound, c.t.name, id)
		}
		return zero, fmt.Errorf("storage: get %s: %w", c.t.name, err)
	}
	return v, nil
}

func (c pgCollection[T]) All(ctx context.Context) ([]T, error) {
	return c.list(ctx, dialect.From(c.t.name))
}

func (c pgCollection[T]) Filter(ctx context.Context, field string, value any) ([]T, error) {
	if !c.t.filterable[field] {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownField, c.t.name, field)
	}
	return c.list(ctx, dialect.From(c.t.name).Where(goqu.C(field).Eq(value)))
}

func (c pgCollection[T]) Add(ctx context.Context, v T) error {
	q, args, err := dialect.Insert(c.t.name).Rows(c.t.record(v)).Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("storage: build insert %s: %w", c.t.name, err)
	}
	if _, err := c.tx.Exec(ctx, q, args...); err != nil {
		return translate(err)
	}
	return nil
}

func (c pgCollection[T]) Update(ctx context.Context, v T) error {
	id := c.t.id(v)
	rec := c.t.record(v)
	delete(rec, "id")
	delete(rec, "created_at")

	q, args, err := dialect.Update(c.t.name).Set(rec).Where(goqu.C("id").Eq(id)).Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("storage: build update %s: %w", c.t.name, err)
	}
	tag, err := c.tx.Exec(ctx, q, args...)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s %s", ErrNotFound, c.t.name, id)
	}
	return nil
}

func (c pgCollection[T]) Delete(ctx context.Context, id string) error {
	q, args, err := dialect.Delete(c.t.name).Where(goqu.C("id").Eq(id)).Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("storage: build delete %s: %w", c.t.name, err)
	}
	tag, err := c.tx.Exec(ctx, q, args...)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s %s", ErrNotFound, c.t.name, id)
	}
	return nil
}

func (c pgCollection[T]) list(ctx context.Context, ds *goqu.SelectDataset) ([]T, error) {
	rows, err := c.query(ctx, ds.Order(goqu.C("created_at").Asc(), goqu.C("id").Asc()))
	if err != nil {
		return nil, err
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, fmt.Errorf("storage: list %s: %w", c.t.name, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (c pgCollection[T]) query(ctx context.Context, ds *goqu.SelectDataset) (pgx.Rows, error) {
	q, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("storage: build select %s: %w", c.t.name, err)
	}
	rows, err := c.tx.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: query %s: %w", c.t.name, err)
	}
	return rows, nil
}

type pgLinks struct {
	tx pgx.Tx
}

func (l pgLinks) List(ctx context.Context, placeID string) ([]string, error) {
	q, args, err := dialect.From("place_amenities").
		Select("amenity_id").
		Where(goqu.C("place_id").Eq(placeID)).
		Order(goqu.C("amenity_id").Asc()).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("storage: build select place_amenities: %w", err)
	}
	rows, err := l.tx.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: query place_amenities: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("storage: list place_amenities: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (l pgLinks) Replace(ctx context.Context, placeID string, amenityIDs []string) error {
	q, args, err := dialect.Delete("place_amenities").Where(goqu.C("place_id").Eq(placeID)).Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("storage: build delete place_amenities: %w", err)
	}
	if _, err := l.tx.Exec(ctx, q, args...); err != nil {
		return translate(err)
	}
	if len(amenityIDs) == 0 {
		return nil
	}

	// Selecting the amenities under a key-share lock skips rows deleted
	// since they were resolved and holds the rest until commit, so the
	// foreign key never fires on a concurrent amenity delete.
	existing := dialect.From("amenities").
		Select(goqu.Cast(goqu.V(placeID), "TEXT"), goqu.C("id")).
		Where(goqu.C("id").In(amenityIDs)).
		ForKeyShare(goqu.Wait)
	q, args, err = dialect.Insert("place_amenities").
		Cols("place_id", "amenity_id").
		FromQuery(existing).
		OnConflict(goqu.DoNothing()).
		Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("storage: build insert place_amenities: %w", err)
	}
	if _, err := l.tx.Exec(ctx, q, args...); err != nil {
		return translate(err)
	}
	return nil
}

// translate maps constraint violations onto the storage sentinels and
// passes every other error through untouched.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%w: %s", ErrConflict, pgErr.ConstraintName)
		case "23503":
			return fmt.Errorf("%w: %s", ErrNotFound, pgErr.ConstraintName)
		}
	}
	return err
}
