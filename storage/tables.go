package storage

import (
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/Joan938/holbertonschool-hbnb/entity"
)

// table describes how one entity maps onto its store representation.
// Postgres uses name and record; the memory store uses column.
type table[T any] struct {
	name       string
	filterable map[string]bool
	id         func(T) string
	created    func(T) time.Time
	record     func(T) goqu.Record
	column     func(T, string) any
}

func columns(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

var usersTable = table[entity.User]{
	name:       "users",
	filterable: columns("id", "first_name", "last_name", "email", "is_admin"),
	id:         func(u entity.User) string { return u.ID },
	created:    func(u entity.User) time.Time { return u.CreatedAt },
	record: func(u entity.User) goqu.Record {
		return goqu.Record{
			"id":            u.ID,
			"first_name":    u.FirstName,
			"last_name":     u.LastName,
			"email":         u.Email,
			"password_hash": u.PasswordHash,
			"is_admin":      u.IsAdmin,
			"created_at":    u.CreatedAt,
			"updated_at":    u.UpdatedAt,
		}
	},
	column: func(u entity.User, name string) any {
		switch name {
		case "id":
			return u.ID
		case "first_name":
			return u.FirstName
		case "last_name":
			return u.LastName
		case "email":
			return u.Email
		case "is_admin":
			return u.IsAdmin
		}
		return nil
	},
}

var amenitiesTable = table[entity.Amenity]{
	name:       "amenities",
	filterable: columns("id", "name"),
	id:         func(a entity.Amenity) string { return a.ID },
	created:    func(a entity.Amenity) time.Time { return a.CreatedAt },
	record: func(a entity.Amenity) goqu.Record {
		return goqu.Record{
			"id":         a.ID,
			"name":       a.Name,
			"created_at": a.CreatedAt,
			"updated_at": a.UpdatedAt,
		}
	},
	column: func(a entity.Amenity, name string) any {
		switch name {
		case "id":
			return a.ID
		case "name":
			return a.Name
		}
		return nil
	},
}

var placesTable = table[entity.Place]{
	name:       "places",
	filterable: columns("id", "title", "owner_id", "price"),
	id:         func(p entity.Place) string { return p.ID },
	created:    func(p entity.Place) time.Time { return p.CreatedAt },
	record: func(p entity.Place) goqu.Record {
		return goqu.Record{
			"id":          p.ID,
			"title":       p.Title,
			"description": p.Description,
			"price":       p.Price,
			"latitude":    p.Latitude,
			"longitude":   p.Longitude,
			"owner_id":    p.OwnerID,
			"created_at":  p.CreatedAt,
			"updated_at":  p.UpdatedAt,
		}
	},
	column: func(p entity.Place, name string) any {
		switch name {
		case "id":
			return p.ID
		case "title":
			return p.Title
		case "owner_id":
			return p.OwnerID
		case "price":
			return p.Price
		}
		return nil
	},
}

var reviewsTable = table[entity.Review]{
	name:       "reviews",
	filterable: columns("id", "place_id", "user_id", "rating"),
	id:         func(r entity.Review) string { return r.ID },
	created:    func(r entity.Review) time.Time { return r.CreatedAt },
	record: func(r entity.Review) goqu.Record {
		return goqu.Record{
			"id":         r.ID,
			"text":       r.Text,
			"rating":     r.Rating,
			"place_id":   r.PlaceID,
			"user_id":    r.UserID,
			"created_at": r.CreatedAt,
			"updated_at": r.UpdatedAt,
		}
	},
	column: func(r entity.Review, name string) any {
		switch name {
		case "id":
			return r.ID
		case "place_id":
			return r.PlaceID
		case "user_id":
			return r.UserID
		case "rating":
			return r.Rating
		}
		return nil
	},
}
