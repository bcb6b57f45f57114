package entity

import (
	"math"
	"time"
)

const MaxTitleLength = 100

// Place is a listing owned by a user. Amenities holds the ids of the
// associated amenities and is persisted separately from the place row.
type Place struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Price       float64   `db:"price" json:"price"`
	Latitude    float64   `db:"latitude" json:"latitude"`
	Longitude   float64   `db:"longitude" json:"longitude"`
	OwnerID     string    `db:"owner_id" json:"owner_id"`
	Amenities   []string  `db:"-" json:"amenities"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// NewPlace validates every scalar field. ownerID is taken as given; whether
// it references a real user is checked by the caller.
func NewPlace(title, description string, price, latitude, longitude float64, ownerID string) (Place, error) {
	p := Place{Description: description, Amenities: []string{}}
	if err := p.setTitle(title); err != nil {
		return Place{}, err
	}
	if err := p.setPrice(price); err != nil {
		return Place{}, err
	}
	if err := p.setLatitude(latitude); err != nil {
		return Place{}, err
	}
	if err := p.setLongitude(longitude); err != nil {
		return Place{}, err
	}
	if ownerID == "" {
		return Place{}, invalid("owner_id", "is required")
	}
	p.OwnerID = ownerID
	return p, nil
}

var placeSetters = map[string]setter[Place]{
	"title": func(p *Place, v any) error {
		s, err := stringValue("title", v)
		if err != nil {
			return err
		}
		return p.setTitle(s)
	},
	"description": func(p *Place, v any) error {
		s, err := stringValue("description", v)
		if err != nil {
			return err
		}
		p.Description = s
		return nil
	},
	"price": func(p *Place, v any) error {
		f, err := numberValue("price", v)
		if err != nil {
			return err
		}
		return p.setPrice(f)
	},
	"latitude": func(p *Place, v any) error {
		f, err := numberValue("latitude", v)
		if err != nil {
			return err
		}
		return p.setLatitude(f)
	},
	"longitude": func(p *Place, v any) error {
		f, err := numberValue("longitude", v)
		if err != nil {
			return err
		}
		return p.setLongitude(f)
	},
}

// Apply updates the scalar fields present in fields. Ownership and the
// amenity association are not settable through Apply.
func (p *Place) Apply(fields Fields) error {
	return apply(p, fields, placeSetters)
}

func (p *Place) setTitle(s string) error {
	if err := checkText("title", s, MaxTitleLength); err != nil {
		return err
	}
	p.Title = s
	return nil
}

func (p *Place) setPrice(f float64) error {
	if err := checkFinite("price", f); err != nil {
		return err
	}
	if f < 0 {
		return invalid("price", "must be non-negative")
	}
	p.Price = f
	return nil
}

func (p *Place) setLatitude(f float64) error {
	if err := checkFinite("latitude", f); err != nil {
		return err
	}
	if f < -90 || f > 90 {
		return invalid("latitude", "must be between -90 and 90")
	}
	p.Latitude = f
	return nil
}

func (p *Place) setLongitude(f float64) error {
	if err := checkFinite("longitude", f); err != nil {
		return err
	}
	if f < -180 || f > 180 {
		return invalid("longitude", "must be between -180 and 180")
	}
	p.Longitude = f
	return nil
}

func checkFinite(field string, f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return invalid(field, "must be a finite number")
	}
	return nil
}
