package entity

import "time"

const MaxAmenityNameLength = 50

// Amenity is a named feature a place can offer.
type Amenity struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

func NewAmenity(name string) (Amenity, error) {
	var a Amenity
	if err := a.setName(name); err != nil {
		return Amenity{}, err
	}
	return a, nil
}

// AmenityRef lets a resolved amenity stand in for its identifier.
func (a Amenity) AmenityRef() string { return a.ID }

var amenitySetters = map[string]setter[Amenity]{
	"name": func(a *Amenity, v any) error {
		s, err := stringValue("name", v)
		if err != nil {
			return err
		}
		return a.setName(s)
	},
}

func (a *Amenity) Apply(fields Fields) error {
	return apply(a, fields, amenitySetters)
}

func (a *Amenity) setName(s string) error {
	if err := checkText("name", s, MaxAmenityNameLength); err != nil {
		return err
	}
	a.Name = s
	return nil
}
