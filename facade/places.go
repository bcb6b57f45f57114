package facade

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/Joan938/holbertonschool-hbnb/entity"
	"github.com/Joan938/holbertonschool-hbnb/ledger"
	"github.com/Joan938/holbertonschool-hbnb/storage"
)

// CreatePlaceInput carries no owner: the owner is always the caller.
type CreatePlaceInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Amenities   []string `json:"amenities"`
}

func (in CreatePlaceInput) Fields() entity.Fields {
	f := entity.Fields{
		"title":       in.Title,
		"description": in.Description,
		"price":       in.Price,
		"latitude":    in.Latitude,
		"longitude":   in.Longitude,
	}
	if in.Amenities != nil {
		f["amenities"] = in.Amenities
	}
	return f
}

// PlaceDetails is a place with its owner and amenity records expanded.
type PlaceDetails struct {
	entity.Place
	Owner          entity.User      `json:"owner"`
	AmenityRecords []entity.Amenity `json:"amenities"`
}

func (s *Service) CreatePlace(ctx context.Context, caller Identity, in Payload) (entity.Place, error) {
	var p entity.Place
	err := s.mutate(ctx, "CreatePlace", func(ctx context.Context, uow storage.UnitOfWork) error {
		if err := requireCaller(caller); err != nil {
			return err
		}

		if _, err := uow.Users().Get(ctx, caller.UserID); err != nil {
			return lookup(err, "user", caller.UserID)
		}

		fields := in.Fields()
		draft, err := readPlace(fields)
		if err != nil {
			return err
		}
		var refs []ledger.Ref
		if fields.Has("amenities") {
			if refs, err = ledger.ParseRefs(fields["amenities"]); err != nil {
				return err
			}
		}
		built, err := entity.NewPlace(draft.Title, draft.Description, draft.Price, draft.Latitude, draft.Longitude, caller.UserID)
		if err != nil {
			return err
		}

		built.ID, built.CreatedAt = s.stamp()
		built.UpdatedAt = built.CreatedAt
		if err := persisted(uow.Places().Add(ctx, built)); err != nil {
			return err
		}
		built.Amenities, err = ledger.Replace(ctx, uow, built.ID, refs)
		if err != nil {
			return persisted(err)
		}
		p = built
		return nil
	})
	if err != nil {
		return entity.Place{}, err
	}
	s.log.WithFields(logrus.Fields{"op": "CreatePlace", "place_id": p.ID, "user_id": caller.UserID}).Info("place created")
	return p, nil
}

// UpdatePlace lets the owner change scalar fields and, when "amenities" is
// present, replace the whole amenity set. Unknown amenity ids are dropped.
func (s *Service) UpdatePlace(ctx context.Context, caller Identity, id string, fields entity.Fields) (entity.Place, error) {
	var p entity.Place
	err := s.mutate(ctx, "UpdatePlace", func(ctx context.Context, uow storage.UnitOfWork) error {
		if err := requireCaller(caller); err != nil {
			return err
		}

		current, err := uow.Places().Get(ctx, id)
		if err != nil {
			return lookup(err, "place", id)
		}

		if current.OwnerID != caller.UserID {
			return forbidden("only the owner can modify a place")
		}

		if err := rejectFields(fields, "id", "owner_id"); err != nil {
			return err
		}
		var refs []ledger.Ref
		replaceAmenities := fields.Has("amenities")
		if replaceAmenities {
			if refs, err = ledger.ParseRefs(fields["amenities"]); err != nil {
				return err
			}
		}
		if err := current.Apply(fields.Without("amenities")); err != nil {
			return err
		}

		if replaceAmenities {
			current.Amenities, err = ledger.Replace(ctx, uow, current.ID, refs)
		} else {
			current.Amenities, err = ledger.Attached(ctx, uow, current.ID)
		}
		if err != nil {
			return persisted(err)
		}

		current.UpdatedAt = s.now().UTC()
		if err := persisted(uow.Places().Update(ctx, current)); err != nil {
			return err
		}
		p = current
		return nil
	})
	return p, err
}

func (s *Service) GetPlace(ctx context.Context, id string) (entity.Place, error) {
	var p entity.Place
	err := s.read(ctx, "GetPlace", func(ctx context.Context, uow storage.UnitOfWork) error {
		var err error
		p, err = loadPlace(ctx, uow, id)
		return err
	})
	return p, err
}

func (s *Service) GetPlaceDetails(ctx context.Context, id string) (PlaceDetails, error) {
	var d PlaceDetails
	err := s.read(ctx, "GetPlaceDetails", func(ctx context.Context, uow storage.UnitOfWork) error {
		p, err := loadPlace(ctx, uow, id)
		if err != nil {
			return err
		}
		owner, err := uow.Users().Get(ctx, p.OwnerID)
		if err != nil {
			return lookup(err, "user", p.OwnerID)
		}
		records, err := ledger.Expand(ctx, uow.Amenities(), p.Amenities)
		if err != nil {
			return err
		}
		d = PlaceDetails{Place: p, Owner: owner, AmenityRecords: records}
		return nil
	})
	return d, err
}

func (s *Service) ListPlaces(ctx context.Context) ([]entity.Place, error) {
	var places []entity.Place
	err := s.read(ctx, "ListPlaces", func(ctx context.Context, uow storage.UnitOfWork) error {
		all, err := uow.Places().All(ctx)
		if err != nil {
			return err
		}
		for i := range all {
			if all[i].Amenities, err = ledger.Attached(ctx, uow, all[i].ID); err != nil {
				return err
			}
		}
		places = all
		return nil
	})
	return places, err
}

func loadPlace(ctx context.Context, uow storage.UnitOfWork, id string) (entity.Place, error) {
	p, err := uow.Places().Get(ctx, id)
	if err != nil {
		return entity.Place{}, lookup(err, "place", id)
	}
	if p.Amenities, err = ledger.Attached(ctx, uow, p.ID); err != nil {
		return entity.Place{}, err
	}
	return p, nil
}

// readPlace pulls the scalar attributes out of a create body, in field name
// order so the first reported mismatch is stable.
func readPlace(f entity.Fields) (CreatePlaceInput, error) {
	var (
		in  CreatePlaceInput
		err error
	)
	if in.Description, err = f.Text("description"); err != nil {
		return in, err
	}
	if in.Latitude, err = f.Number("latitude"); err != nil {
		return in, err
	}
	if in.Longitude, err = f.Number("longitude"); err != nil {
		return in, err
	}
	if in.Price, err = f.Number("price"); err != nil {
		return in, err
	}
	in.Title, err = f.Text("title")
	return in, err
}
