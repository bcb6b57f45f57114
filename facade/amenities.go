package facade

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/Joan938/holbertonschool-hbnb/entity"
	"github.com/Joan938/holbertonschool-hbnb/storage"
)

type CreateAmenityInput struct {
	Name string `json:"name"`
}

func (in CreateAmenityInput) Fields() entity.Fields {
	return entity.Fields{"name": in.Name}
}

// CreateAmenity is restricted to administrators; the role is checked before
// the payload is looked at.
func (s *Service) CreateAmenity(ctx context.Context, caller Identity, in Payload) (entity.Amenity, error) {
	var a entity.Amenity
	err := s.mutate(ctx, "CreateAmenity", func(ctx context.Context, uow storage.UnitOfWork) error {
		if err := requireAdmin(caller); err != nil {
			return err
		}

		name, err := in.Fields().Text("name")
		if err != nil {
			return err
		}
		built, err := entity.NewAmenity(name)
		if err != nil {
			return err
		}
		if err := amenityNameAvailable(ctx, uow.Amenities(), built.Name, ""); err != nil {
			return err
		}

		built.ID, built.CreatedAt = s.stamp()
		built.UpdatedAt = built.CreatedAt
		if err := persisted(uow.Amenities().Add(ctx, built)); err != nil {
			return err
		}
		a = built
		return nil
	})
	if err != nil {
		return entity.Amenity{}, err
	}
	s.log.WithFields(logrus.Fields{"op": "CreateAmenity", "amenity_id": a.ID, "user_id": caller.UserID}).Info("amenity created")
	return a, nil
}

func (s *Service) UpdateAmenity(ctx context.Context, caller Identity, id string, fields entity.Fields) (entity.Amenity, error) {
	var a entity.Amenity
	err := s.mutate(ctx, "UpdateAmenity", func(ctx context.Context, uow storage.UnitOfWork) error {
		if err := requireCaller(caller); err != nil {
			return err
		}

		current, err := uow.Amenities().Get(ctx, id)
		if err != nil {
			return lookup(err, "amenity", id)
		}

		if err := requireAdmin(caller); err != nil {
			return err
		}

		if err := rejectFields(fields, "id"); err != nil {
			return err
		}
		if err := current.Apply(fields); err != nil {
			return err
		}
		if fields.Has("name") {
			if err := amenityNameAvailable(ctx, uow.Amenities(), current.Name, current.ID); err != nil {
				return err
			}
		}

		current.UpdatedAt = s.now().UTC()
		if err := persisted(uow.Amenities().Update(ctx, current)); err != nil {
			return err
		}
		a = current
		return nil
	})
	return a, err
}

// DeleteAmenity removes the amenity and detaches it from every place.
func (s *Service) DeleteAmenity(ctx context.Context, caller Identity, id string) error {
	return s.mutate(ctx, "DeleteAmenity", func(ctx context.Context, uow storage.UnitOfWork) error {
		if err := requireCaller(caller); err != nil {
			return err
		}
		if _, err := uow.Amenities().Get(ctx, id); err != nil {
			return lookup(err, "amenity", id)
		}
		if err := requireAdmin(caller); err != nil {
			return err
		}
		return lookup(uow.Amenities().Delete(ctx, id), "amenity", id)
	})
}

func (s *Service) GetAmenity(ctx context.Context, id string) (entity.Amenity, error) {
	var a entity.Amenity
	err := s.read(ctx, "GetAmenity", func(ctx context.Context, uow storage.UnitOfWork) error {
		var err error
		a, err = uow.Amenities().Get(ctx, id)
		return lookup(err, "amenity", id)
	})
	return a, err
}

func (s *Service) ListAmenities(ctx context.Context) ([]entity.Amenity, error) {
	var amenities []entity.Amenity
	err := s.read(ctx, "ListAmenities", func(ctx context.Context, uow storage.UnitOfWork) error {
		var err error
		amenities, err = uow.Amenities().All(ctx)
		return err
	})
	return amenities, err
}

func amenityNameAvailable(ctx context.Context, amenities storage.Collection[entity.Amenity], name, selfID string) error {
	found, err := amenities.Filter(ctx, "name", name)
	if err != nil {
		return err
	}
	for _, other := range found {
		if other.ID != selfID {
			return conflict("amenity name already exists")
		}
	}
	return nil
}
