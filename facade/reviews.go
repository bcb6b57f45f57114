package facade

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/Joan938/holbertonschool-hbnb/entity"
	"github.com/Joan938/holbertonschool-hbnb/storage"
)

// CreateReviewInput carries no author: the author is always the caller.
type CreateReviewInput struct {
	Text    string `json:"text"`
	Rating  int    `json:"rating"`
	PlaceID string `json:"place_id"`
}

func (in CreateReviewInput) Fields() entity.Fields {
	return entity.Fields{"text": in.Text, "rating": in.Rating, "place_id": in.PlaceID}
}

// CreateReview records the caller's review of a place. Owners cannot review
// their own places and each user reviews a place at most once.
func (s *Service) CreateReview(ctx context.Context, caller Identity, in Payload) (entity.Review, error) {
	var r entity.Review
	err := s.mutate(ctx, "CreateReview", func(ctx context.Context, uow storage.UnitOfWork) error {
		if err := requireCaller(caller); err != nil {
			return err
		}
		fields := in.Fields()
		placeID, err := fields.Text("place_id")
		if err != nil {
			return err
		}
		if placeID == "" {
			return entity.NewValidationError("place_id", "is required")
		}

		place, err := uow.Places().Get(ctx, placeID)
		if err != nil {
			return lookup(err, "place", placeID)
		}
		if _, err := uow.Users().Get(ctx, caller.UserID); err != nil {
			return lookup(err, "user", caller.UserID)
		}

		if place.OwnerID == caller.UserID {
			return forbidden("cannot review your own place")
		}
		existing, err := uow.Reviews().Filter(ctx, "place_id", place.ID)
		if err != nil {
			return err
		}
		for _, other := range existing {
			if other.UserID == caller.UserID {
				return conflict("place already reviewed by this user")
			}
		}

		rating, err := fields.Integer("rating")
		if err != nil {
			return err
		}
		text, err := fields.Text("text")
		if err != nil {
			return err
		}
		built, err := entity.NewReview(text, rating, place.ID, caller.UserID)
		if err != nil {
			return err
		}

		built.ID, built.CreatedAt = s.stamp()
		built.UpdatedAt = built.CreatedAt
		if err := persisted(uow.Reviews().Add(ctx, built)); err != nil {
			return err
		}
		r = built
		return nil
	})
	if err != nil {
		return entity.Review{}, err
	}
	s.log.WithFields(logrus.Fields{"op": "CreateReview", "review_id": r.ID, "place_id": r.PlaceID, "user_id": r.UserID}).Info("review created")
	return r, nil
}

// UpdateReview lets the author change text and rating. place_id and
// user_id are dropped from fields without complaint.
func (s *Service) UpdateReview(ctx context.Context, caller Identity, id string, fields entity.Fields) (entity.Review, error) {
	var r entity.Review
	err := s.mutate(ctx, "UpdateReview", func(ctx context.Context, uow storage.UnitOfWork) error {
		if err := requireCaller(caller); err != nil {
			return err
		}

		current, err := uow.Reviews().Get(ctx, id)
		if err != nil {
			return lookup(err, "review", id)
		}

		if current.UserID != caller.UserID {
			return forbidden("only the author can modify a review")
		}

		fields = fields.Without("place_id", "user_id")
		if err := rejectFields(fields, "id"); err != nil {
			return err
		}
		if err := current.Apply(fields); err != nil {
			return err
		}

		current.UpdatedAt = s.now().UTC()
		if err := persisted(uow.Reviews().Update(ctx, current)); err != nil {
			return err
		}
		r = current
		return nil
	})
	return r, err
}

func (s *Service) DeleteReview(ctx context.Context, caller Identity, id string) error {
	return s.mutate(ctx, "DeleteReview", func(ctx context.Context, uow storage.UnitOfWork) error {
		if err := requireCaller(caller); err != nil {
			return err
		}

		current, err := uow.Reviews().Get(ctx, id)
		if err != nil {
			return lookup(err, "review", id)
		}

		if current.UserID != caller.UserID {
			return forbidden("only the author can delete a review")
		}
		return lookup(uow.Reviews().Delete(ctx, id), "review", id)
	})
}

func (s *Service) GetReview(ctx context.Context, id string) (entity.Review, error) {
	var r entity.Review
	err := s.read(ctx, "GetReview", func(ctx context.Context, uow storage.UnitOfWork) error {
		var err error
		r, err = uow.Reviews().Get(ctx, id)
		return lookup(err, "review", id)
	})
	return r, err
}

func (s *Service) ListReviews(ctx context.Context) ([]entity.Review, error) {
	var reviews []entity.Review
	err := s.read(ctx, "ListReviews", func(ctx context.Context, uow storage.UnitOfWork) error {
		var err error
		reviews, err = uow.Reviews().All(ctx)
		return err
	})
	return reviews, err
}

// ListReviewsByPlace fails only when the place itself is missing.
func (s *Service) ListReviewsByPlace(ctx context.Context, placeID string) ([]entity.Review, error) {
	var reviews []entity.Review
	err := s.read(ctx, "ListReviewsByPlace", func(ctx context.Context, uow storage.UnitOfWork) error {
		if _, err := uow.Places().Get(ctx, placeID); err != nil {
			return lookup(err, "place", placeID)
		}
		var err error
		reviews, err = uow.Reviews().Filter(ctx, "place_id", placeID)
		return err
	})
	return reviews, err
}
