package entity

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a rated comment by UserID about PlaceID.
type Review struct {
	ID        string    `db:"id" json:"id"`
	Text      string    `db:"text" json:"text"`
	Rating    int       `db:"rating" json:"rating"`
	PlaceID   string    `db:"place_id" json:"place_id"`
	UserID    string    `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

func NewReview(text string, rating int, placeID, userID string) (Review, error) {
	var r Review
	if err := r.setText(text); err != nil {
		return Review{}, err
	}
	if err := r.setRating(rating); err != nil {
		return Review{}, err
	}
	if placeID == "" {
		return Review{}, invalid("place_id", "is required")
	}
	if userID == "" {
		return Review{}, invalid("user_id", "is required")
	}
	r.PlaceID = placeID
	r.UserID = userID
	return r, nil
}

var reviewSetters = map[string]setter[Review]{
	"text": func(r *Review, v any) error {
		s, err := stringValue("text", v)
		if err != nil {
			return err
		}
		return r.setText(s)
	},
	"rating": func(r *Review, v any) error {
		n, err := integerValue("rating", v)
		if err != nil {
			return err
		}
		return r.setRating(n)
	},
}

func (r *Review) Apply(fields Fields) error {
	return apply(r, fields, reviewSetters)
}

func (r *Review) setText(s string) error {
	if err := checkText("text", s, 0); err != nil {
		return err
	}
	r.Text = s
	return nil
}

func (r *Review) setRating(n int) error {
	if n < MinRating || n > MaxRating {
		return invalid("rating", "must be between 1 and 5")
	}
	r.Rating = n
	return nil
}
