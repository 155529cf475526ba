package domain

import "time"

// Rating bounds for reviews.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a user's rated comment on a place.
type Review struct {
	ID        ID        `json:"id"`
	Content   string    `json:"content"          validate:"required"`
	Rating    int       `json:"rating"           validate:"min=1,max=5"`
	Author    *string   `json:"author,omitempty" validate:"omitempty,max=255"`
	PlaceID   ID        `json:"placeId"          validate:"required"`
	UserID    ID        `json:"userId"           validate:"required"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate checks the persisted fields of the review.
func (r *Review) Validate() error {
	return Validate(r)
}

// IsWrittenBy reports whether the identity authored the review.
func (r *Review) IsWrittenBy(who Identity) bool {
	return r.UserID == who.ID
}

// ReviewPatch lists the fields of a partial review update.
type ReviewPatch struct {
	Content *string
	Rating  *int
	Author  *string
	PlaceID *ID
}

// IsEmpty reports whether the patch changes nothing.
func (p ReviewPatch) IsEmpty() bool {
	return p == ReviewPatch{}
}

// RatingSummary is the aggregate rating of a place. Average is nil when the
// place has no reviews.
type RatingSummary struct {
	PlaceID ID       `json:"placeId"`
	Average *float64 `json:"average"`
	Count   int64    `json:"count"`
}
