package domain

import "time"

// Place is a point of interest that can be reviewed and served by taxis.
type Place struct {
	ID          ID        `json:"id"`
	Name        string    `json:"name"                  validate:"required,max=255"`
	Description *string   `json:"description,omitempty"`
	Latitude    float64   `json:"latitude"              validate:"min=-90,max=90"`
	Longitude   float64   `json:"longitude"             validate:"min=-180,max=180"`
	Address     *string   `json:"address,omitempty"     validate:"omitempty,max=255"`
	City        *string   `json:"city,omitempty"        validate:"omitempty,max=120"`
	Country     *string   `json:"country,omitempty"     validate:"omitempty,max=120"`
	Category    *string   `json:"category,omitempty"    validate:"omitempty,max=64"`
	ImageURL    *string   `json:"imageUrl,omitempty"    validate:"omitempty,url"`
	Website     *string   `json:"website,omitempty"     validate:"omitempty,url"`
	Phone       *string   `json:"phone,omitempty"       validate:"omitempty,max=32"`
	Email       *string   `json:"email,omitempty"       validate:"omitempty,email"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Populated only by single-place lookups.
	Reviews []Review `json:"reviews,omitempty"`
	Taxis   []Taxi   `json:"taxis,omitempty"`
}

// Validate checks the persisted fields of the place.
func (p *Place) Validate() error {
	return Validate(p)
}

// PlacePatch lists the fields of a partial place update. Nil fields keep
// their stored value.
type PlacePatch struct {
	Name        *string
	Description *string
	Latitude    *float64
	Longitude   *float64
	Address     *string
	City        *string
	Country     *string
	Category    *string
	ImageURL    *string
	Website     *string
	Phone       *string
	Email       *string
}

// IsEmpty reports whether the patch changes nothing.
func (p PlacePatch) IsEmpty() bool {
	return p == PlacePatch{}
}

// PlaceFilter narrows a place search. Query matches name or description
// case-insensitively; Category, when set, must match exactly.
type PlaceFilter struct {
	Query    string
	Category *string
}
