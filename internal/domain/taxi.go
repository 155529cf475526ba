package domain

import "time"

// Taxi is a taxi operator that serves one or more places.
type Taxi struct {
	ID          ID        `json:"id"`
	Name        string    `json:"name"              validate:"required,max=255"`
	Phone       string    `json:"phone"             validate:"required,max=32"`
	Company     *string   `json:"company,omitempty" validate:"omitempty,max=255"`
	IsAvailable bool      `json:"isAvailable"`
	Rating      *float64  `json:"rating,omitempty"  validate:"omitempty,min=0,max=5"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Populated only by single-taxi lookups.
	Places []Place `json:"places,omitempty"`
}

// Validate checks the persisted fields of the taxi.
func (t *Taxi) Validate() error {
	return Validate(t)
}

// TaxiPatch lists the fields of a partial taxi update. Nil fields keep their
// stored value; ConnectPlaceIDs adds links without removing existing ones.
type TaxiPatch struct {
	Name            *string
	Phone           *string
	Company         *string
	IsAvailable     *bool
	Rating          *float64
	ConnectPlaceIDs []ID
}

// IsEmpty reports whether the patch changes nothing.
func (p TaxiPatch) IsEmpty() bool {
	return p.Name == nil && p.Phone == nil && p.Company == nil &&
		p.IsAvailable == nil && p.Rating == nil && len(p.ConnectPlaceIDs) == 0
}

// HasColumns reports whether the patch touches the taxi row itself.
func (p TaxiPatch) HasColumns() bool {
	return p.Name != nil || p.Phone != nil || p.Company != nil ||
		p.IsAvailable != nil || p.Rating != nil
}

// TaxiFilter narrows a taxi search. Query matches name, company or phone
// case-insensitively; Available, when set, must match exactly.
type TaxiFilter struct {
	Query     string
	Available *bool
}
