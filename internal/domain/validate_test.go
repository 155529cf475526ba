package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestPlaceValidate(t *testing.T) {
	t.Parallel()

	valid := Place{Name: "Central Park", Latitude: 40.78, Longitude: -73.96}
	assert.NoError(t, valid.Validate())

	missingName := valid
	missingName.Name = ""
	err := missingName.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Issues, 1)
	assert.Equal(t, "name", verr.Issues[0].Path)
	assert.Equal(t, "name is required", verr.Issues[0].Message)

	badWebsite := valid
	badWebsite.Website = strPtr("not a url")
	err = badWebsite.Validate()
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "website", verr.Issues[0].Path)

	badLatitude := valid
	badLatitude.Latitude = 123
	assert.ErrorIs(t, badLatitude.Validate(), ErrValidation)
}

func TestReviewValidateRating(t *testing.T) {
	t.Parallel()

	for rating := MinRating; rating <= MaxRating; rating++ {
		r := Review{Content: "nice", Rating: rating, PlaceID: 1, UserID: 1}
		assert.NoError(t, r.Validate(), "rating %d should be accepted", rating)
	}

	for _, rating := range []int{0, 6, -1} {
		r := Review{Content: "nice", Rating: rating, PlaceID: 1, UserID: 1}
		assert.ErrorIs(t, r.Validate(), ErrValidation, "rating %d should be rejected", rating)
	}
}

func TestTaxiValidate(t *testing.T) {
	t.Parallel()

	taxi := Taxi{Name: "Quick Taxi", Phone: "+33198765432", IsAvailable: true}
	assert.NoError(t, taxi.Validate())

	taxi.Phone = ""
	err := taxi.Validate()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "phone", verr.Issues[0].Path)
}

func TestValidationErrorMessage(t *testing.T) {
	t.Parallel()

	err := &ValidationError{Issues: []FieldIssue{
		{Path: "name", Message: "name is required"},
		{Path: "", Message: InvalidIDMessage},
	}}
	assert.Equal(t, "validation failed: name: name is required; ID must be a valid number.", err.Error())

	wrapped := NewValidationError("id", InvalidIDMessage, ErrInvalidID)
	assert.ErrorIs(t, wrapped, ErrValidation)
	assert.ErrorIs(t, wrapped, ErrInvalidID)
}
