package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   any
		want    ID
		wantErr bool
	}{
		{name: "int", input: 7, want: 7},
		{name: "int64", input: int64(42), want: 42},
		{name: "integral float", input: float64(3), want: 3},
		{name: "json number", input: json.Number("12"), want: 12},
		{name: "numeric string", input: "15", want: 15},
		{name: "numeric string with spaces", input: "  9 ", want: 9},
		{name: "float string with zero fraction", input: "5.0", want: 5},
		{name: "object with numeric id", input: map[string]any{"id": float64(4)}, want: 4},
		{name: "object with string id", input: map[string]any{"id": "8"}, want: 8},
		{name: "zero", input: 0, wantErr: true},
		{name: "negative", input: -3, wantErr: true},
		{name: "fractional", input: 2.5, wantErr: true},
		{name: "empty string", input: "", wantErr: true},
		{name: "non numeric string", input: "abc", wantErr: true},
		{name: "bool", input: true, wantErr: true},
		{name: "nil", input: nil, wantErr: true},
		{name: "object without id", input: map[string]any{"key": 1}, wantErr: true},
		{name: "nested object", input: map[string]any{"id": map[string]any{"id": 1}}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeID(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestIDUnmarshalJSON(t *testing.T) {
	t.Parallel()

	var in struct {
		ID      ID `json:"id"`
		PlaceID ID `json:"placeId"`
	}
	err := json.Unmarshal([]byte(`{"id":"3","placeId":{"id":11}}`), &in)
	require.NoError(t, err)
	assert.Equal(t, ID(3), in.ID)
	assert.Equal(t, ID(11), in.PlaceID)

	var bare ID
	require.NoError(t, json.Unmarshal([]byte(`17`), &bare))
	assert.Equal(t, ID(17), bare)
}

func TestIDUnmarshalJSONFailureIsTypeError(t *testing.T) {
	t.Parallel()

	var in struct {
		ID ID `json:"id"`
	}
	err := json.Unmarshal([]byte(`{"id":"abc"}`), &in)
	require.Error(t, err)

	var typeErr *json.UnmarshalTypeError
	require.True(t, errors.As(err, &typeErr))
	assert.True(t, IsIDType(typeErr.Type))
}
