package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/travelinfo/travel-api/internal/domain"
)

// decodeInput decodes raw JSON into T and validates the result against its
// struct tags. Absent input decodes like JSON null. Every failure is a
// *domain.ValidationError.
func decodeInput[T any](raw []byte) (T, error) {
	var in T
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		raw = []byte("null")
	}

	if err := json.Unmarshal(raw, &in); err != nil {
		return in, decodeError(err)
	}

	if reflect.Indirect(reflect.ValueOf(&in)).Kind() == reflect.Struct {
		if err := domain.Validate(&in); err != nil {
			return in, err
		}
	}
	return in, nil
}

// decodeError turns an encoding/json failure into a validation issue.
func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		path := typeErr.Field
		if domain.IsIDType(typeErr.Type) {
			if path == "" {
				path = "id"
			}
			return domain.NewValidationError(path, domain.InvalidIDMessage, domain.ErrInvalidID)
		}
		if path == "" {
			path = "input"
		}
		return domain.NewValidationError(path, fmt.Sprintf("%s must be %s", path, describeKind(typeErr.Type)), err)
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return domain.NewValidationError("", fmt.Sprintf("input is not valid JSON (offset %d)", syntaxErr.Offset), err)
	}
	return domain.NewValidationError("", "input could not be decoded", err)
}

func describeKind(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Slice, reflect.Array:
		return "an array"
	case reflect.Struct, reflect.Map:
		return "an object"
	default:
		return "a " + t.String()
	}
}
