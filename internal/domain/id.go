package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// InvalidIDMessage is the single failure message for ID normalisation.
const InvalidIDMessage = "ID must be a valid number."

// ID identifies a stored row. Values are always positive.
type ID int64

// idType is reported in decode errors so callers can recognise ID failures.
var idType = reflect.TypeOf(ID(0))

// IsIDType reports whether t is the ID type.
func IsIDType(t reflect.Type) bool {
	return t == idType
}

// NormalizeID resolves a loosely typed value into a positive ID.
//
// Precedence:
//  1. an object with an "id" key is unwrapped once;
//  2. a number must be integral;
//  3. a string must hold a number after trimming spaces.
//
// Every other shape, and every value <= 0, fails with ErrInvalidID.
func NormalizeID(v any) (ID, error) {
	if obj, ok := v.(map[string]any); ok {
		inner, found := obj["id"]
		if !found {
			return 0, ErrInvalidID
		}
		if _, nested := inner.(map[string]any); nested {
			return 0, ErrInvalidID
		}
		v = inner
	}

	switch n := v.(type) {
	case ID:
		return positive(int64(n))
	case int:
		return positive(int64(n))
	case int32:
		return positive(int64(n))
	case int64:
		return positive(n)
	case float64:
		return fromFloat(n)
	case json.Number:
		return parseNumeric(n.String())
	case string:
		return parseNumeric(strings.TrimSpace(n))
	default:
		return 0, ErrInvalidID
	}
}

func parseNumeric(s string) (ID, error) {
	if s == "" {
		return 0, ErrInvalidID
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return positive(i)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidID
	}
	return fromFloat(f)
}

func fromFloat(f float64) (ID, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f >= math.MaxInt64 {
		return 0, ErrInvalidID
	}
	return positive(int64(f))
}

func positive(i int64) (ID, error) {
	if i <= 0 {
		return 0, ErrInvalidID
	}
	return ID(i), nil
}

// UnmarshalJSON accepts every shape NormalizeID understands. Failures are
// reported as *json.UnmarshalTypeError so encoding/json attaches the field path.
func (id *ID) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	v, err := NormalizeID(raw)
	if err != nil {
		return &json.UnmarshalTypeError{
			Value: describeJSON(raw),
			Type:  idType,
		}
	}
	*id = v
	return nil
}

// String returns the decimal form of the ID.
func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

func describeJSON(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "bool"
	default:
		return fmt.Sprintf("number %v", v)
	}
}
