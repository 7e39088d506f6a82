package encoding

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNoEncoder is returned by Encode when a categorical field holds a label
// but the encoder set has no encoder for that field. The record is well
// formed; the artifacts cannot score it.
var ErrNoEncoder = errors.New("no encoder for categorical field")

// Record is one raw submission: field name -> value.
type Record map[string]any

// Encoded is a Record with categorical values replaced by their codes.
type Encoded map[string]float64

// Encode converts rec into model inputs. Fields with an encoder must hold one
// of the encoder's classes; every other field must be numeric and passes
// through unchanged. A non-numeric value in a categorical field without an
// encoder yields an error wrapping ErrNoEncoder.
func (s *Set) Encode(rec Record) (Encoded, error) {
	out := make(Encoded, len(rec))
	for field, val := range rec {
		if enc, ok := s.Encoder(field); ok {
			label, isStr := val.(string)
			if !isStr || !enc.Has(label) {
				return nil, &ValidationError{Field: field, Value: val, Accepted: enc.Classes()}
			}
			code, _ := enc.Transform(label)
			out[field] = float64(code)
			continue
		}
		f, err := ToFloat(val)
		if err != nil {
			if isCategorical(field) {
				return nil, fmt.Errorf("field %q value %v: %w", field, val, ErrNoEncoder)
			}
			return nil, &ValidationError{Field: field, Value: val, Reason: "expected a number", Err: err}
		}
		out[field] = f
	}
	return out, nil
}

// ToFloat converts a numeric record value to float64. Strings are parsed
// after trimming spaces.
func ToFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(n), 64)
	default:
		return 0, fmt.Errorf("unsupported type %T: %w", v, strconv.ErrSyntax)
	}
}

func isCategorical(field string) bool {
	for _, f := range CategoricalFields {
		if f == field {
			return true
		}
	}
	return false
}
