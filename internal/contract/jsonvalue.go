package contract

import (
	"encoding/json"
	"fmt"
)

// ValidationError reports a contract field that failed structural
// validation. It maps to a 400-class response at the API boundary.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// validateJSONValue walks a decoded value and rejects anything that is not
// representable in JSON: nil, bool, numbers, strings, slices of valid
// values and string-keyed maps of valid values.
func validateJSONValue(value any, field string) error {
	switch v := value.(type) {
	case nil, bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, json.Number:
		return nil
	case []any:
		for i, item := range v {
			if err := validateJSONValue(item, fmt.Sprintf("%s[%d]", field, i)); err != nil {
				return err
			}
		}
		return nil
	case map[string]any:
		for key, item := range v {
			if err := validateJSONValue(item, field+"."+key); err != nil {
				return err
			}
		}
		return nil
	default:
		return &ValidationError{
			Field:  field,
			Reason: fmt.Sprintf("value of type %T is not JSON-representable", value),
		}
	}
}
