package validation

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// IntegerValidator converts decimal strings and numbers into int values.
type IntegerValidator struct {
	opts       options
	constraint *constraint
}

// Integer returns a required integer validator unless Required(false) is
// given. Min and Max bound the accepted range.
func Integer(opts ...Option) *IntegerValidator {
	cfg := newOptions(options{required: true}, opts)
	doc := map[string]any{"type": "integer"}
	if cfg.min != nil {
		doc["minimum"] = *cfg.min
	}
	if cfg.max != nil {
		doc["maximum"] = *cfg.max
	}
	return &IntegerValidator{opts: cfg, constraint: newConstraint(doc)}
}

// Process implements Validator.
func (v *IntegerValidator) Process(value any) (any, error) {
	if s, ok := value.(string); ok {
		value = strings.TrimSpace(s)
	}
	if isEmpty(value) {
		if v.opts.required {
			return nil, NewError(KeyEmpty, value)
		}
		return nil, nil
	}

	number, ok := toInt(value)
	if !ok {
		return nil, NewError(KeyInvalidNumber, value)
	}

	keyword, err := v.constraint.violation(number)
	if err != nil {
		return nil, err
	}
	switch keyword {
	case "":
		return number, nil
	case "minimum":
		return nil, NewError(KeyTooLow, value, *v.opts.min)
	case "maximum":
		return nil, NewError(KeyTooBig, value, *v.opts.max)
	default:
		return nil, NewError(KeyInvalidNumber, value)
	}
}

// RevertConversion implements Reverter.
func (v *IntegerValidator) RevertConversion(value any) any {
	if number, ok := value.(int); ok {
		return strconv.Itoa(number)
	}
	return value
}

// IsRequired implements RequiredReporter.
func (v *IntegerValidator) IsRequired() bool {
	return v.opts.required
}

func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int8:
		return int(v), true
	case int16:
		return int(v), true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case uint:
		return int(v), true
	case uint8:
		return int(v), true
	case uint16:
		return int(v), true
	case uint32:
		return int(v), true
	case float32:
		return floatToInt(float64(v))
	case float64:
		return floatToInt(v)
	case json.Number:
		n, err := v.Int64()
		return int(n), err == nil
	case string:
		n, err := strconv.Atoi(v)
		return n, err == nil
	case []string:
		if len(v) == 0 {
			return 0, false
		}
		return toInt(strings.TrimSpace(v[len(v)-1]))
	}
	return 0, false
}

func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
