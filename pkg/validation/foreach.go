package validation

import "reflect"

// ForEachValidator applies one validator to every item of a list.
type ForEachValidator struct {
	item Validator
}

// ForEach wraps item so it validates lists of values.
func ForEach(item Validator) *ForEachValidator {
	return &ForEachValidator{item: item}
}

// Item returns the wrapped validator.
func (v *ForEachValidator) Item() Validator {
	return v.item
}

// Process implements Validator. Errors keep the position of the item that
// caused them; the returned error is an *Error with item causes.
func (v *ForEachValidator) Process(value any) (any, error) {
	items, ok := toList(value)
	if !ok {
		return nil, NewError(KeyInvalidList, value)
	}

	results := make([]any, len(items))
	errs := make([]error, len(items))
	failed := false
	for i, item := range items {
		result, err := v.item.Process(item)
		if err != nil {
			errs[i] = err
			failed = true
			continue
		}
		results[i] = result
	}
	if failed {
		return nil, NewItemErrors(value, errs)
	}
	return results, nil
}

// RevertConversion implements Reverter.
func (v *ForEachValidator) RevertConversion(value any) any {
	items, ok := toList(value)
	if !ok {
		return value
	}
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = Revert(v.item, item)
	}
	return out
}

// IsRequired implements RequiredReporter.
func (v *ForEachValidator) IsRequired() bool {
	return false
}

func toList(value any) ([]any, bool) {
	switch v := value.(type) {
	case nil:
		return []any{}, true
	case []any:
		return v, true
	case []map[string]any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = item
		}
		return out, true
	case string, map[string]any:
		return nil, false
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
