package validation

import "fmt"

// OneOfValidator accepts one of a fixed set of string values.
type OneOfValidator struct {
	opts       options
	values     []string
	constraint *constraint
}

// OneOf returns a required validator accepting only the given values.
func OneOf(values []string, opts ...Option) *OneOfValidator {
	allowed := make([]any, 0, len(values))
	for _, value := range values {
		allowed = append(allowed, value)
	}
	return &OneOfValidator{
		opts:       newOptions(options{required: true}, opts),
		values:     append([]string(nil), values...),
		constraint: newConstraint(map[string]any{"enum": allowed}),
	}
}

// Values returns the accepted values.
func (v *OneOfValidator) Values() []string {
	return append([]string(nil), v.values...)
}

// Process implements Validator.
func (v *OneOfValidator) Process(value any) (any, error) {
	if isEmpty(value) {
		if v.opts.required {
			return nil, NewError(KeyEmpty, value)
		}
		return nil, nil
	}
	if multi, ok := value.([]string); ok {
		value = multi[len(multi)-1]
	}

	text := fmt.Sprint(value)
	keyword, err := v.constraint.violation(text)
	if err != nil {
		return nil, err
	}
	if keyword != "" {
		return nil, NewError(KeyInvalid, value)
	}
	return text, nil
}

// IsRequired implements RequiredReporter.
func (v *OneOfValidator) IsRequired() bool {
	return v.opts.required
}
