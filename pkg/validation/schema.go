package validation

import (
	"errors"
	"sort"
)

// FormValidator checks relations between fields once every field validated.
type FormValidator interface {
	Validate(values map[string]any) error
}

// FormValidatorFunc adapts a function to FormValidator.
type FormValidatorFunc func(values map[string]any) error

// Validate implements FormValidator.
func (f FormValidatorFunc) Validate(values map[string]any) error {
	return f(values)
}

type namedValidator struct {
	name      string
	validator Validator
}

// Schema validates a mapping of named values. Keys without a validator are
// dropped from the result; validators without a key see nil.
type Schema struct {
	fields         []namedValidator
	formValidators []FormValidator
}

// NewSchema returns an empty schema.
func NewSchema() *Schema {
	return &Schema{}
}

// Add registers v under name. Adding an existing name replaces the validator
// and keeps its position.
func (s *Schema) Add(name string, v Validator) *Schema {
	for i := range s.fields {
		if s.fields[i].name == name {
			s.fields[i].validator = v
			return s
		}
	}
	s.fields = append(s.fields, namedValidator{name: name, validator: v})
	return s
}

// AddFormValidator registers a cross-field check.
func (s *Schema) AddFormValidator(v FormValidator) *Schema {
	if v != nil {
		s.formValidators = append(s.formValidators, v)
	}
	return s
}

// Field returns the validator registered under name.
func (s *Schema) Field(name string) (Validator, bool) {
	for _, field := range s.fields {
		if field.name == name {
			return field.validator, true
		}
	}
	return nil, false
}

// Fields returns the registered field names in order.
func (s *Schema) Fields() []string {
	names := make([]string, 0, len(s.fields))
	for _, field := range s.fields {
		names = append(names, field.name)
	}
	return names
}

// FormValidators returns the registered cross-field checks.
func (s *Schema) FormValidators() []FormValidator {
	return append([]FormValidator(nil), s.formValidators...)
}

// Clone returns a schema that can be extended without touching s. The field
// validators themselves are shared.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return NewSchema()
	}
	return &Schema{
		fields:         append([]namedValidator(nil), s.fields...),
		formValidators: append([]FormValidator(nil), s.formValidators...),
	}
}

// Process implements Validator.
func (s *Schema) Process(value any) (any, error) {
	input, ok := toMapping(value)
	if !ok {
		return nil, NewError(KeyInvalidMapping, value)
	}

	result := make(map[string]any, len(s.fields))
	var fieldErrs []FieldError
	for _, field := range s.fields {
		validated, err := field.validator.Process(input[field.name])
		if err != nil {
			fieldErrs = append(fieldErrs, FieldError{Name: field.name, Err: err})
			continue
		}
		result[field.name] = validated
	}
	if len(fieldErrs) > 0 {
		return nil, NewFieldErrors(value, fieldErrs...)
	}

	for _, formValidator := range s.formValidators {
		if err := formValidator.Validate(result); err != nil {
			var verr *Error
			if errors.As(err, &verr) {
				return nil, verr
			}
			return nil, Errorf(KeyInvalid, value, "%s", err.Error())
		}
	}
	return result, nil
}

// RevertConversion implements Reverter.
func (s *Schema) RevertConversion(value any) any {
	input, ok := value.(map[string]any)
	if !ok {
		return value
	}
	out := make(map[string]any, len(input))
	for key, item := range input {
		if v, ok := s.Field(key); ok {
			out[key] = Revert(v, item)
			continue
		}
		out[key] = item
	}
	return out
}

// IsRequired implements RequiredReporter.
func (s *Schema) IsRequired() bool {
	return false
}

func toMapping(value any) (map[string]any, bool) {
	switch v := value.(type) {
	case nil:
		return map[string]any{}, true
	case map[string]any:
		return v, true
	case map[string]string:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = item
		}
		return out, true
	case map[string][]string:
		out := make(map[string]any, len(v))
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if items := v[key]; len(items) > 0 {
				out[key] = items[len(items)-1]
			}
		}
		return out, true
	}
	return nil, false
}
