package timezones

import (
	"fmt"
	"slices"
	"strings"

	"github.com/goliatone/go-formwidgets/pkg/formspec"
	"github.com/goliatone/go-formwidgets/pkg/forms"
	"github.com/goliatone/go-formwidgets/pkg/validation"
	"github.com/goliatone/go-formwidgets/pkg/widgets"
)

// Kind is the form definition kind added by Register.
const Kind = "timezone"

// Validator accepts the names of known zones. Empty values fail with
// validation.KeyEmpty when required and unknown names with
// validation.KeyInvalid.
func Validator(zones []string, required bool) validation.Validator {
	sorted := slices.Clone(zones)
	slices.Sort(sorted)
	return validation.Funcs{
		Required: required,
		ProcessFn: func(value any) (any, error) {
			if multi, ok := value.([]string); ok && len(multi) > 0 {
				value = multi[len(multi)-1]
			}
			text := ""
			if value != nil {
				text = strings.TrimSpace(fmt.Sprint(value))
			}
			if text == "" {
				if required {
					return nil, validation.NewError(validation.KeyEmpty, value)
				}
				return nil, nil
			}
			if _, found := slices.BinarySearch(sorted, text); !found {
				return nil, validation.NewError(validation.KeyInvalid, value)
			}
			return text, nil
		},
		RevertFn: func(value any) any {
			if value == nil {
				return ""
			}
			return value
		},
	}
}

// NewField creates a required select listing every zone. opts run after the
// zone options so callers can replace the validator.
func NewField(name string, opts ...forms.Option) (*forms.SelectField, error) {
	return newField(name, NewOptions(), true, opts...)
}

func newField(name string, o Options, required bool, opts ...forms.Option) (*forms.SelectField, error) {
	zones, err := o.zones()
	if err != nil {
		return nil, fmt.Errorf("timezones: load zones: %w", err)
	}
	all := append([]forms.Option{
		forms.WithOptions(Choices(zones)...),
		forms.WithValidator(Validator(zones, required)),
	}, opts...)
	return forms.NewSelectField(name, all...), nil
}

// Register adds the timezone kind to r. The field is required unless the
// definition sets required to false.
func Register(r *formspec.Registry, fns ...OptionFn) {
	o := NewOptions(fns...)
	r.Register(Kind, func(_ *formspec.Registry, s formspec.FieldSpec) (widgets.Widget, error) {
		required := s.Required == nil || *s.Required
		return newField(s.Name, o, required, formspec.FieldOptions(s, nil)...)
	})
}
