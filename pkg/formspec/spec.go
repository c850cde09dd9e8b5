package formspec

import (
	"errors"
	"fmt"
	"strings"
)

// FormSpec describes a form.
type FormSpec struct {
	Name       string      `json:"name" yaml:"name"`
	ID         string      `json:"id,omitempty" yaml:"id,omitempty"`
	URL        string      `json:"url,omitempty" yaml:"url,omitempty"`
	Method     string      `json:"method,omitempty" yaml:"method,omitempty"`
	Charset    string      `json:"charset,omitempty" yaml:"charset,omitempty"`
	Enctype    string      `json:"enctype,omitempty" yaml:"enctype,omitempty"`
	CSSClasses []string    `json:"cssClasses,omitempty" yaml:"cssClasses,omitempty"`
	Fields     []FieldSpec `json:"fields" yaml:"fields"`
	// Source is the file the definition was read from.
	Source string `json:"-" yaml:"-"`
}

// FieldSpec describes one child of a form or list.
type FieldSpec struct {
	Kind        string            `json:"kind" yaml:"kind"`
	Name        string            `json:"name,omitempty" yaml:"name,omitempty"`
	ID          string            `json:"id,omitempty" yaml:"id,omitempty"`
	Label       string            `json:"label,omitempty" yaml:"label,omitempty"`
	CSSClasses  []string          `json:"cssClasses,omitempty" yaml:"cssClasses,omitempty"`
	Attrs       map[string]string `json:"attrs,omitempty" yaml:"attrs,omitempty"`
	Required    *bool             `json:"required,omitempty" yaml:"required,omitempty"`
	MinLength   *int              `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength   *int              `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Min         *int64            `json:"min,omitempty" yaml:"min,omitempty"`
	Max         *int64            `json:"max,omitempty" yaml:"max,omitempty"`
	Pattern     string            `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Options     []OptionSpec      `json:"options,omitempty" yaml:"options,omitempty"`
	OptionValue string            `json:"optionValue,omitempty" yaml:"optionValue,omitempty"`
	Value       string            `json:"value,omitempty" yaml:"value,omitempty"`
	Cols        int               `json:"cols,omitempty" yaml:"cols,omitempty"`
	Rows        int               `json:"rows,omitempty" yaml:"rows,omitempty"`
	// Children are the fields of list and nested form kinds.
	Children []FieldSpec `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// OptionSpec is a choice of a select field.
type OptionSpec struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// ErrInvalidSpec is wrapped by all definition errors.
var ErrInvalidSpec = errors.New("formspec: invalid definition")

// Validate checks names and kinds recursively.
func (s FormSpec) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: form without name (file %s)", ErrInvalidSpec, s.Source)
	}
	return validateFields(s.Fields, s.Name)
}

func validateFields(fields []FieldSpec, path string) error {
	seen := make(map[string]bool, len(fields))
	for i, field := range fields {
		if strings.TrimSpace(field.Kind) == "" {
			return fmt.Errorf("%w: %s field %d has no kind", ErrInvalidSpec, path, i)
		}
		if field.Name == "" {
			if field.Kind != KindLabel {
				return fmt.Errorf("%w: %s field %d (%s) has no name", ErrInvalidSpec, path, i, field.Kind)
			}
			continue
		}
		if seen[field.Name] {
			return fmt.Errorf("%w: %s defines %q twice", ErrInvalidSpec, path, field.Name)
		}
		seen[field.Name] = true
		if err := validateFields(field.Children, path+"."+field.Name); err != nil {
			return err
		}
	}
	return nil
}
