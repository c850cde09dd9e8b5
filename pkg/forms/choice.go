package forms

import (
	"github.com/goliatone/go-formwidgets/pkg/validation"
	"github.com/goliatone/go-formwidgets/pkg/widgets"
)

// Checkbox renders <input type="checkbox">. The display value is checked
// when it converts to true.
type Checkbox struct {
	InputWidget
	// OptionValue is submitted when checked; browsers send "on" without it.
	OptionValue string
	Readonly    bool
	Disabled    bool
}

var _ Field = (*Checkbox)(nil)

// NewCheckbox creates a checkbox.
func NewCheckbox(name string, opts ...Option) *Checkbox {
	c := &Checkbox{InputWidget: *newInput("checkbox", name, "checkbox")}
	applyOptions(c, opts)
	c.defaultValidator(c.booleanValidator())
	return c
}

func (c *Checkbox) booleanValidator() validation.Validator {
	if c.OptionValue == "" {
		return validation.BooleanCheckbox(nil)
	}
	return validation.BooleanCheckbox(c.OptionValue)
}

// TemplateVariables implements widgets.Widget.
func (c *Checkbox) TemplateVariables(value any, _ *widgets.DisplayConfig) (map[string]any, error) {
	checked, _ := c.DisplayValue(value).(bool)
	vars := c.templateVariables(c.OptionValue)
	vars["checked"] = checked
	vars["readonly"] = c.Readonly
	vars["disabled"] = c.Disabled
	return vars, nil
}

// HTMLAttributes implements widgets.Widget.
func (c *Checkbox) HTMLAttributes(vars map[string]any) widgets.Attributes {
	return widgets.Attributes{}.
		Set("type", vars["type"]).
		Set("id", vars["id"]).
		Set("name", vars["name"]).
		Set("value", vars["value"]).
		Set("checked", vars["checked"]).
		Set("readonly", vars["readonly"]).
		Set("disabled", vars["disabled"]).
		Set("class", vars["css_classes"])
}

// Display renders the checkbox.
func (c *Checkbox) Display(value any, opts ...widgets.DisplayOption) (string, error) {
	return widgets.Display(c, value, opts...)
}

// Clone implements widgets.Widget.
func (c *Checkbox) Clone() widgets.Widget {
	clone := *c
	clone.InputWidget = *c.cloneInput()
	return &clone
}

// Radiobutton renders <input type="radio">.
type Radiobutton struct {
	Checkbox
}

var _ Field = (*Radiobutton)(nil)

// NewRadiobutton creates a radio button.
func NewRadiobutton(name string, opts ...Option) *Radiobutton {
	r := &Radiobutton{Checkbox: Checkbox{InputWidget: *newInput("radio", name, "radio")}}
	applyOptions(r, opts)
	r.defaultValidator(r.booleanValidator())
	return r
}

// Display renders the radio button.
func (r *Radiobutton) Display(value any, opts ...widgets.DisplayOption) (string, error) {
	return widgets.Display(r, value, opts...)
}

// Clone implements widgets.Widget.
func (r *Radiobutton) Clone() widgets.Widget {
	clone := *r
	clone.InputWidget = *r.cloneInput()
	return &clone
}

// SelectOption is one <option> of a select field.
type SelectOption struct {
	Value string
	Label string
}

// Choice builds a SelectOption.
func Choice(value, label string) SelectOption {
	return SelectOption{Value: value, Label: label}
}

// SelectField renders a <select> list. Its validator accepts only the
// option values.
type SelectField struct {
	InputWidget
	Options []SelectOption
}

var _ Field = (*SelectField)(nil)

// NewSelectField creates a select list.
func NewSelectField(name string, opts ...Option) *SelectField {
	s := &SelectField{InputWidget: *newInput("select", name, "")}
	s.Template = "select"
	applyOptions(s, opts)
	values := make([]string, 0, len(s.Options))
	for _, option := range s.Options {
		values = append(values, option.Value)
	}
	s.defaultValidator(validation.OneOf(values))
	return s
}

// TemplateVariables implements widgets.Widget.
func (s *SelectField) TemplateVariables(value any, _ *widgets.DisplayConfig) (map[string]any, error) {
	selected := displayString(s.DisplayValue(value))
	vars := s.templateVariables(selected)
	delete(vars, "type")
	options := make([]map[string]any, 0, len(s.Options))
	for _, option := range s.Options {
		options = append(options, map[string]any{
			"value":    option.Value,
			"label":    option.Label,
			"selected": option.Value == selected,
		})
	}
	vars["options"] = options
	return vars, nil
}

// HTMLAttributes implements widgets.Widget.
func (s *SelectField) HTMLAttributes(vars map[string]any) widgets.Attributes {
	return widgets.Attributes{}.
		Set("id", vars["id"]).
		Set("name", vars["name"]).
		Set("class", vars["css_classes"])
}

// Display renders the select list.
func (s *SelectField) Display(value any, opts ...widgets.DisplayOption) (string, error) {
	return widgets.Display(s, value, opts...)
}

// Clone implements widgets.Widget.
func (s *SelectField) Clone() widgets.Widget {
	clone := *s
	clone.InputWidget = *s.cloneInput()
	clone.Options = append([]SelectOption(nil), s.Options...)
	return &clone
}
