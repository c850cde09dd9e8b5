package forms

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formwidgets/pkg/formdata"
	"github.com/goliatone/go-formwidgets/pkg/validation"
	"github.com/goliatone/go-formwidgets/pkg/widgets"
)

// InputWidget is the base of all fields. Used on its own it renders an
// <input> without a type.
type InputWidget struct {
	widgets.Base
	Name  string
	Label string
	// CustomLabel is displayed instead of a label generated from Label.
	CustomLabel widgets.Widget
	// Type is the type attribute of <input> based fields.
	Type string

	kind         string
	hidden       bool
	validator    validation.Validator
	hasValidator bool
}

var _ Field = (*InputWidget)(nil)

// NewInput creates a bare input widget.
func NewInput(name string, opts ...Option) *InputWidget {
	w := newInput("input", name, "")
	applyOptions(w, opts)
	return w
}

func newInput(kind, name, inputType string) *InputWidget {
	return &InputWidget{
		Base: widgets.Base{Template: "input"},
		Name: name,
		Type: inputType,
		kind: kind,
	}
}

// Input implements Field.
func (w *InputWidget) Input() *InputWidget { return w }

// Kind implements widgets.Widget.
func (w *InputWidget) Kind() string { return w.kind }

// FieldValidator returns the validator, nil when values pass unchanged.
func (w *InputWidget) FieldValidator() validation.Validator { return w.validator }

// SetValidator replaces the validator.
func (w *InputWidget) SetValidator(v validation.Validator) {
	w.validator = v
	w.hasValidator = true
}

func (w *InputWidget) defaultValidator(v validation.Validator) {
	if !w.hasValidator {
		w.validator = v
	}
}

// Validate processes value and returns the resulting context.
func (w *InputWidget) Validate(value any) formdata.Data {
	ctx := formdata.NewFieldData(formdata.WithInitialValue(value))
	if w.validator == nil {
		_ = ctx.SetValue(value)
		return ctx
	}
	validated, err := w.validator.Process(value)
	if err != nil {
		_ = ctx.SetErrors(err)
		return ctx
	}
	_ = ctx.SetValue(validated)
	return ctx
}

// NewContext returns an empty context holding unvalidated as initial value.
func (w *InputWidget) NewContext(unvalidated any) formdata.Data {
	return formdata.NewFieldData(formdata.WithInitialValue(unvalidated))
}

// SetContext implements Field.
func (w *InputWidget) SetContext(data formdata.Data) error {
	if data == nil {
		return fmt.Errorf("forms: %s: nil context", w.Name)
	}
	w.Base.SetContext(data)
	return nil
}

// DisplayValue resolves the value to render: the explicit value, else the
// validated value, else the unvalidated input, converted back to its
// display form.
func (w *InputWidget) DisplayValue(value any) any {
	if value == nil {
		ctx := w.Context()
		value = ctx.Value()
		if value == nil {
			value = ctx.InitialValue()
		}
	}
	if w.validator == nil {
		return value
	}
	return validation.Revert(w.validator, value)
}

// TemplateVariables implements widgets.Widget.
func (w *InputWidget) TemplateVariables(value any, _ *widgets.DisplayConfig) (map[string]any, error) {
	return w.templateVariables(w.DisplayValue(value)), nil
}

func (w *InputWidget) templateVariables(value any) map[string]any {
	return map[string]any{
		"type":        w.Type,
		"id":          w.ID,
		"name":        w.FullName(),
		"value":       displayString(value),
		"css_classes": w.CSSClasses,
	}
}

// HTMLAttributes implements widgets.Widget.
func (w *InputWidget) HTMLAttributes(vars map[string]any) widgets.Attributes {
	return widgets.Attributes{}.
		Set("type", vars["type"]).
		Set("id", vars["id"]).
		Set("name", vars["name"]).
		Set("value", vars["value"]).
		Set("class", vars["css_classes"])
}

// ContainerClasses implements widgets.Widget.
func (w *InputWidget) ContainerClasses() []string {
	var classes []string
	if w.Name != "" {
		classes = append(classes, w.Name+"-container")
	}
	if w.Context().ContainsErrors() {
		classes = append(classes, "validationerror")
	}
	if w.validator != nil && validation.IsRequired(w.validator) {
		classes = append(classes, "requiredfield")
	}
	return append(classes, "widgetcontainer", "fieldcontainer")
}

// Path returns the names from the root form down to this field.
func (w *InputWidget) Path() []string {
	var parts []string
	if p, ok := w.Parent().(pather); ok {
		parts = append(parts, p.Path()...)
	}
	if w.Name != "" {
		parts = append(parts, w.Name)
	}
	return parts
}

// FullName is the submitted parameter name ("inner.bar", "rows-1.id").
func (w *InputWidget) FullName() string {
	return joinPath(w.Path())
}

func joinPath(parts []string) string {
	return strings.Join(parts, ".")
}

// LabelWidget returns the label shown next to the field, nil without one.
func (w *InputWidget) LabelWidget() widgets.Widget {
	if w.CustomLabel != nil {
		return w.CustomLabel
	}
	if w.Label == "" {
		return nil
	}
	label := widgets.NewLabel(w.Label,
		widgets.WithEngine(w.Engine),
		widgets.WithRenderer(w.Renderer),
		widgets.WithRegistry(w.Registry),
	)
	if w.ID != "" {
		label.ID = w.ID + "-label"
		label.For = w.ID
	}
	return label
}

// IsField reports whether the widget submits a value.
func (w *InputWidget) IsField() bool { return true }

// IsButton reports whether the widget is a button.
func (w *InputWidget) IsButton() bool { return false }

// IsHidden reports whether the widget is rendered without container.
func (w *InputWidget) IsHidden() bool { return w.hidden }

// Display renders the widget.
func (w *InputWidget) Display(value any, opts ...widgets.DisplayOption) (string, error) {
	return widgets.Display(w, value, opts...)
}

// Clone implements widgets.Widget.
func (w *InputWidget) Clone() widgets.Widget {
	return w.cloneInput()
}

func (w *InputWidget) cloneInput() *InputWidget {
	clone := *w
	clone.Base = w.CloneBase()
	if w.CustomLabel != nil {
		clone.CustomLabel = w.CustomLabel.Clone()
	}
	return &clone
}

func displayString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		if len(v) == 0 {
			return ""
		}
		return v[len(v)-1]
	}
	return fmt.Sprint(value)
}
