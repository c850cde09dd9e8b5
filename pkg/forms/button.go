package forms

import "github.com/goliatone/go-formwidgets/pkg/widgets"

// SubmitButton renders <input type="submit">. A static Value takes
// precedence over submitted data so the caption never goes blank.
type SubmitButton struct {
	InputWidget
	Value string
}

var _ Field = (*SubmitButton)(nil)

// NewSubmitButton creates a submit button.
func NewSubmitButton(name string, opts ...Option) *SubmitButton {
	b := &SubmitButton{InputWidget: *newInput("submit", name, "submit")}
	applyOptions(b, opts)
	return b
}

// TemplateVariables implements widgets.Widget.
func (b *SubmitButton) TemplateVariables(value any, _ *widgets.DisplayConfig) (map[string]any, error) {
	display := b.DisplayValue(value)
	if b.Value != "" {
		display = b.Value
	}
	return b.templateVariables(display), nil
}

// IsField implements Field.
func (b *SubmitButton) IsField() bool { return false }

// IsButton implements Field.
func (b *SubmitButton) IsButton() bool { return true }

// Display renders the button.
func (b *SubmitButton) Display(value any, opts ...widgets.DisplayOption) (string, error) {
	return widgets.Display(b, value, opts...)
}

// Clone implements widgets.Widget.
func (b *SubmitButton) Clone() widgets.Widget {
	clone := *b
	clone.InputWidget = *b.cloneInput()
	return &clone
}

// ContainerClasses implements widgets.Widget. Buttons are no fields.
func (b *SubmitButton) ContainerClasses() []string {
	classes := b.InputWidget.ContainerClasses()
	return classes[:len(classes)-1]
}
