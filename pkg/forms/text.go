package forms

import (
	"strconv"

	"github.com/goliatone/go-formwidgets/pkg/validation"
	"github.com/goliatone/go-formwidgets/pkg/widgets"
)

// NewTextField creates an optional single line text input.
func NewTextField(name string, opts ...Option) *InputWidget {
	return newTextLike("text", name, validation.String(validation.Required(false)), opts)
}

// NewPasswordField creates a required password input.
func NewPasswordField(name string, opts ...Option) *InputWidget {
	return newTextLike("password", name, validation.String(), opts)
}

// NewEmailField creates a required e-mail input.
func NewEmailField(name string, opts ...Option) *InputWidget {
	return newTextLike("email", name, validation.Email(), opts)
}

// NewHiddenField creates a hidden input. Forms render it without a
// container or label.
func NewHiddenField(name string, opts ...Option) *InputWidget {
	w := newTextLike("hidden", name, validation.String(), opts)
	w.hidden = true
	return w
}

func newTextLike(kind, name string, v validation.Validator, opts []Option) *InputWidget {
	w := newInput(kind, name, kind)
	applyOptions(w, opts)
	w.defaultValidator(v)
	return w
}

// TextArea is a multi line text input.
type TextArea struct {
	InputWidget
	Cols int
	Rows int
}

var _ Field = (*TextArea)(nil)

// NewTextArea creates a required text area of 50 columns and 10 rows.
func NewTextArea(name string, opts ...Option) *TextArea {
	t := &TextArea{InputWidget: *newInput("textarea", name, ""), Cols: 50, Rows: 10}
	t.Template = "textarea"
	applyOptions(t, opts)
	t.defaultValidator(validation.String())
	return t
}

// TemplateVariables implements widgets.Widget.
func (t *TextArea) TemplateVariables(value any, _ *widgets.DisplayConfig) (map[string]any, error) {
	vars := t.templateVariables(t.DisplayValue(value))
	delete(vars, "type")
	vars["cols"] = t.Cols
	vars["rows"] = t.Rows
	return vars, nil
}

// HTMLAttributes implements widgets.Widget. The value is the element body.
func (t *TextArea) HTMLAttributes(vars map[string]any) widgets.Attributes {
	return widgets.Attributes{}.
		Set("id", vars["id"]).
		Set("name", vars["name"]).
		Set("cols", positive(vars["cols"])).
		Set("rows", positive(vars["rows"])).
		Set("class", vars["css_classes"])
}

// Display renders the text area.
func (t *TextArea) Display(value any, opts ...widgets.DisplayOption) (string, error) {
	return widgets.Display(t, value, opts...)
}

// Clone implements widgets.Widget.
func (t *TextArea) Clone() widgets.Widget {
	clone := *t
	clone.InputWidget = *t.cloneInput()
	return &clone
}

func positive(value any) any {
	if n, ok := value.(int); ok {
		if n <= 0 {
			return nil
		}
		return strconv.Itoa(n)
	}
	return value
}
