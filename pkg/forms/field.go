package forms

import (
	"github.com/goliatone/go-formwidgets/pkg/formdata"
	"github.com/goliatone/go-formwidgets/pkg/render"
	"github.com/goliatone/go-formwidgets/pkg/validation"
	"github.com/goliatone/go-formwidgets/pkg/widgets"
)

// Field is a widget that takes part in validation.
type Field interface {
	widgets.Widget
	Input() *InputWidget
	FieldValidator() validation.Validator
	Validate(value any) formdata.Data
	NewContext(unvalidated any) formdata.Data
	SetContext(data formdata.Data) error
	IsField() bool
	IsButton() bool
	IsHidden() bool
	Path() []string
	FullName() string
	LabelWidget() widgets.Widget
}

type pather interface {
	Path() []string
}

// Option configures a field. Options that only make sense for one kind of
// field are ignored by the others.
type Option func(Field)

func applyOptions(f Field, opts []Option) {
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
}

// WithWidgetOptions applies widget level options (template, engine, attrs).
func WithWidgetOptions(opts ...widgets.Option) Option {
	return func(f Field) {
		f.Input().Apply(opts...)
	}
}

// WithID sets the element id.
func WithID(id string) Option {
	return WithWidgetOptions(widgets.WithID(id))
}

// WithCSSClasses appends css classes to the element.
func WithCSSClasses(classes ...string) Option {
	return WithWidgetOptions(widgets.WithCSSClasses(classes...))
}

// WithAttr adds an HTML attribute to the element.
func WithAttr(name string, value any) Option {
	return WithWidgetOptions(widgets.WithAttr(name, value))
}

// WithContainerAttr adds an HTML attribute to the element wrapping the
// field inside a form.
func WithContainerAttr(name string, value any) Option {
	return WithWidgetOptions(widgets.WithContainerAttr(name, value))
}

// WithTemplate selects a named template.
func WithTemplate(name string) Option {
	return WithWidgetOptions(widgets.WithTemplate(name))
}

// WithInlineTemplate renders the field from template source.
func WithInlineTemplate(source string) Option {
	return WithWidgetOptions(widgets.WithInlineTemplate(source))
}

// WithLabel sets the label text.
func WithLabel(label string) Option {
	return func(f Field) { f.Input().Label = label }
}

// WithLabelWidget replaces the generated label.
func WithLabelWidget(label widgets.Widget) Option {
	return func(f Field) { f.Input().CustomLabel = label }
}

// WithValidator replaces the default validator. nil disables validation.
func WithValidator(v validation.Validator) Option {
	return func(f Field) { f.Input().SetValidator(v) }
}

// WithEngine selects a registered template engine for the field and, for
// forms and lists, for all descendants that did not pick one.
func WithEngine(name string) Option {
	return inherit(func(b *widgets.Base) {
		if b.Engine == "" {
			b.Engine = name
		}
	})
}

// WithRegistry resolves template engines through registry for the field and
// its descendants.
func WithRegistry(registry widgets.RegistryLookup) Option {
	return inherit(func(b *widgets.Base) {
		if b.Registry == nil {
			b.Registry = registry
		}
	})
}

func inherit(set func(*widgets.Base)) Option {
	return func(f Field) {
		widgets.Visit(f, func(w widgets.Widget) bool {
			set(w.WidgetBase())
			return true
		})
	}
}

// WithURL sets the form action.
func WithURL(url string) Option {
	return func(f Field) {
		if form, ok := f.(*Form); ok {
			form.URL = url
		}
	}
}

// WithMethod sets the form method.
func WithMethod(method string) Option {
	return func(f Field) {
		if form, ok := f.(*Form); ok {
			form.Method = method
		}
	}
}

// WithCharset sets the accept-charset attribute of a form.
func WithCharset(charset string) Option {
	return func(f Field) {
		if form, ok := f.(*Form); ok {
			form.Charset = charset
		}
	}
}

// WithEnctype sets the form encoding.
func WithEnctype(enctype string) Option {
	return func(f Field) {
		if form, ok := f.(*Form); ok {
			form.Enctype = enctype
		}
	}
}

// WithHiddenFields adds hidden inputs rendered at the top of a form.
func WithHiddenFields(fields ...render.HiddenField) Option {
	return func(f Field) {
		if form, ok := f.(*Form); ok {
			form.HiddenFields = render.MergeHiddenFields(form.HiddenFields, fields...)
		}
	}
}

// WithSchema predefines the validation schema of a form. Child validators
// are added to a copy of it on every validation.
func WithSchema(schema *validation.Schema) Option {
	return func(f Field) {
		if form, ok := f.(*Form); ok {
			form.Schema = schema
		}
	}
}

// WithOptionValue sets the value submitted by a checked checkbox or radio
// button.
func WithOptionValue(value string) Option {
	return func(f Field) {
		if c := asCheckbox(f); c != nil {
			c.OptionValue = value
		}
	}
}

// WithReadonly marks a checkbox or radio button read only.
func WithReadonly(readonly bool) Option {
	return func(f Field) {
		if c := asCheckbox(f); c != nil {
			c.Readonly = readonly
		}
	}
}

// WithDisabled disables a checkbox or radio button.
func WithDisabled(disabled bool) Option {
	return func(f Field) {
		if c := asCheckbox(f); c != nil {
			c.Disabled = disabled
		}
	}
}

// WithOptions sets the choices of a select field.
func WithOptions(options ...SelectOption) Option {
	return func(f Field) {
		if s, ok := f.(*SelectField); ok {
			s.Options = append(s.Options, options...)
		}
	}
}

// WithSize sets the cols and rows of a text area.
func WithSize(cols, rows int) Option {
	return func(f Field) {
		if t, ok := f.(*TextArea); ok {
			t.Cols, t.Rows = cols, rows
		}
	}
}

// WithValue sets the static caption of a submit button.
func WithValue(value string) Option {
	return func(f Field) {
		if b, ok := f.(*SubmitButton); ok {
			b.Value = value
		}
	}
}

func asCheckbox(f Field) *Checkbox {
	switch c := f.(type) {
	case *Checkbox:
		return c
	case *Radiobutton:
		return &c.Checkbox
	}
	return nil
}
