package formspec

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formwidgets/pkg/forms"
	"github.com/goliatone/go-formwidgets/pkg/validation"
	"github.com/goliatone/go-formwidgets/pkg/widgets"
)

// Built-in field kinds.
const (
	KindText     = "text"
	KindPassword = "password"
	KindEmail    = "email"
	KindHidden   = "hidden"
	KindInteger  = "integer"
	KindTextArea = "textarea"
	KindCheckbox = "checkbox"
	KindRadio    = "radio"
	KindSelect   = "select"
	KindSubmit   = "submit"
	KindLabel    = "label"
	KindList     = "list"
	KindForm     = "form"
)

var (
	// ErrUnknownKind is returned for field kinds without a builder.
	ErrUnknownKind = errors.New("formspec: unknown field kind")
	// ErrUnknownForm is returned by Store.Build for missing definitions.
	ErrUnknownForm = errors.New("formspec: unknown form")
)

// Builder creates the widget for spec. r builds nested children.
type Builder func(r *Registry, spec FieldSpec) (widgets.Widget, error)

// Registry maps field kinds to builders.
type Registry struct {
	mu       sync.RWMutex
	builders map[string]Builder
}

// NewRegistry returns a registry with the built-in kinds.
func NewRegistry() *Registry {
	r := &Registry{builders: make(map[string]Builder)}
	r.registerBuiltins()
	return r
}

var defaultRegistry = sync.OnceValue(NewRegistry)

// DefaultRegistry returns the shared registry used by Build.
func DefaultRegistry() *Registry {
	return defaultRegistry()
}

// Register adds or replaces the builder for kind.
func (r *Registry) Register(kind string, builder Builder) {
	kind = strings.TrimSpace(kind)
	if kind == "" || builder == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.builders == nil {
		r.builders = make(map[string]Builder)
	}
	r.builders[kind] = builder
}

// Kinds returns the registered kinds in sorted order.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.builders))
	for kind := range r.builders {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// BuildField creates the widget for one field definition.
func (r *Registry) BuildField(spec FieldSpec) (widgets.Widget, error) {
	r.mu.RLock()
	builder, ok := r.builders[spec.Kind]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q (field %q)", ErrUnknownKind, spec.Kind, spec.Name)
	}
	w, err := builder(r, spec)
	if err != nil {
		return nil, fmt.Errorf("formspec: build %q: %w", spec.Name, err)
	}
	return w, nil
}

// BuildFields creates the widgets for specs in order.
func (r *Registry) BuildFields(specs []FieldSpec) ([]widgets.Widget, error) {
	out := make([]widgets.Widget, 0, len(specs))
	for _, spec := range specs {
		w, err := r.BuildField(spec)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}

// Build creates the form described by spec. opts are applied after the
// options derived from the definition.
func (r *Registry) Build(spec FormSpec, opts ...forms.Option) (*forms.Form, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	children, err := r.BuildFields(spec.Fields)
	if err != nil {
		return nil, err
	}

	formOpts := []forms.Option{forms.WithURL(spec.URL), forms.WithEnctype(spec.Enctype)}
	if spec.ID != "" {
		formOpts = append(formOpts, forms.WithID(spec.ID))
	}
	if spec.Method != "" {
		formOpts = append(formOpts, forms.WithMethod(strings.ToUpper(spec.Method)))
	}
	if spec.Charset != "" {
		formOpts = append(formOpts, forms.WithCharset(spec.Charset))
	}
	if len(spec.CSSClasses) > 0 {
		formOpts = append(formOpts, forms.WithCSSClasses(spec.CSSClasses...))
	}
	return forms.NewForm("", children, append(formOpts, opts...)...), nil
}

// Build creates the form described by spec with the default registry.
func Build(spec FormSpec, opts ...forms.Option) (*forms.Form, error) {
	return DefaultRegistry().Build(spec, opts...)
}

func (r *Registry) registerBuiltins() {
	r.Register(KindText, func(_ *Registry, s FieldSpec) (widgets.Widget, error) {
		return forms.NewTextField(s.Name, FieldOptions(s, stringValidator(s, false))...), nil
	})
	r.Register(KindPassword, func(_ *Registry, s FieldSpec) (widgets.Widget, error) {
		return forms.NewPasswordField(s.Name, FieldOptions(s, stringValidator(s, true))...), nil
	})
	r.Register(KindEmail, func(_ *Registry, s FieldSpec) (widgets.Widget, error) {
		return forms.NewEmailField(s.Name, FieldOptions(s, validation.Email(stringOptions(s, true)...))...), nil
	})
	r.Register(KindHidden, func(_ *Registry, s FieldSpec) (widgets.Widget, error) {
		return forms.NewHiddenField(s.Name, FieldOptions(s, stringValidator(s, false))...), nil
	})
	r.Register(KindInteger, func(_ *Registry, s FieldSpec) (widgets.Widget, error) {
		opts := []validation.Option{validation.Required(required(s, true))}
		if s.Min != nil {
			opts = append(opts, validation.Min(*s.Min))
		}
		if s.Max != nil {
			opts = append(opts, validation.Max(*s.Max))
		}
		return forms.NewTextField(s.Name, FieldOptions(s, validation.Integer(opts...))...), nil
	})
	r.Register(KindTextArea, func(_ *Registry, s FieldSpec) (widgets.Widget, error) {
		opts := FieldOptions(s, stringValidator(s, false))
		if s.Cols > 0 || s.Rows > 0 {
			opts = append(opts, forms.WithSize(s.Cols, s.Rows))
		}
		return forms.NewTextArea(s.Name, opts...), nil
	})
	r.Register(KindCheckbox, func(_ *Registry, s FieldSpec) (widgets.Widget, error) {
		return forms.NewCheckbox(s.Name, append(FieldOptions(s, nil), forms.WithOptionValue(s.OptionValue))...), nil
	})
	r.Register(KindRadio, func(_ *Registry, s FieldSpec) (widgets.Widget, error) {
		return forms.NewRadiobutton(s.Name, append(FieldOptions(s, nil), forms.WithOptionValue(s.OptionValue))...), nil
	})
	r.Register(KindSelect, func(_ *Registry, s FieldSpec) (widgets.Widget, error) {
		if len(s.Options) == 0 {
			return nil, errors.New("select without options")
		}
		options := make([]forms.SelectOption, 0, len(s.Options))
		values := make([]string, 0, len(s.Options))
		for _, option := range s.Options {
			label := option.Label
			if label == "" {
				label = option.Value
			}
			options = append(options, forms.Choice(option.Value, label))
			values = append(values, option.Value)
		}
		var v validation.Validator
		if s.Required != nil {
			v = validation.OneOf(values, validation.Required(*s.Required))
		}
		return forms.NewSelectField(s.Name, append(FieldOptions(s, v), forms.WithOptions(options...))...), nil
	})
	r.Register(KindSubmit, func(_ *Registry, s FieldSpec) (widgets.Widget, error) {
		return forms.NewSubmitButton(s.Name, append(FieldOptions(s, nil), forms.WithValue(s.Value))...), nil
	})
	r.Register(KindLabel, func(_ *Registry, s FieldSpec) (widgets.Widget, error) {
		text := s.Label
		if text == "" {
			text = s.Value
		}
		opts := []widgets.Option{widgets.WithID(s.ID), widgets.WithCSSClasses(s.CSSClasses...)}
		for _, name := range sortedAttrNames(s.Attrs) {
			opts = append(opts, widgets.WithAttr(name, s.Attrs[name]))
		}
		return widgets.NewLabel(text, opts...), nil
	})
	r.Register(KindList, func(r *Registry, s FieldSpec) (widgets.Widget, error) {
		children, err := r.BuildFields(s.Children)
		if err != nil {
			return nil, err
		}
		return forms.NewListField(s.Name, children, FieldOptions(s, nil)...), nil
	})
	r.Register(KindForm, func(r *Registry, s FieldSpec) (widgets.Widget, error) {
		children, err := r.BuildFields(s.Children)
		if err != nil {
			return nil, err
		}
		return forms.NewForm(s.Name, children, FieldOptions(s, nil)...), nil
	})
}

// FieldOptions converts the shared attributes of s. A nil validator keeps
// the kind's default.
func FieldOptions(s FieldSpec, v validation.Validator) []forms.Option {
	var opts []forms.Option
	if s.ID != "" {
		opts = append(opts, forms.WithID(s.ID))
	}
	if len(s.CSSClasses) > 0 {
		opts = append(opts, forms.WithCSSClasses(s.CSSClasses...))
	}
	if s.Label != "" {
		opts = append(opts, forms.WithLabel(s.Label))
	}
	for _, name := range sortedAttrNames(s.Attrs) {
		opts = append(opts, forms.WithAttr(name, s.Attrs[name]))
	}
	if v != nil {
		opts = append(opts, forms.WithValidator(v))
	}
	return opts
}

func stringValidator(s FieldSpec, requiredByDefault bool) validation.Validator {
	return validation.String(stringOptions(s, requiredByDefault)...)
}

func stringOptions(s FieldSpec, requiredByDefault bool) []validation.Option {
	opts := []validation.Option{validation.Required(required(s, requiredByDefault))}
	if s.MinLength != nil {
		opts = append(opts, validation.MinLength(*s.MinLength))
	}
	if s.MaxLength != nil {
		opts = append(opts, validation.MaxLength(*s.MaxLength))
	}
	if s.Pattern != "" {
		opts = append(opts, validation.Pattern(s.Pattern))
	}
	return opts
}

func required(s FieldSpec, fallback bool) bool {
	if s.Required == nil {
		return fallback
	}
	return *s.Required
}

func sortedAttrNames(attrs map[string]string) []string {
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
