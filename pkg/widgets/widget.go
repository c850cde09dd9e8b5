package widgets

import (
	"github.com/goliatone/go-formwidgets/pkg/formdata"
	"github.com/goliatone/go-formwidgets/pkg/render/template"
)

// Widget is a renderable node of a form tree.
type Widget interface {
	// WidgetBase exposes the shared configuration.
	WidgetBase() *Base
	// Kind names the widget type ("text", "label", "form", ...). Themes map
	// kinds to templates.
	Kind() string
	// TemplateVariables returns the variables passed to the template. value
	// is the explicit display value and may be nil.
	TemplateVariables(value any, cfg *DisplayConfig) (map[string]any, error)
	// HTMLAttributes builds the attributes of the root element from the
	// (possibly overridden) template variables.
	HTMLAttributes(vars map[string]any) Attributes
	// ContainerClasses returns the css classes of the element wrapping the
	// widget inside a form.
	ContainerClasses() []string
	// Clone returns an independent copy without parent or context.
	Clone() Widget
}

// Preparer is implemented by widgets that consume the display value
// themselves (forms and lists store it in their context).
type Preparer interface {
	PrepareDisplay(value any) (any, error)
}

// Finalizer is implemented by widgets that post-process their template
// variables once base vars and overrides are applied.
type Finalizer interface {
	FinalizeVariables(vars map[string]any)
}

// Container is implemented by widgets with child widgets.
type Container interface {
	Widget
	ChildWidgets() []Widget
}

// Base holds the configuration shared by all widgets.
type Base struct {
	ID string
	// Template names a template in the engine ("input", "themes/acme/input.tmpl").
	Template string
	// Inline holds template source and takes precedence over Template.
	Inline string
	// Engine selects a template engine from the registry; empty uses the
	// registry default.
	Engine string
	// Renderer bypasses the registry entirely.
	Renderer   template.TemplateRenderer
	Registry   RegistryLookup
	CSSClasses []string
	// Attrs are extra HTML attributes added to the root element.
	Attrs map[string]any
	// ContainerAttrs are extra HTML attributes for the wrapping container.
	ContainerAttrs map[string]any
	// Vars are extra template variables; they can be overridden on display.
	Vars map[string]any

	parent  Widget
	context formdata.Data
}

// WidgetBase implements Widget.
func (b *Base) WidgetBase() *Base { return b }

// ContainerClasses implements Widget.
func (b *Base) ContainerClasses() []string {
	return []string{"widgetcontainer"}
}

// Parent returns the widget containing this one.
func (b *Base) Parent() Widget { return b.parent }

// SetParent attaches the widget to a container.
func (b *Base) SetParent(parent Widget) { b.parent = parent }

// Context returns the validation state, creating an empty FieldData on first
// use.
func (b *Base) Context() formdata.Data {
	if b.context == nil {
		b.context = formdata.NewFieldData()
	}
	return b.context
}

// SetContext replaces the validation state.
func (b *Base) SetContext(data formdata.Data) {
	b.context = data
}

// CloneBase copies b without parent and context.
func (b *Base) CloneBase() Base {
	clone := *b
	clone.CSSClasses = append([]string(nil), b.CSSClasses...)
	clone.Attrs = copyMap(b.Attrs)
	clone.ContainerAttrs = copyMap(b.ContainerAttrs)
	clone.Vars = copyMap(b.Vars)
	clone.parent = nil
	clone.context = nil
	return clone
}

// Option configures a Base.
type Option func(*Base)

// Apply runs opts against b.
func (b *Base) Apply(opts ...Option) {
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
}

// WithID sets the element id.
func WithID(id string) Option {
	return func(b *Base) { b.ID = id }
}

// WithCSSClasses appends css classes.
func WithCSSClasses(classes ...string) Option {
	return func(b *Base) { b.CSSClasses = append(b.CSSClasses, classes...) }
}

// WithTemplate selects a named template.
func WithTemplate(name string) Option {
	return func(b *Base) { b.Template = name }
}

// WithInlineTemplate renders from template source instead of a named
// template.
func WithInlineTemplate(source string) Option {
	return func(b *Base) { b.Inline = source }
}

// WithEngine selects a registered template engine.
func WithEngine(name string) Option {
	return func(b *Base) { b.Engine = name }
}

// WithRenderer renders through r, bypassing the engine registry.
func WithRenderer(r template.TemplateRenderer) Option {
	return func(b *Base) { b.Renderer = r }
}

// WithRegistry looks engines up in registry instead of the default one.
func WithRegistry(registry RegistryLookup) Option {
	return func(b *Base) { b.Registry = registry }
}

// WithAttr adds an HTML attribute to the root element.
func WithAttr(name string, value any) Option {
	return func(b *Base) {
		if b.Attrs == nil {
			b.Attrs = make(map[string]any)
		}
		b.Attrs[name] = value
	}
}

// WithContainerAttr adds an HTML attribute to the wrapping container.
func WithContainerAttr(name string, value any) Option {
	return func(b *Base) {
		if b.ContainerAttrs == nil {
			b.ContainerAttrs = make(map[string]any)
		}
		b.ContainerAttrs[name] = value
	}
}

// WithVar adds a template variable.
func WithVar(name string, value any) Option {
	return func(b *Base) {
		if b.Vars == nil {
			b.Vars = make(map[string]any)
		}
		b.Vars[name] = value
	}
}

func copyMap(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
