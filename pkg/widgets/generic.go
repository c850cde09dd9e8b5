package widgets

// Generic is a template-only widget. Its variables come from Vars and can
// be overridden on display.
type Generic struct {
	Base
	kind string
}

var _ Widget = (*Generic)(nil)

// New creates a generic widget rendered with the "widget" template unless an
// inline or named template is configured.
func New(opts ...Option) *Generic {
	g := &Generic{Base: Base{Template: "widget"}, kind: "widget"}
	g.Apply(opts...)
	return g
}

// NewKind creates a generic widget reported under kind, so themes can
// target it.
func NewKind(kind string, opts ...Option) *Generic {
	g := New(opts...)
	g.kind = kind
	return g
}

// WithVars adds template variables.
func WithVars(vars map[string]any) Option {
	return func(b *Base) {
		for name, value := range vars {
			WithVar(name, value)(b)
		}
	}
}

// Kind implements Widget.
func (g *Generic) Kind() string { return g.kind }

// Display renders the widget.
func (g *Generic) Display(value any, opts ...DisplayOption) (string, error) {
	return Display(g, value, opts...)
}

// TemplateVariables implements Widget. The explicit value wins over the
// context value.
func (g *Generic) TemplateVariables(value any, _ *DisplayConfig) (map[string]any, error) {
	if value == nil {
		value = g.Context().Value()
	}
	if value == nil {
		value = ""
	}
	return map[string]any{
		"id":          g.ID,
		"css_classes": g.CSSClasses,
		"value":       value,
	}, nil
}

// HTMLAttributes implements Widget.
func (g *Generic) HTMLAttributes(vars map[string]any) Attributes {
	return Attributes{}.
		Set("id", vars["id"]).
		Set("class", vars["css_classes"])
}

// Clone implements Widget.
func (g *Generic) Clone() Widget {
	clone := *g
	clone.Base = g.CloneBase()
	return &clone
}
