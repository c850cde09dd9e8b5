package widgets

import (
	"fmt"

	"github.com/goliatone/go-formwidgets/pkg/render"
)

// Label renders a <label> element.
type Label struct {
	Base
	For   string
	Value string
	// HTML renders Value as sanitized markup instead of escaped text.
	HTML bool
}

var (
	_ Widget    = (*Label)(nil)
	_ Finalizer = (*Label)(nil)
)

// NewLabel creates a label with the given text.
func NewLabel(value string, opts ...Option) *Label {
	l := &Label{Base: Base{Template: "label"}, Value: value}
	l.Apply(opts...)
	return l
}

// Kind implements Widget.
func (l *Label) Kind() string { return "label" }

// Display renders the label. A nil value displays Value.
func (l *Label) Display(value any, opts ...DisplayOption) (string, error) {
	return Display(l, value, opts...)
}

// TemplateVariables implements Widget.
func (l *Label) TemplateVariables(value any, _ *DisplayConfig) (map[string]any, error) {
	text := l.Value
	if value != nil {
		text = fmt.Sprint(value)
	}
	return map[string]any{
		"id":          l.ID,
		"for":         l.For,
		"value":       text,
		"css_classes": l.CSSClasses,
		"html":        l.HTML,
	}, nil
}

// FinalizeVariables implements Finalizer. Markup is sanitized after
// overrides so that neither Vars nor display options bypass it.
func (l *Label) FinalizeVariables(vars map[string]any) {
	if html, _ := vars["html"].(bool); !html {
		return
	}
	text := ""
	if v := vars["value"]; v != nil {
		text = fmt.Sprint(v)
	}
	vars["value"] = render.SanitizeHTML(text)
}

// HTMLAttributes implements Widget.
func (l *Label) HTMLAttributes(vars map[string]any) Attributes {
	return Attributes{}.
		Set("id", vars["id"]).
		Set("for", vars["for"]).
		Set("class", vars["css_classes"])
}

// Clone implements Widget.
func (l *Label) Clone() Widget {
	clone := *l
	clone.Base = l.CloneBase()
	return &clone
}
