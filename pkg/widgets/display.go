package widgets

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-formwidgets/pkg/render/template"
	"github.com/goliatone/go-formwidgets/pkg/validation"
)

// ErrUnexpectedAttribute is returned when a display option overrides a
// template variable the widget does not define.
var ErrUnexpectedAttribute = errors.New("display() got an unexpected keyword argument")

// DisplayConfig collects the options of a single Display call.
type DisplayConfig struct {
	Overrides  map[string]any
	Attrs      map[string]any
	Children   map[string][]DisplayOption
	Locale     string
	Translator validation.Translator
}

// DisplayOption customises a single render.
type DisplayOption func(*DisplayConfig)

// NewDisplayConfig applies opts to an empty config.
func NewDisplayConfig(opts ...DisplayOption) *DisplayConfig {
	cfg := &DisplayConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// WithOverride replaces template variable name for this render.
func WithOverride(name string, value any) DisplayOption {
	return func(cfg *DisplayConfig) {
		if cfg.Overrides == nil {
			cfg.Overrides = make(map[string]any)
		}
		cfg.Overrides[name] = value
	}
}

// WithAttribute adds or replaces an HTML attribute of the root element.
func WithAttribute(name string, value any) DisplayOption {
	return func(cfg *DisplayConfig) {
		if cfg.Attrs == nil {
			cfg.Attrs = make(map[string]any)
		}
		cfg.Attrs[name] = value
	}
}

// WithAttrs adds several HTML attributes.
func WithAttrs(attrs map[string]any) DisplayOption {
	return func(cfg *DisplayConfig) {
		for name, value := range attrs {
			WithAttribute(name, value)(cfg)
		}
	}
}

// WithChild forwards options to the child named name of a container.
func WithChild(name string, opts ...DisplayOption) DisplayOption {
	return func(cfg *DisplayConfig) {
		if cfg.Children == nil {
			cfg.Children = make(map[string][]DisplayOption)
		}
		cfg.Children[name] = append(cfg.Children[name], opts...)
	}
}

// WithLocale selects the locale used for error messages.
func WithLocale(locale string) DisplayOption {
	return func(cfg *DisplayConfig) { cfg.Locale = locale }
}

// WithTranslator localizes error messages through t.
func WithTranslator(t validation.Translator) DisplayOption {
	return func(cfg *DisplayConfig) { cfg.Translator = t }
}

// ChildOptions returns the options registered for child name, preceded by
// the inherited locale settings.
func (cfg *DisplayConfig) ChildOptions(name string) []DisplayOption {
	opts := []DisplayOption{WithLocale(cfg.Locale), WithTranslator(cfg.Translator)}
	return append(opts, cfg.Children[name]...)
}

// Message renders err for the configured locale.
func (cfg *DisplayConfig) Message(err error) string {
	if cfg == nil {
		return validation.Localize(err, "", nil, nil)
	}
	return validation.Localize(err, cfg.Locale, cfg.Translator, nil)
}

// Display renders w and returns the markup.
func Display(w Widget, value any, opts ...DisplayOption) (string, error) {
	var b strings.Builder
	if err := Render(&b, w, value, opts...); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Render writes the markup of w to out.
func Render(out io.Writer, w Widget, value any, opts ...DisplayOption) error {
	cfg := NewDisplayConfig(opts...)

	if p, ok := w.(Preparer); ok {
		prepared, err := p.PrepareDisplay(value)
		if err != nil {
			return err
		}
		value = prepared
	}

	vars, err := w.TemplateVariables(value, cfg)
	if err != nil {
		return err
	}
	if vars == nil {
		vars = make(map[string]any)
	}
	base := w.WidgetBase()
	for key, v := range base.Vars {
		vars[key] = v
	}
	for key, v := range cfg.Overrides {
		if _, ok := vars[key]; !ok {
			return fmt.Errorf("%w %q", ErrUnexpectedAttribute, key)
		}
		vars[key] = v
	}
	if f, ok := w.(Finalizer); ok {
		f.FinalizeVariables(vars)
	}

	attrs := w.HTMLAttributes(vars).Merge(base.Attrs).Merge(cfg.Attrs)
	vars["attrs"] = attrs.TemplateData()

	html, err := execute(base, w.Kind(), vars)
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, strings.TrimSpace(html))
	return err
}

// RenderTemplate renders the named template with the engine configured on
// base. Containers use it for wrapper markup.
func RenderTemplate(base *Base, name string, vars map[string]any) (string, error) {
	engine, err := resolveEngine(base)
	if err != nil {
		return "", err
	}
	html, err := engine.RenderTemplate(name, vars)
	if err != nil {
		return "", fmt.Errorf("widgets: render %q: %w", name, err)
	}
	return strings.TrimSpace(html), nil
}

func execute(base *Base, kind string, vars map[string]any) (string, error) {
	engine, err := resolveEngine(base)
	if err != nil {
		return "", err
	}
	if base.Inline != "" {
		html, err := engine.RenderString(base.Inline, vars)
		if err != nil {
			return "", fmt.Errorf("widgets: render inline %s template: %w", kind, err)
		}
		return html, nil
	}
	if base.Template == "" {
		return "", fmt.Errorf("widgets: %s widget has no template", kind)
	}
	html, err := engine.RenderTemplate(base.Template, vars)
	if err != nil {
		return "", fmt.Errorf("widgets: render %q: %w", base.Template, err)
	}
	return html, nil
}

func resolveEngine(base *Base) (template.TemplateRenderer, error) {
	if base.Renderer != nil {
		return base.Renderer, nil
	}
	registry := base.Registry
	if registry == nil {
		var err error
		if registry, err = Engines(); err != nil {
			return nil, err
		}
	}
	engine, err := registry.Get(base.Engine)
	if err != nil {
		return nil, fmt.Errorf("widgets: %w", err)
	}
	return engine, nil
}
