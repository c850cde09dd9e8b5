package widgets

import (
	"embed"
	"fmt"
	"io/fs"
	"sync"

	"github.com/goliatone/go-formwidgets/pkg/render"
	"github.com/goliatone/go-formwidgets/pkg/render/template"
	"github.com/goliatone/go-formwidgets/pkg/render/template/gotemplate"
)

// DefaultEngine is the registry name of the built-in pongo2 engine.
const DefaultEngine = "pongo2"

//go:embed templates/*.tmpl
var builtinTemplates embed.FS

// RegistryLookup resolves template engines by name.
type RegistryLookup interface {
	Get(name string) (template.TemplateRenderer, error)
}

var (
	defaultRegistryOnce sync.Once
	defaultRegistry     *render.Registry
	defaultRegistryErr  error
)

// TemplatesFS exposes the built-in widget templates.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(builtinTemplates, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// NewEngine builds a pongo2 engine over the built-in templates. Extra
// sources are consulted before the built-ins, so they can shadow them.
func NewEngine(sources ...fs.FS) (*gotemplate.Engine, error) {
	opts := []gotemplate.Option{gotemplate.WithName("widgets")}
	for _, src := range sources {
		opts = append(opts, gotemplate.WithFS(src))
	}
	opts = append(opts, gotemplate.WithFS(TemplatesFS()), gotemplate.WithExtension(".tmpl"))
	return gotemplate.New(opts...)
}

// NewRegistry returns a registry holding the built-in engine as default.
func NewRegistry(sources ...fs.FS) (*render.Registry, error) {
	engine, err := NewEngine(sources...)
	if err != nil {
		return nil, fmt.Errorf("widgets: build engine: %w", err)
	}
	registry := render.NewRegistry()
	if err := registry.Register(DefaultEngine, engine); err != nil {
		return nil, err
	}
	return registry, nil
}

// Engines returns the process wide registry used by widgets that configure
// neither a Renderer nor a Registry. Applications may register additional
// engines on it.
func Engines() (*render.Registry, error) {
	defaultRegistryOnce.Do(func() {
		defaultRegistry, defaultRegistryErr = NewRegistry()
	})
	return defaultRegistry, defaultRegistryErr
}
