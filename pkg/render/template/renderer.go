package template

import (
	"io"
)

// TemplateRenderer is the seam between widgets and a template engine.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}

// TemplateChecker is implemented by engines that can tell whether a named
// template exists without rendering it.
type TemplateChecker interface {
	HasTemplate(name string) bool
}
