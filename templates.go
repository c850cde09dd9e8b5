package formwidgets

import (
	"io/fs"

	"github.com/goliatone/go-formwidgets/pkg/widgets"
)

// EmbeddedTemplates exposes the built-in widget templates so callers can
// copy or shadow them without importing the widgets package directly.
func EmbeddedTemplates() fs.FS {
	return widgets.TemplatesFS()
}
