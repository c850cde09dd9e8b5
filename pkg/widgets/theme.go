package widgets

import (
	"errors"
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ThemeKeyPrefix prefixes widget kinds in theme manifest template maps.
const ThemeKeyPrefix = "widgets."

// ThemeTemplates returns the kind -> template map of a theme selection.
// Variant templates replace base templates of the same kind.
func ThemeTemplates(sel *theme.Selection) map[string]string {
	out := make(map[string]string)
	if sel == nil || sel.Manifest == nil {
		return out
	}
	collect(out, sel.Manifest.Templates)
	if sel.Variant != "" {
		if variant, ok := sel.Manifest.Variants[sel.Variant]; ok {
			collect(out, variant.Templates)
		}
	}
	return out
}

func collect(out map[string]string, templates map[string]string) {
	for key, name := range templates {
		kind, ok := strings.CutPrefix(key, ThemeKeyPrefix)
		if !ok || kind == "" || strings.TrimSpace(name) == "" {
			continue
		}
		out[kind] = name
	}
}

// ApplyTheme points every widget in the tree whose kind the selection maps
// to the themed template. Inline templates are left alone. It returns the
// number of widgets changed.
func ApplyTheme(root Widget, sel *theme.Selection) int {
	templates := ThemeTemplates(sel)
	if len(templates) == 0 {
		return 0
	}
	changed := 0
	Visit(root, func(w Widget) bool {
		base := w.WidgetBase()
		if name, ok := templates[w.Kind()]; ok && base.Inline == "" {
			base.Template = name
			changed++
		}
		return true
	})
	return changed
}

// SelectTheme resolves a theme through selector.
func SelectTheme(selector theme.ThemeSelector, name, variant string) (*theme.Selection, error) {
	if selector == nil {
		return nil, errors.New("widgets: theme selector is required")
	}
	sel, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("widgets: select theme %q: %w", name, err)
	}
	return sel, nil
}
