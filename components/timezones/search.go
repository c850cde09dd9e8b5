package timezones

import (
	"sort"
	"strings"

	"github.com/goliatone/go-formwidgets/pkg/forms"
)

// Search returns the zones containing query, case insensitive. Zones that
// start with query come first.
func Search(zones []string, query string, limit int, opts Options) []string {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		if opts.EmptySearchMode != EmptySearchTop {
			return nil
		}
		if len(zones) > limit {
			zones = zones[:limit]
		}
		return append([]string(nil), zones...)
	}

	q := strings.ToLower(query)
	type match struct {
		name   string
		prefix bool
	}
	var matches []match
	for _, zone := range zones {
		lower := strings.ToLower(zone)
		if strings.Contains(lower, q) {
			matches = append(matches, match{name: zone, prefix: strings.HasPrefix(lower, q)})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].prefix != matches[j].prefix {
			return matches[i].prefix
		}
		return matches[i].name < matches[j].name
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.name
	}
	return out
}

// Choices converts zones into select options labelled with the zone name.
func Choices(zones []string) []forms.SelectOption {
	out := make([]forms.SelectOption, len(zones))
	for i, zone := range zones {
		out[i] = forms.Choice(zone, label(zone))
	}
	return out
}

// label turns "America/Argentina/Buenos_Aires" into
// "America/Argentina/Buenos Aires".
func label(zone string) string {
	return strings.ReplaceAll(zone, "_", " ")
}
