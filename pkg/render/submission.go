package render

import (
	"fmt"
	"sort"
	"strings"
)

// HiddenField is a name/value pair rendered as an <input type="hidden"> at the
// top of a form, outside of validation. CSRF tokens and optimistic locking
// versions are the usual candidates.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	if value == nil {
		value = ""
	}
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// CSRFToken carries a CSRF token under the name the backend expects
// ("_csrf", "csrf_token", ...).
func CSRFToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// AuthToken carries an authentication token or session hint.
func AuthToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// VersionField carries a record version for optimistic locking.
func VersionField(name string, version any) HiddenField {
	return Hidden(name, version)
}

// MergeHiddenFields appends fields to base. A field whose name already exists
// replaces the earlier value in place, so the first occurrence decides the
// position. Empty names are dropped.
func MergeHiddenFields(base []HiddenField, fields ...HiddenField) []HiddenField {
	out := make([]HiddenField, 0, len(base)+len(fields))
	index := make(map[string]int, len(base)+len(fields))
	for _, field := range append(append([]HiddenField(nil), base...), fields...) {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		if pos, ok := index[name]; ok {
			out[pos].Value = field.Value
			continue
		}
		index[name] = len(out)
		out = append(out, HiddenField{Name: name, Value: field.Value})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// HiddenFieldsFromMap converts a name/value map into fields sorted by name.
func HiddenFieldsFromMap(values map[string]string) []HiddenField {
	fields := make([]HiddenField, 0, len(values))
	for name, value := range values {
		fields = append(fields, HiddenField{Name: name, Value: value})
	}
	merged := MergeHiddenFields(nil, fields...)
	SortHiddenFields(merged)
	return merged
}

// SortHiddenFields orders fields by name in place.
func SortHiddenFields(fields []HiddenField) {
	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].Name < fields[j].Name
	})
}
