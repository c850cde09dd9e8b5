package widgets

import (
	"fmt"
	"sort"

	"github.com/goliatone/go-formwidgets/pkg/render"
)

// Attribute is a single HTML attribute.
type Attribute struct {
	Name  string
	Value string
}

// Attributes is an ordered attribute list. Templates iterate it to render
// the root element of a widget.
type Attributes []Attribute

// Set assigns name. Existing attributes keep their position. nil, "" and
// false remove the attribute; true renders as name="name".
func (a Attributes) Set(name string, value any) Attributes {
	text, keep := attributeValue(name, value)
	for i := range a {
		if a[i].Name != name {
			continue
		}
		if !keep {
			return append(a[:i:i], a[i+1:]...)
		}
		a[i].Value = text
		return a
	}
	if !keep {
		return a
	}
	return append(a, Attribute{Name: name, Value: text})
}

// Put assigns name even when value is empty (action="").
func (a Attributes) Put(name, value string) Attributes {
	for i := range a {
		if a[i].Name == name {
			a[i].Value = value
			return a
		}
	}
	return append(a, Attribute{Name: name, Value: value})
}

// Merge applies extra in name order.
func (a Attributes) Merge(extra map[string]any) Attributes {
	if len(extra) == 0 {
		return a
	}
	names := make([]string, 0, len(extra))
	for name := range extra {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		a = a.Set(name, extra[name])
	}
	return a
}

// Get returns the value of name.
func (a Attributes) Get(name string) (string, bool) {
	for _, attr := range a {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// TemplateData converts the list into the shape templates iterate over.
func (a Attributes) TemplateData() []map[string]any {
	out := make([]map[string]any, 0, len(a))
	for _, attr := range a {
		out = append(out, map[string]any{"name": attr.Name, "value": attr.Value})
	}
	return out
}

func attributeValue(name string, value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, v != ""
	case bool:
		return name, v
	case []string:
		class := render.RenderClass(v...)
		return class, class != ""
	}
	text := fmt.Sprint(value)
	return text, text != ""
}
