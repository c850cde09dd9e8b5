package openapi

import (
	"sort"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

// Field kinds resolved by the built-in matchers. They match the kinds
// understood by formspec.
const (
	KindText     = "text"
	KindPassword = "password"
	KindEmail    = "email"
	KindHidden   = "hidden"
	KindTextArea = "textarea"
	KindCheckbox = "checkbox"
	KindSelect   = "select"
	KindList     = "list"
)

// WidgetExtension names the schema extension that forces a kind.
const WidgetExtension = "x-widget"

// textAreaThreshold is the maxLength above which strings become text areas.
const textAreaThreshold = 255

// Property is a request body property being mapped to a field.
type Property struct {
	Name     string
	Schema   *openapi3.Schema
	Required bool
}

// Is reports whether the property has the JSON schema type typ.
func (p Property) Is(typ string) bool {
	return p.Schema != nil && p.Schema.Type != nil && p.Schema.Type.Is(typ)
}

// Matcher decides whether a kind handles the property.
type Matcher func(Property) bool

type rule struct {
	kind     string
	priority int
	match    Matcher
	order    int
}

// KindRegistry picks the field kind for a property. The x-widget extension
// wins; otherwise the matching rule with the highest priority is used, ties
// going to the earliest registration.
type KindRegistry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewKindRegistry returns a registry with the built-in matchers.
func NewKindRegistry() *KindRegistry {
	r := &KindRegistry{}
	r.registerBuiltins()
	return r
}

// Register adds a matcher for kind.
func (r *KindRegistry) Register(kind string, priority int, matcher Matcher) {
	kind = strings.TrimSpace(kind)
	if r == nil || matcher == nil || kind == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = append(r.rules, rule{
		kind:     kind,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the kind for p.
func (r *KindRegistry) Resolve(p Property) (string, bool) {
	if p.Schema != nil {
		if explicit, ok := p.Schema.Extensions[WidgetExtension].(string); ok && explicit != "" {
			return explicit, true
		}
	}
	if r == nil {
		return "", false
	}

	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(p) {
			return entry.kind, true
		}
	}
	return "", false
}

func (r *KindRegistry) registerBuiltins() {
	r.Register(KindList, 40, func(p Property) bool {
		return p.Is("array") && p.Schema.Items != nil && p.Schema.Items.Value != nil &&
			p.Schema.Items.Value.Type != nil && p.Schema.Items.Value.Type.Is("object")
	})
	r.Register(KindSelect, 30, func(p Property) bool {
		return len(p.Schema.Enum) > 0 && !p.Is("array")
	})
	r.Register(KindEmail, 20, func(p Property) bool {
		return p.Is("string") && p.Schema.Format == "email"
	})
	r.Register(KindPassword, 20, func(p Property) bool {
		return p.Is("string") && p.Schema.Format == "password"
	})
	r.Register(KindTextArea, 10, func(p Property) bool {
		if !p.Is("string") {
			return false
		}
		if p.Schema.Format == "textarea" {
			return true
		}
		return p.Schema.MaxLength != nil && *p.Schema.MaxLength > textAreaThreshold
	})
	r.Register(KindCheckbox, 10, func(p Property) bool {
		return p.Is("boolean")
	})
	r.Register(KindText, 0, func(p Property) bool {
		return p.Is("string") || p.Is("integer") || p.Is("number")
	})
}
