package openapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formwidgets/pkg/forms"
	"github.com/goliatone/go-formwidgets/pkg/validation"
	"github.com/goliatone/go-formwidgets/pkg/widgets"
)

// OrderExtension orders properties; properties without it follow, by name.
const OrderExtension = "x-order"

// KindForm is the kind of nested object properties.
const KindForm = "form"

// ErrUnknownKind is returned when a property resolves to a kind the builder
// cannot construct.
var ErrUnknownKind = errors.New("openapi: unknown field kind")

// numberPattern accepts decimal numbers for "number" properties.
const numberPattern = `^-?[0-9]+(\.[0-9]+)?$`

type builderConfig struct {
	kinds       *KindRegistry
	formOptions []forms.Option
	submit      string
}

// BuildOption configures BuildForm.
type BuildOption func(*builderConfig)

// WithKindRegistry replaces the built-in kind matchers.
func WithKindRegistry(r *KindRegistry) BuildOption {
	return func(cfg *builderConfig) {
		if r != nil {
			cfg.kinds = r
		}
	}
}

// WithFormOptions applies opts to the generated form.
func WithFormOptions(opts ...forms.Option) BuildOption {
	return func(cfg *builderConfig) {
		cfg.formOptions = append(cfg.formOptions, opts...)
	}
}

// WithSubmit appends a submit button captioned label.
func WithSubmit(label string) BuildOption {
	return func(cfg *builderConfig) {
		cfg.submit = label
	}
}

// BuildForm creates a form for the request body of the operation
// operationID. The form submits to the operation path.
func BuildForm(doc *Document, operationID string, opts ...BuildOption) (*forms.Form, error) {
	if doc == nil {
		return nil, errors.New("openapi: document is nil")
	}
	cfg := builderConfig{kinds: NewKindRegistry()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	op, err := doc.Operation(operationID)
	if err != nil {
		return nil, err
	}
	if op.RequestBody == nil || len(op.RequestBody.Properties) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoRequestBody, operationID)
	}

	children, err := cfg.fields(op.RequestBody, operationID)
	if err != nil {
		return nil, err
	}
	if cfg.submit != "" {
		children = append(children, forms.NewSubmitButton("submit", forms.WithValue(cfg.submit)))
	}

	formOpts := []forms.Option{
		forms.WithID(op.ID),
		forms.WithURL(op.Path),
		forms.WithMethod(op.FormMethod()),
	}
	return forms.NewForm("", children, append(formOpts, cfg.formOptions...)...), nil
}

func (cfg *builderConfig) fields(schema *openapi3.Schema, path string) ([]widgets.Widget, error) {
	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	var out []widgets.Widget
	for _, name := range orderedProperties(schema.Properties) {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil || ref.Value.ReadOnly {
			continue
		}
		p := Property{Name: name, Schema: ref.Value, Required: required[name]}
		kind, ok := cfg.kinds.Resolve(p)
		if !ok {
			if p.Is("object") && len(p.Schema.Properties) > 0 {
				kind = KindForm
			} else {
				continue
			}
		}
		field, err := cfg.field(kind, p, path+"."+name)
		if err != nil {
			return nil, err
		}
		out = append(out, field)
	}
	return out, nil
}

func (cfg *builderConfig) field(kind string, p Property, path string) (widgets.Widget, error) {
	s := p.Schema
	label := forms.WithLabel(propertyLabel(p))

	switch kind {
	case KindText:
		return forms.NewTextField(p.Name, label, forms.WithValidator(scalarValidator(p))), nil
	case KindPassword:
		return forms.NewPasswordField(p.Name, label, forms.WithValidator(validation.String(stringOptions(p)...))), nil
	case KindEmail:
		return forms.NewEmailField(p.Name, label, forms.WithValidator(validation.Email(stringOptions(p)...))), nil
	case KindHidden:
		return forms.NewHiddenField(p.Name, forms.WithValidator(scalarValidator(p))), nil
	case KindTextArea:
		return forms.NewTextArea(p.Name, label, forms.WithValidator(validation.String(stringOptions(p)...))), nil
	case KindCheckbox:
		return forms.NewCheckbox(p.Name, label), nil
	case KindSelect:
		options := make([]forms.SelectOption, 0, len(s.Enum))
		values := make([]string, 0, len(s.Enum))
		for _, value := range s.Enum {
			text := fmt.Sprint(value)
			options = append(options, forms.Choice(text, text))
			values = append(values, text)
		}
		return forms.NewSelectField(p.Name, label,
			forms.WithOptions(options...),
			forms.WithValidator(validation.OneOf(values, validation.Required(p.Required))),
		), nil
	case KindList:
		if s.Items == nil || s.Items.Value == nil {
			return nil, fmt.Errorf("openapi: list %s has no item schema", path)
		}
		children, err := cfg.fields(s.Items.Value, path)
		if err != nil {
			return nil, err
		}
		return forms.NewListField(p.Name, children, label), nil
	case KindForm:
		children, err := cfg.fields(s, path)
		if err != nil {
			return nil, err
		}
		return forms.NewForm(p.Name, children), nil
	}
	return nil, fmt.Errorf("%w %q for %s", ErrUnknownKind, kind, path)
}

func scalarValidator(p Property) validation.Validator {
	switch {
	case p.Is("integer"):
		opts := []validation.Option{validation.Required(p.Required)}
		if p.Schema.Min != nil {
			opts = append(opts, validation.Min(int64(math.Ceil(*p.Schema.Min))))
		}
		if p.Schema.Max != nil {
			opts = append(opts, validation.Max(int64(math.Floor(*p.Schema.Max))))
		}
		return validation.Integer(opts...)
	case p.Is("number"):
		return validation.String(validation.Required(p.Required), validation.Pattern(numberPattern))
	}
	return validation.String(stringOptions(p)...)
}

func stringOptions(p Property) []validation.Option {
	opts := []validation.Option{validation.Required(p.Required)}
	if p.Schema.MinLength > 0 {
		opts = append(opts, validation.MinLength(int(p.Schema.MinLength)))
	}
	if p.Schema.MaxLength != nil {
		opts = append(opts, validation.MaxLength(int(*p.Schema.MaxLength)))
	}
	if p.Schema.Pattern != "" {
		opts = append(opts, validation.Pattern(p.Schema.Pattern))
	}
	return opts
}

// propertyLabel uses the schema title, else the humanized property name.
func propertyLabel(p Property) string {
	if p.Schema.Title != "" {
		return p.Schema.Title
	}
	return humanize(p.Name)
}

// humanize turns "firstName" or "first_name" into "First name".
func humanize(name string) string {
	var b strings.Builder
	for i, r := range name {
		switch {
		case r == '_' || r == '-':
			b.WriteRune(' ')
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteRune(' ')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func orderedProperties(props openapi3.Schemas) []string {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.SliceStable(names, func(i, j int) bool {
		oi, iok := propertyOrder(props[names[i]])
		oj, jok := propertyOrder(props[names[j]])
		switch {
		case iok && jok && oi != oj:
			return oi < oj
		case iok != jok:
			return iok
		}
		return names[i] < names[j]
	})
	return names
}

func propertyOrder(ref *openapi3.SchemaRef) (float64, bool) {
	if ref == nil || ref.Value == nil {
		return 0, false
	}
	switch v := ref.Value.Extensions[OrderExtension].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	return 0, false
}
