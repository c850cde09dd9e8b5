package formspec

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"
)

type documentFile struct {
	Forms []FormSpec `json:"forms" yaml:"forms"`
}

type hclDocument struct {
	Forms []*hclForm `hcl:"form,block"`
}

type hclForm struct {
	Name       string      `hcl:"name,label"`
	ID         *string     `hcl:"id,optional"`
	URL        *string     `hcl:"url,optional"`
	Method     *string     `hcl:"method,optional"`
	Charset    *string     `hcl:"charset,optional"`
	Enctype    *string     `hcl:"enctype,optional"`
	CSSClasses []string    `hcl:"css_classes,optional"`
	Fields     []*hclField `hcl:"field,block"`
}

type hclField struct {
	Name        string            `hcl:"name,label"`
	Kind        string            `hcl:"kind"`
	ID          *string           `hcl:"id,optional"`
	Label       *string           `hcl:"label,optional"`
	CSSClasses  []string          `hcl:"css_classes,optional"`
	Attrs       map[string]string `hcl:"attrs,optional"`
	Required    *bool             `hcl:"required,optional"`
	MinLength   *int              `hcl:"min_length,optional"`
	MaxLength   *int              `hcl:"max_length,optional"`
	Min         *int64            `hcl:"min,optional"`
	Max         *int64            `hcl:"max,optional"`
	Pattern     *string           `hcl:"pattern,optional"`
	OptionValue *string           `hcl:"option_value,optional"`
	Value       *string           `hcl:"value,optional"`
	Cols        *int              `hcl:"cols,optional"`
	Rows        *int              `hcl:"rows,optional"`
	Options     []*hclOption      `hcl:"option,block"`
	Fields      []*hclField       `hcl:"field,block"`
}

type hclOption struct {
	Value string  `hcl:"value,label"`
	Label *string `hcl:"label,optional"`
}

// Parse reads the form definitions in data. source names the origin; a
// ".hcl" extension selects HCL, anything else is tried as JSON then YAML.
// Every returned definition passes Validate.
func Parse(data []byte, source string) ([]FormSpec, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("%w: file %s is empty", ErrInvalidSpec, source)
	}

	var (
		specs []FormSpec
		err   error
	)
	if strings.EqualFold(filepath.Ext(source), ".hcl") {
		specs, err = parseHCL(data, source)
	} else {
		specs, err = parseStructured(data, source)
	}
	if err != nil {
		return nil, err
	}

	for i := range specs {
		specs[i].Source = source
		if err := specs[i].Validate(); err != nil {
			return nil, err
		}
	}
	return specs, nil
}

func parseStructured(data []byte, source string) ([]FormSpec, error) {
	var doc documentFile
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc.Forms, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("formspec: parse %s: invalid JSON or YAML: %w", source, err)
	}
	return doc.Forms, nil
}

func parseHCL(data []byte, source string) ([]FormSpec, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, source)
	if diags.HasErrors() {
		return nil, fmt.Errorf("formspec: parse %s: %w", source, diags)
	}
	var doc hclDocument
	if diags := gohcl.DecodeBody(file.Body, nil, &doc); diags.HasErrors() {
		return nil, fmt.Errorf("formspec: decode %s: %w", source, diags)
	}

	specs := make([]FormSpec, 0, len(doc.Forms))
	for _, form := range doc.Forms {
		specs = append(specs, FormSpec{
			Name:       form.Name,
			ID:         deref(form.ID),
			URL:        deref(form.URL),
			Method:     deref(form.Method),
			Charset:    deref(form.Charset),
			Enctype:    deref(form.Enctype),
			CSSClasses: form.CSSClasses,
			Fields:     convertHCLFields(form.Fields),
		})
	}
	return specs, nil
}

func convertHCLFields(fields []*hclField) []FieldSpec {
	if len(fields) == 0 {
		return nil
	}
	out := make([]FieldSpec, 0, len(fields))
	for _, f := range fields {
		spec := FieldSpec{
			Kind:        f.Kind,
			Name:        f.Name,
			ID:          deref(f.ID),
			Label:       deref(f.Label),
			CSSClasses:  f.CSSClasses,
			Attrs:       f.Attrs,
			Required:    f.Required,
			MinLength:   f.MinLength,
			MaxLength:   f.MaxLength,
			Min:         f.Min,
			Max:         f.Max,
			Pattern:     deref(f.Pattern),
			OptionValue: deref(f.OptionValue),
			Value:       deref(f.Value),
			Children:    convertHCLFields(f.Fields),
		}
		if f.Cols != nil {
			spec.Cols = *f.Cols
		}
		if f.Rows != nil {
			spec.Rows = *f.Rows
		}
		for _, option := range f.Options {
			spec.Options = append(spec.Options, OptionSpec{Value: option.Value, Label: deref(option.Label)})
		}
		out = append(out, spec)
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
