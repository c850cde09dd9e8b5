package forms

import (
	"fmt"
	"strconv"

	"github.com/goliatone/go-formwidgets/pkg/formdata"
	"github.com/goliatone/go-formwidgets/pkg/validation"
	"github.com/goliatone/go-formwidgets/pkg/widgets"
)

// ListField repeats its children once per row. Rows are submitted as
// "<name>-<row>.<child>" with rows counted from 1.
type ListField struct {
	InputWidget
	children []widgets.Widget
	// row is the row being rendered, 0 outside of rendering.
	row int
}

var (
	_ Field             = (*ListField)(nil)
	_ widgets.Container = (*ListField)(nil)
	_ widgets.Preparer  = (*ListField)(nil)
)

// NewListField creates a list field.
func NewListField(name string, children []widgets.Widget, opts ...Option) *ListField {
	l := &ListField{InputWidget: *newInput("list", name, "")}
	l.Template = "list"
	l.children = cloneChildren(l, children)
	applyOptions(l, opts)
	l.Base.SetContext(l.NewContext(nil))
	return l
}

// ChildWidgets implements widgets.Container.
func (l *ListField) ChildWidgets() []widgets.Widget {
	return append([]widgets.Widget(nil), l.children...)
}

// FieldValidator implements Field: every row is validated by a schema of
// the children.
func (l *ListField) FieldValidator() validation.Validator {
	if l.hasValidator {
		return l.validator
	}
	schema := validation.NewSchema()
	for _, child := range l.children {
		field, ok := child.(Field)
		if !ok || field.Input().Name == "" || field.IsButton() {
			continue
		}
		v := field.FieldValidator()
		if v == nil {
			v = validation.Funcs{}
		}
		schema.Add(field.Input().Name, v)
	}
	return validation.ForEach(schema)
}

// NewContext returns a repeating context whose rows hold one context per
// named child. A value that is not a list is recorded as a list error.
func (l *ListField) NewContext(unvalidated any) formdata.Data {
	ctx := formdata.NewRepeatingFieldData(childContexts(l.children).Clone)
	if unvalidated != nil {
		if err := ctx.SetInitialValue(unvalidated); err != nil {
			_ = ctx.SetErrors(err)
		}
	}
	return ctx
}

// SetContext implements Field. data must be a *formdata.RepeatingFieldData.
func (l *ListField) SetContext(data formdata.Data) error {
	ctx, ok := data.(*formdata.RepeatingFieldData)
	if !ok {
		return fmt.Errorf("forms: list %q expects *formdata.RepeatingFieldData, got %T", l.Name, data)
	}
	l.Base.SetContext(ctx)
	return nil
}

// Validate processes a list of rows. Row errors are attached to the rows
// they belong to.
func (l *ListField) Validate(values any) formdata.Data {
	ctx := l.NewContext(values)
	validated, err := l.FieldValidator().Process(values)
	if err != nil {
		_ = ctx.SetErrors(err)
		return ctx
	}
	_ = ctx.SetValue(validated)
	return ctx
}

// PrepareDisplay implements widgets.Preparer.
func (l *ListField) PrepareDisplay(value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	if err := l.listContext().SetValue(value); err != nil {
		return nil, err
	}
	return nil, nil
}

// TemplateVariables implements widgets.Widget.
func (l *ListField) TemplateVariables(_ any, cfg *widgets.DisplayConfig) (map[string]any, error) {
	defer func() { l.row = 0 }()

	rows := make([]any, 0, l.listContext().Len())
	for i, item := range l.listContext().Items() {
		l.row = i + 1
		rowCtx, _ := item.(*formdata.FormData)
		var row []string
		for _, child := range l.children {
			bindChild(rowCtx, child)
			html, err := displayChild(&l.Base, child, cfg)
			if err != nil {
				return nil, err
			}
			row = append(row, html)
		}
		rows = append(rows, row)
	}

	return map[string]any{
		"id":          l.ID,
		"name":        l.Name,
		"css_classes": l.listClasses(),
		"rows":        rows,
	}, nil
}

// ContainerClasses implements widgets.Widget. Lists are wrapped with their
// own classes instead of the "<name>-container" set of plain inputs.
func (l *ListField) ContainerClasses() []string {
	return l.listClasses()
}

func (l *ListField) listClasses() []string {
	if l.Name == "" {
		return append([]string(nil), l.CSSClasses...)
	}
	return append([]string{l.Name + "-list"}, l.CSSClasses...)
}

// HTMLAttributes implements widgets.Widget.
func (l *ListField) HTMLAttributes(vars map[string]any) widgets.Attributes {
	return widgets.Attributes{}.
		Set("id", vars["id"]).
		Set("class", vars["css_classes"])
}

// Path implements Field. The last segment carries the current row.
func (l *ListField) Path() []string {
	var parts []string
	if p, ok := l.Parent().(pather); ok {
		parts = append(parts, p.Path()...)
	}
	if l.Name != "" {
		parts = append(parts, l.Name+"-"+strconv.Itoa(l.row))
	}
	return parts
}

// FullName implements Field.
func (l *ListField) FullName() string {
	return joinPath(l.Path())
}

// Display renders the list. value, when given, updates the rows first.
func (l *ListField) Display(value any, opts ...widgets.DisplayOption) (string, error) {
	return widgets.Display(l, value, opts...)
}

// Clone implements widgets.Widget.
func (l *ListField) Clone() widgets.Widget {
	clone := *l
	clone.InputWidget = *l.cloneInput()
	clone.children = cloneChildren(&clone, l.children)
	clone.row = 0
	clone.Base.SetContext(clone.NewContext(nil))
	return &clone
}

func (l *ListField) listContext() *formdata.RepeatingFieldData {
	if ctx, ok := l.Context().(*formdata.RepeatingFieldData); ok {
		return ctx
	}
	ctx := l.NewContext(nil).(*formdata.RepeatingFieldData)
	l.Base.SetContext(ctx)
	return ctx
}
