package forms

import (
	"fmt"
	"net/url"

	"github.com/goliatone/go-formwidgets/pkg/formdata"
	"github.com/goliatone/go-formwidgets/pkg/render"
	"github.com/goliatone/go-formwidgets/pkg/validation"
	"github.com/goliatone/go-formwidgets/pkg/widgets"
)

// Form renders a <form> element with one container per child and
// validates the children as a whole.
type Form struct {
	InputWidget
	URL     string
	Method  string
	Charset string
	Enctype string
	// HiddenFields are rendered first and do not take part in validation.
	HiddenFields []render.HiddenField
	// Schema holds form level validation (field dependencies). It is never
	// modified; child validators are added to a copy.
	Schema *validation.Schema

	children []widgets.Widget
}

var (
	_ Field             = (*Form)(nil)
	_ widgets.Container = (*Form)(nil)
	_ widgets.Preparer  = (*Form)(nil)
)

// NewForm creates a form. Children are cloned so one definition can back
// many forms.
func NewForm(name string, children []widgets.Widget, opts ...Option) *Form {
	f := &Form{
		InputWidget: *newInput("form", name, ""),
		Method:      "POST",
		Charset:     "UTF-8",
	}
	f.Template = "form"
	f.children = cloneChildren(f, children)
	applyOptions(f, opts)
	f.Base.SetContext(f.NewContext(nil))
	return f
}

// ChildWidgets implements widgets.Container without binding contexts.
func (f *Form) ChildWidgets() []widgets.Widget {
	return append([]widgets.Widget(nil), f.children...)
}

// Children returns the children bound to their part of the form context.
func (f *Form) Children() []widgets.Widget {
	ctx := f.formContext()
	for _, child := range f.children {
		bindChild(ctx, child)
	}
	return f.ChildWidgets()
}

// ChildByName returns the bound child field called name.
func (f *Form) ChildByName(name string) (Field, bool) {
	for _, child := range f.Children() {
		if field, ok := child.(Field); ok && field.Input().Name == name {
			return field, true
		}
	}
	return nil, false
}

// AddChild appends a clone of child.
func (f *Form) AddChild(child widgets.Widget) {
	f.children = append(f.children, cloneChildren(f, []widgets.Widget{child})...)
	if field, ok := child.(Field); ok && field.Input().Name != "" {
		f.formContext().Add(field.Input().Name, field.NewContext(nil))
	}
}

// NewContext returns a context with one entry per named child, seeded with
// unvalidated. Values a child cannot hold are recorded as form errors.
func (f *Form) NewContext(unvalidated any) formdata.Data {
	ctx := childContexts(f.children)
	if unvalidated != nil {
		if err := ctx.SetInitialValue(unvalidated); err != nil {
			ctx.SetFormErrors(err)
		}
	}
	return ctx
}

// SetContext implements Field. data must be a *formdata.FormData.
func (f *Form) SetContext(data formdata.Data) error {
	ctx, ok := data.(*formdata.FormData)
	if !ok {
		return fmt.Errorf("forms: form %q expects *formdata.FormData, got %T", f.Name, data)
	}
	f.Base.SetContext(ctx)
	return nil
}

// FieldValidator implements Field.
func (f *Form) FieldValidator() validation.Validator {
	return f.ValidationSchema()
}

// ValidationSchema returns a fresh schema: a copy of Schema plus one
// validator per named child field. Fields without validator pass their
// value through; buttons are left out.
func (f *Form) ValidationSchema() *validation.Schema {
	schema := validation.NewSchema()
	if f.Schema != nil {
		schema = f.Schema.Clone()
	}
	for _, child := range f.children {
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
	return schema
}

// Validate processes values (a map or url.Values) and returns the
// resulting context. Errors are bound to the children they belong to.
func (f *Form) Validate(values any) formdata.Data {
	if params, ok := values.(url.Values); ok {
		decoded, err := DecodeParameters(params)
		if err != nil {
			ctx := childContexts(f.children)
			ctx.SetFormErrors(err)
			return ctx
		}
		values = decoded
	}

	ctx := f.NewContext(values).(*formdata.FormData)
	validated, err := f.ValidationSchema().Process(values)
	if err != nil {
		if serr := ctx.SetErrors(err); serr != nil {
			ctx.SetFormErrors(err)
		}
		return ctx
	}
	if err := ctx.SetValue(validated); err != nil {
		ctx.SetFormErrors(err)
	}
	return ctx
}

// PrepareDisplay implements widgets.Preparer: a display value updates the
// form context.
func (f *Form) PrepareDisplay(value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	if err := f.formContext().SetValue(value); err != nil {
		return nil, err
	}
	return nil, nil
}

// TemplateVariables implements widgets.Widget.
func (f *Form) TemplateVariables(_ any, cfg *widgets.DisplayConfig) (map[string]any, error) {
	var children []string
	for _, child := range f.Children() {
		html, err := displayChild(&f.Base, child, cfg)
		if err != nil {
			return nil, err
		}
		children = append(children, html)
	}

	hidden := make([]map[string]any, 0, len(f.HiddenFields))
	for _, field := range f.HiddenFields {
		hidden = append(hidden, map[string]any{"name": field.Name, "value": field.Value})
	}

	var formErrors []string
	for _, err := range f.formContext().FormErrors() {
		formErrors = append(formErrors, cfg.Message(err))
	}

	return map[string]any{
		"id":            f.ID,
		"name":          f.Name,
		"css_classes":   f.CSSClasses,
		"url":           f.URL,
		"method":        f.Method,
		"enctype":       f.Enctype,
		"charset":       f.Charset,
		"children":      children,
		"hidden_fields": hidden,
		"form_errors":   formErrors,
	}, nil
}

// HTMLAttributes implements widgets.Widget.
func (f *Form) HTMLAttributes(vars map[string]any) widgets.Attributes {
	return widgets.Attributes{}.
		Set("id", vars["id"]).
		Set("name", vars["name"]).
		Set("class", vars["css_classes"]).
		Put("action", displayString(vars["url"])).
		Set("method", vars["method"]).
		Set("enctype", vars["enctype"]).
		Set("accept-charset", vars["charset"])
}

// Path implements Field. A root form adds nothing to its children's names.
func (f *Form) Path() []string {
	if f.Parent() == nil {
		return nil
	}
	return f.InputWidget.Path()
}

// FullName implements Field.
func (f *Form) FullName() string {
	return joinPath(f.Path())
}

// Display renders the form. value, when given, updates the context first;
// unknown keys fail with formdata.ErrUnknownParameter.
func (f *Form) Display(value any, opts ...widgets.DisplayOption) (string, error) {
	return widgets.Display(f, value, opts...)
}

// Clone implements widgets.Widget.
func (f *Form) Clone() widgets.Widget {
	clone := *f
	clone.InputWidget = *f.cloneInput()
	clone.HiddenFields = append([]render.HiddenField(nil), f.HiddenFields...)
	clone.children = cloneChildren(&clone, f.children)
	clone.Base.SetContext(clone.NewContext(nil))
	return &clone
}

func (f *Form) formContext() *formdata.FormData {
	if ctx, ok := f.Context().(*formdata.FormData); ok {
		return ctx
	}
	ctx := f.NewContext(nil).(*formdata.FormData)
	f.Base.SetContext(ctx)
	return ctx
}
