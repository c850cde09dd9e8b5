package forms

import (
	"github.com/goliatone/go-formwidgets/pkg/formdata"
	"github.com/goliatone/go-formwidgets/pkg/widgets"
)

const containerTemplate = "container"

// displayChild renders child wrapped in its container: label, markup and
// one message per validation error. Hidden fields are rendered bare.
func displayChild(owner *widgets.Base, child widgets.Widget, cfg *widgets.DisplayConfig) (string, error) {
	opts := cfg.ChildOptions(childKey(child))
	html, err := widgets.Display(child, nil, opts...)
	if err != nil {
		return "", err
	}

	field, isField := child.(Field)
	if isField && field.IsHidden() {
		return html, nil
	}

	vars := map[string]any{"widget": html}
	if isField {
		if label := field.LabelWidget(); label != nil {
			labelHTML, err := widgets.Display(label, nil, widgets.WithLocale(cfg.Locale), widgets.WithTranslator(cfg.Translator))
			if err != nil {
				return "", err
			}
			vars["label"] = labelHTML
		}
	}

	var messages []string
	for _, err := range contextErrors(child.WidgetBase().Context()) {
		messages = append(messages, cfg.Message(err))
	}
	vars["errors"] = messages

	base := child.WidgetBase()
	attrs := widgets.Attributes{}
	if base.ID != "" {
		attrs = attrs.Set("id", base.ID+"-container")
	}
	attrs = attrs.Set("class", child.ContainerClasses()).Merge(base.ContainerAttrs)
	vars["attrs"] = attrs.TemplateData()

	return widgets.RenderTemplate(owner, containerTemplate, vars)
}

// contextErrors returns the errors shown next to a widget. Lists only
// contribute their own errors; rows render theirs. Nested forms render
// form level errors themselves.
func contextErrors(data formdata.Data) []error {
	switch ctx := data.(type) {
	case *formdata.FieldData:
		return ctx.Errors()
	case *formdata.RepeatingFieldData:
		return ctx.Errors()
	}
	return nil
}

// childKey names a child for display options: the field name, else the id.
func childKey(child widgets.Widget) string {
	if field, ok := child.(Field); ok && field.Input().Name != "" {
		return field.Input().Name
	}
	return child.WidgetBase().ID
}

// bindChild attaches the matching context of parent to child, creating a
// fresh one when parent has none.
func bindChild(parent *formdata.FormData, child widgets.Widget) {
	field, ok := child.(Field)
	if !ok {
		return
	}
	name := field.Input().Name
	if name != "" && parent != nil {
		if ctx, err := parent.Child(name); err == nil {
			if field.SetContext(ctx) == nil {
				return
			}
		}
	}
	_ = field.SetContext(field.NewContext(nil))
}

func cloneChildren(parent widgets.Widget, children []widgets.Widget) []widgets.Widget {
	out := make([]widgets.Widget, 0, len(children))
	for _, child := range children {
		if child == nil {
			continue
		}
		clone := child.Clone()
		clone.WidgetBase().SetParent(parent)
		out = append(out, clone)
	}
	return out
}

// childContexts builds a FormData with a fresh context per named field.
func childContexts(children []widgets.Widget) *formdata.FormData {
	ctx := formdata.NewFormData()
	for _, child := range children {
		if field, ok := child.(Field); ok && field.Input().Name != "" {
			ctx.Add(field.Input().Name, field.NewContext(nil))
		}
	}
	return ctx
}
