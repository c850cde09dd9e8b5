package forms_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwidgets/pkg/formdata"
	"github.com/goliatone/go-formwidgets/pkg/forms"
	"github.com/goliatone/go-formwidgets/pkg/testsupport"
	"github.com/goliatone/go-formwidgets/pkg/validation"
	"github.com/goliatone/go-formwidgets/pkg/widgets"
)

func numberList(opts ...forms.Option) *forms.ListField {
	return forms.NewListField("foo", []widgets.Widget{
		forms.NewTextField("number", forms.WithValidator(validation.Integer(validation.Required(false)))),
	}, opts...)
}

func TestListFieldPath(t *testing.T) {
	list := numberList()
	if got := list.FullName(); got != "foo-0" {
		t.Fatalf("expected foo-0 outside of rendering, got %q", got)
	}

	child := list.ChildWidgets()[0]
	if child.WidgetBase().Parent() != widgets.Widget(list) {
		t.Fatalf("expected child parent to be the list")
	}
	if got := child.(forms.Field).FullName(); got != "foo-0.number" {
		t.Fatalf("unexpected child name %q", got)
	}
}

func TestListFieldRendersEmptyList(t *testing.T) {
	tests := []struct {
		name string
		list *forms.ListField
		want string
	}{
		{name: "plain", list: numberList(), want: `<ul class="foo-list"></ul>`},
		{name: "css classes", list: numberList(forms.WithCSSClasses("rows")), want: `<ul class="foo-list rows"></ul>`},
		{name: "id", list: numberList(forms.WithID("items")), want: `<ul id="items" class="foo-list"></ul>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.list.Display(nil)
			if err != nil {
				t.Fatalf("display: %v", err)
			}
			testsupport.AssertSameHTML(t, tt.want, got)
		})
	}
}

func TestListFieldContainerClasses(t *testing.T) {
	assertClasses(t, []string{"foo-list"}, numberList().ContainerClasses())
	assertClasses(t, []string{"foo-list", "rows"}, numberList(forms.WithCSSClasses("rows")).ContainerClasses())

	anonymous := forms.NewListField("", nil, forms.WithCSSClasses("rows"))
	assertClasses(t, []string{"rows"}, anonymous.ContainerClasses())
}

func TestListFieldRendersRows(t *testing.T) {
	list := forms.NewListField("foo", []widgets.Widget{
		forms.NewTextField("start"),
		widgets.NewLabel("to"),
		forms.NewTextField("end"),
	})

	got, err := list.Display([]any{
		map[string]any{"start": "1", "end": "2"},
		map[string]any{"start": "3", "end": "4"},
	})
	if err != nil {
		t.Fatalf("display: %v", err)
	}
	want := `<ul class="foo-list">` +
		`<li>` +
		`<div class="start-container widgetcontainer fieldcontainer"><input type="text" name="foo-1.start" value="1" /></div>` +
		`<div class="widgetcontainer"><label>to</label></div>` +
		`<div class="end-container widgetcontainer fieldcontainer"><input type="text" name="foo-1.end" value="2" /></div>` +
		`</li>` +
		`<li>` +
		`<div class="start-container widgetcontainer fieldcontainer"><input type="text" name="foo-2.start" value="3" /></div>` +
		`<div class="widgetcontainer"><label>to</label></div>` +
		`<div class="end-container widgetcontainer fieldcontainer"><input type="text" name="foo-2.end" value="4" /></div>` +
		`</li>` +
		`</ul>`
	testsupport.AssertSameHTML(t, want, got)

	if got := list.FullName(); got != "foo-0" {
		t.Fatalf("expected row counter to reset, got %q", got)
	}
}

func TestListFieldRejectsUnknownKeys(t *testing.T) {
	_, err := numberList().Display([]any{map[string]any{"invalid": "x"}})
	if !errors.Is(err, formdata.ErrUnknownParameter) {
		t.Fatalf("expected ErrUnknownParameter, got %v", err)
	}
}

func TestListFieldContext(t *testing.T) {
	list := numberList()

	ctx, ok := list.NewContext(nil).(*formdata.RepeatingFieldData)
	if !ok {
		t.Fatalf("expected repeating context, got %T", list.NewContext(nil))
	}
	if ctx.Len() != 0 {
		t.Fatalf("expected no rows, got %d", ctx.Len())
	}
	if diff := cmp.Diff([]any{}, ctx.InitialValue()); diff != "" {
		t.Fatalf("initial value mismatch (-want +got):\n%s", diff)
	}

	if err := ctx.SetValue([]any{map[string]any{"number": 3}}); err != nil {
		t.Fatalf("set value: %v", err)
	}
	if diff := cmp.Diff([]any{map[string]any{"number": 3}}, ctx.Value()); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}

	if err := list.SetContext(formdata.NewFormData()); err == nil {
		t.Fatalf("expected error for form context")
	}
	if err := list.SetContext(ctx); err != nil {
		t.Fatalf("set context: %v", err)
	}
}

func TestListFieldRowsHaveOwnContexts(t *testing.T) {
	ctx := numberList().NewContext([]any{
		map[string]any{"number": "1"},
		map[string]any{"number": "2"},
	}).(*formdata.RepeatingFieldData)

	first, _ := ctx.Item(0)
	second, _ := ctx.Item(1)
	if first == second {
		t.Fatalf("rows share a context")
	}
	want := []any{map[string]any{"number": "1"}, map[string]any{"number": "2"}}
	if diff := cmp.Diff(want, ctx.InitialValue()); diff != "" {
		t.Fatalf("initial value mismatch (-want +got):\n%s", diff)
	}
}

func TestListFieldValidation(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  any
	}{
		{name: "empty", input: []any{}, want: []any{}},
		{name: "empty row", input: []any{map[string]any{}}, want: []any{map[string]any{"number": nil}}},
		{name: "unknown keys are dropped", input: []any{map[string]any{"number": "4", "evil": "x"}}, want: []any{map[string]any{"number": 4}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := numberList().Validate(tt.input)
			if result.ContainsErrors() {
				t.Fatalf("unexpected errors %v", result.ErrorTree())
			}
			if diff := cmp.Diff(tt.want, result.Value()); diff != "" {
				t.Fatalf("value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestListFieldErrorTree(t *testing.T) {
	result := numberList().Validate([]any{
		map[string]any{"number": "1"},
		map[string]any{"number": "x"},
	})
	if !result.ContainsErrors() {
		t.Fatalf("expected errors")
	}

	tree, ok := result.ErrorTree().([]any)
	if !ok || len(tree) != 2 {
		t.Fatalf("unexpected error tree %#v", result.ErrorTree())
	}
	if diff := cmp.Diff(map[string]any{"number": nil}, tree[0]); diff != "" {
		t.Fatalf("valid row mismatch (-want +got):\n%s", diff)
	}

	row, _ := tree[1].(map[string]any)
	errs, _ := row["number"].([]error)
	var verr *validation.Error
	if len(errs) != 1 || !errors.As(errs[0], &verr) || verr.Key != validation.KeyInvalidNumber {
		t.Fatalf("expected invalid_number for second row, got %#v", row)
	}
}

func TestListFieldRejectsNonLists(t *testing.T) {
	result := numberList().Validate("nope")
	if !result.ContainsErrors() {
		t.Fatalf("expected errors")
	}
	errs := result.(*formdata.RepeatingFieldData).Errors()
	var verr *validation.Error
	if len(errs) != 1 || !errors.As(errs[0], &verr) || verr.Key != validation.KeyInvalidList {
		t.Fatalf("expected invalid_list, got %v", errs)
	}
}

func TestListFieldContextRecordsNonListInput(t *testing.T) {
	ctx := numberList().NewContext("nope")
	if !ctx.ContainsErrors() {
		t.Fatalf("expected the rejected input to be recorded")
	}
	if ctx.(*formdata.RepeatingFieldData).Len() != 0 {
		t.Fatalf("expected no rows")
	}
}

func TestListFieldDisplaysRowErrors(t *testing.T) {
	list := numberList()
	if err := list.SetContext(list.Validate([]any{map[string]any{"number": "x"}})); err != nil {
		t.Fatalf("set context: %v", err)
	}

	got, err := list.Display(nil)
	if err != nil {
		t.Fatalf("display: %v", err)
	}
	testsupport.AssertSameHTML(t,
		`<ul class="foo-list"><li>`+
			`<div class="number-container validationerror widgetcontainer fieldcontainer">`+
			`<input type="text" name="foo-1.number" value="x" />`+
			`<span class="validationerror-message">Please enter a number.</span>`+
			`</div>`+
			`</li></ul>`,
		got)
}

func TestListFieldCustomValidator(t *testing.T) {
	calls := 0
	list := numberList(forms.WithValidator(validation.Funcs{
		ProcessFn: func(value any) (any, error) {
			calls++
			return value, nil
		},
	}))
	list.Validate([]any{})
	if calls != 1 {
		t.Fatalf("expected custom validator to run once, got %d", calls)
	}
}

func TestListFieldClone(t *testing.T) {
	list := numberList()
	_ = list.SetContext(list.NewContext([]any{map[string]any{"number": "1"}}))

	clone := list.Clone().(*forms.ListField)
	if clone.Context().(*formdata.RepeatingFieldData).Len() != 0 {
		t.Fatalf("clone should start with an empty context")
	}
	if clone.ChildWidgets()[0] == list.ChildWidgets()[0] {
		t.Fatalf("clone shares children")
	}
	if clone.ChildWidgets()[0].WidgetBase().Parent() != widgets.Widget(clone) {
		t.Fatalf("cloned child points to the wrong parent")
	}
}
