package formspec_test

import (
	"errors"
	"os"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwidgets/pkg/forms"
	"github.com/goliatone/go-formwidgets/pkg/formspec"
	"github.com/goliatone/go-formwidgets/pkg/widgets"
)

func loadStore(t *testing.T) *formspec.Store {
	t.Helper()
	store, err := formspec.LoadFS(os.DirFS("testdata/forms"))
	if err != nil {
		t.Fatalf("load fs: %v", err)
	}
	return store
}

func TestLoadFS(t *testing.T) {
	store := loadStore(t)
	if diff := cmp.Diff([]string{"contact", "signup", "survey"}, store.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	spec, ok := store.Form("signup")
	if !ok {
		t.Fatalf("signup not found")
	}
	if spec.Source != "signup.yaml" || spec.ID != "signup-form" || len(spec.Fields) != 6 {
		t.Fatalf("unexpected signup spec %+v", spec)
	}
	members := spec.Fields[4]
	if members.Kind != formspec.KindList || len(members.Children) != 2 {
		t.Fatalf("unexpected members spec %+v", members)
	}
}

func TestLoadFSNil(t *testing.T) {
	store, err := formspec.LoadFS(nil)
	if err != nil {
		t.Fatalf("load fs: %v", err)
	}
	if !store.Empty() {
		t.Fatalf("expected empty store")
	}
}

func TestParseHCL(t *testing.T) {
	data, err := os.ReadFile("testdata/forms/survey.hcl")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	specs, err := formspec.Parse(data, "survey.hcl")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	no := false
	one, five := int64(1), int64(5)
	want := []formspec.FormSpec{{
		Name:   "survey",
		URL:    "/survey",
		Method: "get",
		Source: "survey.hcl",
		Fields: []formspec.FieldSpec{
			{Kind: "integer", Name: "score", Label: "Score", Min: &one, Max: &five},
			{Kind: "select", Name: "color", Required: &no, Options: []formspec.OptionSpec{
				{Value: "red", Label: "Red"},
				{Value: "blue"},
			}},
			{Kind: "form", Name: "address", Children: []formspec.FieldSpec{{Kind: "text", Name: "city"}}},
		},
	}}
	if diff := cmp.Diff(want, specs); diff != "" {
		t.Fatalf("spec mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		data   string
	}{
		{name: "empty", source: "a.yaml", data: "  \n"},
		{name: "garbage", source: "a.yaml", data: "forms: [unclosed"},
		{name: "no form name", source: "a.json", data: `{"forms":[{"fields":[]}]}`},
		{name: "no kind", source: "a.json", data: `{"forms":[{"name":"x","fields":[{"name":"a"}]}]}`},
		{name: "no field name", source: "a.json", data: `{"forms":[{"name":"x","fields":[{"kind":"text"}]}]}`},
		{name: "duplicate field", source: "a.json", data: `{"forms":[{"name":"x","fields":[{"kind":"text","name":"a"},{"kind":"text","name":"a"}]}]}`},
		{name: "hcl syntax", source: "a.hcl", data: `form "x" {`},
		{name: "hcl missing kind", source: "a.hcl", data: `form "x" { field "a" {} }`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := formspec.Parse([]byte(tt.data), tt.source); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoadFSRejectsDuplicates(t *testing.T) {
	files := fstest.MapFS{
		"a.json": {Data: []byte(`{"forms":[{"name":"dup","fields":[]}]}`)},
		"b.yaml": {Data: []byte("forms:\n  - name: dup\n")},
	}
	_, err := formspec.LoadFS(files)
	if !errors.Is(err, formspec.ErrInvalidSpec) || !strings.Contains(err.Error(), `duplicate form "dup"`) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestBuildSignup(t *testing.T) {
	form, err := loadStore(t).Build("signup")
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	html, err := form.Display(nil)
	if err != nil {
		t.Fatalf("display: %v", err)
	}
	for _, fragment := range []string{
		`<form id="signup-form" class="stacked" action="/signup" method="POST" accept-charset="UTF-8">`,
		`<label>E-mail</label>`,
		`<input type="email" name="email" />`,
		`<input type="checkbox" name="terms" />`,
		`<ul class="members-list">`,
		`<input type="submit" name="send" value="Sign up" />`,
	} {
		if !strings.Contains(html, fragment) {
			t.Errorf("expected %q in\n%s", fragment, html)
		}
	}

	result := form.Validate(map[string]any{
		"email":    "ada@example.com",
		"password": "long enough",
		"terms":    "on",
		"members":  []any{map[string]any{"name": "Ada", "role": "admin"}},
	})
	if result.ContainsErrors() {
		t.Fatalf("unexpected errors %v", result.ErrorTree())
	}
	values := result.Value().(map[string]any)
	want := map[string]any{
		"email":    "ada@example.com",
		"password": "long enough",
		"age":      nil,
		"terms":    true,
		"members":  []any{map[string]any{"name": "Ada", "role": "admin"}},
		"send":     nil,
	}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	result = form.Validate(map[string]any{"email": "ada@example.com", "password": "short", "age": "10"})
	tree := result.ErrorTree().(map[string]any)
	if tree["password"] == nil || tree["age"] == nil {
		t.Fatalf("expected password and age errors, got %v", tree)
	}
}

func TestBuildContact(t *testing.T) {
	form, err := loadStore(t).Build("contact")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if form.Method != "POST" {
		t.Fatalf("expected upper case method, got %q", form.Method)
	}

	html, err := form.Display(map[string]any{"ref": "newsletter"})
	if err != nil {
		t.Fatalf("display: %v", err)
	}
	for _, fragment := range []string{
		`<label>Write to us</label>`,
		`placeholder="Subject"`,
		`<textarea name="body" cols="40" rows="5"></textarea>`,
		`<input type="hidden" name="ref" value="newsletter" />`,
	} {
		if !strings.Contains(html, fragment) {
			t.Errorf("expected %q in\n%s", fragment, html)
		}
	}

	result := form.Validate(map[string]any{"subject": strings.Repeat("x", 81)})
	tree := result.ErrorTree().(map[string]any)
	if tree["subject"] == nil || tree["body"] == nil {
		t.Fatalf("expected subject and body errors, got %v", tree)
	}
}

func TestBuildSurvey(t *testing.T) {
	form, err := loadStore(t).Build("survey")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	html, err := form.Display(nil)
	if err != nil {
		t.Fatalf("display: %v", err)
	}
	for _, fragment := range []string{
		`method="GET"`,
		`name="address.city"`,
		`<option value="red">Red</option>`,
		`<option value="blue">blue</option>`,
	} {
		if !strings.Contains(html, fragment) {
			t.Errorf("expected %q in\n%s", fragment, html)
		}
	}

	result := form.Validate(map[string]any{"score": "3", "address": map[string]any{"city": "Oslo"}})
	if result.ContainsErrors() {
		t.Fatalf("unexpected errors %v", result.ErrorTree())
	}
	result = form.Validate(map[string]any{"score": "9", "color": "green", "address": map[string]any{}})
	tree := result.ErrorTree().(map[string]any)
	if tree["score"] == nil || tree["color"] == nil {
		t.Fatalf("expected score and color errors, got %v", tree)
	}
}

func TestBuildErrors(t *testing.T) {
	if _, err := loadStore(t).Build("missing"); !errors.Is(err, formspec.ErrUnknownForm) {
		t.Fatalf("expected ErrUnknownForm, got %v", err)
	}

	spec := formspec.FormSpec{Name: "x", Fields: []formspec.FieldSpec{{Kind: "slider", Name: "volume"}}}
	if _, err := formspec.Build(spec); !errors.Is(err, formspec.ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}

	spec = formspec.FormSpec{Name: "x", Fields: []formspec.FieldSpec{{Kind: "select", Name: "empty"}}}
	if _, err := formspec.Build(spec); err == nil {
		t.Fatalf("expected error for select without options")
	}
}

func TestRegistryCustomKind(t *testing.T) {
	registry := formspec.NewRegistry()
	registry.Register("slider", func(_ *formspec.Registry, s formspec.FieldSpec) (widgets.Widget, error) {
		return forms.NewInput(s.Name, forms.WithAttr("type", "range")), nil
	})

	found := false
	for _, kind := range registry.Kinds() {
		found = found || kind == "slider"
	}
	if !found {
		t.Fatalf("slider not listed in %v", registry.Kinds())
	}

	form, err := registry.Build(formspec.FormSpec{
		Name:   "mixer",
		Fields: []formspec.FieldSpec{{Kind: "slider", Name: "volume"}},
	}, forms.WithID("mixer"))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	html, err := form.Display(nil)
	if err != nil {
		t.Fatalf("display: %v", err)
	}
	if !strings.Contains(html, `<input name="volume" type="range" />`) || !strings.Contains(html, `id="mixer"`) {
		t.Fatalf("unexpected markup %s", html)
	}

	if _, err := formspec.DefaultRegistry().BuildField(formspec.FieldSpec{Kind: "slider", Name: "v"}); err == nil {
		t.Fatalf("custom kinds must not leak into the default registry")
	}
}

func TestNewStore(t *testing.T) {
	store, err := formspec.NewStore(formspec.FormSpec{Name: "a"}, formspec.FormSpec{Name: "b"})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, store.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if _, err := formspec.NewStore(formspec.FormSpec{Name: "a"}, formspec.FormSpec{Name: "a"}); err == nil {
		t.Fatalf("expected duplicate error")
	}
}
