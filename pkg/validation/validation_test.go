package validation_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwidgets/pkg/validation"
)

func TestString(t *testing.T) {
	tests := []struct {
		name      string
		validator *validation.StringValidator
		input     any
		want      any
		wantKey   string
		wantMsg   string
	}{
		{name: "passes strings", validator: validation.String(), input: "foo", want: "foo"},
		{name: "required rejects empty", validator: validation.String(), input: "", wantKey: validation.KeyEmpty, wantMsg: "Value must not be empty."},
		{name: "required rejects nil", validator: validation.String(), input: nil, wantKey: validation.KeyEmpty},
		{name: "optional accepts nil", validator: validation.String(validation.Required(false)), input: nil, want: ""},
		{name: "rejects numbers", validator: validation.String(), input: 42, wantKey: validation.KeyInvalidType},
		{name: "too long", validator: validation.String(validation.MaxLength(10)), input: "12345678901", wantKey: validation.KeyTooLong, wantMsg: "Must be less than 10 characters long."},
		{name: "max length boundary", validator: validation.String(validation.MaxLength(10)), input: "1234567890", want: "1234567890"},
		{name: "too short", validator: validation.String(validation.MinLength(3)), input: "ab", wantKey: validation.KeyTooShort, wantMsg: "Must be at least 3 characters long."},
		{name: "pattern", validator: validation.String(validation.Pattern("^[a-z]+$")), input: "ab1", wantKey: validation.KeyPattern},
		{name: "last of multiple values", validator: validation.String(), input: []string{"a", "b"}, want: "b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.validator.Process(tt.input)
			assertResult(t, got, err, tt.want, tt.wantKey, tt.wantMsg)
		})
	}
}

func TestEmail(t *testing.T) {
	v := validation.Email()
	if got, err := v.Process("foo@example.com"); err != nil || got != "foo@example.com" {
		t.Fatalf("unexpected result %v, %v", got, err)
	}
	_, err := v.Process("not-an-address")
	assertKey(t, err, validation.KeyInvalidEmail)
	if !v.IsRequired() {
		t.Fatalf("expected email to be required by default")
	}
}

func TestInteger(t *testing.T) {
	tests := []struct {
		name    string
		opts    []validation.Option
		input   any
		want    any
		wantKey string
		wantMsg string
	}{
		{name: "converts strings", input: "42", want: 42},
		{name: "trims spaces", input: " 7 ", want: 7},
		{name: "keeps ints", input: 5, want: 5},
		{name: "integral floats", input: 3.0, want: 3},
		{name: "rejects garbage", input: "abc", wantKey: validation.KeyInvalidNumber, wantMsg: "Please enter a number."},
		{name: "rejects fractions", input: 1.5, wantKey: validation.KeyInvalidNumber},
		{name: "required", input: "", wantKey: validation.KeyEmpty},
		{name: "optional", opts: []validation.Option{validation.Required(false)}, input: "", want: nil},
		{name: "minimum", opts: []validation.Option{validation.Min(1)}, input: "0", wantKey: validation.KeyTooLow, wantMsg: "Number must be 1 or greater."},
		{name: "maximum", opts: []validation.Option{validation.Max(10)}, input: "11", wantKey: validation.KeyTooBig, wantMsg: "Number must be 10 or smaller."},
		{name: "inside range", opts: []validation.Option{validation.Min(1), validation.Max(10)}, input: "10", want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validation.Integer(tt.opts...).Process(tt.input)
			assertResult(t, got, err, tt.want, tt.wantKey, tt.wantMsg)
		})
	}
}

func TestIntegerRevertConversion(t *testing.T) {
	v := validation.Integer()
	if got := validation.Revert(v, 42); got != "42" {
		t.Fatalf("expected \"42\", got %#v", got)
	}
	if got := validation.Revert(v, "abc"); got != "abc" {
		t.Fatalf("expected raw value to pass through, got %#v", got)
	}
}

func TestBooleanCheckbox(t *testing.T) {
	v := validation.BooleanCheckbox("foo")

	tests := []struct {
		input any
		want  bool
	}{
		{input: nil, want: false},
		{input: "", want: false},
		{input: "foo", want: true},
		{input: "true", want: true},
		{input: "on", want: true},
		{input: "false", want: false},
		{input: true, want: true},
	}
	for _, tt := range tests {
		got, err := v.Process(tt.input)
		if err != nil {
			t.Fatalf("Process(%#v): %v", tt.input, err)
		}
		if got != tt.want {
			t.Fatalf("Process(%#v) = %v, want %v", tt.input, got, tt.want)
		}
	}

	_, err := v.Process("bar")
	assertKey(t, err, validation.KeyInvalidBoolean)
	if validation.IsRequired(v) {
		t.Fatalf("checkbox validators are never required")
	}
}

func TestBooleanCheckboxFalsishOptionValue(t *testing.T) {
	v := validation.BooleanCheckbox("0")
	got, err := v.Process("0")
	if err != nil || got != true {
		t.Fatalf("expected option value to be trueish, got %v, %v", got, err)
	}
}

func TestOneOf(t *testing.T) {
	v := validation.OneOf([]string{"a", "b"})
	if got, err := v.Process("b"); err != nil || got != "b" {
		t.Fatalf("unexpected result %v, %v", got, err)
	}
	_, err := v.Process("c")
	assertKey(t, err, validation.KeyInvalid)
	_, err = v.Process("")
	assertKey(t, err, validation.KeyEmpty)

	optional := validation.OneOf([]string{"a"}, validation.Required(false))
	if got, err := optional.Process(nil); err != nil || got != nil {
		t.Fatalf("unexpected optional result %v, %v", got, err)
	}
}

func TestForEach(t *testing.T) {
	v := validation.ForEach(validation.Integer())

	got, err := v.Process([]any{"1", "2"})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if diff := cmp.Diff([]any{1, 2}, got); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}

	_, err = v.Process([]string{"1", "x", "3"})
	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *validation.Error, got %T", err)
	}
	items := verr.Items()
	if len(items) != 3 || items[0] != nil || items[2] != nil {
		t.Fatalf("unexpected item errors %#v", items)
	}
	assertKey(t, items[1], validation.KeyInvalidNumber)

	unpacked, ok := verr.Unpack().([]any)
	if !ok || len(unpacked) != 3 || unpacked[0] != nil {
		t.Fatalf("unexpected unpacked errors %#v", verr.Unpack())
	}

	_, err = v.Process("not a list")
	assertKey(t, err, validation.KeyInvalidList)

	if got, err := v.Process(nil); err != nil || len(got.([]any)) != 0 {
		t.Fatalf("expected nil to validate as empty list, got %v, %v", got, err)
	}
}

func TestSchema(t *testing.T) {
	schema := validation.NewSchema().
		Add("name", validation.String()).
		Add("age", validation.Integer())

	got, err := schema.Process(map[string]any{"name": "Ada", "age": "36", "extra": "dropped"})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"name": "Ada", "age": 36}, got); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}

	_, err = schema.Process(map[string]any{"age": "x"})
	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *validation.Error, got %T", err)
	}
	if diff := cmp.Diff([]string{"name", "age"}, fieldNames(verr)); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
	unpacked, ok := verr.Unpack().(map[string]any)
	if !ok {
		t.Fatalf("expected map from Unpack, got %T", verr.Unpack())
	}
	assertKey(t, unpacked["age"].(error), validation.KeyInvalidNumber)
	if verr.Error() != "name: Value must not be empty.; age: Please enter a number." {
		t.Fatalf("unexpected message %q", verr.Error())
	}

	_, err = schema.Process("nope")
	assertKey(t, err, validation.KeyInvalidMapping)
}

func TestSchemaFormValidators(t *testing.T) {
	schema := validation.NewSchema().
		Add("password", validation.String()).
		Add("confirm", validation.String()).
		AddFormValidator(validation.FormValidatorFunc(func(values map[string]any) error {
			if values["password"] != values["confirm"] {
				return validation.NewFieldErrors(values, validation.FieldError{
					Name: "confirm",
					Err:  validation.Errorf("mismatch", values["confirm"], "Passwords do not match."),
				})
			}
			return nil
		}))

	_, err := schema.Process(map[string]any{"password": "a", "confirm": "b"})
	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *validation.Error, got %T", err)
	}
	if got := verr.Field("confirm"); got == nil || got.Error() != "Passwords do not match." {
		t.Fatalf("unexpected confirm error %v", got)
	}

	plain := validation.NewSchema().AddFormValidator(validation.FormValidatorFunc(func(map[string]any) error {
		return errors.New("service unavailable")
	}))
	_, err = plain.Process(nil)
	if !errors.As(err, &verr) || verr.IsCompound() || verr.Message != "service unavailable" {
		t.Fatalf("expected leaf error, got %#v", err)
	}
}

func TestSchemaClone(t *testing.T) {
	base := validation.NewSchema().Add("name", validation.String())
	clone := base.Clone().Add("age", validation.Integer())

	if diff := cmp.Diff([]string{"name"}, base.Fields()); diff != "" {
		t.Fatalf("base schema changed (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"name", "age"}, clone.Fields()); diff != "" {
		t.Fatalf("clone mismatch (-want +got):\n%s", diff)
	}
}

func TestSchemaRevertConversion(t *testing.T) {
	schema := validation.NewSchema().Add("age", validation.Integer())
	got := schema.RevertConversion(map[string]any{"age": 3, "other": 4})
	if diff := cmp.Diff(map[string]any{"age": "3", "other": 4}, got); diff != "" {
		t.Fatalf("revert mismatch (-want +got):\n%s", diff)
	}
}

func TestFuncs(t *testing.T) {
	v := validation.Funcs{
		ProcessFn: func(value any) (any, error) { return value.(string) + "!", nil },
		Required:  true,
	}
	got, err := v.Process("hi")
	if err != nil || got != "hi!" {
		t.Fatalf("unexpected result %v, %v", got, err)
	}
	if !validation.IsRequired(v) {
		t.Fatalf("expected required")
	}
	if validation.Revert(v, "x") != "x" {
		t.Fatalf("expected identity revert")
	}
}

func TestLocalize(t *testing.T) {
	err := validation.NewError(validation.KeyTooLong, "x", 10)
	translator := validation.MapTranslator{
		"de": {"validation.too_long": "Höchstens %d Zeichen."},
	}

	if got := validation.Localize(err, "de", translator, nil); got != "Höchstens 10 Zeichen." {
		t.Fatalf("unexpected translation %q", got)
	}
	if got := validation.Localize(err, "fr", translator, nil); got != "Must be less than 10 characters long." {
		t.Fatalf("unexpected fallback %q", got)
	}

	var missing error
	got := validation.Localize(err, "fr", nil, func(_, key, fallback string, err error) string {
		missing = err
		return key + ":" + fallback
	})
	if got != "too_long:Must be less than 10 characters long." {
		t.Fatalf("unexpected missing handler output %q", got)
	}
	if !errors.Is(missing, validation.ErrMissingTranslator) {
		t.Fatalf("expected ErrMissingTranslator, got %v", missing)
	}

	if got := validation.Localize(errors.New("boom"), "de", translator, nil); got != "boom" {
		t.Fatalf("unexpected plain error message %q", got)
	}
}

func assertResult(t *testing.T, got any, err error, want any, wantKey, wantMsg string) {
	t.Helper()
	if wantKey == "" {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("result mismatch (-want +got):\n%s", diff)
		}
		return
	}
	assertKey(t, err, wantKey)
	if wantMsg != "" && err.Error() != wantMsg {
		t.Fatalf("message mismatch: want %q, got %q", wantMsg, err.Error())
	}
}

func assertKey(t *testing.T, err error, key string) {
	t.Helper()
	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *validation.Error with key %q, got %v", key, err)
	}
	if verr.Key != key {
		t.Fatalf("error key mismatch: want %q, got %q (%s)", key, verr.Key, verr.Message)
	}
}

func fieldNames(err *validation.Error) []string {
	var names []string
	for _, field := range err.Fields() {
		names = append(names, field.Name)
	}
	return names
}
