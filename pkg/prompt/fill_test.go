package prompt

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwidgets/pkg/forms"
	"github.com/goliatone/go-formwidgets/pkg/validation"
	"github.com/goliatone/go-formwidgets/pkg/widgets"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	textAreas    []string
	passwords    []string
	infoMessages []string
	messages     []string
	inputPos     int
	selectPos    int
	confirmPos   int
	textPos      int
	passPos      int
	err          error
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.messages = append(s.messages, cfg.Message)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, cfg InputConfig) (string, error) {
	s.messages = append(s.messages, cfg.Message)
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	s.messages = append(s.messages, cfg.Message)
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.messages = append(s.messages, cfg.Message)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, cfg TextAreaConfig) (string, error) {
	s.messages = append(s.messages, cfg.Message)
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func TestFill_AllKinds(t *testing.T) {
	form := forms.NewForm("", []widgets.Widget{
		widgets.NewLabel("Create your account"),
		forms.NewTextField("name", forms.WithLabel("Full name")),
		forms.NewEmailField("email"),
		forms.NewPasswordField("password"),
		forms.NewInput("age", forms.WithValidator(validation.Integer())),
		forms.NewCheckbox("terms"),
		forms.NewSelectField("plan", forms.WithOptions(
			forms.Choice("free", "Free"),
			forms.Choice("pro", "Pro"),
		)),
		forms.NewTextArea("bio"),
		forms.NewHiddenField("token"),
		forms.NewSubmitButton("send"),
	})
	driver := &stubDriver{
		inputs:    []string{"Ada", "ada@example.com", "36"},
		passwords: []string{"secret"},
		confirm:   []bool{true},
		selectIdx: []int{1},
		textAreas: []string{"hello"},
	}

	data, err := Fill(context.Background(), form,
		WithDriver(driver),
		WithInitialValues(map[string]any{"token": "abc"}),
	)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}

	want := map[string]any{
		"name":     "Ada",
		"email":    "ada@example.com",
		"password": "secret",
		"age":      36,
		"terms":    true,
		"plan":     "pro",
		"bio":      "hello",
		"token":    "abc",
		"send":     nil,
	}
	if diff := cmp.Diff(want, data.Value()); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}

	wantMessages := []string{"Full name", "Email", "Password", "Age", "Terms", "Plan", "Bio"}
	if diff := cmp.Diff(wantMessages, driver.messages); diff != "" {
		t.Fatalf("prompt order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Create your account"}, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
	if form.Context() != data {
		t.Fatalf("expected the filled context to be bound to the form")
	}
}

func TestFill_AsksFailingFieldsAgain(t *testing.T) {
	form := forms.NewForm("", []widgets.Widget{
		forms.NewTextField("name"),
		forms.NewEmailField("email"),
	})
	driver := &stubDriver{inputs: []string{"Ada", "nope", "ada@example.com"}}

	data, err := Fill(context.Background(), form, WithDriver(driver))
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if got := data.Value().(map[string]any)["email"]; got != "ada@example.com" {
		t.Fatalf("unexpected email %v", got)
	}
	if diff := cmp.Diff([]string{"Name", "Email", "Email"}, driver.messages); diff != "" {
		t.Fatalf("prompt order mismatch (-want +got):\n%s", diff)
	}
	if len(driver.infoMessages) != 1 || !strings.HasPrefix(driver.infoMessages[0], "Email: ") {
		t.Fatalf("expected one error report for email, got %v", driver.infoMessages)
	}
}

func TestFill_LocalizesReports(t *testing.T) {
	form := forms.NewForm("", []widgets.Widget{
		forms.NewInput("age", forms.WithValidator(validation.Integer())),
	})
	driver := &stubDriver{inputs: []string{"many", "3"}}
	translator := validation.MapTranslator{
		"es": {"validation." + validation.KeyInvalidNumber: "número inválido"},
	}

	if _, err := Fill(context.Background(), form, WithDriver(driver), WithLocale("es", translator)); err != nil {
		t.Fatalf("fill: %v", err)
	}
	if diff := cmp.Diff([]string{"Age: número inválido"}, driver.infoMessages); diff != "" {
		t.Fatalf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestFill_GivesUpAfterMaxAttempts(t *testing.T) {
	form := forms.NewForm("", []widgets.Widget{forms.NewEmailField("email")})
	driver := &stubDriver{inputs: []string{"nope", "still nope"}}

	data, err := Fill(context.Background(), form, WithDriver(driver), WithMaxAttempts(2))
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if data == nil || !data.ContainsErrors() {
		t.Fatalf("expected the invalid context to be returned")
	}
	if !form.Context().ContainsErrors() {
		t.Fatalf("expected the form to keep the errors for display")
	}
	if driver.inputPos != 2 {
		t.Fatalf("expected two attempts, got %d", driver.inputPos)
	}
}

func TestFill_ListRows(t *testing.T) {
	form := forms.NewForm("", []widgets.Widget{
		forms.NewListField("members", []widgets.Widget{
			forms.NewTextField("name"),
			forms.NewInput("age", forms.WithValidator(validation.Integer())),
		}),
	})
	driver := &stubDriver{inputs: []string{"2", "Ada", "36", "Alan", "41"}}

	data, err := Fill(context.Background(), form, WithDriver(driver))
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	want := map[string]any{
		"members": []any{
			map[string]any{"name": "Ada", "age": 36},
			map[string]any{"name": "Alan", "age": 41},
		},
	}
	if diff := cmp.Diff(want, data.Value()); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Members 1", "Members 2"}, driver.infoMessages); diff != "" {
		t.Fatalf("row headings mismatch (-want +got):\n%s", diff)
	}
}

func TestFill_RejectsBadRowCount(t *testing.T) {
	form := forms.NewForm("", []widgets.Widget{
		forms.NewListField("members", []widgets.Widget{forms.NewTextField("name")}),
	})
	for _, answer := range []string{"-1", "abc", "1000000000000"} {
		driver := &stubDriver{inputs: []string{answer}}
		if _, err := Fill(context.Background(), form, WithDriver(driver)); err == nil {
			t.Fatalf("expected an error for row count %q", answer)
		}
	}
}

func TestRowCountLimit(t *testing.T) {
	if err := rowCount("100"); err != nil {
		t.Fatalf("expected %d rows to be accepted: %v", MaxRows, err)
	}
	if err := rowCount("101"); err == nil {
		t.Fatalf("expected more than %d rows to be rejected", MaxRows)
	}
}

func TestFill_NestedForm(t *testing.T) {
	address := forms.NewForm("address", []widgets.Widget{
		forms.NewTextField("city"),
		forms.NewTextField("zip"),
	}, forms.WithLabel("Address"))
	form := forms.NewForm("", []widgets.Widget{forms.NewTextField("name"), address})
	driver := &stubDriver{inputs: []string{"Ada", "London", "N1"}}

	data, err := Fill(context.Background(), form, WithDriver(driver))
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	want := map[string]any{
		"name":    "Ada",
		"address": map[string]any{"city": "London", "zip": "N1"},
	}
	if diff := cmp.Diff(want, data.Value()); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Address"}, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestFill_UsesInitialValuesAsDefaults(t *testing.T) {
	form := forms.NewForm("", []widgets.Widget{
		forms.NewInput("age", forms.WithValidator(validation.Integer())),
	})
	rec := &defaultRecorder{stubDriver: stubDriver{inputs: []string{"7"}}}

	if _, err := Fill(context.Background(), form, WithDriver(rec), WithInitialValues(map[string]any{"age": 5})); err != nil {
		t.Fatalf("fill: %v", err)
	}
	if diff := cmp.Diff([]string{"5"}, rec.defaults); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestFill_Aborted(t *testing.T) {
	form := forms.NewForm("", []widgets.Widget{forms.NewTextField("name")})
	driver := &stubDriver{err: ErrAborted}

	if _, err := Fill(context.Background(), form, WithDriver(driver)); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestFill_NilForm(t *testing.T) {
	if _, err := Fill(context.Background(), nil); err == nil {
		t.Fatalf("expected an error for a nil form")
	}
}

func TestInlineValidator(t *testing.T) {
	f := &filler{}
	check := f.inline(validation.Integer(validation.Min(1)))
	if err := check("4"); err != nil {
		t.Fatalf("expected 4 to pass: %v", err)
	}
	if err := check("0"); err == nil {
		t.Fatalf("expected 0 to fail")
	}
	if f.inline(nil) != nil {
		t.Fatalf("expected no inline check without a validator")
	}
}

func TestTranslateSurveyErr(t *testing.T) {
	other := errors.New("boom")
	if got := translateSurveyErr(other); got != other {
		t.Fatalf("expected other errors to pass through, got %v", got)
	}
	if got := indexOf([]string{"a", "b"}, "b"); got != 1 {
		t.Fatalf("indexOf = %d", got)
	}
	if got := indexOf([]string{"a"}, "z"); got != -1 {
		t.Fatalf("indexOf missing = %d", got)
	}
}

type defaultRecorder struct {
	stubDriver
	defaults []string
}

func (d *defaultRecorder) Input(ctx context.Context, cfg InputConfig) (string, error) {
	d.defaults = append(d.defaults, cfg.Default)
	return d.stubDriver.Input(ctx, cfg)
}
