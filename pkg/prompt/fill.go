package prompt

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/goliatone/go-formwidgets/pkg/formdata"
	"github.com/goliatone/go-formwidgets/pkg/forms"
	"github.com/goliatone/go-formwidgets/pkg/validation"
	"github.com/goliatone/go-formwidgets/pkg/widgets"
)

// DefaultMaxAttempts bounds how often a form is validated before Fill gives up.
const DefaultMaxAttempts = 3

// MaxRows caps the number of list rows asked for in one session.
const MaxRows = 100

// ErrInvalid is returned when the answers are still invalid after the last
// attempt. The returned data holds the remaining errors.
var ErrInvalid = errors.New("prompt: form still invalid")

// Option configures Fill.
type Option func(*filler)

// WithDriver overrides the survey driver.
func WithDriver(driver PromptDriver) Option {
	return func(f *filler) {
		if driver != nil {
			f.driver = driver
		}
	}
}

// WithMaxAttempts sets how many validation rounds Fill runs.
func WithMaxAttempts(n int) Option {
	return func(f *filler) {
		if n > 0 {
			f.maxAttempts = n
		}
	}
}

// WithInitialValues seeds defaults and hidden fields. values is shaped like
// the form value.
func WithInitialValues(values map[string]any) Option {
	return func(f *filler) {
		f.initial = values
	}
}

// WithLocale localizes the validation messages shown between attempts.
func WithLocale(locale string, t validation.Translator) Option {
	return func(f *filler) {
		f.locale = locale
		f.translator = t
	}
}

type filler struct {
	driver      PromptDriver
	maxAttempts int
	initial     map[string]any
	locale      string
	translator  validation.Translator
}

// Fill asks a value for every field of form, validates the answers with the
// form and asks again for the fields that failed. The final context is bound
// to form so a later Display shows the answers and any remaining errors.
func Fill(ctx context.Context, form *forms.Form, opts ...Option) (formdata.Data, error) {
	if form == nil {
		return nil, errors.New("prompt: nil form")
	}
	f := &filler{maxAttempts: DefaultMaxAttempts}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	if f.driver == nil {
		f.driver = NewSurveyDriver()
	}

	children := form.Children()
	values := make(map[string]any)
	pending := children
	for attempt := 1; ; attempt++ {
		for _, child := range pending {
			if err := f.askChild(ctx, child, values, lookupMap(f.initial), attempt == 1); err != nil {
				return nil, err
			}
		}

		data := form.Validate(values)
		if err := form.SetContext(data); err != nil {
			return nil, err
		}
		if !data.ContainsErrors() {
			return data, nil
		}
		if err := f.report(ctx, children, data); err != nil {
			return nil, err
		}
		if attempt >= f.maxAttempts {
			return data, fmt.Errorf("%w after %d attempts", ErrInvalid, attempt)
		}
		pending = failing(children, data)
	}
}

func (f *filler) askChild(ctx context.Context, child widgets.Widget, values, initial map[string]any, first bool) error {
	field, ok := child.(forms.Field)
	if !ok {
		if label, isLabel := child.(*widgets.Label); isLabel && first && label.Value != "" {
			return f.driver.Info(ctx, label.Value)
		}
		return nil
	}
	name := field.Input().Name
	if name == "" || field.IsButton() {
		return nil
	}
	if field.IsHidden() && first {
		values[name] = initial[name]
		return nil
	}

	prev, answered := values[name]
	if !answered {
		prev = initial[name]
	}
	value, err := f.ask(ctx, field, prev)
	if err != nil {
		return err
	}
	values[name] = value
	return nil
}

func (f *filler) ask(ctx context.Context, field forms.Field, prev any) (any, error) {
	message := fieldMessage(field)
	switch typed := field.(type) {
	case *forms.Form:
		return f.askForm(ctx, typed, lookupMap(prev))
	case *forms.ListField:
		return f.askList(ctx, typed, message, prev)
	case *forms.SelectField:
		return f.askSelect(ctx, typed, message, prev)
	case *forms.TextArea:
		return f.driver.TextArea(ctx, TextAreaConfig{Message: message, Default: stringValue(prev)})
	}

	switch field.Kind() {
	case "checkbox", "radio":
		checked, _ := validation.Boolean().Process(prev)
		def, _ := checked.(bool)
		return f.driver.Confirm(ctx, ConfirmConfig{Message: message, Default: def})
	case "password":
		return f.driver.Password(ctx, InputConfig{Message: message, Validator: f.inline(field.FieldValidator())})
	}
	return f.driver.Input(ctx, InputConfig{
		Message:   message,
		Default:   stringValue(validation.Revert(field.FieldValidator(), prev)),
		Validator: f.inline(field.FieldValidator()),
	})
}

func (f *filler) askForm(ctx context.Context, form *forms.Form, initial map[string]any) (map[string]any, error) {
	if form.Label != "" {
		if err := f.driver.Info(ctx, form.Label); err != nil {
			return nil, err
		}
	}
	values := make(map[string]any)
	for _, child := range form.Children() {
		if err := f.askChild(ctx, child, values, initial, true); err != nil {
			return nil, err
		}
	}
	return values, nil
}

func (f *filler) askList(ctx context.Context, list *forms.ListField, message string, prev any) ([]any, error) {
	rows, _ := prev.([]any)
	answer, err := f.driver.Input(ctx, InputConfig{
		Message:   message + " (number of rows)",
		Default:   strconv.Itoa(len(rows)),
		Validator: rowCount,
	})
	if err != nil {
		return nil, err
	}
	if err := rowCount(answer); err != nil {
		return nil, err
	}
	n, _ := strconv.Atoi(strings.TrimSpace(answer))

	out := make([]any, 0, n)
	for i := 0; i < n; i++ {
		var initial map[string]any
		if i < len(rows) {
			initial = lookupMap(rows[i])
		}
		if err := f.driver.Info(ctx, fmt.Sprintf("%s %d", message, i+1)); err != nil {
			return nil, err
		}
		row := make(map[string]any)
		for _, child := range list.ChildWidgets() {
			if err := f.askChild(ctx, child, row, initial, true); err != nil {
				return nil, err
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func (f *filler) askSelect(ctx context.Context, s *forms.SelectField, message string, prev any) (string, error) {
	labels := make([]string, len(s.Options))
	def := -1
	for i, option := range s.Options {
		labels[i] = option.Label
		if labels[i] == "" {
			labels[i] = option.Value
		}
		if option.Value == stringValue(prev) {
			def = i
		}
	}
	idx, err := f.driver.Select(ctx, SelectConfig{Message: message, Options: labels, DefaultIndex: def})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(s.Options) {
		return "", fmt.Errorf("prompt: no option selected for %q", s.Name)
	}
	return s.Options[idx].Value, nil
}

// inline turns a field validator into a per-answer check for drivers that
// validate while typing.
func (f *filler) inline(v validation.Validator) func(string) error {
	if v == nil {
		return nil
	}
	return func(answer string) error {
		if _, err := v.Process(answer); err != nil {
			return errors.New(f.message(err))
		}
		return nil
	}
}

func (f *filler) message(err error) string {
	return validation.Localize(err, f.locale, f.translator, nil)
}

func (f *filler) report(ctx context.Context, children []widgets.Widget, data formdata.Data) error {
	form, ok := data.(*formdata.FormData)
	if !ok {
		return nil
	}
	for _, err := range form.FormErrors() {
		if ierr := f.driver.Info(ctx, f.message(err)); ierr != nil {
			return ierr
		}
	}
	for _, child := range children {
		field, ok := child.(forms.Field)
		if !ok {
			continue
		}
		childData, err := form.Child(field.Input().Name)
		if err != nil || !childData.ContainsErrors() {
			continue
		}
		for _, msg := range f.messages(childData.ErrorTree()) {
			if ierr := f.driver.Info(ctx, fieldMessage(field)+": "+msg); ierr != nil {
				return ierr
			}
		}
	}
	return nil
}

func (f *filler) messages(tree any) []string {
	var out []string
	switch typed := tree.(type) {
	case []error:
		for _, err := range typed {
			out = append(out, f.message(err))
		}
	case map[string]any:
		for _, key := range sortedKeys(typed) {
			out = append(out, f.messages(typed[key])...)
		}
	case []any:
		for _, item := range typed {
			out = append(out, f.messages(item)...)
		}
	}
	return out
}

// failing returns the children to ask again. Form level errors cannot be
// pinned to a field so every child is asked again.
func failing(children []widgets.Widget, data formdata.Data) []widgets.Widget {
	form, ok := data.(*formdata.FormData)
	if !ok || len(form.FormErrors()) > 0 {
		return children
	}
	var out []widgets.Widget
	for _, child := range children {
		field, ok := child.(forms.Field)
		if !ok {
			continue
		}
		childData, err := form.Child(field.Input().Name)
		if err == nil && childData.ContainsErrors() {
			out = append(out, child)
		}
	}
	return out
}

func rowCount(answer string) error {
	n, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil || n < 0 {
		return fmt.Errorf("%q is not a row count", answer)
	}
	if n > MaxRows {
		return fmt.Errorf("%d rows exceed the limit of %d", n, MaxRows)
	}
	return nil
}

func fieldMessage(field forms.Field) string {
	if label := field.Input().Label; label != "" {
		return label
	}
	return humanize(field.Input().Name)
}

func humanize(name string) string {
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)
	if name == "" {
		return name
	}
	runes := []rune(name)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func lookupMap(value any) map[string]any {
	m, _ := value.(map[string]any)
	return m
}

func stringValue(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	default:
		return fmt.Sprint(typed)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
