package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formwidgets/components/timezones"
	"github.com/goliatone/go-formwidgets/pkg/formdata"
	"github.com/goliatone/go-formwidgets/pkg/forms"
	"github.com/goliatone/go-formwidgets/pkg/formspec"
	pkgopenapi "github.com/goliatone/go-formwidgets/pkg/openapi"
	"github.com/goliatone/go-formwidgets/pkg/prompt"
	"github.com/goliatone/go-formwidgets/pkg/validation"
	"github.com/goliatone/go-formwidgets/pkg/widgets"
)

const httpTimeout = 30 * time.Second

// App executes one parsed command.
type App struct {
	out    io.Writer
	cfg    *Config
	logger *slog.Logger
	driver prompt.PromptDriver
}

// Result is the JSON document printed by validate and fill.
type Result struct {
	Valid      bool     `json:"valid"`
	Value      any      `json:"value,omitempty"`
	Errors     any      `json:"errors,omitempty"`
	FormErrors []string `json:"form_errors,omitempty"`
}

// Run executes the configured command.
func (a *App) Run(ctx context.Context) error {
	a.logger.Debug("running command", "command", a.cfg.Command)
	if a.cfg.Command == CommandList {
		return a.list(ctx)
	}

	form, err := a.buildForm(ctx)
	if err != nil {
		return err
	}
	translator, err := a.translator()
	if err != nil {
		return err
	}

	switch a.cfg.Command {
	case CommandRender:
		return a.render(form, translator)
	case CommandValidate:
		return a.validate(form, translator)
	case CommandFill:
		return a.fill(ctx, form, translator)
	}
	return &ExitError{Code: 2, Message: fmt.Sprintf("unknown command %q", a.cfg.Command)}
}

func (a *App) list(ctx context.Context) error {
	var lines []string
	if a.cfg.FormsDir != "" {
		store, err := formspec.LoadFS(os.DirFS(a.cfg.FormsDir))
		if err != nil {
			return err
		}
		lines = store.Names()
	} else {
		doc, err := a.loadDocument(ctx)
		if err != nil {
			return err
		}
		for _, op := range doc.Operations() {
			lines = append(lines, fmt.Sprintf("%s\t%s %s", op.ID, op.Method, op.Path))
		}
	}
	if len(lines) == 0 {
		return a.write([]byte{})
	}
	return a.write([]byte(strings.Join(lines, "\n") + "\n"))
}

func (a *App) buildForm(ctx context.Context) (*forms.Form, error) {
	if a.cfg.FormsDir != "" {
		store, err := formspec.LoadFS(os.DirFS(a.cfg.FormsDir))
		if err != nil {
			return nil, err
		}
		a.logger.Debug("form definitions loaded", "dir", a.cfg.FormsDir, "forms", len(store.Names()))
		registry := formspec.NewRegistry()
		timezones.Register(registry)
		return store.BuildWith(registry, a.cfg.Form)
	}

	doc, err := a.loadDocument(ctx)
	if err != nil {
		return nil, err
	}
	return pkgopenapi.BuildForm(doc, a.cfg.Operation)
}

func (a *App) loadDocument(ctx context.Context) (*pkgopenapi.Document, error) {
	src := parseSource(a.cfg.Source)
	if src == nil {
		return nil, &ExitError{Code: 2, Message: fmt.Sprintf("invalid source: %q", a.cfg.Source)}
	}
	a.logger.Debug("loading openapi document", "source", src.Location(), "kind", src.Kind())
	return pkgopenapi.Load(ctx, src, pkgopenapi.WithHTTPFallback(httpTimeout))
}

func (a *App) translator() (validation.Translator, error) {
	if a.cfg.Messages == "" {
		return nil, nil
	}
	data, err := os.ReadFile(a.cfg.Messages)
	if err != nil {
		return nil, fmt.Errorf("read messages: %w", err)
	}
	var catalog map[string]map[string]string
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parse messages %s: %w", a.cfg.Messages, err)
	}
	translator := make(validation.MapTranslator, len(catalog))
	for locale, messages := range catalog {
		prefixed := make(map[string]string, len(messages))
		for key, msg := range messages {
			if !strings.HasPrefix(key, validation.MessagePrefix) {
				key = validation.MessagePrefix + key
			}
			prefixed[key] = msg
		}
		translator[locale] = prefixed
	}
	return translator, nil
}

func (a *App) values() (map[string]any, error) {
	if a.cfg.ValuesPath == "" {
		return nil, nil
	}
	data, err := os.ReadFile(a.cfg.ValuesPath)
	if err != nil {
		return nil, fmt.Errorf("read values: %w", err)
	}
	var values map[string]any
	if err := sonic.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse values %s: %w", a.cfg.ValuesPath, err)
	}
	return values, nil
}

func (a *App) render(form *forms.Form, translator validation.Translator) error {
	values, err := a.values()
	if err != nil {
		return err
	}
	if values != nil {
		if err := form.SetContext(form.Validate(values)); err != nil {
			return err
		}
	}
	html, err := form.Display(nil, a.displayOptions(translator)...)
	if err != nil {
		return fmt.Errorf("render form: %w", err)
	}
	return a.write([]byte(html + "\n"))
}

func (a *App) validate(form *forms.Form, translator validation.Translator) error {
	values, err := a.values()
	if err != nil {
		return err
	}
	data := form.Validate(values)
	return a.report(data, translator)
}

func (a *App) fill(ctx context.Context, form *forms.Form, translator validation.Translator) error {
	initial, err := a.values()
	if err != nil {
		return err
	}
	opts := []prompt.Option{
		prompt.WithDriver(a.driver),
		prompt.WithMaxAttempts(a.cfg.MaxAttempts),
		prompt.WithInitialValues(initial),
		prompt.WithLocale(a.cfg.Locale, translator),
	}
	data, err := prompt.Fill(ctx, form, opts...)
	if err != nil && !errors.Is(err, prompt.ErrInvalid) {
		return err
	}
	return a.report(data, translator)
}

// report prints the JSON result and turns invalid data into exit code 1.
func (a *App) report(data formdata.Data, translator validation.Translator) error {
	res := Result{Valid: !data.ContainsErrors()}
	if res.Valid {
		res.Value = data.Value()
	} else {
		res.Errors = messageTree(data.ErrorTree(), a.cfg.Locale, translator)
		if form, ok := data.(*formdata.FormData); ok {
			for _, err := range form.FormErrors() {
				res.FormErrors = append(res.FormErrors, validation.Localize(err, a.cfg.Locale, translator, nil))
			}
		}
	}
	payload, err := sonic.ConfigStd.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if err := a.write(append(payload, '\n')); err != nil {
		return err
	}
	if !res.Valid {
		return &ExitError{Code: 1}
	}
	return nil
}

func (a *App) displayOptions(translator validation.Translator) []widgets.DisplayOption {
	var opts []widgets.DisplayOption
	if a.cfg.Locale != "" {
		opts = append(opts, widgets.WithLocale(a.cfg.Locale))
	}
	if translator != nil {
		opts = append(opts, widgets.WithTranslator(translator))
	}
	return opts
}

func (a *App) write(data []byte) error {
	if a.cfg.Output == "" {
		_, err := a.out.Write(data)
		return err
	}
	if dir := filepath.Dir(a.cfg.Output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(a.cfg.Output, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	a.logger.Info("output written", "path", a.cfg.Output, "bytes", len(data))
	return nil
}

// messageTree mirrors an error tree with localized messages and drops the
// branches without errors.
func messageTree(tree any, locale string, t validation.Translator) any {
	switch typed := tree.(type) {
	case []error:
		if len(typed) == 0 {
			return nil
		}
		out := make([]string, 0, len(typed))
		for _, err := range typed {
			out = append(out, validation.Localize(err, locale, t, nil))
		}
		return out
	case map[string]any:
		out := make(map[string]any)
		for key, value := range typed {
			if msg := messageTree(value, locale, t); msg != nil {
				out[key] = msg
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	case []any:
		out := make([]any, len(typed))
		empty := true
		for i, value := range typed {
			out[i] = messageTree(value, locale, t)
			if out[i] != nil {
				empty = false
			}
		}
		if empty {
			return nil
		}
		return out
	}
	return nil
}

func parseSource(raw string) pkgopenapi.Source {
	path := strings.TrimSpace(raw)
	if path == "" {
		return nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return pkgopenapi.SourceFromURL(path)
	}
	return pkgopenapi.SourceFromFile(path)
}
