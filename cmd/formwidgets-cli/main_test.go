package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formwidgets/pkg/prompt"
)

const formsDir = "testdata/forms"

func TestRun_Help(t *testing.T) {
	out := &bytes.Buffer{}

	err := run(context.Background(), out, []string{"-h"}, nil)

	require.NoError(t, err)
	require.Contains(t, out.String(), "Usage:")
}

func TestRun_ArgumentErrors(t *testing.T) {
	cases := map[string][]string{
		"unknown command":   {"explode"},
		"no source":         {"render"},
		"both sources":      {"render", "-forms", formsDir, "-form", "login", "-source", "x.yaml"},
		"missing form":      {"render", "-forms", formsDir},
		"missing operation": {"render", "-source", "x.yaml"},
		"validate values":   {"validate", "-forms", formsDir, "-form", "login"},
		"bad log format":    {"list", "-forms", formsDir, "-log-format", "xml"},
		"bad flag":          {"list", "-nope"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			err := run(context.Background(), &bytes.Buffer{}, args, nil)

			var exitErr *ExitError
			require.True(t, errors.As(err, &exitErr), "expected ExitError, got %v", err)
			assert.Equal(t, 2, exitErr.Code)
		})
	}
}

func TestRun_ListForms(t *testing.T) {
	out := &bytes.Buffer{}

	err := run(context.Background(), out, []string{"list", "-forms", formsDir}, nil)

	require.NoError(t, err)
	assert.Equal(t, "login\nprofile\n", out.String())
}

func TestRun_ListOperations(t *testing.T) {
	out := &bytes.Buffer{}
	source := filepath.Join("..", "..", "pkg", "openapi", "testdata", "signup.yaml")

	err := run(context.Background(), out, []string{"list", "-source", source}, nil)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "createUser\tPOST /users")
}

func TestRun_Render(t *testing.T) {
	out := &bytes.Buffer{}

	err := run(context.Background(), out, []string{"render", "-forms", formsDir, "-form", "login"}, nil)

	require.NoError(t, err)
	html := out.String()
	assert.Contains(t, html, `action="/login"`)
	assert.Contains(t, html, `name="email"`)
	assert.Contains(t, html, `name="password"`)
}

func TestRun_RenderWithErrorsAndMessages(t *testing.T) {
	out := &bytes.Buffer{}
	args := []string{
		"render", "-forms", formsDir, "-form", "login",
		"-values", "testdata/invalid.json",
		"-locale", "es", "-messages", "testdata/messages.yaml",
	}

	err := run(context.Background(), out, args, nil)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Número no válido")
	assert.Contains(t, out.String(), "validationerror")
}

func TestRun_RenderToFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "login.html")
	out := &bytes.Buffer{}

	err := run(context.Background(), out, []string{"render", "-forms", formsDir, "-form", "login", "-output", target}, nil)

	require.NoError(t, err)
	assert.Empty(t, out.String())
	written, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(written), `name="email"`)
}

func TestRun_ValidateValid(t *testing.T) {
	out := &bytes.Buffer{}

	err := run(context.Background(), out, []string{"validate", "-forms", formsDir, "-form", "login", "-values", "testdata/valid.json"}, nil)

	require.NoError(t, err)
	assert.JSONEq(t, `{
		"valid": true,
		"value": {"email": "ada@example.com", "password": "secretpass", "age": 36, "send": null}
	}`, out.String())
}

func TestRun_ValidateInvalid(t *testing.T) {
	out := &bytes.Buffer{}
	args := []string{
		"validate", "-forms", formsDir, "-form", "login",
		"-values", "testdata/invalid.json",
		"-locale", "es", "-messages", "testdata/messages.yaml",
	}

	err := run(context.Background(), out, args, nil)

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr), "expected ExitError, got %v", err)
	assert.Equal(t, 1, exitErr.Code)
	assert.JSONEq(t, `{
		"valid": false,
		"errors": {"email": ["Correo no válido"], "age": ["Número no válido"]}
	}`, out.String())
}

func TestRun_UnknownForm(t *testing.T) {
	err := run(context.Background(), &bytes.Buffer{}, []string{"render", "-forms", formsDir, "-form", "missing"}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestRun_Fill(t *testing.T) {
	out := &bytes.Buffer{}
	driver := &scriptedDriver{
		inputs:    []string{"ada@example.com", "36"},
		passwords: []string{"secretpass"},
	}

	err := run(context.Background(), out, []string{"fill", "-forms", formsDir, "-form", "login"}, driver)

	require.NoError(t, err)
	var res Result
	require.NoError(t, sonic.Unmarshal(out.Bytes(), &res))
	assert.True(t, res.Valid)
	assert.Equal(t, "ada@example.com", res.Value.(map[string]any)["email"])
}

func TestRun_FillGivesUp(t *testing.T) {
	out := &bytes.Buffer{}
	driver := &scriptedDriver{
		inputs:    []string{"nope", "", "still nope"},
		passwords: []string{"secretpass"},
	}

	err := run(context.Background(), out, []string{"fill", "-forms", formsDir, "-form", "login", "-attempts", "2"}, driver)

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr), "expected ExitError, got %v", err)
	assert.Equal(t, 1, exitErr.Code)
	assert.Contains(t, out.String(), `"valid": false`)
}

func TestMessageTree(t *testing.T) {
	tree := map[string]any{
		"ok":   nil,
		"list": []any{nil, []error{errors.New("bad")}},
		"none": []any{nil},
	}

	got := messageTree(tree, "", nil)

	assert.Equal(t, map[string]any{"list": []any{nil, []string{"bad"}}}, got)
}

type scriptedDriver struct {
	inputs    []string
	passwords []string
	infos     []string
}

func (s *scriptedDriver) Input(_ context.Context, _ prompt.InputConfig) (string, error) {
	if len(s.inputs) == 0 {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[0]
	s.inputs = s.inputs[1:]
	return val, nil
}

func (s *scriptedDriver) Password(_ context.Context, _ prompt.InputConfig) (string, error) {
	if len(s.passwords) == 0 {
		return "", errors.New("no password scripted")
	}
	val := s.passwords[0]
	s.passwords = s.passwords[1:]
	return val, nil
}

func (s *scriptedDriver) Confirm(context.Context, prompt.ConfirmConfig) (bool, error) {
	return false, errors.New("no confirm scripted")
}

func (s *scriptedDriver) Select(context.Context, prompt.SelectConfig) (int, error) {
	return -1, errors.New("no select scripted")
}

func (s *scriptedDriver) TextArea(context.Context, prompt.TextAreaConfig) (string, error) {
	return "", errors.New("no textarea scripted")
}

func (s *scriptedDriver) Info(_ context.Context, msg string) error {
	s.infos = append(s.infos, msg)
	return nil
}

func TestRun_ValidateTimezoneKind(t *testing.T) {
	values := filepath.Join(t.TempDir(), "profile.json")
	require.NoError(t, os.WriteFile(values, []byte(`{"nickname":"ada","timezone":"Atlantis/Capital"}`), 0o600))
	out := &bytes.Buffer{}

	err := run(context.Background(), out, []string{"validate", "-forms", formsDir, "-form", "profile", "-values", values}, nil)

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr), "expected ExitError, got %v", err)
	assert.JSONEq(t, `{
		"valid": false,
		"errors": {"timezone": ["Please select a valid value."]}
	}`, out.String())
}
