// Package formwidgets is the convenience entry point of the module. It
// wires the OpenAPI and form definition front ends to the widget renderer
// for callers that only need HTML.
package formwidgets

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-formwidgets/pkg/forms"
	"github.com/goliatone/go-formwidgets/pkg/formspec"
	pkgopenapi "github.com/goliatone/go-formwidgets/pkg/openapi"
	"github.com/goliatone/go-formwidgets/pkg/widgets"
)

// FormFromOpenAPI loads the document behind src and builds the form of
// operationID.
func FormFromOpenAPI(ctx context.Context, src pkgopenapi.Source, operationID string, options ...pkgopenapi.LoaderOption) (*forms.Form, error) {
	doc, err := pkgopenapi.Load(ctx, src, options...)
	if err != nil {
		return nil, err
	}
	return pkgopenapi.BuildForm(doc, operationID)
}

// GenerateHTML renders the empty form of operationID.
func GenerateHTML(ctx context.Context, src pkgopenapi.Source, operationID string, opts ...widgets.DisplayOption) ([]byte, error) {
	form, err := FormFromOpenAPI(ctx, src, operationID)
	if err != nil {
		return nil, err
	}
	html, err := form.Display(nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("formwidgets: render %s: %w", operationID, err)
	}
	return []byte(html), nil
}

// LoadForms reads every form definition in fsys.
func LoadForms(fsys fs.FS) (*formspec.Store, error) {
	return formspec.LoadFS(fsys)
}

// RenderDefinition builds the form called name from the definitions in fsys
// and renders it with values.
func RenderDefinition(fsys fs.FS, name string, values map[string]any, opts ...widgets.DisplayOption) (string, error) {
	store, err := LoadForms(fsys)
	if err != nil {
		return "", err
	}
	form, err := store.Build(name)
	if err != nil {
		return "", err
	}
	if values != nil {
		if err := form.SetContext(form.Validate(values)); err != nil {
			return "", err
		}
	}
	return form.Display(nil, opts...)
}
