package forms

import (
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"

	"github.com/goliatone/go-formwidgets/pkg/formdata"
)

// PatchOperation is a single RFC 6902 operation.
type PatchOperation struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	From  string `json:"from,omitempty"`
	Value any    `json:"value,omitempty"`
}

// AddRow appends an empty row to the list at path ("/members").
func AddRow(path string) PatchOperation {
	return PatchOperation{Op: "add", Path: path + "/-", Value: map[string]any{}}
}

// RemoveRow removes row index (0 based) of the list at path.
func RemoveRow(path string, index int) PatchOperation {
	return PatchOperation{Op: "remove", Path: fmt.Sprintf("%s/%d", path, index)}
}

// Patch applies a JSON patch to the unvalidated values of f and binds a
// fresh context built from the result. Lists grow or shrink with the
// patched values.
func Patch(f Field, patchJSON []byte) (formdata.Data, error) {
	patch, err := jsonpatch.DecodePatch(patchJSON)
	if err != nil {
		return nil, fmt.Errorf("forms: decode patch: %w", err)
	}

	current, err := json.Marshal(f.WidgetBase().Context().InitialValue())
	if err != nil {
		return nil, fmt.Errorf("forms: marshal values: %w", err)
	}
	modified, err := patch.Apply(current)
	if err != nil {
		return nil, fmt.Errorf("forms: apply patch: %w", err)
	}

	var values any
	if err := json.Unmarshal(modified, &values); err != nil {
		return nil, fmt.Errorf("forms: unmarshal values: %w", err)
	}
	ctx := f.NewContext(values)
	if err := f.SetContext(ctx); err != nil {
		return nil, err
	}
	return ctx, nil
}

// PatchOps is Patch for operations built in Go.
func PatchOps(f Field, ops ...PatchOperation) (formdata.Data, error) {
	payload, err := json.Marshal(ops)
	if err != nil {
		return nil, fmt.Errorf("forms: marshal patch: %w", err)
	}
	return Patch(f, payload)
}
