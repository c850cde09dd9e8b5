package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const constraintURL = "https://formwidgets.local/constraint.json"

var constraintCache sync.Map

// constraint is a compiled JSON Schema fragment. Identical fragments share one
// compiled schema across validators.
type constraint struct {
	doc map[string]any
}

func newConstraint(doc map[string]any) *constraint {
	if len(doc) == 0 {
		return nil
	}
	return &constraint{doc: doc}
}

// violation returns the keyword of the first failing assertion ("maxLength",
// "enum", "format", ...) or "" when value satisfies the constraint.
func (c *constraint) violation(value any) (string, error) {
	if c == nil {
		return "", nil
	}
	schema, err := c.compile()
	if err != nil {
		return "", err
	}
	instance, err := toInstance(value)
	if err != nil {
		return "", err
	}

	err = schema.Validate(instance)
	if err == nil {
		return "", nil
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return "", fmt.Errorf("validation: evaluate constraint: %w", err)
	}
	return leafKeyword(verr), nil
}

func (c *constraint) compile() (*jsonschema.Schema, error) {
	raw, err := json.Marshal(c.doc)
	if err != nil {
		return nil, fmt.Errorf("validation: encode constraint: %w", err)
	}
	key := string(raw)
	if cached, ok := constraintCache.Load(key); ok {
		return cached.(*jsonschema.Schema), nil
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("validation: decode constraint: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat()
	if err := compiler.AddResource(constraintURL, doc); err != nil {
		return nil, fmt.Errorf("validation: add constraint: %w", err)
	}
	schema, err := compiler.Compile(constraintURL)
	if err != nil {
		return nil, fmt.Errorf("validation: compile constraint: %w", err)
	}

	actual, _ := constraintCache.LoadOrStore(key, schema)
	return actual.(*jsonschema.Schema), nil
}

func toInstance(value any) (any, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("validation: encode value: %w", err)
	}
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("validation: decode value: %w", err)
	}
	return instance, nil
}

func leafKeyword(verr *jsonschema.ValidationError) string {
	for len(verr.Causes) > 0 {
		verr = verr.Causes[0]
	}
	if verr.ErrorKind == nil {
		return ""
	}
	path := verr.ErrorKind.KeywordPath()
	if len(path) == 0 {
		return ""
	}
	return path[len(path)-1]
}
