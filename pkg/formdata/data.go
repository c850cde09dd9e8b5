package formdata

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
)

var (
	// ErrUnknownParameter is returned when values or errors are assigned to a
	// child that does not exist.
	ErrUnknownParameter = errors.New("unknown parameter")
	// ErrUnknownChild is returned by lookups for missing children.
	ErrUnknownChild = errors.New("formdata: unknown child")
	// ErrLengthMismatch is returned when a list update does not match the
	// number of existing rows.
	ErrLengthMismatch = errors.New("formdata: length mismatch")
)

// Data is the validation state of one widget.
type Data interface {
	// Value returns the validated value.
	Value() any
	// InitialValue returns the raw, unvalidated input.
	InitialValue() any
	// ErrorTree returns the errors shaped like the value: nil or []error for
	// leaves, map[string]any for forms and []any for lists.
	ErrorTree() any
	// ContainsErrors reports whether this node or any descendant has errors.
	ContainsErrors() bool
	SetValue(value any) error
	SetInitialValue(value any) error
	SetErrors(errs any) error
	Clone() Data
}

// unpacker is implemented by compound validation errors that can be split
// into per-field or per-item errors.
type unpacker interface {
	Unpack() any
}

func unknownParameter(name string) error {
	return fmt.Errorf("%w %q", ErrUnknownParameter, name)
}

func unpackErrors(errs any) any {
	u, ok := errs.(unpacker)
	if !ok {
		return errs
	}
	out := u.Unpack()
	if err, ok := out.(error); ok {
		return err
	}
	return out
}

func toErrorList(errs any) ([]error, error) {
	switch v := errs.(type) {
	case nil:
		return nil, nil
	case error:
		return []error{v}, nil
	case []error:
		out := make([]error, 0, len(v))
		for _, err := range v {
			if err != nil {
				out = append(out, err)
			}
		}
		return out, nil
	case string:
		return []error{errors.New(v)}, nil
	case []string:
		out := make([]error, 0, len(v))
		for _, msg := range v {
			out = append(out, errors.New(msg))
		}
		return out, nil
	case []any:
		out := make([]error, 0, len(v))
		for _, item := range v {
			converted, err := toErrorList(item)
			if err != nil {
				return nil, err
			}
			out = append(out, converted...)
		}
		return out, nil
	}
	return nil, fmt.Errorf("formdata: unsupported error value %T", errs)
}

func toMap(value any) (map[string]any, error) {
	switch v := value.(type) {
	case map[string]any:
		return v, nil
	case map[string]string:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = item
		}
		return out, nil
	}
	return nil, fmt.Errorf("formdata: expected a mapping, got %T", value)
}

func toList(value any) ([]any, error) {
	switch v := value.(type) {
	case []any:
		return v, nil
	case []map[string]any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = item
		}
		return out, nil
	case string, map[string]any:
		return nil, fmt.Errorf("formdata: expected a list, got %T", value)
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("formdata: expected a list, got %T", value)
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
