package validation

import (
	"errors"
	"fmt"
	"strings"
)

// Error describes why a value was rejected. Leaf errors carry a message key
// and the formatted message; compound errors produced by Schema and ForEach
// additionally carry per-field or per-item causes.
type Error struct {
	Key     string
	Message string
	Value   any
	Args    []any

	fields []FieldError
	items  []error
}

// FieldError binds an error to a named field of a Schema.
type FieldError struct {
	Name string
	Err  error
}

// NewError builds a leaf error using the default message for key.
func NewError(key string, value any, args ...any) *Error {
	return &Error{
		Key:     key,
		Message: Message(key, args...),
		Value:   value,
		Args:    args,
	}
}

// Errorf builds a leaf error with a custom message.
func Errorf(key string, value any, format string, args ...any) *Error {
	return &Error{
		Key:     key,
		Message: fmt.Sprintf(format, args...),
		Value:   value,
		Args:    args,
	}
}

// NewFieldErrors builds a compound error for a mapping of named fields.
func NewFieldErrors(value any, fields ...FieldError) *Error {
	err := NewError(KeyInvalidFields, value)
	for _, field := range fields {
		if field.Err != nil {
			err.fields = append(err.fields, field)
		}
	}
	return err
}

// NewItemErrors builds a compound error for a list. items is aligned with the
// input list; nil entries mark valid items.
func NewItemErrors(value any, items []error) *Error {
	err := NewError(KeyInvalidItems, value)
	err.items = append([]error(nil), items...)
	return err
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case len(e.fields) > 0:
		parts := make([]string, 0, len(e.fields))
		for _, field := range e.fields {
			parts = append(parts, field.Name+": "+field.Err.Error())
		}
		return strings.Join(parts, "; ")
	case len(e.items) > 0:
		parts := make([]string, 0, len(e.items))
		for i, item := range e.items {
			if item != nil {
				parts = append(parts, fmt.Sprintf("[%d]: %s", i, item.Error()))
			}
		}
		return strings.Join(parts, "; ")
	}
	return e.Message
}

// Fields returns the per-field causes in declaration order.
func (e *Error) Fields() []FieldError {
	return append([]FieldError(nil), e.fields...)
}

// Field returns the error recorded for name, if any.
func (e *Error) Field(name string) error {
	for _, field := range e.fields {
		if field.Name == name {
			return field.Err
		}
	}
	return nil
}

// Items returns the per-item causes aligned with the validated list.
func (e *Error) Items() []error {
	return append([]error(nil), e.items...)
}

// IsCompound reports whether the error carries field or item causes.
func (e *Error) IsCompound() bool {
	return len(e.fields) > 0 || len(e.items) > 0
}

// Unpack converts the error into the shape of the validated value: a map of
// unpacked field errors, a list of unpacked item errors (nil for valid items)
// or the error itself for leaf errors.
func (e *Error) Unpack() any {
	switch {
	case len(e.fields) > 0:
		out := make(map[string]any, len(e.fields))
		for _, field := range e.fields {
			out[field.Name] = unpack(field.Err)
		}
		return out
	case len(e.items) > 0:
		out := make([]any, len(e.items))
		for i, item := range e.items {
			if item != nil {
				out[i] = unpack(item)
			}
		}
		return out
	}
	return e
}

func unpack(err error) any {
	var verr *Error
	if errors.As(err, &verr) {
		return verr.Unpack()
	}
	return err
}
