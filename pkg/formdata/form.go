package formdata

import (
	"errors"
	"fmt"
)

// FormData is the state of a form: one Data per named child plus errors that
// belong to the form as a whole.
type FormData struct {
	names      []string
	children   map[string]Data
	formErrors []error
}

// NewFormData returns an empty FormData.
func NewFormData() *FormData {
	return &FormData{children: make(map[string]Data)}
}

// Add registers child under name. Re-adding a name replaces the child and
// keeps its position.
func (d *FormData) Add(name string, child Data) *FormData {
	if child == nil {
		child = NewFieldData()
	}
	if _, exists := d.children[name]; !exists {
		d.names = append(d.names, name)
	}
	d.children[name] = child
	return d
}

// Remove drops the child registered under name.
func (d *FormData) Remove(name string) {
	if _, exists := d.children[name]; !exists {
		return
	}
	delete(d.children, name)
	for i, existing := range d.names {
		if existing == name {
			d.names = append(d.names[:i:i], d.names[i+1:]...)
			break
		}
	}
}

// Child returns the Data registered under name.
func (d *FormData) Child(name string) (Data, error) {
	child, ok := d.children[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownChild, name)
	}
	return child, nil
}

// Has reports whether a child named name exists.
func (d *FormData) Has(name string) bool {
	_, ok := d.children[name]
	return ok
}

// Names returns the child names in insertion order.
func (d *FormData) Names() []string {
	return append([]string(nil), d.names...)
}

// Value implements Data.
func (d *FormData) Value() any {
	out := make(map[string]any, len(d.names))
	for _, name := range d.names {
		out[name] = d.children[name].Value()
	}
	return out
}

// InitialValue implements Data.
func (d *FormData) InitialValue() any {
	out := make(map[string]any, len(d.names))
	for _, name := range d.names {
		out[name] = d.children[name].InitialValue()
	}
	return out
}

// ErrorTree implements Data. Every child is present; children without errors
// map to nil. Form level errors are available through FormErrors.
func (d *FormData) ErrorTree() any {
	out := make(map[string]any, len(d.names))
	for _, name := range d.names {
		out[name] = d.children[name].ErrorTree()
	}
	return out
}

// FormErrors returns the errors not bound to a child.
func (d *FormData) FormErrors() []error {
	return append([]error(nil), d.formErrors...)
}

// SetFormErrors replaces the errors not bound to a child.
func (d *FormData) SetFormErrors(errs ...error) {
	d.formErrors = nil
	for _, err := range errs {
		if err != nil {
			d.formErrors = append(d.formErrors, err)
		}
	}
}

// ContainsErrors implements Data.
func (d *FormData) ContainsErrors() bool {
	if len(d.formErrors) > 0 {
		return true
	}
	for _, name := range d.names {
		if d.children[name].ContainsErrors() {
			return true
		}
	}
	return false
}

// SetValue implements Data. Children missing from value keep their current
// value; keys without a child fail with ErrUnknownParameter and leave the
// form untouched.
func (d *FormData) SetValue(value any) error {
	if value == nil {
		return nil
	}
	values, err := toMap(value)
	if err != nil {
		return err
	}
	if err := d.checkKeys(values); err != nil {
		return err
	}
	for _, key := range sortedKeys(values) {
		if err := d.children[key].SetValue(values[key]); err != nil {
			return fmt.Errorf("formdata: set value %q: %w", key, err)
		}
	}
	return nil
}

// SetInitialValue implements Data. Unknown keys are ignored since raw input
// routinely carries extra parameters (submit buttons, tokens). A child that
// rejects its value does not stop the others from being seeded; the
// failures are joined.
func (d *FormData) SetInitialValue(value any) error {
	if value == nil {
		return nil
	}
	values, err := toMap(value)
	if err != nil {
		return err
	}
	var errs []error
	for _, key := range sortedKeys(values) {
		child, ok := d.children[key]
		if !ok {
			continue
		}
		if err := child.SetInitialValue(values[key]); err != nil {
			errs = append(errs, fmt.Errorf("formdata: set initial value %q: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

// SetErrors implements Data. A map routes errors to children, compound
// validation errors are unpacked first, anything else becomes a form level
// error. nil clears all errors in the subtree.
func (d *FormData) SetErrors(errs any) error {
	errs = unpackErrors(errs)
	if errs == nil {
		d.formErrors = nil
		for _, name := range d.names {
			if err := d.children[name].SetErrors(nil); err != nil {
				return err
			}
		}
		return nil
	}

	switch typed := errs.(type) {
	case map[string]any:
		if err := d.checkKeys(typed); err != nil {
			return err
		}
		for _, key := range sortedKeys(typed) {
			if err := d.children[key].SetErrors(typed[key]); err != nil {
				return fmt.Errorf("formdata: set errors %q: %w", key, err)
			}
		}
		return nil
	case map[string][]string:
		converted := make(map[string]any, len(typed))
		for key, messages := range typed {
			converted[key] = messages
		}
		return d.SetErrors(converted)
	}

	list, err := toErrorList(errs)
	if err != nil {
		return err
	}
	d.formErrors = list
	return nil
}

// Clone implements Data.
func (d *FormData) Clone() Data {
	clone := NewFormData()
	for _, name := range d.names {
		clone.Add(name, d.children[name].Clone())
	}
	clone.formErrors = d.FormErrors()
	return clone
}

func (d *FormData) checkKeys(values map[string]any) error {
	for _, key := range sortedKeys(values) {
		if _, ok := d.children[key]; !ok {
			return unknownParameter(key)
		}
	}
	return nil
}
