package formdata

// FieldData is the state of a single input.
type FieldData struct {
	initial any
	value   any
	errors  []error
}

// FieldOption seeds a FieldData.
type FieldOption func(*FieldData)

// WithValue sets the validated value.
func WithValue(value any) FieldOption {
	return func(d *FieldData) { d.value = value }
}

// WithInitialValue sets the raw input.
func WithInitialValue(value any) FieldOption {
	return func(d *FieldData) { d.initial = value }
}

// WithErrors sets the validation errors.
func WithErrors(errs ...error) FieldOption {
	return func(d *FieldData) {
		for _, err := range errs {
			if err != nil {
				d.errors = append(d.errors, err)
			}
		}
	}
}

// NewFieldData returns an empty FieldData with opts applied.
func NewFieldData(opts ...FieldOption) *FieldData {
	d := &FieldData{}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Value implements Data.
func (d *FieldData) Value() any { return d.value }

// InitialValue implements Data.
func (d *FieldData) InitialValue() any { return d.initial }

// Errors returns the errors attached to the field.
func (d *FieldData) Errors() []error {
	return append([]error(nil), d.errors...)
}

// Messages returns one message per error.
func (d *FieldData) Messages() []string {
	out := make([]string, 0, len(d.errors))
	for _, err := range d.errors {
		out = append(out, err.Error())
	}
	return out
}

// ErrorTree implements Data. A field without errors reports nil.
func (d *FieldData) ErrorTree() any {
	if len(d.errors) == 0 {
		return nil
	}
	return d.Errors()
}

// ContainsErrors implements Data.
func (d *FieldData) ContainsErrors() bool { return len(d.errors) > 0 }

// SetValue implements Data.
func (d *FieldData) SetValue(value any) error {
	d.value = value
	return nil
}

// SetInitialValue implements Data.
func (d *FieldData) SetInitialValue(value any) error {
	d.initial = value
	return nil
}

// SetErrors implements Data. errs may be nil, an error, a string or a list
// of those; nil clears the errors.
func (d *FieldData) SetErrors(errs any) error {
	list, err := toErrorList(errs)
	if err != nil {
		return err
	}
	d.errors = list
	return nil
}

// Clone implements Data.
func (d *FieldData) Clone() Data {
	return &FieldData{
		initial: d.initial,
		value:   d.value,
		errors:  d.Errors(),
	}
}
