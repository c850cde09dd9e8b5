package formdata

import (
	"errors"
	"fmt"
)

// Creator builds the Data for a new list row.
type Creator func() Data

// RepeatingFieldData is the state of a list field: one Data per row plus
// errors about the list itself.
type RepeatingFieldData struct {
	items   []Data
	creator Creator
	errors  []error
}

// NewRepeatingFieldData returns an empty list whose rows are built by creator.
func NewRepeatingFieldData(creator Creator) *RepeatingFieldData {
	return &RepeatingFieldData{creator: creator}
}

// Items returns the row states.
func (d *RepeatingFieldData) Items() []Data {
	return append([]Data(nil), d.items...)
}

// Item returns the row at index i.
func (d *RepeatingFieldData) Item(i int) (Data, error) {
	if i < 0 || i >= len(d.items) {
		return nil, fmt.Errorf("%w %d", ErrUnknownChild, i)
	}
	return d.items[i], nil
}

// Len returns the number of rows.
func (d *RepeatingFieldData) Len() int { return len(d.items) }

// SetItems replaces all rows.
func (d *RepeatingFieldData) SetItems(items ...Data) {
	d.items = append([]Data(nil), items...)
}

// Append adds rows at the end. A nil item is replaced by a fresh row.
func (d *RepeatingFieldData) Append(items ...Data) error {
	for _, item := range items {
		if item == nil {
			created, err := d.create()
			if err != nil {
				return err
			}
			item = created
		}
		d.items = append(d.items, item)
	}
	return nil
}

// Errors returns the errors about the list itself.
func (d *RepeatingFieldData) Errors() []error {
	return append([]error(nil), d.errors...)
}

// Value implements Data.
func (d *RepeatingFieldData) Value() any {
	out := make([]any, len(d.items))
	for i, item := range d.items {
		out[i] = item.Value()
	}
	return out
}

// InitialValue implements Data.
func (d *RepeatingFieldData) InitialValue() any {
	out := make([]any, len(d.items))
	for i, item := range d.items {
		out[i] = item.InitialValue()
	}
	return out
}

// ErrorTree implements Data. List level errors are available through Errors.
func (d *RepeatingFieldData) ErrorTree() any {
	out := make([]any, len(d.items))
	for i, item := range d.items {
		out[i] = item.ErrorTree()
	}
	return out
}

// ContainsErrors implements Data.
func (d *RepeatingFieldData) ContainsErrors() bool {
	if len(d.errors) > 0 {
		return true
	}
	for _, item := range d.items {
		if item.ContainsErrors() {
			return true
		}
	}
	return false
}

// SetValue implements Data. An empty list grows to match value; otherwise the
// lengths must be equal.
func (d *RepeatingFieldData) SetValue(value any) error {
	return d.update(value, Data.SetValue)
}

// SetInitialValue implements Data.
func (d *RepeatingFieldData) SetInitialValue(value any) error {
	return d.update(value, Data.SetInitialValue)
}

// SetErrors implements Data. Per-row errors are given as a list aligned with
// the rows (nil for rows without errors); a single error or message list is
// attached to the list itself.
func (d *RepeatingFieldData) SetErrors(errs any) error {
	errs = unpackErrors(errs)
	if errs == nil {
		d.errors = nil
		for _, item := range d.items {
			if err := item.SetErrors(nil); err != nil {
				return err
			}
		}
		return nil
	}

	if rows, ok := errs.([]any); ok && d.rowErrors(rows) {
		return d.update(rows, Data.SetErrors)
	}

	list, err := toErrorList(errs)
	if err != nil {
		return err
	}
	d.errors = list
	return nil
}

// Clone implements Data.
func (d *RepeatingFieldData) Clone() Data {
	clone := &RepeatingFieldData{creator: d.creator, errors: d.Errors()}
	for _, item := range d.items {
		clone.items = append(clone.items, item.Clone())
	}
	return clone
}

// rowErrors reports whether rows describes per-row errors rather than a flat
// list of errors for the list itself.
func (d *RepeatingFieldData) rowErrors(rows []any) bool {
	if len(d.items) > 0 && len(rows) == len(d.items) {
		return true
	}
	for _, row := range rows {
		switch row.(type) {
		case nil, map[string]any, []any:
			return true
		}
	}
	return false
}

func (d *RepeatingFieldData) update(value any, apply func(Data, any) error) error {
	if value == nil {
		return nil
	}
	values, err := toList(value)
	if err != nil {
		return err
	}
	if err := d.ensureItems(len(values)); err != nil {
		return err
	}
	for i, item := range values {
		if err := apply(d.items[i], item); err != nil {
			return fmt.Errorf("formdata: row %d: %w", i, err)
		}
	}
	return nil
}

func (d *RepeatingFieldData) ensureItems(n int) error {
	if len(d.items) == 0 {
		for i := 0; i < n; i++ {
			item, err := d.create()
			if err != nil {
				return err
			}
			d.items = append(d.items, item)
		}
		return nil
	}
	if len(d.items) != n {
		return fmt.Errorf("%w: %d rows, got %d values", ErrLengthMismatch, len(d.items), n)
	}
	return nil
}

func (d *RepeatingFieldData) create() (Data, error) {
	if d.creator == nil {
		return nil, errors.New("formdata: list has no row creator")
	}
	return d.creator(), nil
}
