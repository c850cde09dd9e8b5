package validation

import (
	"fmt"
	"strings"
)

var (
	defaultTrueish = []string{"true", "1", "t", "y", "yes", "on"}
	defaultFalsish = []string{"false", "0", "f", "n", "no", "off", ""}
)

// BooleanValidator maps truthy and falsy spellings onto bool. It never
// rejects empty input: a missing checkbox is false.
type BooleanValidator struct {
	trueish map[string]struct{}
	falsish map[string]struct{}
}

// Boolean returns a validator using the default spellings.
func Boolean() *BooleanValidator {
	v := &BooleanValidator{
		trueish: make(map[string]struct{}),
		falsish: make(map[string]struct{}),
	}
	for _, s := range defaultTrueish {
		v.trueish[s] = struct{}{}
	}
	for _, s := range defaultFalsish {
		v.falsish[s] = struct{}{}
	}
	return v
}

// BooleanCheckbox returns a Boolean validator that additionally treats
// optionValue (the value attribute of a checkbox or radio button) as true.
func BooleanCheckbox(optionValue any) *BooleanValidator {
	v := Boolean()
	if optionValue != nil {
		key := normalizeBool(optionValue)
		v.trueish[key] = struct{}{}
		delete(v.falsish, key)
	}
	return v
}

// Process implements Validator.
func (v *BooleanValidator) Process(value any) (any, error) {
	switch typed := value.(type) {
	case nil:
		return false, nil
	case bool:
		return typed, nil
	case []string:
		if len(typed) == 0 {
			return false, nil
		}
		value = typed[len(typed)-1]
	}

	key := normalizeBool(value)
	if _, ok := v.trueish[key]; ok {
		return true, nil
	}
	if _, ok := v.falsish[key]; ok {
		return false, nil
	}
	return nil, NewError(KeyInvalidBoolean, value)
}

// RevertConversion implements Reverter. Unknown spellings are reported as
// unchecked.
func (v *BooleanValidator) RevertConversion(value any) any {
	converted, err := v.Process(value)
	if err != nil {
		return false
	}
	return converted
}

// IsRequired implements RequiredReporter.
func (v *BooleanValidator) IsRequired() bool {
	return false
}

func normalizeBool(value any) string {
	return strings.ToLower(strings.TrimSpace(fmt.Sprint(value)))
}
