package validation

import (
	"fmt"
	"strings"
)

// Error keys produced by the built-in validators.
const (
	KeyEmpty          = "empty"
	KeyInvalidType    = "invalid_type"
	KeyTooShort       = "too_short"
	KeyTooLong        = "too_long"
	KeyPattern        = "pattern"
	KeyInvalidNumber  = "invalid_number"
	KeyTooLow         = "too_low"
	KeyTooBig         = "too_big"
	KeyInvalidEmail   = "invalid_email"
	KeyInvalid        = "invalid"
	KeyInvalidBoolean = "invalid_boolean"
	KeyInvalidList    = "invalid_list"
	KeyInvalidMapping = "invalid_mapping"
	KeyInvalidFields  = "invalid_fields"
	KeyInvalidItems   = "invalid_items"
)

var defaultMessages = map[string]string{
	KeyEmpty:          "Value must not be empty.",
	KeyInvalidType:    "Value must be a string.",
	KeyTooShort:       "Must be at least %d characters long.",
	KeyTooLong:        "Must be less than %d characters long.",
	KeyPattern:        "Value does not match the expected format.",
	KeyInvalidNumber:  "Please enter a number.",
	KeyTooLow:         "Number must be %d or greater.",
	KeyTooBig:         "Number must be %d or smaller.",
	KeyInvalidEmail:   "Please enter a valid email address.",
	KeyInvalid:        "Please select a valid value.",
	KeyInvalidBoolean: "Please enter a yes or no value.",
	KeyInvalidList:    "Value must be a list.",
	KeyInvalidMapping: "Value must be a mapping.",
	KeyInvalidFields:  "Some fields contain errors.",
	KeyInvalidItems:   "Some items contain errors.",
}

// Message formats the default English message for key.
func Message(key string, args ...any) string {
	format, ok := defaultMessages[key]
	if !ok {
		return key
	}
	if len(args) == 0 || !strings.Contains(format, "%") {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// DefaultMessages returns a copy of the built-in message catalog, useful to
// seed translation files.
func DefaultMessages() map[string]string {
	out := make(map[string]string, len(defaultMessages))
	for key, value := range defaultMessages {
		out[key] = value
	}
	return out
}
