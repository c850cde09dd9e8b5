// Package validation converts and checks submitted form values.
//
// A Validator turns raw input (usually strings from a request) into typed
// values or returns an *Error describing why it could not. Range, length,
// enum and format constraints are expressed as JSON Schema fragments and
// evaluated with santhosh-tekuri/jsonschema; conversion happens in Go before
// the constraint check. Schema combines named validators for a whole form and
// ForEach applies one validator to every item of a list.
package validation
