// Package formdata carries validation state through a widget tree.
//
// Every widget owns a Data value. Leaf widgets use FieldData (raw input,
// validated value, errors), forms use FormData (named children) and list
// fields use RepeatingFieldData (one child per row). Aggregates are plain Go
// values: map[string]any for forms and []any for lists.
package formdata
