// Package render holds the pieces shared by every widget render: the named
// template engine registry, hidden form fields, css class joining and the
// markup sanitizer used for HTML labels.
package render
