// Package timezones provides a select field over the IANA timezones, a
// validator that accepts only known zones and a search handler that answers
// htmx requests with <option> markup and other requests with JSON.
//
// The zone list is embedded from data/iana_timezones.txt. Register adds the
// "timezone" kind to a form definition registry:
//
//	reg := formspec.NewRegistry()
//	timezones.Register(reg)
package timezones
