// Package widgets provides the rendering core shared by every form widget.
//
// A Widget exposes its template variables and HTML attributes; Render turns
// them into markup through a template engine looked up by name in a
// render.Registry. The default registry holds a pongo2 engine loaded with the
// templates embedded in this package. Display options override template
// variables or add HTML attributes for a single render.
package widgets
