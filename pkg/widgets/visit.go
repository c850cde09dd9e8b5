package widgets

// Visit walks the tree rooted at w depth first. Returning false from fn
// skips the children of the current widget.
func Visit(w Widget, fn func(Widget) bool) {
	if w == nil || !fn(w) {
		return
	}
	if c, ok := w.(Container); ok {
		for _, child := range c.ChildWidgets() {
			Visit(child, fn)
		}
	}
}
