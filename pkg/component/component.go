// Package component exposes widgets as templ components so forms can be
// embedded in templ layouts and served with templ.Handler.
package component

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/goliatone/go-formwidgets/pkg/widgets"
)

type optionsKey struct{}

// WithDisplayOptions returns a context whose display options are applied by
// every component rendered with it, after the options given to Component.
// Layouts use it to set the locale once per request.
func WithDisplayOptions(ctx context.Context, opts ...widgets.DisplayOption) context.Context {
	existing := displayOptions(ctx)
	merged := make([]widgets.DisplayOption, 0, len(existing)+len(opts))
	merged = append(merged, existing...)
	merged = append(merged, opts...)
	return context.WithValue(ctx, optionsKey{}, merged)
}

func displayOptions(ctx context.Context) []widgets.DisplayOption {
	if ctx == nil {
		return nil
	}
	opts, _ := ctx.Value(optionsKey{}).([]widgets.DisplayOption)
	return opts
}

// Component renders w with value when the component is rendered.
func Component(w widgets.Widget, value any, opts ...widgets.DisplayOption) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		all := append(append([]widgets.DisplayOption(nil), opts...), displayOptions(ctx)...)
		return widgets.Render(out, w, value, all...)
	})
}
