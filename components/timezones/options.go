package timezones

import "net/http"

// EmptySearchMode controls what an empty query returns.
type EmptySearchMode string

const (
	// EmptySearchNone answers an empty query with no options.
	EmptySearchNone EmptySearchMode = "none"
	// EmptySearchTop answers an empty query with the first zones.
	EmptySearchTop EmptySearchMode = "top"
)

// Options configures the field and the search handler.
type Options struct {
	SearchParam     string
	LimitParam      string
	DefaultLimit    int
	MaxLimit        int
	EmptySearchMode EmptySearchMode
	// Guard runs before every search. A non nil error rejects the request
	// with its StatusCode, or 403.
	Guard func(*http.Request) error
	// Zones replaces the embedded list.
	Zones []string
}

// OptionFn mutates Options.
type OptionFn func(*Options)

// DefaultOptions returns the defaults used when no OptionFn is given.
func DefaultOptions() Options {
	return Options{
		SearchParam:     "q",
		LimitParam:      "limit",
		DefaultLimit:    50,
		MaxLimit:        200,
		EmptySearchMode: EmptySearchNone,
	}
}

// NewOptions applies fns to the defaults and repairs invalid values.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn != nil {
			fn(&opts)
		}
	}
	defaults := DefaultOptions()
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = defaults.DefaultLimit
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = defaults.MaxLimit
	}
	if opts.EmptySearchMode == "" {
		opts.EmptySearchMode = defaults.EmptySearchMode
	}
	if opts.SearchParam == "" {
		opts.SearchParam = defaults.SearchParam
	}
	if opts.LimitParam == "" {
		opts.LimitParam = defaults.LimitParam
	}
	if opts.Zones != nil {
		opts.Zones = append([]string(nil), opts.Zones...)
	}
	return opts
}

// zones returns the configured zones or the embedded list.
func (o Options) zones() ([]string, error) {
	if o.Zones != nil {
		return o.Zones, nil
	}
	return DefaultZones()
}

// WithSearchParam renames the query parameter.
func WithSearchParam(name string) OptionFn {
	return func(o *Options) { o.SearchParam = name }
}

// WithLimitParam renames the limit parameter.
func WithLimitParam(name string) OptionFn {
	return func(o *Options) { o.LimitParam = name }
}

// WithDefaultLimit sets the number of options returned without a limit.
func WithDefaultLimit(limit int) OptionFn {
	return func(o *Options) { o.DefaultLimit = limit }
}

// WithMaxLimit caps the limit a client can ask for.
func WithMaxLimit(limit int) OptionFn {
	return func(o *Options) { o.MaxLimit = limit }
}

// WithEmptySearchMode sets the answer to an empty query.
func WithEmptySearchMode(mode EmptySearchMode) OptionFn {
	return func(o *Options) { o.EmptySearchMode = mode }
}

// WithGuard installs a request guard on the search handler.
func WithGuard(guard func(*http.Request) error) OptionFn {
	return func(o *Options) { o.Guard = guard }
}

// WithZones replaces the embedded zone list.
func WithZones(zones []string) OptionFn {
	return func(o *Options) { o.Zones = zones }
}

func clampLimit(limit int, opts Options) int {
	if limit < 0 {
		return 0
	}
	if limit == 0 {
		limit = opts.DefaultLimit
	}
	if opts.MaxLimit > 0 && limit > opts.MaxLimit {
		return opts.MaxLimit
	}
	return limit
}
