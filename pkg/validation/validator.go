package validation

// Validator converts a raw value into its validated form.
type Validator interface {
	Process(value any) (any, error)
}

// Reverter is implemented by validators that can turn a validated value back
// into its display form ("42" for 42).
type Reverter interface {
	RevertConversion(value any) any
}

// RequiredReporter is implemented by validators that reject empty input.
type RequiredReporter interface {
	IsRequired() bool
}

// IsRequired reports whether v rejects empty input. Validators that do not
// implement RequiredReporter are treated as optional.
func IsRequired(v Validator) bool {
	if reporter, ok := v.(RequiredReporter); ok {
		return reporter.IsRequired()
	}
	return false
}

// Revert converts value back into display form when v supports it and
// returns value unchanged otherwise.
func Revert(v Validator, value any) any {
	if reverter, ok := v.(Reverter); ok && value != nil {
		return reverter.RevertConversion(value)
	}
	return value
}

// Funcs adapts plain functions to the Validator interfaces.
type Funcs struct {
	ProcessFn func(value any) (any, error)
	RevertFn  func(value any) any
	Required  bool
}

// Process implements Validator. A nil ProcessFn passes the value through.
func (f Funcs) Process(value any) (any, error) {
	if f.ProcessFn == nil {
		return value, nil
	}
	return f.ProcessFn(value)
}

// RevertConversion implements Reverter.
func (f Funcs) RevertConversion(value any) any {
	if f.RevertFn == nil {
		return value
	}
	return f.RevertFn(value)
}

// IsRequired implements RequiredReporter.
func (f Funcs) IsRequired() bool { return f.Required }

// Option configures the scalar validators (String, Email, Integer, OneOf).
type Option func(*options)

type options struct {
	required  bool
	minLength int
	maxLength int
	pattern   string
	min       *int64
	max       *int64
}

func newOptions(defaults options, opts []Option) options {
	cfg := defaults
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Required toggles whether empty input is rejected.
func Required(required bool) Option {
	return func(o *options) { o.required = required }
}

// MinLength rejects strings shorter than n characters.
func MinLength(n int) Option {
	return func(o *options) { o.minLength = n }
}

// MaxLength rejects strings longer than n characters.
func MaxLength(n int) Option {
	return func(o *options) { o.maxLength = n }
}

// Pattern rejects strings that do not match the regular expression.
func Pattern(expr string) Option {
	return func(o *options) { o.pattern = expr }
}

// Min rejects numbers lower than n.
func Min(n int64) Option {
	return func(o *options) { o.min = &n }
}

// Max rejects numbers greater than n.
func Max(n int64) Option {
	return func(o *options) { o.max = &n }
}

func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []string:
		return len(v) == 0
	case []any:
		return len(v) == 0
	}
	return false
}
