package validation

import "fmt"

// StringValidator accepts strings, optionally bounded in length or matched
// against a pattern. Email is a StringValidator with a format check.
type StringValidator struct {
	opts       options
	format     string
	formatKey  string
	constraint *constraint
}

// String returns a required string validator unless Required(false) is given.
func String(opts ...Option) *StringValidator {
	return newString(newOptions(options{required: true}, opts), "", "")
}

// Email returns a string validator that also requires a well-formed e-mail
// address.
func Email(opts ...Option) *StringValidator {
	return newString(newOptions(options{required: true}, opts), "email", KeyInvalidEmail)
}

func newString(cfg options, format, formatKey string) *StringValidator {
	doc := map[string]any{"type": "string"}
	if cfg.minLength > 0 {
		doc["minLength"] = cfg.minLength
	}
	if cfg.maxLength > 0 {
		doc["maxLength"] = cfg.maxLength
	}
	if cfg.pattern != "" {
		doc["pattern"] = cfg.pattern
	}
	if format != "" {
		doc["format"] = format
	}
	return &StringValidator{
		opts:       cfg,
		format:     format,
		formatKey:  formatKey,
		constraint: newConstraint(doc),
	}
}

// Process implements Validator. Empty input yields "" for optional
// validators.
func (v *StringValidator) Process(value any) (any, error) {
	if isEmpty(value) {
		if v.opts.required {
			return nil, NewError(KeyEmpty, value)
		}
		return "", nil
	}

	var text string
	switch typed := value.(type) {
	case string:
		text = typed
	case []string:
		text = typed[len(typed)-1]
	case fmt.Stringer:
		text = typed.String()
	default:
		return nil, NewError(KeyInvalidType, value)
	}

	keyword, err := v.constraint.violation(text)
	if err != nil {
		return nil, err
	}
	switch keyword {
	case "":
		return text, nil
	case "minLength":
		return nil, NewError(KeyTooShort, value, v.opts.minLength)
	case "maxLength":
		return nil, NewError(KeyTooLong, value, v.opts.maxLength)
	case "pattern":
		return nil, NewError(KeyPattern, value)
	case "format":
		return nil, NewError(v.formatKey, value)
	default:
		return nil, NewError(KeyInvalidType, value)
	}
}

// RevertConversion implements Reverter.
func (v *StringValidator) RevertConversion(value any) any {
	return value
}

// IsRequired implements RequiredReporter.
func (v *StringValidator) IsRequired() bool {
	return v.opts.required
}
