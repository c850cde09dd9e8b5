package validation

import (
	"errors"
	"fmt"
	"strings"
)

// Translator resolves message keys for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function to Translator.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

// Translate implements Translator.
func (f TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return f(locale, key, args...)
}

// MissingTranslationHandler decides the message shown when a translation is
// missing. fallback is the default English message.
type MissingTranslationHandler func(locale, key, fallback string, err error) string

// ErrMissingTranslator is passed to MissingTranslationHandler when no
// Translator is configured.
var ErrMissingTranslator = errors.New("validation: translator not configured")

// MessagePrefix namespaces validation keys inside translation catalogs.
const MessagePrefix = "validation."

// Localize returns the user facing message for err. Leaf *Error values are
// looked up as MessagePrefix+Key; anything else falls back to err.Error().
func Localize(err error, locale string, t Translator, onMissing MissingTranslationHandler) string {
	if err == nil {
		return ""
	}
	var verr *Error
	if !errors.As(err, &verr) || verr.IsCompound() {
		return err.Error()
	}

	fallback := verr.Message
	if t == nil {
		if onMissing != nil {
			return onMissing(locale, verr.Key, fallback, ErrMissingTranslator)
		}
		return fallback
	}

	msg, terr := t.Translate(locale, MessagePrefix+verr.Key, verr.Args...)
	if terr == nil && strings.TrimSpace(msg) != "" {
		return msg
	}
	if onMissing != nil {
		return onMissing(locale, verr.Key, fallback, terr)
	}
	return fallback
}

// MapTranslator is a Translator backed by locale -> key -> message maps.
// Messages may contain fmt verbs that consume the error arguments.
type MapTranslator map[string]map[string]string

// Translate implements Translator.
func (m MapTranslator) Translate(locale, key string, args ...any) (string, error) {
	catalog, ok := m[locale]
	if !ok {
		return "", errMissingMessage
	}
	format, ok := catalog[key]
	if !ok {
		return "", errMissingMessage
	}
	if len(args) == 0 || !strings.Contains(format, "%") {
		return format, nil
	}
	return fmt.Sprintf(format, args...), nil
}

var errMissingMessage = errors.New("validation: message not found")
