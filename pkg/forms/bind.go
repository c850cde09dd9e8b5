package forms

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"

	"github.com/go-playground/form/v4"

	"github.com/goliatone/go-formwidgets/pkg/formdata"
)

// ErrInvalidData is returned by Bind for contexts holding errors.
var ErrInvalidData = errors.New("forms: context contains validation errors")

var binder = func() *form.Decoder {
	decoder := form.NewDecoder()
	decoder.SetTagName("form")
	return decoder
}()

// Bind decodes the validated values of data into dst, a pointer to a struct
// whose fields are matched through `form` tags.
func Bind(data formdata.Data, dst any) error {
	if data.ContainsErrors() {
		return ErrInvalidData
	}
	values := url.Values{}
	flatten(values, "", data.Value())
	if err := binder.Decode(dst, values); err != nil {
		return fmt.Errorf("forms: bind: %w", err)
	}
	return nil
}

// flatten encodes nested values in the notation of go-playground/form:
// "parent.child" for maps and "list[0].child" for rows.
func flatten(out url.Values, prefix string, value any) {
	switch v := value.(type) {
	case nil:
		return
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			name := key
			if prefix != "" {
				name = prefix + "." + key
			}
			flatten(out, name, v[key])
		}
	case []any:
		for i, item := range v {
			flatten(out, prefix+"["+strconv.Itoa(i)+"]", item)
		}
	case []string:
		for _, item := range v {
			out.Add(prefix, item)
		}
	default:
		out.Add(prefix, fmt.Sprint(v))
	}
}
