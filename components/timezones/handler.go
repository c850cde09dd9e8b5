package timezones

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/angelofallars/htmx-go"
	"github.com/bytedance/sonic"

	"github.com/goliatone/go-formwidgets/pkg/forms"
)

// DefaultRoutePath is where Mount installs the search handler.
const DefaultRoutePath = "/api/timezones"

// HTTPError lets a guard pick the response status.
type HTTPError interface {
	error
	StatusCode() int
}

// StatusError is an HTTPError with a fixed code.
type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type optionsResponse struct {
	Data []option `json:"data"`
}

type option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Mux is the part of a router Mount needs. chi.Router and http.ServeMux
// both satisfy it.
type Mux interface {
	Handle(pattern string, h http.Handler)
}

// Mount installs the search handler on mux at DefaultRoutePath.
func Mount(mux Mux, fns ...OptionFn) {
	mux.Handle(DefaultRoutePath, NewHandler(fns...))
}

// NewHandler answers zone searches. htmx requests get <option> elements to
// swap into a select, other requests get {"data":[{"value","label"}]}.
func NewHandler(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}

		zones, err := opts.zones()
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		query := r.URL.Query().Get(opts.SearchParam)
		limit := parseInt(r.URL.Query().Get(opts.LimitParam))
		choices := Choices(Search(zones, query, limit, opts))

		if htmx.IsHTMX(r) {
			c := optionList(choices, r.URL.Query().Get("selected"))
			if r.Method == http.MethodHead {
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				return
			}
			templ.Handler(c).ServeHTTP(w, r)
			return
		}

		resp := optionsResponse{Data: make([]option, 0, len(choices))}
		for _, c := range choices {
			resp.Data = append(resp.Data, option{Value: c.Value, Label: c.Label})
		}
		payload, err := sonic.ConfigStd.Marshal(resp)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}
		_, _ = w.Write(payload)
	})
}

func optionList(choices []forms.SelectOption, selected string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		for _, c := range choices {
			attr := ""
			if c.Value == selected {
				attr = " selected"
			}
			line := `<option value="` + templ.EscapeString(c.Value) + `"` + attr + `>` +
				templ.EscapeString(c.Label) + "</option>\n"
			if _, err := io.WriteString(w, line); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeGuardError(w http.ResponseWriter, err error) {
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode() > 0 {
		code = httpErr.StatusCode()
	}
	http.Error(w, http.StatusText(code), code)
}

func parseInt(raw string) int {
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
