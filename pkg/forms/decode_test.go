package forms_test

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwidgets/pkg/forms"
)

func TestDecodeParameters(t *testing.T) {
	tests := []struct {
		name   string
		params url.Values
		want   map[string]any
	}{
		{
			name:   "flat",
			params: url.Values{"name": {"Ada"}, "email": {"ada@example.com"}},
			want:   map[string]any{"name": "Ada", "email": "ada@example.com"},
		},
		{
			name:   "nested form",
			params: url.Values{"team.name": {"core"}, "team.lead.email": {"a@b.c"}},
			want: map[string]any{"team": map[string]any{
				"name": "core",
				"lead": map[string]any{"email": "a@b.c"},
			}},
		},
		{
			name: "list rows ordered by index",
			params: url.Values{
				"members-2.email": {"b@x.y"},
				"members-1.email": {"a@x.y"},
				"members-1.name":  {"A"},
			},
			want: map[string]any{"members": []any{
				map[string]any{"email": "a@x.y", "name": "A"},
				map[string]any{"email": "b@x.y"},
			}},
		},
		{
			name:   "gaps are dropped",
			params: url.Values{"rows-1.id": {"1"}, "rows-5.id": {"5"}},
			want: map[string]any{"rows": []any{
				map[string]any{"id": "1"},
				map[string]any{"id": "5"},
			}},
		},
		{
			name:   "multiple values",
			params: url.Values{"tags": {"a", "b"}},
			want:   map[string]any{"tags": []string{"a", "b"}},
		},
		{
			name:   "dash without index",
			params: url.Values{"first-name": {"Ada"}},
			want:   map[string]any{"first-name": "Ada"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := forms.DecodeParameters(tt.params)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("decoded mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeParametersConflicts(t *testing.T) {
	tests := []url.Values{
		{"team": {"x"}, "team.name": {"y"}},
		{"rows-1": {"x"}, "rows-1.id": {"y"}},
		{"rows": {"x"}, "rows-1.id": {"y"}},
		{".name": {"x"}},
	}
	for _, params := range tests {
		if _, err := forms.DecodeParameters(params); err == nil {
			t.Fatalf("expected conflict error for %v", params)
		}
	}
}
