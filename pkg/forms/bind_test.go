package forms_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwidgets/pkg/forms"
	"github.com/goliatone/go-formwidgets/pkg/validation"
	"github.com/goliatone/go-formwidgets/pkg/widgets"
)

type member struct {
	Name string `form:"name"`
	Age  int    `form:"age"`
}

type signup struct {
	Email   string   `form:"email"`
	Agree   bool     `form:"agree"`
	Members []member `form:"members"`
}

func signupForm() *forms.Form {
	return forms.NewForm("", []widgets.Widget{
		forms.NewEmailField("email"),
		forms.NewCheckbox("agree"),
		forms.NewListField("members", []widgets.Widget{
			forms.NewTextField("name"),
			forms.NewTextField("age", forms.WithValidator(validation.Integer())),
		}),
	})
}

func TestBind(t *testing.T) {
	result := signupForm().Validate(map[string]any{
		"email": "ada@example.com",
		"agree": "on",
		"members": []any{
			map[string]any{"name": "Ada", "age": "36"},
			map[string]any{"name": "Grace", "age": "45"},
		},
	})
	if result.ContainsErrors() {
		t.Fatalf("unexpected errors %v", result.ErrorTree())
	}

	var got signup
	if err := forms.Bind(result, &got); err != nil {
		t.Fatalf("bind: %v", err)
	}
	want := signup{
		Email: "ada@example.com",
		Agree: true,
		Members: []member{
			{Name: "Ada", Age: 36},
			{Name: "Grace", Age: 45},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("bound mismatch (-want +got):\n%s", diff)
	}
}

func TestBindRejectsInvalidData(t *testing.T) {
	result := signupForm().Validate(map[string]any{"email": "nope"})
	var got signup
	if err := forms.Bind(result, &got); !errors.Is(err, forms.ErrInvalidData) {
		t.Fatalf("expected ErrInvalidData, got %v", err)
	}
}
