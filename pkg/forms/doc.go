// Package forms implements input widgets, forms and repeating list fields on
// top of the widgets core.
//
// Every field owns a validator and a validation context. Form.Validate runs
// the submitted values through a validation.Schema assembled from the form
// and its children and returns a context tree (formdata.FormData) that can
// be bound back to the form for redisplay:
//
//	form := forms.NewForm("signup", []widgets.Widget{
//		forms.NewTextField("username", forms.WithLabel("User name")),
//		forms.NewEmailField("email"),
//		forms.NewSubmitButton("send", forms.WithValue("Sign up")),
//	})
//	result := form.Validate(r.PostForm)
//	if result.ContainsErrors() {
//		_ = form.SetContext(result)
//		html, _ := form.Display(nil)
//		...
//	}
package forms
