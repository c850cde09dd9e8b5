// Package openapi builds forms from the JSON request bodies of OpenAPI 3
// operations. Documents are parsed with kin-openapi; every property of the
// request schema becomes a child field whose kind is picked by a priority
// matcher registry (see KindRegistry).
//
//	doc, err := openapi.LoadDocument(ctx, raw)
//	if err != nil {
//		return err
//	}
//	form, err := openapi.BuildForm(doc, "createUser")
package openapi
