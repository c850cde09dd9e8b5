// Package formspec loads declarative form definitions from JSON, YAML or
// HCL files and builds forms from them.
//
// A YAML definition:
//
//	forms:
//	  - name: signup
//	    url: /signup
//	    fields:
//	      - kind: email
//	        name: email
//	        label: E-mail
//	      - kind: list
//	        name: members
//	        fields:
//	          - kind: text
//	            name: name
//
// The same form in HCL:
//
//	form "signup" {
//	  url = "/signup"
//	  field "email" {
//	    kind  = "email"
//	    label = "E-mail"
//	  }
//	}
package formspec
