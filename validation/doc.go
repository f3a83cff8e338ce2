// Package validation validates request input and reports failures as
// INVALID_INPUT application errors with a per-field list.
//
// # Struct Tag Validation
//
//	type RegisterForm struct {
//	    Username string `form:"username" validate:"required,max=20"`
//	    Email    string `form:"email" validate:"required,email,min=5"`
//	}
//	err := validation.Validate(form)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Pattern("api.v1_prefix", prefix, `^/`)
//	err := v.Validate()
package validation
