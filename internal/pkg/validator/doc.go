// Package validator checks request and domain structs against their
// `validate` tags. Use cases receive a Validator; V10 is the only
// implementation.
package validator

// Validator validates whole structs (tag driven) and single values.
type Validator interface {
	Validate(data any) error
	Var(field any, tag string) error
}
