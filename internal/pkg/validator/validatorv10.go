package validator

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/shandysiswandi/gopost/internal/pkg/strcase"
)

// ErrTranslatorNotFound indicates the English translator could not be loaded.
var ErrTranslatorNotFound = errors.New("validator: translator not found")

// rule is a custom tag with its English message; {0} is the field name.
type rule struct {
	tag     string
	message string
	check   validator.Func
}

// local@domain.tld, TLD of 2 to 4 letters
var reSimpleEmail = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,4}$`)

var rules = []rule{
	{
		tag:     "simple_email",
		message: "{0} format incorrect",
		check: func(fl validator.FieldLevel) bool {
			s, ok := fl.Field().Interface().(string)
			return ok && reSimpleEmail.MatchString(s)
		},
	},
}

// FieldErrors maps lowerCamel field names to English messages. Errors from
// Var are keyed by the failing tag instead.
type FieldErrors map[string]string

// Error lists the failures in field order, e.g. "email: Email format incorrect".
func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return "validation error"
	}

	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return strings.Join(parts, "; ")
}

// V10 implements Validator with go-playground/validator and English messages.
type V10 struct {
	validate *validator.Validate
	trans    ut.Translator
}

// NewV10 registers the default English translations and the custom rules.
func NewV10() (*V10, error) {
	lang := en.New()
	trans, ok := ut.New(lang, lang).GetTranslator("en")
	if !ok {
		return nil, ErrTranslatorNotFound
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, fmt.Errorf("validator: default translations: %w", err)
	}

	for _, r := range rules {
		if err := register(validate, trans, r); err != nil {
			return nil, fmt.Errorf("validator: rule %s: %w", r.tag, err)
		}
	}

	return &V10{validate: validate, trans: trans}, nil
}

func register(validate *validator.Validate, trans ut.Translator, r rule) error {
	if err := validate.RegisterValidation(r.tag, r.check); err != nil {
		return err
	}

	return validate.RegisterTranslation(r.tag, trans,
		func(t ut.Translator) error { return t.Add(r.tag, r.message, false) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, err := t.T(fe.Tag(), fe.Field())
			if err != nil {
				return fe.Error()
			}
			return msg
		},
	)
}

func (v *V10) Validate(data any) error {
	return v.explain(v.validate.Struct(data))
}

// Var checks a single value against tag, e.g. "required" or "max=255".
func (v *V10) Var(field any, tag string) error {
	return v.explain(v.validate.Var(field, tag))
}

func (v *V10) explain(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		key := strcase.ToLowerCamel(fe.Field())
		if key == "" {
			key = fe.Tag()
		}
		out[key] = fe.Translate(v.trans)
	}
	return out
}
