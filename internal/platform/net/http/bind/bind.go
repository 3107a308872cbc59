// Package bind decodes and validates request inputs with go-playground/validator
package bind

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// ValidatorSvc holds the shared validator and its english translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *ValidatorSvc
)

// Get returns the validator singleton, building it on first use. Messages
// name fields by their query tag, then json tag, then Go name
func Get() *ValidatorSvc {
	vOnce.Do(func() {
		loc := en.New()
		trans, _ := ut.New(loc, loc).GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(fieldName)
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		translate(v, trans, "min", "{0} must be at least {1}")
		translate(v, trans, "max", "{0} must be at most {1}")

		_ = v.RegisterValidation("filename", isFilename)
		translate(v, trans, "filename", "{0} must be a bare file name")

		vSvc = &ValidatorSvc{Validator: v, Translator: trans}
	})
	return vSvc
}

func fieldName(f reflect.StructField) string {
	for _, key := range []string{"query", "json"} {
		tag, _, _ := strings.Cut(f.Tag.Get(key), ",")
		if tag != "" && tag != "-" {
			return tag
		}
	}
	return f.Name
}

// isFilename rejects path separators, parent references and control characters
func isFilename(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "." || s == ".." || strings.ContainsAny(s, `/\`) {
		return false
	}
	return strings.IndexFunc(s, unicode.IsControl) < 0
}

// translate registers a short message for tag; {0} is the field, {1} the param
func translate(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}

// FirstViolation returns the first failing field and its translated message
func FirstViolation(err error) (field, message string) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field(), verrs[0].Translate(Get().Translator)
	}
	if err == nil {
		return "", ""
	}
	return "", err.Error()
}
