// Package bind validates request inputs and maps failures onto ErrorCodeValidation
package bind

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	perr "github.com/Vagvedi/gitrekt/internal/platform/errors"
	"github.com/Vagvedi/gitrekt/internal/platform/logger"
)

// ValidatorSvc holds the validator and its english translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *ValidatorSvc
)

// Get returns the validator singleton, messages use json tag names
func Get() *ValidatorSvc {
	vOnce.Do(func() {
		enLoc := en.New()
		trans, _ := ut.New(enLoc, enLoc).GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		translate(v, trans, "max", "{0} must be at most {1} characters")
		translate(v, trans, "required", "{0} is required")
		_ = v.RegisterValidation("ghlogin", func(fl validator.FieldLevel) bool {
			return GHLogin(fl.Field().String())
		})
		translate(v, trans, "ghlogin", "{0} must be a valid GitHub username")

		vSvc = &ValidatorSvc{Validator: v, Translator: trans}
	})
	return vSvc
}

// translate registers a short message, {0} is the field and {1} the tag param
func translate(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}

// ghLoginRe matches a GitHub login: alphanumeric ends, dashes inside, 39 chars max
var ghLoginRe = regexp.MustCompile(`^[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,37}[a-zA-Z0-9])?$`)

// GHLogin reports whether s is a syntactically valid GitHub login
func GHLogin(s string) bool { return ghLoginRe.MatchString(s) }

// Struct validates v, the first failing field becomes a Validation error naming it
func Struct(v any) error {
	err := Get().Validator.Struct(v)
	if err == nil {
		return nil
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		logger.Get().Error().Err(inv).Msg("validator internal error")
		return perr.New(perr.ErrorCodeValidation, "validation error")
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return perr.WithField(perr.New(perr.ErrorCodeValidation, fe.Translate(Get().Translator)), fe.Field())
	}
	return perr.Wrap(err, perr.ErrorCodeValidation, "validation error")
}
