package core

import (
	"reflect"
	"regexp"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	// custom validation tags & texts
	documentTag   = "document"
	documentText  = "must be a valid 11-digit document number"
	documentRegex = regexp.MustCompile(`^\d{11}$`)

	zipCodeTag   = "zipcode"
	zipCodeText  = "must be a valid 8-digit postal code"
	zipCodeRegex = regexp.MustCompile(`^\d{5}-?\d{3}$`)

	requiredTag     = "required"
	requiredWithTag = "required_with"
	requiredText    = "this field is required"
)

// Translator translates validator.FieldError messages for API consumers.
var Translator ut.Translator

// InitValidators instantiates the validator for use.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	Translator = translator
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = validate.RegisterValidation(documentTag, documentValidation)
	RegisterCustomTranslation(validate, translator, documentTag, documentText)

	_ = validate.RegisterValidation(zipCodeTag, zipCodeValidation)
	RegisterCustomTranslation(validate, translator, zipCodeTag, zipCodeText)

	RegisterCustomTranslation(validate, translator, requiredTag, requiredText, true)
	RegisterCustomTranslation(validate, translator, requiredWithTag, requiredText, true)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

func documentValidation(fl validator.FieldLevel) bool {
	return documentRegex.MatchString(fl.Field().String())
}

func zipCodeValidation(fl validator.FieldLevel) bool {
	return zipCodeRegex.MatchString(fl.Field().String())
}
