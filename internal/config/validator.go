package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/natsumerinchan/GPTDictEditor/internal/dictionary"
)

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	formatKeys := make([]string, 0)
	for _, definition := range dictionary.Default().Definitions() {
		formatKeys = append(formatKeys, string(definition.Key))
	}
	for _, rule := range []struct {
		tag     string
		fn      validator.Func
		message string
	}{
		{
			tag:     "format_key",
			fn:      isFormatKey,
			message: fmt.Sprintf("{0} must be auto or one of %s", strings.Join(formatKeys, ", ")),
		},
		{
			tag:     "target_format_key",
			fn:      isTargetFormatKey,
			message: fmt.Sprintf("{0} must be one of %s", strings.Join(formatKeys, ", ")),
		},
	} {
		if err := validate.RegisterValidation(rule.tag, rule.fn); err != nil {
			return nil, nil, fmt.Errorf("failed to register %s validation: %w", rule.tag, err)
		}
		if err := validate.RegisterTranslation(rule.tag, trans, func(ut ut.Translator) error {
			return ut.Add(rule.tag, rule.message, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(fe.Tag(), strings.TrimPrefix(fe.Namespace(), "Config."))
			return t
		}); err != nil {
			return nil, nil, fmt.Errorf("failed to register %s translation: %w", rule.tag, err)
		}
	}

	return validate, trans, nil
}

// isFormatKey accepts anything dictionary.Resolve understands, including auto.
func isFormatKey(fl validator.FieldLevel) bool {
	_, ok := dictionary.Resolve(fl.Field().String())
	return ok
}

func isTargetFormatKey(fl validator.FieldLevel) bool {
	key, ok := dictionary.Resolve(fl.Field().String())
	return ok && key != dictionary.Auto
}
