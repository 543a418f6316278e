package settings

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// hhmmPattern is the strict 24-hour HH:MM form accepted for every time setting
var hhmmPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

const hhmmTag = "hhmm"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their persisted JSON key
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation(hhmmTag, func(fl validator.FieldLevel) bool {
		s, ok := fl.Field().Interface().(string)
		return ok && ValidTime(s)
	})

	return v
}

// ValidTime reports whether s is a strict 24-hour HH:MM time.
func ValidTime(s string) bool {
	return hhmmPattern.MatchString(s)
}

// invalidFields validates settings and returns the JSON keys of failing fields.
func invalidFields(s interface{}) []string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fields
}
