package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var phoneRe = regexp.MustCompile(`^\+?[\d\s\-\(\)]+$`)

func init() {
	validate = validator.New()

	// Report fields under their json names so handlers can echo the keys the
	// client actually sent.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	})

	_ = validate.RegisterValidation("httpurl", func(fl validator.FieldLevel) bool {
		v := fl.Field().String()
		return strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://")
	})
}

// Errors maps a json field name to all of its violation messages. Validation
// never fails fast: every violated field is reported in one pass.
type Errors map[string][]string

// Validate checks every rule on v and returns nil when it is clean. Indexed
// entries (slice elements) are collapsed under the parent field, so a bad
// ref_links entry yields one aggregated ref_links error.
func Validate(v any) Errors {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	out := make(Errors)
	for _, fe := range err.(validator.ValidationErrors) {
		field := collapseIndex(fe.Field())
		msg := message(fe)
		if !contains(out[field], msg) {
			out[field] = append(out[field], msg)
		}
	}
	return out
}

func collapseIndex(field string) string {
	if i := strings.IndexByte(field, '['); i > 0 {
		return field[:i]
	}
	return field
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "phone":
		return "may only contain digits, spaces and + - ( )"
	case "httpurl":
		return "every entry must start with http:// or https://"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must have at least %s entries", fe.Param())
		}
		return fmt.Sprintf("is too short: must be at least %s characters", fe.Param())
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must have at most %s entries", fe.Param())
		}
		return fmt.Sprintf("is too long: must be at most %s characters", fe.Param())
	default:
		return "is invalid"
	}
}
