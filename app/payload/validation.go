// Package payload holds the request and response bodies exchanged with API
// clients, together with their validation rules.
package payload

import (
	"errors"
	"fmt"
	"html"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

var (
	validate = newValidator()
	policy   = bluemonday.StrictPolicy()
)

func newValidator() *validator.Validate {
	v := validator.New()
	// report json names so error maps line up with request bodies
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldErrors maps a json field name to a human readable message.
type FieldErrors map[string]string

// Describe turns a validation error into FieldErrors. It returns nil when
// err did not come from the validator.
func Describe(err error) FieldErrors {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed on the %q rule", fe.Tag())
	}
}

// sanitize strips markup. Entities escaped by the policy are decoded again
// so the stored text matches what the client sent.
func sanitize(s string) string {
	return strings.TrimSpace(html.UnescapeString(policy.Sanitize(s)))
}
