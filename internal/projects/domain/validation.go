package domain

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a JSON field name to the reasons it was rejected.
type FieldErrors map[string][]string

func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func payloadValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// ValidatePayload checks p against the project schema and returns the
// normalized payload, or the per-field failures. Empty entries inside
// GithubLinks or Tags are not filtered here.
func ValidatePayload(p ProjectPayload) (*ProjectPayload, FieldErrors) {
	err := payloadValidator().Struct(p)
	if err == nil {
		out := p
		return &out, nil
	}

	fe := FieldErrors{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fe.Add("_errors", err.Error())
		return nil, fe
	}
	for _, v := range verrs {
		fe.Add(v.Field(), messageFor(v))
	}
	return nil, fe
}

func messageFor(v validator.FieldError) string {
	switch v.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be a valid URL"
	case "uuid":
		return "must be a valid project id"
	default:
		return "failed " + v.Tag() + " validation"
	}
}
