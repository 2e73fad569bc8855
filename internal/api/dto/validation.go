package dto

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/devconnector/api/pkg/util"
)

var validate = newValidator()

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	})
	return v
}

// ParseDate accepts RFC 3339 timestamps and plain calendar dates.
func ParseDate(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, strings.TrimSpace(raw))
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// Validate checks req against its validate tags. Failures become a 400 whose
// errors list carries the msg tag of every offending field.
func Validate(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewInternalError(err)
	}

	typ := reflect.TypeOf(req)
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}

	out := make([]apperrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg := fe.Error()
		if field, ok := typ.FieldByName(fe.StructField()); ok {
			if tagged := field.Tag.Get("msg"); tagged != "" {
				msg = tagged
			}
		}
		out = append(out, apperrors.FieldError{Msg: msg, Param: fe.Field()})
	}
	return apperrors.NewValidationError(out...)
}
