// Package validatex validates request payloads and reports failures as
// errx validation errors keyed by JSON field name.
package validatex

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riderota/core/pkg/errx"
	"github.com/riderota/core/pkg/kernel"
)

var ErrRegistry = errx.NewRegistry("REQUEST")

var CodeInvalid = ErrRegistry.Register("INVALID", errx.TypeValidation, http.StatusBadRequest, "Request validation failed")

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("invitable_role", func(fl validator.FieldLevel) bool {
		role, ok := kernel.ParseRole(fl.Field().String())
		return ok && role.IsInvitable()
	})

	return &Validator{validate: v}
}

// Struct validates s. The returned error carries a "fields" detail mapping
// each offending JSON field to a message.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errx.Wrap(err, "invalid request payload", errx.TypeValidation)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = message(fe)
	}
	return ErrRegistry.New(CodeInvalid).WithDetail("fields", fields)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", fe.Param())
	case "invitable_role":
		return "must be one of ADMIN, EMPLOYEE, DRIVER"
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
