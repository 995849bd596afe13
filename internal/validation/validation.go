// Package validation configures the request validator shared by the
// HTTP handlers.
package validation

import (
	"regexp"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/pharmatill/terminal-api/pkg/apperror"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{6,15}$`)

// New returns a configured validator with the custom phone rule
// registered.
func New() *validatorv10.Validate {
	v := validatorv10.New()
	_ = v.RegisterValidation("phone", func(fl validatorv10.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return v
}

// BindAndValidate binds the JSON body into out and runs validation.
// Failures are reported as a field-scoped AppError so the terminal can
// render them next to the offending input; no remote call is made.
func BindAndValidate(c *gin.Context, out interface{}, v *validatorv10.Validate) error {
	if err := c.ShouldBindJSON(out); err != nil {
		return apperror.NewBadRequestError("Invalid request body: " + err.Error())
	}
	if err := v.Struct(out); err != nil {
		return apperror.NewValidationError(toFieldErrors(err))
	}
	return nil
}

func toFieldErrors(err error) []apperror.FieldError {
	ve, ok := err.(validatorv10.ValidationErrors)
	if !ok {
		return []apperror.FieldError{{Field: "request", Message: err.Error()}}
	}
	out := make([]apperror.FieldError, 0, len(ve))
	for _, fe := range ve {
		msg := "is invalid"
		switch fe.Tag() {
		case "required":
			msg = "is required"
		case "phone":
			msg = "must be a valid phone number"
		case "min":
			msg = "is too small"
		case "email":
			msg = "must be a valid email address"
		}
		out = append(out, apperror.FieldError{Field: fe.Field(), Message: msg})
	}
	return out
}
