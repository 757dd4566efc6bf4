package validators

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MKhiriev/go-crm-auth/models"
)

// CredentialsValidator validates login, registration and password change
// payloads.
type CredentialsValidator struct {
	validate *validator.Validate
}

// NewCredentialsValidator builds a validator with the username,
// strong_password and utf8 rules registered.
func NewCredentialsValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	// registration fails only on programmer error (empty tag or nil func)
	_ = v.RegisterValidation(tagUsername, validateUsername)
	_ = v.RegisterValidation(tagStrongPassword, validateStrongPassword)
	_ = v.RegisterValidation(tagValidUTF8, validateUTF8)

	return &CredentialsValidator{validate: v}
}

// Validate checks obj; when fields are given only those struct fields
// (Go names) are validated.
func (v *CredentialsValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch obj.(type) {
	case models.Credentials, *models.Credentials,
		models.RegisterRequest, *models.RegisterRequest,
		models.ChangePasswordRequest, *models.ChangePasswordRequest:
	default:
		return ErrUnsupportedType
	}

	var err error
	if len(fields) > 0 {
		err = v.validate.StructPartialCtx(ctx, obj, fields...)
	} else {
		err = v.validate.StructCtx(ctx, obj)
	}

	return toValidationError(err)
}

func toValidationError(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	ve := &ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		if _, seen := ve.Fields[fe.Field()]; !seen {
			ve.Fields[fe.Field()] = messageFor(fe)
		}
	}

	return ve
}
