package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MKhiriev/go-movie-favorites/models"
)

const (
	FieldUsername = "username"
	FieldPassword = "password"
	FieldEmail    = "email"
	FieldBody     = "body"
)

// UserValidator validates account requests with the rules declared in the
// `validate` struct tags of the request models.
type UserValidator struct {
	validate *validator.Validate
}

// NewUserValidator returns a Validator for models.RegisterRequest and
// models.UpdateUserRequest. Field errors are reported under the JSON names
// of the failing fields.
func NewUserValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	// bcrypt rejects input above 72 bytes; the builtin max counts runes.
	if err := v.RegisterValidation("maxbytes", maxBytes); err != nil {
		panic(err)
	}

	return &UserValidator{validate: v}
}

// Validate accepts both value and pointer forms of the request models.
// When fields are given, only those struct fields (by Go name) are checked.
//
// Returns *ValidationError when any rule fails and ErrUnsupportedType for
// any other input.
func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateStruct(value, fields...)
	case *models.RegisterRequest:
		return v.validateStruct(*value, fields...)

	case models.UpdateUserRequest:
		return v.validateUpdate(value, fields...)
	case *models.UpdateUserRequest:
		return v.validateUpdate(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *UserValidator) validateUpdate(request models.UpdateUserRequest, fields ...string) error {
	if request.IsEmpty() {
		return &ValidationError{Fields: map[string]string{FieldBody: ErrNoFieldsToUpdate.Error()}}
	}
	return v.validateStruct(request, fields...)
}

func (v *UserValidator) validateStruct(obj any, fields ...string) error {
	var err error
	if len(fields) > 0 {
		err = v.validate.StructPartial(obj, fields...)
	} else {
		err = v.validate.Struct(obj)
	}
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return fmt.Errorf("validation could not run: %w", err)
	}

	result := &ValidationError{Fields: make(map[string]string, len(fieldErrors))}
	for _, fe := range fieldErrors {
		result.Fields[fe.Field()] = describe(fe)
	}

	return result
}

// describe turns a failed rule into a short, client-facing message.
func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	case "alphanum":
		return "must contain only letters and digits"
	case "email":
		return "must be a valid email address"
	case "maxbytes":
		return fmt.Sprintf("must be at most %s bytes long", fe.Param())
	default:
		return fmt.Sprintf("failed the %q rule", fe.Tag())
	}
}

// maxBytes checks the encoded length of a string field against the tag
// parameter.
func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}

	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}
	return len(field.String()) <= limit
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}
