// Package validator wraps go-playground struct validation behind a
// single call that returns field -> failed-tag pairs for the response
// envelope's details object.
package validator

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// Validate returns nil when v passes its `validate` tags.
func Validate(v any) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)
	for _, fieldErr := range err.(validator.ValidationErrors) {
		fields[fieldErr.Field()] = fieldErr.Tag()
	}
	return fields
}
