package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidationError รายละเอียด field ที่ไม่ผ่าน validation
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateStruct ตรวจสอบ struct ตาม validate tags
func ValidateStruct(s any) error {
	return validate.Struct(s)
}

// GetValidationErrors แปลง validator error เป็น field-level messages
func GetValidationErrors(err error) []ValidationError {
	var errors []ValidationError

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []ValidationError{{Field: "request", Message: err.Error()}}
	}

	for _, fieldErr := range validationErrors {
		errors = append(errors, ValidationError{
			Field:   strings.ToLower(fieldErr.Field()),
			Message: validationMessage(fieldErr),
		})
	}

	return errors
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return "Value is below the minimum of " + fe.Param()
	case "max":
		return "Value exceeds the maximum of " + fe.Param()
	case "uuid":
		return "Must be a valid UUID"
	case "oneof":
		return "Must be one of: " + fe.Param()
	default:
		return "Invalid value"
	}
}
