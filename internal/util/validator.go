package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// credit: https://github.com/go-playground/validator/issues/559#issuecomment-976459959

const unknownField = "Unknown"

type ApiError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func msgForTag(fe validator.FieldError, field string) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%v is required", field)
	case "email":
		return "Invalid email"
	case "numeric":
		return fmt.Sprintf("%v must be numeric", field)
	case "min":
		return fmt.Sprintf("%v must be at least %v characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%v must be at most %v characters", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%v must be greater than or equal to %v", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%v must be less than or equal to %v", field, fe.Param())
	case "cmin":
		return fmt.Sprintf("%v must be at least %v characters, not counting surrounding spaces", field, fe.Param())
	case "cmax":
		return fmt.Sprintf("%v must be at most %v characters, not counting surrounding spaces", field, fe.Param())
	case "strNotEmpty":
		return fmt.Sprintf("%v must not be empty or contain only whitespace characters", field)
	case "oneof":
		return fmt.Sprintf("%v must be one of: %v", field, fe.Param())
	case "uuid", "uuid4":
		return fmt.Sprintf("%v must be a valid id", field)
	}

	return fe.Error()
}

/*
GenerateErrorMessages turns an error into the list carried by the "errors"
field of a failed response.

Validation errors produce one entry per failing field:

	[
	  {
		"field": "Title",
		"message": "Title must not be empty or contain only whitespace characters"
	  }
	]

Optional parameters:
  - map[string]string renames validated fields, e.g. {"OrderCode": "orderCode"}.
  - string is the field reported for any other error, e.g. "table".
*/
func GenerateErrorMessages(err error, optionalParams ...interface{}) []ApiError {
	var customField map[string]string
	fieldName := unknownField

	for _, param := range optionalParams {
		switch v := param.(type) {
		case map[string]string:
			customField = v
		case string:
			fieldName = v
		}
	}

	if err == nil {
		return []ApiError{}
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		out := make([]ApiError, len(ve))
		for i, fe := range ve {
			field := fe.Field()
			if renamed, ok := customField[field]; ok {
				field = renamed
			}
			out[i] = ApiError{Field: field, Message: msgForTag(fe, field)}
		}
		return out
	}

	// gin binding hands these back untouched for a bad JSON body
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = fieldName
		}
		return []ApiError{{Field: field, Message: fmt.Sprintf("%s must be of type %s", field, typeErr.Type)}}
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return []ApiError{{Field: fieldName, Message: fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset)}}
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return []ApiError{{Field: fieldName, Message: "Record not found"}}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return []ApiError{{Field: fieldName, Message: "Record already exists"}}
	default:
		return []ApiError{{Field: fieldName, Message: err.Error()}}
	}
}

func trimmedString(fl validator.FieldLevel) (string, bool) {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return "", false
	}
	return strings.TrimSpace(field.String()), true
}

// Lengths are counted in runes so accented names are not penalised.
func trimmedLength(fl validator.FieldLevel) (length, limit int, ok bool) {
	str, ok := trimmedString(fl)
	if !ok {
		return 0, 0, false
	}

	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return 0, 0, false
	}

	return utf8.RuneCountInString(str), limit, true
}

// check if string is empty, after trimming spaces
// Usage: `binding:"strNotEmpty"`
func StrNotEmpty(fl validator.FieldLevel) bool {
	str, ok := trimmedString(fl)
	return ok && str != ""
}

// check if string has length of at least the minimum value, after trimming spaces
// Usage: `binding:"cmin=3"`
func CustomMin(fl validator.FieldLevel) bool {
	length, limit, ok := trimmedLength(fl)
	return ok && length >= limit
}

// check if string has length of at most the maximum value, after trimming spaces
// Usage: `binding:"cmax=3"`
func CustomMax(fl validator.FieldLevel) bool {
	length, limit, ok := trimmedLength(fl)
	return ok && length <= limit
}

// Registers strNotEmpty, cmin and cmax on the gin binding validator.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("strNotEmpty", StrNotEmpty); err != nil {
		return err
	}
	if err := v.RegisterValidation("cmin", CustomMin); err != nil {
		return err
	}
	return v.RegisterValidation("cmax", CustomMax)
}
