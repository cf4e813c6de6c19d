package schema

import "strings"

// ValidationError reports a single field failure in an inbound request body.
type ValidationError struct {
	Field  string `json:"field"`
	ErrStr string `json:"error"`
}

func (v ValidationError) Error() string {
	if v.Field == "" {
		return v.ErrStr
	}
	return v.Field + ": " + v.ErrStr
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

func ErrMissingRequiredAttribute(field string) ValidationError {
	return ValidationError{Field: field, ErrStr: "missing required attribute"}
}

func ErrInvalidFieldValue(field string) ValidationError {
	return ValidationError{Field: field, ErrStr: "invalid value"}
}

func ErrInvalidDueDay(field string) ValidationError {
	return ValidationError{Field: field, ErrStr: "due day must be between 1 and 28"}
}

func ErrValidationFailed(field string) ValidationError {
	return ValidationError{Field: field, ErrStr: "validation failed for attribute"}
}
