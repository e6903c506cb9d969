package services

import "errors"

// validationError marks input problems that map to "validation failed".
type validationError struct {
	msg string
}

func (e validationError) Error() string {
	return e.msg
}

func newValidationError(msg string) error {
	return validationError{msg: msg}
}

func isValidationError(err error) bool {
	var v validationError
	return errors.As(err, &v)
}
