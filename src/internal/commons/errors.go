package commons

import "errors"

var ErrRecordNotFound = errors.New("Record not found")
var ErrInsufficientBalance = errors.New("Insufficient balance")
var ErrAlreadyExists = errors.New("Record already exists")
var ErrSessionNotFound = errors.New("Session not found")
