package service

import "errors"

// Common service errors
var (
	ErrMissingField = errors.New("missing required field")
	ErrInvalidPage  = errors.New("page must be a positive integer")
)
