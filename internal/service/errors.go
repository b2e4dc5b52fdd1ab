package service

import "errors"

var (
	ErrInvalidField = errors.New("invalid text field")
	ErrRowNotFound  = errors.New("row not found")
	ErrUnknownMonth = errors.New("unknown month")
	ErrNotLoaded    = errors.New("row store not loaded")
)
