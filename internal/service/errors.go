package service

import "errors"

// Service errors
var (
	ErrProgrammeNotFound = errors.New("programme not found")
	ErrInvalidInput      = errors.New("invalid input")
)
