package domain

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)

var (
	ErrEmptyInput       = errors.New("empty input")
	ErrInputTooLong     = errors.New("input too long")
	ErrInvalidMode      = errors.New("invalid mode")
	ErrGenerationFailed = errors.New("prompt generation failed")
)
