package domain

import "errors"

var (
	ErrInvalidInput       = errors.New("missing required fields")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrInvalidRole        = errors.New("invalid role")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrHelperNotFound     = errors.New("helper not found")
	ErrInvalidStatus      = errors.New("invalid status value")
)
