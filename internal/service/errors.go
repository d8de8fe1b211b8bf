package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("invalid credentials")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	ErrForbidden            = errors.New("forbidden")
	ErrImageStorageDisabled = errors.New("image storage is not configured")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
