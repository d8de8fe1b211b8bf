// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware when parsing the
// "Authorization" HTTP header. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is not exactly "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrUnauthorized is the only message callers see when identity checks
	// fail, whatever the cause.
	ErrUnauthorized = errors.New("unauthorized")
)

// Errors reported for malformed request input that never reaches a service.
var (
	ErrInvalidJSON           = errors.New("invalid JSON was passed")
	ErrInvalidQueryParam     = errors.New("invalid query parameter")
	ErrInvalidIdempotencyKey = errors.New("invalid `Idempotency-Key` header")
)
