// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks request payloads before the service layer acts
// on them. Each failure is one of the sentinel errors in errors.go so that
// callers can match it with errors.Is.
package validators

import "context"

// Validator validates a request value. When fields are given only those
// fields are checked; otherwise the whole value is.
//
// Unsupported value types yield ErrUnsupportedType.
type Validator interface {
	Validate(ctx context.Context, value any, fields ...string) error
}
