// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks decoded request bodies before they reach the
// services. Rules live in `validate` struct tags on the request types of
// package models and are enforced by go-playground/validator.
package validators

import "context"

// Validator validates v. When fields are given only those struct fields are
// checked.
type Validator interface {
	Validate(ctx context.Context, v any, fields ...string) error
}
