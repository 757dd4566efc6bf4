// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks request payloads against the account policies
// (username format, password strength) before they reach the services.
//
// Rules are expressed as go-playground/validator struct tags on the model
// types; this package registers the custom tags and turns validator errors
// into a [ValidationError] keyed by JSON field name.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
