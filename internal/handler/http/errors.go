// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// errUnauthenticated is answered by routes that need a session when the
	// request has none.
	errUnauthenticated = errors.New("authentication required")

	// ErrInvalidRequestBody is returned when a JSON or form body cannot be
	// decoded into the expected payload.
	ErrInvalidRequestBody = errors.New("invalid request body")
)
