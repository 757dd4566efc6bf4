package models

import "time"

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Message string `json:"message"`

	// Fields holds per-field validation messages keyed by JSON field name.
	Fields map[string]string `json:"fields,omitempty"`

	// ResetTime is set on 429 replies and tells when the block ends.
	ResetTime *time.Time `json:"reset_time,omitempty"`
}

// AuthPageResponse is returned by GET on the login and register routes.
type AuthPageResponse struct {
	Message string `json:"message,omitempty"`
}

// VersionResponse is returned by the version endpoint.
type VersionResponse struct {
	Version string `json:"version"`
}
