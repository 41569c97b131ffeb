// Package common contains constants and small helpers shared by client layers.
package common

const (
	// TokenStorageKey is the metadata key the session token is persisted under.
	TokenStorageKey = "token"

	AuthorizationHeaderName = "Authorization"
	BearerPrefix            = "Bearer "
	RequestIDHeaderName     = "X-Request-ID"
	ContentTypeJSON         = "application/json"
)
