package common

const (
	// TokenHeaderName carries the session token on authenticated requests.
	TokenHeaderName = "X-Token"

	// AuthorizationHeaderName carries basic credentials on login.
	AuthorizationHeaderName = "Authorization"
)
