// Package errors defines the closed OAuth 2.0 error taxonomy used by the
// authorization and grant flows, plus the internal sentinels raised by the
// token and code stores.
package errors

import "errors"

// New returns an error that formats as the given text.
var New = errors.New

// Is reports whether any error in err's chain matches target.
var Is = errors.Is

// protocol errors; each carries its RFC 6749 wire type string as the message
var (
	ErrInvalidRequest          = errors.New("invalid_request")
	ErrInvalidClient           = errors.New("invalid_client")
	ErrInvalidGrant            = errors.New("invalid_grant")
	ErrUnauthorizedClient      = errors.New("unauthorized_client")
	ErrUnsupportedGrantType    = errors.New("unsupported_grant_type")
	ErrInvalidScope            = errors.New("invalid_scope")
	ErrAccessDenied            = errors.New("access_denied")
	ErrUnsupportedResponseType = errors.New("unsupported_response_type")
	ErrServerError             = errors.New("server_error")
)

// internal errors raised by stores; the flows translate these to the
// protocol taxonomy before serialization
var (
	ErrInvalidAccessToken   = errors.New("invalid access token")
	ErrExpiredAccessToken   = errors.New("expired access token")
	ErrInvalidAuthorizeCode = errors.New("invalid authorize code")
	ErrInvalidRefreshToken  = errors.New("invalid refresh token")
	ErrExpiredRefreshToken  = errors.New("expired refresh token")
)
