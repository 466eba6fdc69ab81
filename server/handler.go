package server

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/bookmarkd/oauth2"
	"github.com/bookmarkd/oauth2/errors"
)

type (
	// ClientInfoHandler get client credentials from the request. The
	// boolean reports whether any credential was found; malformed
	// credentials count as absent, not as an error.
	ClientInfoHandler func(r *http.Request) (*oauth2.ClientCredential, bool)

	// UserAuthorizationHandler get the resource owner of an authorize
	// request. An empty user id with a nil error means the handler has
	// already written a response (e.g. a login redirect).
	UserAuthorizationHandler func(w http.ResponseWriter, r *http.Request) (string, error)

	// InternalErrorHandler maps an unexpected error to a response
	InternalErrorHandler func(err error) *errors.Response

	// ResponseErrorHandler observes the error response before it is
	// written
	ResponseErrorHandler func(re *errors.Response)

	// ExtensionFieldsHandler adds custom fields to the token response
	ExtensionFieldsHandler func(ti oauth2.TokenInfo) map[string]interface{}
)

// ClientBasicHandler reads the client credential from an HTTP Basic
// Authorization header. The scheme comparison is case-insensitive; a
// malformed header yields no credential rather than an error.
func ClientBasicHandler(r *http.Request) (*oauth2.ClientCredential, bool) {
	return parseBasicAuth(r.Header.Get("Authorization"))
}

// ClientFormHandler reads the client credential from request parameters.
func ClientFormHandler(r *http.Request) (*oauth2.ClientCredential, bool) {
	id := r.FormValue("client_id")
	if id == "" {
		return nil, false
	}
	return &oauth2.ClientCredential{ID: id, Secret: r.FormValue("client_secret")}, true
}

// ClientBasicOrFormHandler prefers the Basic Authorization header and
// falls back to request parameters.
func ClientBasicOrFormHandler(r *http.Request) (*oauth2.ClientCredential, bool) {
	if cred, ok := ClientBasicHandler(r); ok {
		return cred, true
	}
	return ClientFormHandler(r)
}

// parseBasicAuth decodes "Basic base64(id:secret)". The payload is decoded
// byte-for-byte (ISO-8859-1); a wrong scheme, bad Base64 or missing colon
// yields no credential.
func parseBasicAuth(header string) (*oauth2.ClientCredential, bool) {
	const prefix = "basic "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return nil, false
	}
	payload, err := base64.StdEncoding.DecodeString(strings.TrimSpace(header[len(prefix):]))
	if err != nil {
		return nil, false
	}
	id, secret, ok := strings.Cut(string(payload), ":")
	if !ok {
		return nil, false
	}
	return &oauth2.ClientCredential{ID: id, Secret: secret}, true
}
