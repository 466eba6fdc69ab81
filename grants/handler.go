// Package grants implements one handler per OAuth 2.0 grant type behind a
// shared capability contract. The authorization and grant flows select a
// handler from a registry and never inspect its concrete type.
package grants

import (
	"context"

	"github.com/bookmarkd/oauth2"
	"github.com/bookmarkd/oauth2/errors"
)

// Handler is the per-grant-type capability contract. A handler declares
// whether client credentials are mandatory at the token endpoint and which
// of the two endpoints it serves.
type Handler interface {
	Type() oauth2.GrantType
	ClientCredentialsRequired() bool
	SupportsAuthorization() bool
	SupportsGranting() bool

	// Authorize produces the redirect parameters of an "/authorize"
	// request for the given resource owner.
	Authorize(ctx context.Context, req *oauth2.AuthorizeRequest, userID string) (oauth2.Authorization, error)
	// Grant mints a token pair for a "/token" request.
	Grant(ctx context.Context, req *oauth2.GrantRequest) (*oauth2.Grant, error)
}

// unauthorizable provides the default Authorize for grant types that do not
// serve the authorization endpoint.
type unauthorizable struct{}

func (unauthorizable) SupportsAuthorization() bool { return false }

func (unauthorizable) Authorize(ctx context.Context, req *oauth2.AuthorizeRequest, userID string) (oauth2.Authorization, error) {
	return nil, errors.ErrServerError
}
