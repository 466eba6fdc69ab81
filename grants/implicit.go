package grants

import (
	"context"
	"time"

	"github.com/bookmarkd/oauth2"
	"github.com/bookmarkd/oauth2/errors"
)

// NewImplicit create the implicit grant handler
func NewImplicit(clients oauth2.ClientStore, tokens oauth2.TokenStore) *ImplicitGrant {
	return &ImplicitGrant{clients: clients, tokens: tokens}
}

// ImplicitGrant implements the implicit grant: the access token is issued
// directly from the authorization endpoint; the token endpoint is never
// used.
type ImplicitGrant struct {
	clients oauth2.ClientStore
	tokens  oauth2.TokenStore
}

func (g *ImplicitGrant) Type() oauth2.GrantType          { return oauth2.Implicit }
func (g *ImplicitGrant) ClientCredentialsRequired() bool { return false }
func (g *ImplicitGrant) SupportsAuthorization() bool     { return true }
func (g *ImplicitGrant) SupportsGranting() bool          { return false }

// Authorize mints a token immediately and embeds it in the redirect
// parameters.
func (g *ImplicitGrant) Authorize(ctx context.Context, req *oauth2.AuthorizeRequest, userID string) (oauth2.Authorization, error) {
	scope, err := g.clients.ValidateScopes(ctx, req.Client, req.Scope)
	if err != nil {
		return nil, errors.ErrInvalidScope
	}

	ti, err := g.tokens.Generate(ctx, req.Client, userID, scope, false)
	if err != nil {
		return nil, err
	}

	params := oauth2.Authorization{
		"token_type":   ti.GetTokenType(),
		"access_token": ti.GetAccess(),
	}
	if s := ti.GetScope(); s != "" {
		params["scope"] = s
	}
	if exp := ti.GetAccessExpiresIn(); exp > 0 {
		params["expires_in"] = int64(exp / time.Second)
	}
	if req.State != "" {
		params["state"] = req.State
	}
	return params, nil
}

// Grant always fails: the implicit flow does not use the token endpoint.
func (g *ImplicitGrant) Grant(ctx context.Context, req *oauth2.GrantRequest) (*oauth2.Grant, error) {
	return nil, errors.ErrInvalidRequest
}
