package grants

import (
	"context"

	"github.com/bookmarkd/oauth2"
	"github.com/bookmarkd/oauth2/errors"
)

// NewClientCredentials create the client_credentials grant handler
func NewClientCredentials(clients oauth2.ClientStore, tokens oauth2.TokenStore) *ClientCredentialsGrant {
	return &ClientCredentialsGrant{clients: clients, tokens: tokens}
}

// ClientCredentialsGrant implements the client_credentials grant: the
// client itself is the principal; no resource owner is involved unless the
// Authenticate hook maps the client onto one.
type ClientCredentialsGrant struct {
	unauthorizable
	clients oauth2.ClientStore
	tokens  oauth2.TokenStore

	// Authenticate optionally maps the client to a user principal. The
	// default leaves the token without a user.
	Authenticate func(ctx context.Context, cli oauth2.ClientInfo) (string, error)
}

func (g *ClientCredentialsGrant) Type() oauth2.GrantType          { return oauth2.ClientCredentials }
func (g *ClientCredentialsGrant) ClientCredentialsRequired() bool { return true }
func (g *ClientCredentialsGrant) SupportsGranting() bool          { return true }

// Grant mints a token for the authenticated client.
func (g *ClientCredentialsGrant) Grant(ctx context.Context, req *oauth2.GrantRequest) (*oauth2.Grant, error) {
	if req.Client == nil {
		return nil, errors.ErrInvalidClient
	}

	scope, err := g.clients.ValidateScopes(ctx, req.Client, req.Scope)
	if err != nil {
		return nil, errors.ErrInvalidScope
	}

	userID := ""
	if g.Authenticate != nil {
		userID, err = g.Authenticate(ctx, req.Client)
		if err != nil {
			return nil, err
		}
	}

	ti, err := g.tokens.Generate(ctx, req.Client, userID, scope, false)
	if err != nil {
		return nil, err
	}
	return &oauth2.Grant{Token: ti, State: req.State}, nil
}
