package grants

import (
	"context"

	"github.com/bookmarkd/oauth2"
	"github.com/bookmarkd/oauth2/errors"
)

// NewPassword create the password grant handler
func NewPassword(clients oauth2.ClientStore, users oauth2.UserStore, tokens oauth2.TokenStore) *PasswordGrant {
	return &PasswordGrant{clients: clients, users: users, tokens: tokens}
}

// PasswordGrant implements the resource owner password credentials grant.
type PasswordGrant struct {
	unauthorizable
	clients oauth2.ClientStore
	users   oauth2.UserStore
	tokens  oauth2.TokenStore
}

func (g *PasswordGrant) Type() oauth2.GrantType          { return oauth2.PasswordCredentials }
func (g *PasswordGrant) ClientCredentialsRequired() bool { return true }
func (g *PasswordGrant) SupportsGranting() bool          { return true }

// Grant validates the resource owner credentials and mints a token pair.
func (g *PasswordGrant) Grant(ctx context.Context, req *oauth2.GrantRequest) (*oauth2.Grant, error) {
	if req.Client == nil {
		return nil, errors.ErrInvalidClient
	}

	username, password := req.Form.Get("username"), req.Form.Get("password")
	if username == "" || password == "" {
		return nil, errors.ErrInvalidClient
	}

	scope, err := g.clients.ValidateScopes(ctx, req.Client, req.Scope)
	if err != nil {
		return nil, errors.ErrInvalidScope
	}

	user, err := g.users.Validate(ctx, username, password)
	if err != nil {
		return nil, errors.ErrInvalidGrant
	}

	ti, err := g.tokens.Generate(ctx, req.Client, user.GetID(), scope, true)
	if err != nil {
		return nil, err
	}
	return &oauth2.Grant{Token: ti, State: req.State}, nil
}
