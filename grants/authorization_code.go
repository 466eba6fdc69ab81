package grants

import (
	"context"

	"github.com/bookmarkd/oauth2"
	"github.com/bookmarkd/oauth2/errors"
)

// NewAuthorizationCode create the authorization_code grant handler
func NewAuthorizationCode(clients oauth2.ClientStore, codes oauth2.CodeStore, tokens oauth2.TokenStore) *AuthorizationCode {
	return &AuthorizationCode{clients: clients, codes: codes, tokens: tokens}
}

// AuthorizationCode implements the authorization_code grant: a one-time
// code issued at the authorization endpoint and redeemed at the token
// endpoint by the same client with the same redirect URI.
type AuthorizationCode struct {
	clients oauth2.ClientStore
	codes   oauth2.CodeStore
	tokens  oauth2.TokenStore
}

func (g *AuthorizationCode) Type() oauth2.GrantType          { return oauth2.AuthorizationCodeGrant }
func (g *AuthorizationCode) ClientCredentialsRequired() bool { return true }
func (g *AuthorizationCode) SupportsAuthorization() bool     { return true }
func (g *AuthorizationCode) SupportsGranting() bool          { return true }

// Authorize issues a one-time code and returns it as redirect parameters.
func (g *AuthorizationCode) Authorize(ctx context.Context, req *oauth2.AuthorizeRequest, userID string) (oauth2.Authorization, error) {
	code, err := g.codes.Generate(ctx, req.Client, userID, req.RedirectURI, req.Scope, req.State)
	if err != nil {
		return nil, err
	}

	params := oauth2.Authorization{"code": code.Code}
	if req.State != "" {
		params["state"] = req.State
	}
	return params, nil
}

// Grant redeems a code. The client identity and redirect URI must exactly
// match those recorded at issuance; a mismatch is an error, not silently
// corrected.
func (g *AuthorizationCode) Grant(ctx context.Context, req *oauth2.GrantRequest) (*oauth2.Grant, error) {
	code := req.Form.Get("code")
	if code == "" {
		return nil, errors.ErrInvalidClient
	}

	ac, err := g.codes.Consume(ctx, code)
	if err != nil {
		return nil, errors.ErrInvalidClient
	}
	if req.Client == nil || req.Client.GetID() != ac.ClientID {
		return nil, errors.ErrInvalidClient
	}
	if req.Form.Get("redirect_uri") != ac.RedirectURI {
		return nil, errors.ErrInvalidClient
	}

	scope, err := g.clients.ValidateScopes(ctx, req.Client, ac.Scope)
	if err != nil {
		return nil, errors.ErrInvalidScope
	}

	ti, err := g.tokens.Generate(ctx, req.Client, ac.UserID, scope, true)
	if err != nil {
		return nil, err
	}
	return &oauth2.Grant{Token: ti, State: req.State}, nil
}
