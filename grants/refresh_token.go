package grants

import (
	"context"

	"github.com/bookmarkd/oauth2"
	"github.com/bookmarkd/oauth2/errors"
)

// NewRefreshToken create the refresh_token grant handler
func NewRefreshToken(tokens oauth2.TokenStore) *RefreshTokenGrant {
	return &RefreshTokenGrant{tokens: tokens}
}

// RefreshTokenGrant exchanges a refresh token for a replacement access
// token. Whether the old refresh token survives is the token store's
// choice.
type RefreshTokenGrant struct {
	unauthorizable
	tokens oauth2.TokenStore
}

func (g *RefreshTokenGrant) Type() oauth2.GrantType          { return oauth2.Refreshing }
func (g *RefreshTokenGrant) ClientCredentialsRequired() bool { return true }
func (g *RefreshTokenGrant) SupportsGranting() bool          { return true }

// Grant asks the token store to refresh.
func (g *RefreshTokenGrant) Grant(ctx context.Context, req *oauth2.GrantRequest) (*oauth2.Grant, error) {
	refresh := req.Form.Get("refresh_token")
	if refresh == "" {
		return nil, errors.ErrInvalidRequest
	}

	ti, err := g.tokens.Refresh(ctx, refresh)
	if err != nil {
		return nil, errors.ErrInvalidClient
	}
	return &oauth2.Grant{Token: ti, State: req.State}, nil
}
