// Package oauth2 defines the contracts of the embedded authorization server:
// the client, user, code and token repositories, and the value types passed
// between the request flows and the grant handlers.
package oauth2

import (
	"context"
	"net/url"
	"time"
)

type (
	// ClientInfo the client information model interface
	ClientInfo interface {
		GetID() string
		GetSecret() string
		GetRedirectURI() string
		GetScopes() []string
	}

	// UserInfo the resource owner model interface
	UserInfo interface {
		GetID() string
	}

	// TokenInfo the token information model interface
	TokenInfo interface {
		GetClientID() string
		GetUserID() string
		GetAccess() string
		GetTokenType() string
		GetRefresh() string
		GetScope() string
		GetAccessCreateAt() time.Time
		GetAccessExpiresIn() time.Duration
		IsExpired() bool
	}
)

// ClientCredential is a client id/secret pair supplied on a request.
// It is never persisted.
type ClientCredential struct {
	ID     string
	Secret string
}

type (
	// ClientStore the client information storage interface
	ClientStore interface {
		// GetByID according to the ID for the client information
		GetByID(ctx context.Context, id string) (ClientInfo, error)
		// Validate checks the credential against the registered client.
		// In authorize mode the secret is not required.
		Validate(ctx context.Context, cred ClientCredential, authorize bool) (ClientInfo, error)
		// ValidateScopes returns the accepted scope set, or an
		// invalid_scope error when any requested scope is not granted
		// to the client.
		ValidateScopes(ctx context.Context, cli ClientInfo, scope []string) ([]string, error)
	}

	// UserStore the resource owner storage interface
	UserStore interface {
		GetByID(ctx context.Context, id string) (UserInfo, error)
		// Validate checks the password credential and returns the user.
		Validate(ctx context.Context, username, password string) (UserInfo, error)
	}

	// TokenStore the token storage interface. Implementations may keep
	// tokens in a backing store or issue stateless signed tokens; the
	// flows do not care which.
	TokenStore interface {
		// Generate mints an access token, optionally paired with a
		// refresh token, for the client/user/scope triple.
		Generate(ctx context.Context, cli ClientInfo, userID string, scope []string, genRefresh bool) (TokenInfo, error)
		// Lookup resolves an access token string. Expiry is evaluated
		// here, lazily.
		Lookup(ctx context.Context, access string) (TokenInfo, error)
		// Refresh exchanges a refresh token for a new token pair.
		// Whether the old refresh token stays valid is an
		// implementation choice.
		Refresh(ctx context.Context, refresh string) (TokenInfo, error)
		// LookupRefresh resolves a refresh token string without
		// consuming it.
		LookupRefresh(ctx context.Context, refresh string) (TokenInfo, error)
		RemoveAccess(ctx context.Context, access string) error
		RemoveRefresh(ctx context.Context, refresh string) error
	}

	// CodeStore the authorization code storage interface
	CodeStore interface {
		Generate(ctx context.Context, cli ClientInfo, userID, redirectURI string, scope []string, state string) (*AuthorizationCode, error)
		// Consume removes and returns the code. A second call with the
		// same code fails.
		Consume(ctx context.Context, code string) (*AuthorizationCode, error)
	}
)

// AuthorizationCode records a one-time code issued by the authorize endpoint.
// A code is bound to the client and redirect URI it was issued for; a
// mismatch at redemption is an error.
type AuthorizationCode struct {
	Code        string        `json:"code"`
	ClientID    string        `json:"client_id"`
	UserID      string        `json:"user_id"`
	RedirectURI string        `json:"redirect_uri"`
	Scope       []string      `json:"scope"`
	State       string        `json:"state,omitempty"`
	CreateAt    time.Time     `json:"create_at"`
	ExpiresIn   time.Duration `json:"expires_in"`
}

// IsExpired reports whether the code has passed its lifetime. A code with no
// lifetime never expires.
func (c *AuthorizationCode) IsExpired() bool {
	if c.ExpiresIn <= 0 {
		return false
	}
	return c.CreateAt.Add(c.ExpiresIn).Before(time.Now())
}

// AuthorizeRequest carries a validated authorization request into a grant
// handler.
type AuthorizeRequest struct {
	ResponseType ResponseType
	Client       ClientInfo
	RedirectURI  string
	Scope        []string
	State        string
}

// GrantRequest carries a validated token request into a grant handler.
// Client is nil when no credentials were supplied and the handler does not
// require them. Form holds the raw request parameters.
type GrantRequest struct {
	Client ClientInfo
	Scope  []string
	State  string
	Form   url.Values
}

// Authorization is the parameter bag produced by a successful authorize
// call, encoded into the redirect URI by the caller.
type Authorization map[string]interface{}

// Grant is the result of a successful token request.
type Grant struct {
	Token TokenInfo
	State string
}
