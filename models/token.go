package models

import (
	"time"
)

// NewToken create to token model instance
func NewToken() *Token {
	return &Token{}
}

// Token token model
type Token struct {
	ClientID         string        `json:"client_id,omitempty"`
	UserID           string        `json:"user_id,omitempty"`
	Scope            string        `json:"scope,omitempty"`
	TokenType        string        `json:"token_type,omitempty"`
	Access           string        `json:"access,omitempty"`
	AccessCreateAt   time.Time     `json:"access_create_at,omitempty"`
	AccessExpiresIn  time.Duration `json:"access_expires_in,omitempty"`
	Refresh          string        `json:"refresh,omitempty"`
	RefreshCreateAt  time.Time     `json:"refresh_create_at,omitempty"`
	RefreshExpiresIn time.Duration `json:"refresh_expires_in,omitempty"`
}

// GetClientID the client id
func (t *Token) GetClientID() string {
	return t.ClientID
}

// GetUserID the user id
func (t *Token) GetUserID() string {
	return t.UserID
}

// GetScope get scope of authorization
func (t *Token) GetScope() string {
	return t.Scope
}

// GetTokenType token type, "Bearer"
func (t *Token) GetTokenType() string {
	return t.TokenType
}

// GetAccess access token
func (t *Token) GetAccess() string {
	return t.Access
}

// GetAccessCreateAt create access token date
func (t *Token) GetAccessCreateAt() time.Time {
	return t.AccessCreateAt
}

// GetAccessExpiresIn access token expiration time
func (t *Token) GetAccessExpiresIn() time.Duration {
	return t.AccessExpiresIn
}

// GetRefresh refresh token
func (t *Token) GetRefresh() string {
	return t.Refresh
}

// IsExpired reports whether the access token has passed its lifetime,
// evaluated lazily against the issuance instant. A token with no lifetime
// never expires.
func (t *Token) IsExpired() bool {
	if t.AccessExpiresIn <= 0 {
		return false
	}
	return t.AccessCreateAt.Add(t.AccessExpiresIn).Before(time.Now())
}

// IsRefreshExpired reports whether the refresh token has passed its
// lifetime.
func (t *Token) IsRefreshExpired() bool {
	if t.RefreshExpiresIn <= 0 {
		return false
	}
	return t.RefreshCreateAt.Add(t.RefreshExpiresIn).Before(time.Now())
}
