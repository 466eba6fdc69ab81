package server

import (
	"net/http"
	"time"

	"github.com/bookmarkd/oauth2"
	"github.com/bookmarkd/oauth2/grants"
)

// Config configuration parameters
type Config struct {
	TokenType             string // token type
	Realm                 string // realm carried in WWW-Authenticate challenges
	AllowGetAccessRequest bool   // to allow GET requests for the token
	AllowedResponseTypes  []oauth2.ResponseType
	AllowedGrantTypes     []oauth2.GrantType
	// AcceptedSchemes lists the Authorization schemes accepted at
	// protected resources, compared case-insensitively.
	AcceptedSchemes []string
	// DefaultScopes is the fallback scope set when a request carries
	// none.
	DefaultScopes []string
	// CodeTTL is the lifetime of authorization codes.
	CodeTTL time.Duration
}

// NewConfig create to configuration instance
func NewConfig() *Config {
	return &Config{
		TokenType:            "Bearer",
		Realm:                "bookmarkd",
		AllowedResponseTypes: []oauth2.ResponseType{oauth2.Code, oauth2.Token},
		AllowedGrantTypes: []oauth2.GrantType{
			oauth2.AuthorizationCodeGrant,
			oauth2.PasswordCredentials,
			oauth2.ClientCredentials,
			oauth2.Implicit,
			oauth2.Refreshing,
		},
		AcceptedSchemes: []string{"Bearer"},
		CodeTTL:         time.Minute * 10,
	}
}

// AuthorizeRequest is a validated authorization request bound to its grant
// handler.
type AuthorizeRequest struct {
	ResponseType oauth2.ResponseType
	Handler      grants.Handler
	Client       oauth2.ClientInfo
	RedirectURI  string
	Scope        []string
	State        string
	UserID       string
	Request      *http.Request
}
