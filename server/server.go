// Package server orchestrates the authorization and grant flows over the
// repository contracts and serves them through a Gin router.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bookmarkd/oauth2"
	"github.com/bookmarkd/oauth2/errors"
	"github.com/bookmarkd/oauth2/grants"
	"github.com/bookmarkd/oauth2/store"
)

// NewDefaultServer create a default authorization server over the given
// stores, with every allowed grant type registered.
func NewDefaultServer(clients oauth2.ClientStore, users oauth2.UserStore, tokens oauth2.TokenStore) *Server {
	return NewServer(NewConfig(), clients, users, tokens, nil)
}

// NewServer create authorization server. A nil code store gets an
// in-memory one with the configured code TTL.
func NewServer(cfg *Config, clients oauth2.ClientStore, users oauth2.UserStore, tokens oauth2.TokenStore, codes oauth2.CodeStore) *Server {
	if codes == nil {
		codes = store.NewCodeStore(cfg.CodeTTL)
	}

	srv := &Server{
		Config:   cfg,
		Clients:  clients,
		Users:    users,
		Tokens:   tokens,
		Codes:    codes,
		handlers: make(map[oauth2.GrantType]grants.Handler),
	}

	srv.ClientInfoHandler = ClientBasicOrFormHandler
	srv.UserAuthorizationHandler = func(w http.ResponseWriter, r *http.Request) (string, error) {
		return "", errors.ErrAccessDenied
	}

	for _, gt := range cfg.AllowedGrantTypes {
		switch gt {
		case oauth2.AuthorizationCodeGrant:
			srv.RegisterGrant(grants.NewAuthorizationCode(clients, codes, tokens))
		case oauth2.ClientCredentials:
			srv.RegisterGrant(grants.NewClientCredentials(clients, tokens))
		case oauth2.Implicit:
			srv.RegisterGrant(grants.NewImplicit(clients, tokens))
		case oauth2.PasswordCredentials:
			srv.RegisterGrant(grants.NewPassword(clients, users, tokens))
		case oauth2.Refreshing:
			srv.RegisterGrant(grants.NewRefreshToken(tokens))
		}
	}
	return srv
}

// Server Provide authorization server
type Server struct {
	Config  *Config
	Clients oauth2.ClientStore
	Users   oauth2.UserStore
	Tokens  oauth2.TokenStore
	Codes   oauth2.CodeStore

	handlers map[oauth2.GrantType]grants.Handler

	ClientInfoHandler        ClientInfoHandler
	UserAuthorizationHandler UserAuthorizationHandler
	InternalErrorHandler     InternalErrorHandler
	ResponseErrorHandler     ResponseErrorHandler
	ExtensionFieldsHandler   ExtensionFieldsHandler
}

// RegisterGrant adds (or replaces) the handler for its grant type.
func (s *Server) RegisterGrant(h grants.Handler) {
	s.handlers[h.Type()] = h
}

// GrantHandler looks up a handler by grant type name.
func (s *Server) GrantHandler(gt oauth2.GrantType) (grants.Handler, bool) {
	h, ok := s.handlers[gt]
	return h, ok
}

// authorizeHandler maps a response type onto the grant handler serving it.
func (s *Server) authorizeHandler(rt oauth2.ResponseType) (grants.Handler, bool) {
	switch rt {
	case oauth2.Code:
		return s.GrantHandler(oauth2.AuthorizationCodeGrant)
	case oauth2.Token:
		return s.GrantHandler(oauth2.Implicit)
	}
	return s.GrantHandler(oauth2.GrantType(rt))
}

// ValidationAuthorizeRequest the authorization request validation
func (s *Server) ValidationAuthorizeRequest(r *http.Request) (*AuthorizeRequest, error) {
	ctx := r.Context()

	if !(r.Method == "GET" || r.Method == "POST") {
		return nil, errors.ErrInvalidRequest
	}

	resType := oauth2.ResponseType(r.FormValue("response_type"))
	if resType.String() == "" {
		return nil, errors.ErrInvalidRequest
	}
	if !s.responseTypeAllowed(resType) {
		return nil, errors.ErrUnsupportedResponseType
	}
	handler, ok := s.authorizeHandler(resType)
	if !ok || !handler.SupportsAuthorization() {
		return nil, errors.ErrUnsupportedResponseType
	}

	clientID := r.FormValue("client_id")
	if clientID == "" {
		return nil, errors.ErrInvalidRequest
	}
	// authorize mode: the client identifies itself without its secret
	cli, err := s.Clients.Validate(ctx, oauth2.ClientCredential{ID: clientID}, true)
	if err != nil {
		return nil, errors.ErrInvalidClient
	}

	redirectURI := r.FormValue("redirect_uri")
	if redirectURI == "" {
		return nil, errors.ErrInvalidRequest
	}
	if !matchRedirectURI(cli, redirectURI) {
		return nil, errors.ErrInvalidClient
	}

	req := &AuthorizeRequest{
		ResponseType: resType,
		Handler:      handler,
		Client:       cli,
		RedirectURI:  redirectURI,
		State:        r.FormValue("state"),
		Request:      r,
	}

	// The redirect URI is established at this point, so a scope failure is
	// reported to the client via redirect, not inline.
	scope, err := s.Clients.ValidateScopes(ctx, cli, s.scopeOrDefault(r.FormValue("scope")))
	if err != nil {
		return req, errors.ErrInvalidScope
	}
	req.Scope = scope

	return req, nil
}

// HandleAuthorizeRequest the authorization request handling
func (s *Server) HandleAuthorizeRequest(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	req, err := s.ValidationAuthorizeRequest(r)
	if err != nil {
		return s.handleAuthorizeError(w, r, req, err)
	}

	// user authorization
	userID, err := s.UserAuthorizationHandler(w, r)
	if err != nil {
		return s.handleAuthorizeError(w, r, req, err)
	} else if userID == "" {
		return nil
	}
	req.UserID = userID

	params, err := req.Handler.Authorize(ctx, &oauth2.AuthorizeRequest{
		ResponseType: req.ResponseType,
		Client:       req.Client,
		RedirectURI:  req.RedirectURI,
		Scope:        req.Scope,
		State:        req.State,
	}, userID)
	if err != nil {
		return s.handleAuthorizeError(w, r, req, err)
	}

	return s.redirect(w, req, params)
}

// handleAuthorizeError redirects the error to the client when a redirect
// URI was established, and answers inline otherwise.
func (s *Server) handleAuthorizeError(w http.ResponseWriter, r *http.Request, req *AuthorizeRequest, err error) error {
	if req == nil || req.RedirectURI == "" {
		data, statusCode, header := s.GetErrorData(err)
		if state := r.FormValue("state"); state != "" {
			data["state"] = state
		}
		return s.token(w, data, header, statusCode)
	}

	data, _, _ := s.GetErrorData(err)
	return s.redirect(w, req, data)
}

func (s *Server) redirect(w http.ResponseWriter, req *AuthorizeRequest, data map[string]interface{}) error {
	uri, err := s.GetRedirectURI(req, data)
	if err != nil {
		return err
	}

	w.Header().Set("Location", uri)
	w.WriteHeader(http.StatusFound)
	return nil
}

// GetRedirectURI builds the redirect target: query parameters for the code
// flow, a URI fragment for the implicit flow.
func (s *Server) GetRedirectURI(req *AuthorizeRequest, data map[string]interface{}) (string, error) {
	u, err := url.Parse(req.RedirectURI)
	if err != nil {
		return "", err
	}

	q := u.Query()
	if req.State != "" {
		q.Set("state", req.State)
	}
	for k, v := range data {
		q.Set(k, fmt.Sprint(v))
	}

	switch req.ResponseType {
	case oauth2.Token:
		u.RawQuery = ""
		fragment, err := url.QueryUnescape(q.Encode())
		if err != nil {
			return "", err
		}
		u.Fragment = fragment
	default:
		u.RawQuery = q.Encode()
	}

	return u.String(), nil
}

// ValidationTokenRequest the token request validation
func (s *Server) ValidationTokenRequest(r *http.Request) (grants.Handler, *oauth2.GrantRequest, error) {
	ctx := r.Context()

	if v := r.Method; !(v == "POST" ||
		(s.Config.AllowGetAccessRequest && v == "GET")) {
		return nil, nil, errors.ErrInvalidRequest
	}

	gt := oauth2.GrantType(r.FormValue("grant_type"))
	if gt.String() == "" {
		return nil, nil, errors.ErrInvalidRequest
	}
	handler, ok := s.GrantHandler(gt)
	if !ok || !handler.SupportsGranting() {
		return nil, nil, errors.ErrUnsupportedGrantType
	}

	scope := s.scopeOrDefault(r.FormValue("scope"))

	cred, found := s.ClientInfoHandler(r)

	var cli oauth2.ClientInfo
	if found {
		validated, err := s.Clients.Validate(ctx, *cred, false)
		if err != nil {
			if handler.ClientCredentialsRequired() {
				return nil, nil, errors.ErrInvalidClient
			}
		} else {
			cli = validated
		}
	} else if handler.ClientCredentialsRequired() {
		return nil, nil, errors.ErrInvalidRequest
	}

	if r.Form == nil {
		_ = r.ParseForm()
	}
	return handler, &oauth2.GrantRequest{
		Client: cli,
		Scope:  scope,
		State:  r.FormValue("state"),
		Form:   r.Form,
	}, nil
}

// HandleTokenRequest token request handling
func (s *Server) HandleTokenRequest(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	handler, req, err := s.ValidationTokenRequest(r)
	if err != nil {
		return s.tokenError(w, err)
	}

	grant, err := handler.Grant(ctx, req)
	if err != nil {
		return s.tokenError(w, err)
	}

	return s.token(w, s.GetTokenData(grant), nil)
}

// GetTokenData token data
func (s *Server) GetTokenData(grant *oauth2.Grant) map[string]interface{} {
	ti := grant.Token
	data := map[string]interface{}{
		"access_token": ti.GetAccess(),
		"token_type":   ti.GetTokenType(),
	}

	if exp := ti.GetAccessExpiresIn(); exp > 0 {
		data["expires_in"] = int64(exp / time.Second)
	}
	if scope := ti.GetScope(); scope != "" {
		data["scope"] = scope
	}
	if refresh := ti.GetRefresh(); refresh != "" {
		data["refresh_token"] = refresh
	}
	if grant.State != "" {
		data["state"] = grant.State
	}

	if fn := s.ExtensionFieldsHandler; fn != nil {
		for k, v := range fn(ti) {
			if _, ok := data[k]; ok {
				continue
			}
			data[k] = v
		}
	}
	return data
}

func (s *Server) tokenError(w http.ResponseWriter, err error) error {
	data, statusCode, header := s.GetErrorData(err)
	return s.token(w, data, header, statusCode)
}

func (s *Server) token(w http.ResponseWriter, data map[string]interface{}, header http.Header, statusCode ...int) error {
	w.Header().Set("Content-Type", "application/json;charset=UTF-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")

	for key := range header {
		w.Header().Set(key, header.Get(key))
	}

	status := http.StatusOK
	if len(statusCode) > 0 && statusCode[0] > 0 {
		status = statusCode[0]
	}

	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// GetErrorData get error response data. Only the closed taxonomy is
// translated; anything else becomes a server error unless the internal
// error handler maps it first.
func (s *Server) GetErrorData(err error) (map[string]interface{}, int, http.Header) {
	var re errors.Response
	if v, ok := errors.Descriptions[err]; ok {
		re.Error = err
		re.Description = v
		re.StatusCode = errors.StatusCodes[err]
	} else {
		if fn := s.InternalErrorHandler; fn != nil {
			if v := fn(err); v != nil {
				re = *v
			}
		}

		if re.Error == nil {
			re.Error = errors.ErrServerError
			re.Description = errors.Descriptions[errors.ErrServerError]
			re.StatusCode = errors.StatusCodes[errors.ErrServerError]
		}
	}

	if fn := s.ResponseErrorHandler; fn != nil {
		fn(&re)
	}

	data := make(map[string]interface{})
	if err := re.Error; err != nil {
		data["error"] = err.Error()
	}
	if v := re.Description; v != "" {
		data["error_description"] = v
	}
	if v := re.URI; v != "" {
		data["error_uri"] = v
	}

	statusCode := http.StatusInternalServerError
	if v := re.StatusCode; v > 0 {
		statusCode = v
	}

	return data, statusCode, re.Header
}

// ValidationBearerToken resolves and validates the bearer token of a
// protected-resource request.
// https://tools.ietf.org/html/rfc6750
func (s *Server) ValidationBearerToken(r *http.Request) (oauth2.TokenInfo, error) {
	access, ok := s.resolveBearer(r)
	if !ok {
		return nil, errors.ErrInvalidAccessToken
	}
	return s.Tokens.Lookup(r.Context(), access)
}

// resolveBearer extracts the token string from the Authorization header.
// A scheme outside the accepted set is treated the same as a missing
// header.
func (s *Server) resolveBearer(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return "", false
	}
	scheme, token, ok := strings.Cut(auth, " ")
	if !ok || token == "" {
		return "", false
	}
	for _, accepted := range s.Config.AcceptedSchemes {
		if strings.EqualFold(scheme, accepted) {
			return strings.TrimSpace(token), true
		}
	}
	return "", false
}

// validateClientRequest authenticates the client of a revoke/introspect
// call.
func (s *Server) validateClientRequest(ctx context.Context, r *http.Request) (oauth2.ClientInfo, error) {
	cred, ok := s.ClientInfoHandler(r)
	if !ok {
		return nil, errors.ErrInvalidClient
	}
	return s.Clients.Validate(ctx, *cred, false)
}

func (s *Server) responseTypeAllowed(rt oauth2.ResponseType) bool {
	for _, allowed := range s.Config.AllowedResponseTypes {
		if rt == allowed {
			return true
		}
	}
	return false
}

func (s *Server) scopeOrDefault(scope string) []string {
	if fields := strings.Fields(scope); len(fields) > 0 {
		return fields
	}
	return s.Config.DefaultScopes
}

// matchRedirectURI accepts the registered URI itself or any URI below it.
func matchRedirectURI(cli oauth2.ClientInfo, redirectURI string) bool {
	registered := cli.GetRedirectURI()
	if registered == "" {
		return false
	}
	return redirectURI == registered ||
		strings.HasPrefix(redirectURI, strings.TrimRight(registered, "/")+"/")
}
