package server

import (
	"net/http"
	"strings"

	"github.com/bookmarkd/oauth2"
	"github.com/bookmarkd/oauth2/errors"
)

// HandleRevocationRequest invalidates a token on behalf of an
// authenticated client. Per RFC 7009 an unknown token still answers 200.
func (s *Server) HandleRevocationRequest(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	if r.Method != "POST" {
		return s.tokenError(w, errors.ErrInvalidRequest)
	}

	cli, err := s.validateClientRequest(ctx, r)
	if err != nil {
		return s.tokenError(w, errors.ErrInvalidClient)
	}

	token := r.FormValue("token")
	if token == "" {
		return s.tokenError(w, errors.ErrInvalidRequest)
	}

	hint := r.FormValue("token_type_hint")
	ti, isRefresh, found := s.lookupEither(r, token, hint)
	if found && ti.GetClientID() == cli.GetID() {
		if isRefresh {
			_ = s.Tokens.RemoveRefresh(ctx, token)
			if access := ti.GetAccess(); access != "" {
				_ = s.Tokens.RemoveAccess(ctx, access)
			}
		} else {
			_ = s.Tokens.RemoveAccess(ctx, token)
		}
	}

	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	return nil
}

// HandleIntrospectionRequest reports the state of a token to an
// authenticated client. https://tools.ietf.org/html/rfc7662
func (s *Server) HandleIntrospectionRequest(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	if r.Method != "POST" {
		return s.tokenError(w, errors.ErrInvalidRequest)
	}

	if _, err := s.validateClientRequest(ctx, r); err != nil {
		return s.tokenError(w, errors.ErrInvalidClient)
	}

	token := r.FormValue("token")
	if token == "" {
		return s.tokenError(w, errors.ErrInvalidRequest)
	}

	ti, isRefresh, found := s.lookupEither(r, token, r.FormValue("token_type_hint"))
	if !found {
		return s.token(w, map[string]interface{}{"active": false}, nil)
	}

	data := map[string]interface{}{
		"active":     true,
		"client_id":  ti.GetClientID(),
		"token_type": ti.GetTokenType(),
	}
	if v := ti.GetUserID(); v != "" {
		data["sub"] = v
		data["username"] = v
	}
	if v := ti.GetScope(); v != "" {
		data["scope"] = v
	}
	if !isRefresh {
		iat := ti.GetAccessCreateAt()
		data["iat"] = iat.Unix()
		if exp := ti.GetAccessExpiresIn(); exp > 0 {
			data["exp"] = iat.Add(exp).Unix()
		}
	}
	return s.token(w, data, nil)
}

// lookupEither resolves a token string against the access and refresh
// namespaces, trying the hinted one first.
func (s *Server) lookupEither(r *http.Request, token, hint string) (oauth2.TokenInfo, bool, bool) {
	ctx := r.Context()

	lookupAccess := func() (oauth2.TokenInfo, bool) {
		ti, err := s.Tokens.Lookup(ctx, token)
		return ti, err == nil
	}
	lookupRefresh := func() (oauth2.TokenInfo, bool) {
		ti, err := s.Tokens.LookupRefresh(ctx, token)
		return ti, err == nil
	}

	if strings.EqualFold(hint, "refresh_token") {
		if ti, ok := lookupRefresh(); ok {
			return ti, true, true
		}
		if ti, ok := lookupAccess(); ok {
			return ti, false, true
		}
		return nil, false, false
	}

	if ti, ok := lookupAccess(); ok {
		return ti, false, true
	}
	if ti, ok := lookupRefresh(); ok {
		return ti, true, true
	}
	return nil, false, false
}
