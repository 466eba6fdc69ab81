package generates

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/bookmarkd/oauth2"
	"github.com/bookmarkd/oauth2/errors"
	"github.com/bookmarkd/oauth2/models"
)

// JWTAccessClaims jwt claims
type JWTAccessClaims struct {
	jwt.RegisteredClaims
	ClientID string `json:"client_id,omitempty"`
	Scope    string `json:"scope,omitempty"` // Space-separated scopes per RFC 6749
}

// NewJWTTokenStore create a stateless token store backed by signed JWTs.
// Lookup verifies the signature and claims instead of hitting storage, so
// issued tokens cannot be revoked; refresh tokens are not supported.
func NewJWTTokenStore(kid string, key []byte, method jwt.SigningMethod, accessTTL time.Duration) *JWTTokenStore {
	return &JWTTokenStore{
		SignedKeyID:  kid,
		SignedKey:    key,
		SignedMethod: method,
		AccessTTL:    accessTTL,
	}
}

// JWTTokenStore implements oauth2.TokenStore with stateless signed tokens.
type JWTTokenStore struct {
	SignedKeyID  string
	SignedKey    []byte
	SignedMethod jwt.SigningMethod
	AccessTTL    time.Duration
}

// Generate mints a signed access token. genRefresh is ignored: a stateless
// store has nowhere to record a refresh token.
func (s *JWTTokenStore) Generate(ctx context.Context, cli oauth2.ClientInfo, userID string, scope []string, genRefresh bool) (oauth2.TokenInfo, error) {
	now := time.Now()
	ti := &models.Token{
		ClientID:        cli.GetID(),
		UserID:          userID,
		Scope:           strings.Join(scope, " "),
		TokenType:       "Bearer",
		AccessCreateAt:  now,
		AccessExpiresIn: s.AccessTTL,
	}

	claims := &JWTAccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			Audience: jwt.ClaimStrings{cli.GetID()},
			Subject:  userID,
			IssuedAt: jwt.NewNumericDate(now),
		},
		ClientID: cli.GetID(),
		Scope:    ti.Scope,
	}
	if s.AccessTTL > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.AccessTTL))
	}

	token := jwt.NewWithClaims(s.SignedMethod, claims)
	if s.SignedKeyID != "" {
		token.Header["kid"] = s.SignedKeyID
	}
	key, err := s.signingKey()
	if err != nil {
		return nil, err
	}
	access, err := token.SignedString(key)
	if err != nil {
		return nil, err
	}
	ti.Access = access
	return ti, nil
}

// Lookup verifies the token signature and expiry and rebuilds the token
// information from its claims.
func (s *JWTTokenStore) Lookup(ctx context.Context, access string) (oauth2.TokenInfo, error) {
	var claims JWTAccessClaims
	token, err := jwt.ParseWithClaims(access, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != s.SignedMethod.Alg() {
			return nil, errors.ErrInvalidAccessToken
		}
		return s.verifyingKey()
	})
	if err != nil || !token.Valid {
		return nil, errors.ErrInvalidAccessToken
	}

	ti := &models.Token{
		ClientID:  claims.ClientID,
		UserID:    claims.Subject,
		Scope:     claims.Scope,
		TokenType: "Bearer",
		Access:    access,
	}
	if claims.IssuedAt != nil {
		ti.AccessCreateAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil && claims.IssuedAt != nil {
		ti.AccessExpiresIn = claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	}
	return ti, nil
}

// Refresh is unsupported: stateless tokens carry no refresh pair.
func (s *JWTTokenStore) Refresh(ctx context.Context, refresh string) (oauth2.TokenInfo, error) {
	return nil, errors.ErrInvalidRefreshToken
}

// LookupRefresh is unsupported.
func (s *JWTTokenStore) LookupRefresh(ctx context.Context, refresh string) (oauth2.TokenInfo, error) {
	return nil, errors.ErrInvalidRefreshToken
}

// RemoveAccess is a no-op: a signed token stays valid until it expires.
func (s *JWTTokenStore) RemoveAccess(ctx context.Context, access string) error {
	return nil
}

// RemoveRefresh is a no-op.
func (s *JWTTokenStore) RemoveRefresh(ctx context.Context, refresh string) error {
	return nil
}

func (s *JWTTokenStore) signingKey() (interface{}, error) {
	switch {
	case s.isEs():
		return jwt.ParseECPrivateKeyFromPEM(s.SignedKey)
	case s.isRsOrPS():
		return jwt.ParseRSAPrivateKeyFromPEM(s.SignedKey)
	case s.isHs():
		return s.SignedKey, nil
	case s.isEd():
		return jwt.ParseEdPrivateKeyFromPEM(s.SignedKey)
	}
	return nil, errors.New("unsupported sign method")
}

func (s *JWTTokenStore) verifyingKey() (interface{}, error) {
	switch {
	case s.isEs():
		return jwt.ParseECPublicKeyFromPEM(s.SignedKey)
	case s.isRsOrPS():
		return jwt.ParseRSAPublicKeyFromPEM(s.SignedKey)
	case s.isHs():
		return s.SignedKey, nil
	case s.isEd():
		return jwt.ParseEdPublicKeyFromPEM(s.SignedKey)
	}
	return nil, errors.New("unsupported sign method")
}

func (s *JWTTokenStore) isEs() bool {
	return strings.HasPrefix(s.SignedMethod.Alg(), "ES")
}

func (s *JWTTokenStore) isRsOrPS() bool {
	isRs := strings.HasPrefix(s.SignedMethod.Alg(), "RS")
	isPs := strings.HasPrefix(s.SignedMethod.Alg(), "PS")
	return isRs || isPs
}

func (s *JWTTokenStore) isHs() bool { return strings.HasPrefix(s.SignedMethod.Alg(), "HS") }
func (s *JWTTokenStore) isEd() bool { return strings.HasPrefix(s.SignedMethod.Alg(), "Ed") }
