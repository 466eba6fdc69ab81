package store

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/tidwall/buntdb"

	"github.com/bookmarkd/oauth2"
	"github.com/bookmarkd/oauth2/errors"
	"github.com/bookmarkd/oauth2/generates"
	"github.com/bookmarkd/oauth2/models"
)

// TokenConfig token store configuration parameters
type TokenConfig struct {
	TokenType  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	// RotateRefresh issues a new refresh token on every refresh.
	RotateRefresh bool
	// RemoveOldRefresh invalidates the consumed refresh token when
	// rotating. Leaving it false keeps the old token reusable; this is a
	// store-level choice, not a protocol guarantee.
	RemoveOldRefresh bool
	// RemoveOldAccess revokes the access token that was paired with the
	// consumed refresh token.
	RemoveOldAccess bool
}

// DefaultTokenConfig rotation enabled, two-hour access tokens
func DefaultTokenConfig() TokenConfig {
	return TokenConfig{
		TokenType:        "Bearer",
		AccessTTL:        time.Hour * 2,
		RefreshTTL:       time.Hour * 24 * 3,
		RotateRefresh:    true,
		RemoveOldRefresh: true,
		RemoveOldAccess:  true,
	}
}

// NewMemoryTokenStore create a buntdb-backed store keeping tokens in
// process memory.
func NewMemoryTokenStore(gen generates.AccessGenerate, cfg TokenConfig) (*TokenStore, error) {
	return NewFileTokenStore(gen, cfg, ":memory:")
}

// NewFileTokenStore create a buntdb-backed store persisting tokens to the
// given file.
func NewFileTokenStore(gen generates.AccessGenerate, cfg TokenConfig, filename string) (*TokenStore, error) {
	db, err := buntdb.Open(filename)
	if err != nil {
		return nil, err
	}
	if cfg.TokenType == "" {
		cfg.TokenType = "Bearer"
	}
	return &TokenStore{db: db, gen: gen, cfg: cfg}, nil
}

// TokenStore token storage backed by buntdb, keyed by access and refresh
// token strings. Entries carry a TTL for garbage collection but expiry is
// still evaluated lazily on lookup.
type TokenStore struct {
	db  *buntdb.DB
	gen generates.AccessGenerate
	cfg TokenConfig
}

// Close close the store
func (ts *TokenStore) Close() error {
	return ts.db.Close()
}

// Generate mints an access token, optionally paired with a refresh token.
func (ts *TokenStore) Generate(ctx context.Context, cli oauth2.ClientInfo, userID string, scope []string, genRefresh bool) (oauth2.TokenInfo, error) {
	now := time.Now()
	ti := &models.Token{
		ClientID:        cli.GetID(),
		UserID:          userID,
		Scope:           strings.Join(scope, " "),
		TokenType:       ts.cfg.TokenType,
		AccessCreateAt:  now,
		AccessExpiresIn: ts.cfg.AccessTTL,
	}
	if genRefresh {
		ti.RefreshCreateAt = now
		ti.RefreshExpiresIn = ts.cfg.RefreshTTL
	}

	access, refresh, err := ts.gen.Token(ctx, &generates.Basic{
		Client:    cli,
		UserID:    userID,
		CreateAt:  now,
		TokenInfo: ti,
	}, genRefresh)
	if err != nil {
		return nil, err
	}
	ti.Access = access
	ti.Refresh = refresh

	if err := ts.save(ti); err != nil {
		return nil, err
	}
	return ti, nil
}

// Lookup resolves an access token string, checking expiry lazily.
func (ts *TokenStore) Lookup(ctx context.Context, access string) (oauth2.TokenInfo, error) {
	ti, err := ts.load(accessKey(access))
	if err != nil {
		return nil, errors.ErrInvalidAccessToken
	}
	if ti.IsExpired() {
		return nil, errors.ErrExpiredAccessToken
	}
	return ti, nil
}

// LookupRefresh resolves a refresh token string without consuming it.
func (ts *TokenStore) LookupRefresh(ctx context.Context, refresh string) (oauth2.TokenInfo, error) {
	ti, err := ts.load(refreshKey(refresh))
	if err != nil {
		return nil, errors.ErrInvalidRefreshToken
	}
	if ti.IsRefreshExpired() {
		return nil, errors.ErrExpiredRefreshToken
	}
	return ti, nil
}

// Refresh exchanges a refresh token for a new token pair per the rotation
// configuration.
func (ts *TokenStore) Refresh(ctx context.Context, refresh string) (oauth2.TokenInfo, error) {
	old, err := ts.load(refreshKey(refresh))
	if err != nil {
		return nil, errors.ErrInvalidRefreshToken
	}
	if old.IsRefreshExpired() {
		return nil, errors.ErrExpiredRefreshToken
	}

	now := time.Now()
	ti := &models.Token{
		ClientID:        old.ClientID,
		UserID:          old.UserID,
		Scope:           old.Scope,
		TokenType:       ts.cfg.TokenType,
		AccessCreateAt:  now,
		AccessExpiresIn: ts.cfg.AccessTTL,
		Refresh:          old.Refresh,
		RefreshCreateAt:  old.RefreshCreateAt,
		RefreshExpiresIn: old.RefreshExpiresIn,
	}

	access, newRefresh, err := ts.gen.Token(ctx, &generates.Basic{
		Client:    &models.Client{ID: old.ClientID},
		UserID:    old.UserID,
		CreateAt:  now,
		TokenInfo: ti,
	}, ts.cfg.RotateRefresh)
	if err != nil {
		return nil, err
	}
	ti.Access = access
	if ts.cfg.RotateRefresh {
		ti.Refresh = newRefresh
		ti.RefreshCreateAt = now
		ti.RefreshExpiresIn = ts.cfg.RefreshTTL
	}

	if ts.cfg.RemoveOldAccess && old.Access != "" {
		_ = ts.RemoveAccess(ctx, old.Access)
	}
	if ts.cfg.RotateRefresh && ts.cfg.RemoveOldRefresh {
		_ = ts.RemoveRefresh(ctx, refresh)
	}

	if err := ts.save(ti); err != nil {
		return nil, err
	}
	return ti, nil
}

// RemoveAccess use the access token to delete the token information
func (ts *TokenStore) RemoveAccess(ctx context.Context, access string) error {
	return ts.remove(accessKey(access))
}

// RemoveRefresh use the refresh token to delete the token information
func (ts *TokenStore) RemoveRefresh(ctx context.Context, refresh string) error {
	return ts.remove(refreshKey(refresh))
}

func (ts *TokenStore) save(ti *models.Token) error {
	jv, err := json.Marshal(ti)
	if err != nil {
		return err
	}
	return ts.db.Update(func(tx *buntdb.Tx) error {
		if _, _, err := tx.Set(accessKey(ti.Access), string(jv), ttlOpts(ti.AccessExpiresIn)); err != nil {
			return err
		}
		if ti.Refresh != "" {
			if _, _, err := tx.Set(refreshKey(ti.Refresh), string(jv), ttlOpts(ti.RefreshExpiresIn)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (ts *TokenStore) load(key string) (*models.Token, error) {
	var jv string
	err := ts.db.View(func(tx *buntdb.Tx) error {
		v, err := tx.Get(key)
		if err != nil {
			return err
		}
		jv = v
		return nil
	})
	if err != nil {
		return nil, err
	}

	var ti models.Token
	if err := json.Unmarshal([]byte(jv), &ti); err != nil {
		return nil, err
	}
	return &ti, nil
}

func (ts *TokenStore) remove(key string) error {
	err := ts.db.Update(func(tx *buntdb.Tx) error {
		_, err := tx.Delete(key)
		return err
	})
	if err == buntdb.ErrNotFound {
		return nil
	}
	return err
}

func accessKey(access string) string   { return "access:" + access }
func refreshKey(refresh string) string { return "refresh:" + refresh }

func ttlOpts(ttl time.Duration) *buntdb.SetOptions {
	if ttl <= 0 {
		return nil
	}
	return &buntdb.SetOptions{Expires: true, TTL: ttl}
}
