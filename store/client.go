package store

import (
	"context"
	"crypto/subtle"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/bookmarkd/oauth2"
	"github.com/bookmarkd/oauth2/errors"
)

// NewClientStore create client store (memory)
func NewClientStore() *ClientStore {
	return &ClientStore{
		data: make(map[string]oauth2.ClientInfo),
	}
}

// NewHashedClientStore creates a client store whose secrets are kept as
// bcrypt hashes. Intended for config-driven client tables where the plain
// secret should not live in memory.
func NewHashedClientStore() *ClientStore {
	return &ClientStore{
		data:   make(map[string]oauth2.ClientInfo),
		hashed: true,
	}
}

// ClientStore client information store (in-memory)
type ClientStore struct {
	sync.RWMutex
	data   map[string]oauth2.ClientInfo
	hashed bool
}

// GetByID according to the ID for the client information
func (cs *ClientStore) GetByID(ctx context.Context, id string) (oauth2.ClientInfo, error) {
	cs.RLock()
	defer cs.RUnlock()

	if c, ok := cs.data[id]; ok {
		return c, nil
	}
	return nil, errors.ErrInvalidClient
}

// Set set client information. In a hashed store the secret is replaced by
// its bcrypt hash before the client is kept.
func (cs *ClientStore) Set(id string, cli oauth2.ClientInfo) error {
	cs.Lock()
	defer cs.Unlock()

	if cs.hashed && cli.GetSecret() != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(cli.GetSecret()), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		cli = &hashedClient{ClientInfo: cli, secretHash: string(hash)}
	}
	cs.data[id] = cli
	return nil
}

// Validate checks a supplied credential. In authorize mode only the client
// id is required; otherwise the secret must match.
func (cs *ClientStore) Validate(ctx context.Context, cred oauth2.ClientCredential, authorize bool) (oauth2.ClientInfo, error) {
	cli, err := cs.GetByID(ctx, cred.ID)
	if err != nil {
		return nil, err
	}
	if authorize {
		return cli, nil
	}

	if hc, ok := cli.(*hashedClient); ok {
		if bcrypt.CompareHashAndPassword([]byte(hc.secretHash), []byte(cred.Secret)) != nil {
			return nil, errors.ErrInvalidClient
		}
		return cli, nil
	}
	if subtle.ConstantTimeCompare([]byte(cli.GetSecret()), []byte(cred.Secret)) != 1 {
		return nil, errors.ErrInvalidClient
	}
	return cli, nil
}

// ValidateScopes returns the accepted scope set. Every requested scope must
// be registered on the client; any other scope is an invalid_scope error,
// never silently dropped.
func (cs *ClientStore) ValidateScopes(ctx context.Context, cli oauth2.ClientInfo, scope []string) ([]string, error) {
	granted := make(map[string]struct{})
	for _, s := range cli.GetScopes() {
		granted[s] = struct{}{}
	}

	accepted := make([]string, 0, len(scope))
	for _, s := range scope {
		if _, ok := granted[s]; !ok {
			return nil, errors.ErrInvalidScope
		}
		accepted = append(accepted, s)
	}
	return accepted, nil
}

// hashedClient wraps a client whose secret is stored hashed. GetSecret
// returns the hash, never the plain secret.
type hashedClient struct {
	oauth2.ClientInfo
	secretHash string
}

func (c *hashedClient) GetSecret() string {
	return c.secretHash
}
