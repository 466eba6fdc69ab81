package store

import (
	"context"
	"encoding/base64"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bookmarkd/oauth2"
	"github.com/bookmarkd/oauth2/errors"
)

// NewCodeStore create authorization code store (memory). Codes live for ttl
// and are removed on consumption; expiry is checked lazily at consume time,
// so multiple requests racing to redeem the same code see exactly one
// winner.
func NewCodeStore(ttl time.Duration) *CodeStore {
	return &CodeStore{
		ttl:  ttl,
		data: make(map[string]*oauth2.AuthorizationCode),
	}
}

// CodeStore one-time authorization code store (in-memory)
type CodeStore struct {
	mu   sync.Mutex
	ttl  time.Duration
	data map[string]*oauth2.AuthorizationCode
}

// Generate issues a new one-time code bound to the client, user, redirect
// URI and scope set of the authorization request.
func (cs *CodeStore) Generate(ctx context.Context, cli oauth2.ClientInfo, userID, redirectURI string, scope []string, state string) (*oauth2.AuthorizationCode, error) {
	code := &oauth2.AuthorizationCode{
		Code:        newCode(),
		ClientID:    cli.GetID(),
		UserID:      userID,
		RedirectURI: redirectURI,
		Scope:       scope,
		State:       state,
		CreateAt:    time.Now(),
		ExpiresIn:   cs.ttl,
	}

	cs.mu.Lock()
	cs.data[code.Code] = code
	cs.mu.Unlock()
	return code, nil
}

// Consume removes and returns the code. Unknown, already-consumed and
// expired codes all report invalid authorize code.
func (cs *CodeStore) Consume(ctx context.Context, code string) (*oauth2.AuthorizationCode, error) {
	cs.mu.Lock()
	ac, ok := cs.data[code]
	if ok {
		delete(cs.data, code)
	}
	cs.mu.Unlock()

	if !ok || ac.IsExpired() {
		return nil, errors.ErrInvalidAuthorizeCode
	}
	return ac, nil
}

func newCode() string {
	code := base64.URLEncoding.EncodeToString([]byte(uuid.NewString()))
	return strings.ToUpper(strings.TrimRight(code, "="))
}
