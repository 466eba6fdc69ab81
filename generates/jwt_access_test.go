package generates

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bookmarkd/oauth2/errors"
	"github.com/bookmarkd/oauth2/models"
)

func TestJWTTokenStore(t *testing.T) {
	ctx := context.Background()
	ts := NewJWTTokenStore("kid-1", []byte("00000000"), jwt.SigningMethodHS512, time.Hour)

	cli := &models.Client{ID: "111111"}
	ti, err := ts.Generate(ctx, cli, "u1", []string{"profile", "shelf:read"}, false)
	if err != nil {
		t.Fatal(err)
	}
	if ti.GetAccess() == "" {
		t.Fatal("empty access token")
	}

	got, err := ts.Lookup(ctx, ti.GetAccess())
	if err != nil {
		t.Fatal(err)
	}
	if got.GetClientID() != "111111" {
		t.Errorf("client_id = %q", got.GetClientID())
	}
	if got.GetUserID() != "u1" {
		t.Errorf("user_id = %q", got.GetUserID())
	}
	if got.GetScope() != "profile shelf:read" {
		t.Errorf("scope = %q", got.GetScope())
	}
	if got.GetAccessExpiresIn() != time.Hour {
		t.Errorf("expires_in = %v", got.GetAccessExpiresIn())
	}
}

func TestJWTTokenStoreRejectsBadSignature(t *testing.T) {
	ctx := context.Background()
	ts := NewJWTTokenStore("", []byte("00000000"), jwt.SigningMethodHS512, time.Hour)

	other := NewJWTTokenStore("", []byte("11111111"), jwt.SigningMethodHS512, time.Hour)
	ti, err := other.Generate(ctx, &models.Client{ID: "c"}, "u", nil, false)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ts.Lookup(ctx, ti.GetAccess()); err != errors.ErrInvalidAccessToken {
		t.Errorf("got %v, want %v", err, errors.ErrInvalidAccessToken)
	}
	if _, err := ts.Lookup(ctx, "not-a-jwt"); err != errors.ErrInvalidAccessToken {
		t.Errorf("got %v, want %v", err, errors.ErrInvalidAccessToken)
	}
}

func TestJWTTokenStoreExpiry(t *testing.T) {
	ctx := context.Background()
	ts := NewJWTTokenStore("", []byte("00000000"), jwt.SigningMethodHS512, time.Millisecond)

	ti, err := ts.Generate(ctx, &models.Client{ID: "c"}, "u", nil, false)
	if err != nil {
		t.Fatal(err)
	}

	time.Sleep(5 * time.Millisecond)
	if _, err := ts.Lookup(ctx, ti.GetAccess()); err != errors.ErrInvalidAccessToken {
		t.Errorf("expired token: got %v, want %v", err, errors.ErrInvalidAccessToken)
	}
}

func TestJWTTokenStoreNoRefreshSupport(t *testing.T) {
	ctx := context.Background()
	ts := NewJWTTokenStore("", []byte("00000000"), jwt.SigningMethodHS512, time.Hour)

	if _, err := ts.Refresh(ctx, "anything"); err != errors.ErrInvalidRefreshToken {
		t.Errorf("got %v, want %v", err, errors.ErrInvalidRefreshToken)
	}
	if _, err := ts.LookupRefresh(ctx, "anything"); err != errors.ErrInvalidRefreshToken {
		t.Errorf("got %v, want %v", err, errors.ErrInvalidRefreshToken)
	}
}
