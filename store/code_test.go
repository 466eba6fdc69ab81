package store

import (
	"context"
	"testing"
	"time"

	"github.com/bookmarkd/oauth2/errors"
	"github.com/bookmarkd/oauth2/models"
)

func TestCodeStoreConsumeOnce(t *testing.T) {
	ctx := context.Background()
	cs := NewCodeStore(time.Minute)

	cli := &models.Client{ID: "c1", RedirectURI: "http://localhost/cb"}
	ac, err := cs.Generate(ctx, cli, "u1", "http://localhost/cb", []string{"profile"}, "xyz")
	if err != nil {
		t.Fatal(err)
	}
	if ac.Code == "" {
		t.Fatal("empty code")
	}

	got, err := cs.Consume(ctx, ac.Code)
	if err != nil {
		t.Fatal(err)
	}
	if got.ClientID != "c1" || got.UserID != "u1" || got.RedirectURI != "http://localhost/cb" {
		t.Errorf("unexpected code record: %+v", got)
	}

	// one-time use
	if _, err := cs.Consume(ctx, ac.Code); err != errors.ErrInvalidAuthorizeCode {
		t.Errorf("second consume: got %v, want %v", err, errors.ErrInvalidAuthorizeCode)
	}
}

func TestCodeStoreUnknownCode(t *testing.T) {
	cs := NewCodeStore(time.Minute)
	if _, err := cs.Consume(context.Background(), "nope"); err != errors.ErrInvalidAuthorizeCode {
		t.Errorf("got %v, want %v", err, errors.ErrInvalidAuthorizeCode)
	}
}

func TestCodeStoreExpiry(t *testing.T) {
	ctx := context.Background()
	cs := NewCodeStore(time.Minute)

	cli := &models.Client{ID: "c1"}
	ac, err := cs.Generate(ctx, cli, "u1", "http://localhost/cb", nil, "")
	if err != nil {
		t.Fatal(err)
	}
	ac.CreateAt = ac.CreateAt.Add(-2 * time.Minute)

	if _, err := cs.Consume(ctx, ac.Code); err != errors.ErrInvalidAuthorizeCode {
		t.Errorf("expired consume: got %v, want %v", err, errors.ErrInvalidAuthorizeCode)
	}
}
