package store

import (
	"context"
	"testing"

	"github.com/bookmarkd/oauth2"
	"github.com/bookmarkd/oauth2/errors"
	"github.com/bookmarkd/oauth2/models"
)

func newTestClient() *models.Client {
	return &models.Client{
		ID:          "111111",
		Secret:      "11111111",
		RedirectURI: "http://localhost:9094",
		Scopes:      []string{"profile", "shelf:read", "shelf:write"},
	}
}

func TestClientStoreValidate(t *testing.T) {
	ctx := context.Background()
	cs := NewClientStore()
	if err := cs.Set("111111", newTestClient()); err != nil {
		t.Fatal(err)
	}

	cli, err := cs.Validate(ctx, oauth2.ClientCredential{ID: "111111", Secret: "11111111"}, false)
	if err != nil {
		t.Fatal(err)
	}
	if cli.GetID() != "111111" {
		t.Errorf("got client %q", cli.GetID())
	}

	if _, err := cs.Validate(ctx, oauth2.ClientCredential{ID: "111111", Secret: "wrong"}, false); err != errors.ErrInvalidClient {
		t.Errorf("wrong secret: got %v, want %v", err, errors.ErrInvalidClient)
	}
	if _, err := cs.Validate(ctx, oauth2.ClientCredential{ID: "ghost"}, false); err != errors.ErrInvalidClient {
		t.Errorf("unknown client: got %v, want %v", err, errors.ErrInvalidClient)
	}

	// authorize mode identifies the client without its secret
	if _, err := cs.Validate(ctx, oauth2.ClientCredential{ID: "111111"}, true); err != nil {
		t.Errorf("authorize mode: %v", err)
	}
}

func TestHashedClientStoreValidate(t *testing.T) {
	ctx := context.Background()
	cs := NewHashedClientStore()
	if err := cs.Set("111111", newTestClient()); err != nil {
		t.Fatal(err)
	}

	cli, err := cs.GetByID(ctx, "111111")
	if err != nil {
		t.Fatal(err)
	}
	if cli.GetSecret() == "11111111" {
		t.Error("plain secret kept in hashed store")
	}

	if _, err := cs.Validate(ctx, oauth2.ClientCredential{ID: "111111", Secret: "11111111"}, false); err != nil {
		t.Errorf("valid secret rejected: %v", err)
	}
	if _, err := cs.Validate(ctx, oauth2.ClientCredential{ID: "111111", Secret: "wrong"}, false); err != errors.ErrInvalidClient {
		t.Errorf("wrong secret: got %v, want %v", err, errors.ErrInvalidClient)
	}
}

func TestClientStoreValidateScopes(t *testing.T) {
	ctx := context.Background()
	cs := NewClientStore()
	cli := newTestClient()
	_ = cs.Set(cli.ID, cli)

	accepted, err := cs.ValidateScopes(ctx, cli, []string{"profile", "shelf:read"})
	if err != nil {
		t.Fatal(err)
	}
	if len(accepted) != 2 {
		t.Errorf("accepted = %v", accepted)
	}

	if _, err := cs.ValidateScopes(ctx, cli, []string{"profile", "admin"}); err != errors.ErrInvalidScope {
		t.Errorf("unregistered scope: got %v, want %v", err, errors.ErrInvalidScope)
	}

	// empty request is accepted as-is
	if accepted, err := cs.ValidateScopes(ctx, cli, nil); err != nil || len(accepted) != 0 {
		t.Errorf("empty scope: %v %v", accepted, err)
	}
}
