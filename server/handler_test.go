package server

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestParseBasicAuth(t *testing.T) {
	basic := func(payload string) string {
		return "Basic " + base64.StdEncoding.EncodeToString([]byte(payload))
	}

	tests := []struct {
		name   string
		header string
		wantID string
		found  bool
	}{
		{"valid", basic("111111:11111111"), "111111", true},
		{"lowercase scheme", strings.ToLower(basic("111111:11111111")), "111111", true},
		{"empty secret", basic("111111:"), "111111", true},
		{"missing header", "", "", false},
		{"wrong scheme", "Bearer sometoken", "", false},
		{"bad base64", "Basic !!!!", "", false},
		{"missing colon", basic("111111"), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cred, found := parseBasicAuth(tt.header)
			if found != tt.found {
				t.Fatalf("found = %v, want %v", found, tt.found)
			}
			if found && cred.ID != tt.wantID {
				t.Errorf("id = %q, want %q", cred.ID, tt.wantID)
			}
		})
	}
}

func TestClientFormHandler(t *testing.T) {
	r := httptest.NewRequest("POST", "/token", strings.NewReader(url.Values{
		"client_id":     {"111111"},
		"client_secret": {"11111111"},
	}.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	cred, found := ClientFormHandler(r)
	if !found {
		t.Fatal("credential not found")
	}
	if cred.ID != "111111" || cred.Secret != "11111111" {
		t.Errorf("cred = %+v", cred)
	}

	empty := httptest.NewRequest("POST", "/token", nil)
	if _, found := ClientFormHandler(empty); found {
		t.Error("credential reported for empty request")
	}
}

func TestClientBasicOrFormHandlerPrefersBasic(t *testing.T) {
	r := httptest.NewRequest("POST", "/token", strings.NewReader(url.Values{
		"client_id":     {"form-client"},
		"client_secret": {"form-secret"},
	}.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.SetBasicAuth("basic-client", "basic-secret")

	cred, found := ClientBasicOrFormHandler(r)
	if !found {
		t.Fatal("credential not found")
	}
	if cred.ID != "basic-client" {
		t.Errorf("id = %q, want basic-client", cred.ID)
	}
}

func TestResolveBearer(t *testing.T) {
	s := &Server{Config: NewConfig()}

	tests := []struct {
		name   string
		header string
		want   string
		ok     bool
	}{
		{"bearer", "Bearer abc123", "abc123", true},
		{"case-insensitive scheme", "bearer abc123", "abc123", true},
		{"missing header", "", "", false},
		{"unknown scheme", "MAC abc123", "", false},
		{"scheme only", "Bearer", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			got, ok := s.resolveBearer(r)
			if ok != tt.ok || got != tt.want {
				t.Errorf("resolveBearer() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}
