package models

import (
	"testing"
	"time"
)

func TestTokenExpiry(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		token   Token
		expired bool
	}{
		{
			name: "fresh access token",
			token: Token{
				AccessCreateAt:  now,
				AccessExpiresIn: time.Hour,
			},
			expired: false,
		},
		{
			name: "expired access token",
			token: Token{
				AccessCreateAt:  now.Add(-2 * time.Hour),
				AccessExpiresIn: time.Hour,
			},
			expired: true,
		},
		{
			name: "no lifetime never expires",
			token: Token{
				AccessCreateAt: now.Add(-24 * 365 * time.Hour),
			},
			expired: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.token.IsExpired(); got != tt.expired {
				t.Errorf("IsExpired() = %v, want %v", got, tt.expired)
			}
		})
	}
}

func TestTokenRefreshExpiry(t *testing.T) {
	now := time.Now()

	fresh := Token{RefreshCreateAt: now, RefreshExpiresIn: time.Hour}
	if fresh.IsRefreshExpired() {
		t.Error("fresh refresh token reported expired")
	}

	stale := Token{RefreshCreateAt: now.Add(-2 * time.Hour), RefreshExpiresIn: time.Hour}
	if !stale.IsRefreshExpired() {
		t.Error("stale refresh token not reported expired")
	}

	forever := Token{RefreshCreateAt: now.Add(-1000 * time.Hour)}
	if forever.IsRefreshExpired() {
		t.Error("refresh token without lifetime reported expired")
	}
}
