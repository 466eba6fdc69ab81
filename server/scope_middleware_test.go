package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/bookmarkd/oauth2/models"
)

func TestHasRequiredScopes(t *testing.T) {
	tests := []struct {
		name        string
		userScopes  []string
		requirement ScopeRequirement
		want        bool
	}{
		{"no requirement", []string{"profile"}, ScopeRequirement{}, true},
		{"any: has one", []string{"profile"}, ScopeRequirement{Required: []string{"profile", "shelf:read"}}, true},
		{"any: has none", []string{"shelf:write"}, ScopeRequirement{Required: []string{"profile", "shelf:read"}}, false},
		{"all: has all", []string{"profile", "shelf:read"}, ScopeRequirement{All: []string{"profile", "shelf:read"}}, true},
		{"all: missing one", []string{"profile"}, ScopeRequirement{All: []string{"profile", "shelf:read"}}, false},
		{"empty user scopes", nil, ScopeRequirement{Required: []string{"profile"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hasRequiredScopes(tt.userScopes, tt.requirement); got != tt.want {
				t.Errorf("hasRequiredScopes() = %v, want %v", got, tt.want)
			}
		})
	}
}

func scopeTestRouter(s *Server, scopes []string, requirement ScopeRequirement) *gin.Engine {
	r := gin.New()
	r.GET("/protected",
		func(c *gin.Context) {
			// stand-in for TokenMiddleware
			c.Set("token_info", &models.Token{Scope: "irrelevant"})
			c.Set("user_scopes", scopes)
		},
		s.RequireScope(requirement),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})
	return r
}

func TestRequireScope(t *testing.T) {
	s := &Server{Config: NewConfig()}

	t.Run("sufficient scope passes", func(t *testing.T) {
		r := scopeTestRouter(s, []string{"profile"}, ScopeRequirement{Required: []string{"profile"}})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})

	t.Run("insufficient scope answers 403 with challenge", func(t *testing.T) {
		r := scopeTestRouter(s, []string{"shelf:read"}, ScopeRequirement{Required: []string{"profile"}})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
		if w.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", w.Code)
		}
		if h := w.Header().Get("WWW-Authenticate"); h == "" {
			t.Error("missing WWW-Authenticate challenge")
		}
	})

	t.Run("missing principal answers 401", func(t *testing.T) {
		r := gin.New()
		r.GET("/protected", s.RequireScope(ScopeRequirement{Required: []string{"profile"}}), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})
}
