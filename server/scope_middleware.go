package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ScopeRequirement represents a scope requirement for an endpoint
type ScopeRequirement struct {
	Required []string // Required scopes (OR logic - user needs at least one)
	All      []string // All required scopes (AND logic - user needs all)
}

// RequireScope creates a middleware that enforces OAuth 2.0 scopes on the
// principal set by TokenMiddleware. A missing principal answers 401; a
// valid token without the required scopes answers 403 with an
// insufficient_scope challenge.
func (s *Server) RequireScope(requirement ScopeRequirement) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get("token_info"); !exists {
			c.Header("WWW-Authenticate", fmt.Sprintf("Bearer realm=%q", s.Config.Realm))
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":             "unauthorized",
				"error_description": "missing access token",
			})
			c.Abort()
			return
		}

		userScopes := GetScopesFromContext(c)
		if !hasRequiredScopes(userScopes, requirement) {
			needed := strings.Join(getAllRequiredScopes(requirement), " ")
			c.Header("WWW-Authenticate",
				fmt.Sprintf("Bearer realm=%q, error=\"insufficient_scope\", scope=%q", s.Config.Realm, needed))
			c.JSON(http.StatusForbidden, gin.H{
				"error":             "insufficient_scope",
				"error_description": "token lacks required scope",
				"scope":             needed,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// hasRequiredScopes checks if user has required scopes
func hasRequiredScopes(userScopes []string, requirement ScopeRequirement) bool {
	userScopeMap := make(map[string]bool)
	for _, scope := range userScopes {
		userScopeMap[scope] = true
	}

	// "All" requirement (AND logic) - user must have ALL listed scopes
	for _, requiredScope := range requirement.All {
		if !userScopeMap[requiredScope] {
			return false
		}
	}

	// "Required" requirement (OR logic) - user must have at least ONE scope
	if len(requirement.Required) > 0 {
		hasAny := false
		for _, requiredScope := range requirement.Required {
			if userScopeMap[requiredScope] {
				hasAny = true
				break
			}
		}
		if !hasAny {
			return false
		}
	}

	return true
}

// getAllRequiredScopes returns all scopes mentioned in the requirement
func getAllRequiredScopes(requirement ScopeRequirement) []string {
	seen := make(map[string]bool)

	result := make([]string, 0, len(requirement.All)+len(requirement.Required))
	for _, scope := range append(append([]string{}, requirement.All...), requirement.Required...) {
		if !seen[scope] {
			seen[scope] = true
			result = append(result, scope)
		}
	}

	return result
}

// RequireAnyScope requires at least one of the specified scopes
func (s *Server) RequireAnyScope(scopes ...string) gin.HandlerFunc {
	return s.RequireScope(ScopeRequirement{Required: scopes})
}

// RequireAllScopes requires all of the specified scopes
func (s *Server) RequireAllScopes(scopes ...string) gin.HandlerFunc {
	return s.RequireScope(ScopeRequirement{All: scopes})
}
