package middleware

import (
	"net/http"
	"strings"

	"titlerate/backend/internal/modules/user/repository"
	"titlerate/backend/internal/permission"
	"titlerate/backend/internal/token"
	"titlerate/backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	userRepo repository.UserRepository
	tokens   *token.Manager
}

func NewAuthMiddleware(userRepo repository.UserRepository, tokens *token.Manager) *AuthMiddleware {
	return &AuthMiddleware{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// resolve loads the identity behind the token. The store is the single
// source of truth for role state; nothing from the claims is cached.
func (m *AuthMiddleware) resolve(c *gin.Context, tokenString string) bool {
	claims, err := m.tokens.Parse(tokenString)
	if err != nil {
		return false
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return false
	}

	user, err := m.userRepo.FindByID(c.Request.Context(), userID)
	if err != nil {
		return false
	}

	c.Set("user", user)
	return true
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required", "kind": "authentication"})
			c.Abort()
			return
		}

		if !m.resolve(c, tokenString) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token", "kind": "authentication"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// OptionalAuth resolves an identity when a token is present and continues
// anonymously otherwise. Used on read-open endpoints.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := bearerToken(c); tokenString != "" {
			m.resolve(c, tokenString)
		}
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := response.CurrentUser(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated", "kind": "authentication"})
			c.Abort()
			return
		}

		if !permission.IsAdmin(user) {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access required", "kind": "authorization"})
			c.Abort()
			return
		}

		c.Next()
	}
}
