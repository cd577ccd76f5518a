// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/carbon-tracker/backend/internal/application/usecase/session"
	"github.com/carbon-tracker/backend/internal/domain/entity"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
	"github.com/carbon-tracker/backend/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

const (
	// IdentityKey is the context key for the resolved identity.
	IdentityKey ContextKey = "identity"
	// NotificationsKey is the context key for the request's notification collector.
	NotificationsKey ContextKey = "notifications"
)

// GuestSessionHeader carries the device session id of a guest.
const GuestSessionHeader = "X-Guest-Session"

// AuthMiddleware resolves the identity of every request.
type AuthMiddleware struct {
	resolveUseCase *session.ResolveUseCase
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(resolveUseCase *session.ResolveUseCase) *AuthMiddleware {
	return &AuthMiddleware{
		resolveUseCase: resolveUseCase,
	}
}

// Resolve stores the identity and a notification collector in the context.
// It never rejects a request; anonymous callers get an anonymous identity.
func (m *AuthMiddleware) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := m.resolveUseCase.Execute(c.Request.Context(), session.ResolveInput{
			GuestSessionID: strings.TrimSpace(c.GetHeader(GuestSessionHeader)),
			AccessToken:    BearerToken(c),
		})

		c.Set(string(IdentityKey), identity)
		c.Set(string(NotificationsKey), &NotificationCollector{})
		c.Next()
	}
}

// Authenticate rejects requests without a signed-in user. It must run after Resolve.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetIdentity(c).IsAuthenticated() {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Authentication required",
				Code:  string(domainerror.ErrCodeMissingToken),
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// BearerToken returns the token of an "Authorization: Bearer" header.
func BearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}

// GetIdentity returns the identity resolved for the request.
func GetIdentity(c *gin.Context) entity.Identity {
	v, exists := c.Get(string(IdentityKey))
	if !exists {
		return entity.AnonymousIdentity()
	}
	identity, ok := v.(entity.Identity)
	if !ok {
		return entity.AnonymousIdentity()
	}
	return identity
}

// GetUserIDFromContext extracts the signed-in user's ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	identity := GetIdentity(c)
	if !identity.IsAuthenticated() {
		return uuid.Nil, false
	}
	return identity.UserID, true
}
