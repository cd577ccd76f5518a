package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/application/usecase/session"
	"github.com/carbon-tracker/backend/internal/domain/entity"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
)

type stubGuests struct {
	adapter.GuestStore
	sessions map[string]bool
}

func (s *stubGuests) IsGuest(_ context.Context, id string) (bool, error) {
	return s.sessions[id], nil
}

type stubTokens struct {
	adapter.TokenService
	userID uuid.UUID
}

func (s *stubTokens) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	if token != "good" {
		return nil, domainerror.ErrInvalidToken
	}
	return &adapter.TokenClaims{UserID: s.userID, Email: "ada@example.com"}, nil
}

func newEngine(t *testing.T) (*gin.Engine, uuid.UUID) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	userID := uuid.New()
	resolve := session.NewResolveUseCase(
		&stubGuests{sessions: map[string]bool{"device-1": true}},
		&stubTokens{userID: userID},
	)
	m := NewAuthMiddleware(resolve)

	engine := gin.New()
	engine.Use(m.Resolve())
	engine.GET("/whoami", func(c *gin.Context) {
		GetNotifications(c).Notify(entity.Info("hello", ""))
		c.JSON(http.StatusOK, gin.H{
			"kind":          GetIdentity(c).Kind,
			"notifications": len(GetNotifications(c).Items()),
		})
	})
	engine.GET("/private", m.Authenticate(), func(c *gin.Context) {
		id, ok := GetUserIDFromContext(c)
		require.True(t, ok)
		c.String(http.StatusOK, id.String())
	})
	return engine, userID
}

func TestAuthMiddleware_Resolve(t *testing.T) {
	engine, _ := newEngine(t)

	tests := []struct {
		name   string
		header map[string]string
		kind   string
	}{
		{name: "no credentials", kind: `"none"`},
		{name: "guest flag", header: map[string]string{GuestSessionHeader: "device-1"}, kind: `"guest"`},
		{name: "unknown guest session", header: map[string]string{GuestSessionHeader: "device-2"}, kind: `"none"`},
		{name: "bearer token", header: map[string]string{"Authorization": "Bearer good"}, kind: `"authenticated"`},
		{name: "bad token", header: map[string]string{"Authorization": "Bearer bad"}, kind: `"none"`},
		{name: "guest flag wins", header: map[string]string{GuestSessionHeader: "device-1", "Authorization": "Bearer good"}, kind: `"guest"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), `"kind":`+tt.kind)
			assert.Contains(t, rec.Body.String(), `"notifications":1`)
		})
	}
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	engine, userID := newEngine(t)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/private", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), string(domainerror.ErrCodeMissingToken))

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID.String(), rec.Body.String())
}

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiterWithConfig(2, time.Minute)
	rl.now = func() time.Time { return now }

	engine := gin.New()
	engine.POST("/login", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	call := func() *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
		return rec
	}

	assert.Equal(t, http.StatusOK, call().Code)
	assert.Equal(t, http.StatusOK, call().Code)

	blocked := call()
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Equal(t, "60", blocked.Header().Get("Retry-After"))

	now = now.Add(61 * time.Second)
	assert.Equal(t, http.StatusOK, call().Code)

	now = now.Add(2 * time.Minute)
	rl.Cleanup()
	assert.Empty(t, rl.windows)
}
