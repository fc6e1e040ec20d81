package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"eventstaff_backend/internal/appErrors"
	"eventstaff_backend/internal/auth"
	"eventstaff_backend/internal/logger"
	"eventstaff_backend/internal/middleware"
	"eventstaff_backend/internal/services"
	"eventstaff_backend/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubAuthService accepts exactly one token.
type stubAuthService struct {
	services.AuthService
	token   string
	session *auth.Session
}

func (s *stubAuthService) Authenticate(_ *gorm.DB, token string) (*auth.Session, error) {
	if token != s.token {
		return nil, appErrors.ErrInvalidToken
	}
	return s.session, nil
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body.Error.Code
}

func TestAuthMiddleware(t *testing.T) {
	db := testutil.NewDB(t)
	svc := &stubAuthService{
		token:   "good-token",
		session: &auth.Session{ID: "s1", UserID: "user-1"},
	}

	router := gin.New()
	router.Use(middleware.DBMiddleware(db))
	router.GET("/me", middleware.AuthMiddleware(svc), func(c *gin.Context) {
		session, ok := auth.FromContext(c.Request.Context())
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{
			"session_id": session.ID,
			"log_user":   logger.GetUserID(c.Request.Context()),
		})
	})

	tests := []struct {
		name   string
		header string
		status int
		code   string
	}{
		{name: "missing header", header: "", status: http.StatusUnauthorized, code: "UNAUTHORIZED"},
		{name: "not a bearer token", header: "Basic dXNlcjpwYXNz", status: http.StatusUnauthorized, code: "UNAUTHORIZED"},
		{name: "unknown token", header: "Bearer bad-token", status: http.StatusUnauthorized, code: "INVALID_TOKEN"},
		{name: "valid token", header: "Bearer good-token", status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, tt.status, w.Code, w.Body.String())
			if tt.code != "" {
				assert.Equal(t, tt.code, errorCode(t, w))
				return
			}
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "s1", body["session_id"])
			assert.Equal(t, "user-1", body["log_user"])
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	router := gin.New()
	router.POST("/auth/signin", middleware.RateLimitMiddleware(0.001, 2), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	send := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/auth/signin", nil)
		req.RemoteAddr = ip + ":40000"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, send("10.0.0.1").Code)

	w := send("10.0.0.1")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "TOO_MANY_REQUESTS", errorCode(t, w))

	assert.Equal(t, http.StatusOK, send("10.0.0.2").Code, "buckets are per client IP")
}

func TestRequestIDMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(middleware.RequestIDMiddleware())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, logger.GetRequestID(c.Request.Context()))
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "req-123", w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	generated := w.Header().Get("X-Request-ID")
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, w.Body.String())
}
