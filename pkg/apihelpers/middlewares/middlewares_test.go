package middlewares

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	jwthandling "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/jwt-handling"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blockedList struct {
	tokens map[string]bool
	err    error
}

func (b *blockedList) IsJwtBlocked(ctx context.Context, token string) (bool, error) {
	if b.err != nil {
		return false, b.err
	}
	return b.tokens[token], nil
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newSessionRouter(t *testing.T, blocked BlockedTokenChecker) (*gin.Engine, *jwthandling.TokenService) {
	t.Helper()
	tokens, err := jwthandling.NewTokenService("middleware-test-key")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/protected", GetAndValidateSessionJWT(tokens, blocked), func(c *gin.Context) {
		claims := c.MustGet(CtxKeyValidatedToken).(*jwthandling.SessionClaims)
		c.JSON(http.StatusOK, gin.H{"id": claims.AccountID})
	})
	return r, tokens
}

func doGet(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set(HeaderAuthorization, authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetAndValidateSessionJWT(t *testing.T) {
	t.Run("missing header", func(t *testing.T) {
		r, _ := newSessionRouter(t, nil)
		w := doGet(r, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		r, tokens := newSessionRouter(t, &blockedList{})
		token, err := tokens.GenerateSessionToken("acc-1", time.Hour)
		require.NoError(t, err)

		w := doGet(r, "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "acc-1")
	})

	t.Run("expired token", func(t *testing.T) {
		r, tokens := newSessionRouter(t, nil)
		token, err := tokens.GenerateSessionToken("acc-1", -time.Minute)
		require.NoError(t, err)

		w := doGet(r, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "token expired")
	})

	t.Run("verification token is rejected", func(t *testing.T) {
		r, tokens := newSessionRouter(t, nil)
		token, err := tokens.GenerateVerificationToken("a@x.com", "123456", time.Hour)
		require.NoError(t, err)

		w := doGet(r, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("logged out token", func(t *testing.T) {
		blocked := &blockedList{tokens: map[string]bool{}}
		r, tokens := newSessionRouter(t, blocked)
		token, err := tokens.GenerateSessionToken("acc-1", time.Hour)
		require.NoError(t, err)
		blocked.tokens[token] = true

		w := doGet(r, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "logged out")
	})

	t.Run("blocked list unavailable", func(t *testing.T) {
		r, tokens := newSessionRouter(t, &blockedList{err: errors.New("db down")})
		token, err := tokens.GenerateSessionToken("acc-1", time.Hour)
		require.NoError(t, err)

		w := doGet(r, "Bearer "+token)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "db down")
	})
}

func TestRequirePayload(t *testing.T) {
	r := gin.New()
	r.POST("/p", RequirePayload(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	t.Run("empty body", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/p", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("with body", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/p", strings.NewReader(`{"a":1}`)))
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(CtxKeyRequestID))
	})

	t.Run("generated when absent", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		id := w.Header().Get(HeaderRequestID)
		assert.NotEmpty(t, id)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("propagated when present", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderRequestID, "abc123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "abc123", w.Header().Get(HeaderRequestID))
	})
}

func TestHasValidAPIKey(t *testing.T) {
	r := gin.New()
	r.POST("/send", HasValidAPIKey([]string{"key-1", "key-2"}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	tests := []struct {
		name   string
		keys   []string
		status int
	}{
		{"missing", nil, http.StatusUnauthorized},
		{"wrong", []string{"nope"}, http.StatusUnauthorized},
		{"valid", []string{"key-2"}, http.StatusOK},
		{"one of several", []string{"nope", "key-1"}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/send", nil)
			for _, k := range tt.keys {
				req.Header.Add(HeaderAPIKey, k)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}

	t.Run("empty configured key never matches", func(t *testing.T) {
		r := gin.New()
		r.POST("/send", HasValidAPIKey([]string{""}), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		req := httptest.NewRequest(http.MethodPost, "/send", nil)
		req.Header.Set(HeaderAPIKey, "")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
