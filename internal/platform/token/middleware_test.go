package token

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockResolver is a mock implementation of the UserResolver interface.
type mockResolver struct {
	ExistsFunc func(ctx context.Context, userID string) (bool, error)
}

func (m *mockResolver) Exists(ctx context.Context, userID string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, userID)
	}
	return true, nil
}

func setupProtectedRouter(t *testing.T, verifier Verifier, users UserResolver) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/protected", AuthRequired(verifier, users), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": CurrentUserID(c)})
	})
	return r
}

func TestAuthRequired(t *testing.T) {
	t.Parallel()

	issuer := NewIssuer("test-secret", 30*time.Minute)

	t.Run("valid token passes and sets user ID", func(t *testing.T) {
		t.Parallel()
		tok, err := issuer.Issue("user-42")
		require.NoError(t, err)

		r := setupProtectedRouter(t, issuer, &mockResolver{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "user-42")
	})

	t.Run("missing header is 401", func(t *testing.T) {
		t.Parallel()
		r := setupProtectedRouter(t, issuer, &mockResolver{})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header is 401", func(t *testing.T) {
		t.Parallel()
		r := setupProtectedRouter(t, issuer, &mockResolver{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Token abc")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token is 401", func(t *testing.T) {
		t.Parallel()
		tok, err := issuer.IssueWithTTL("user-42", -time.Minute)
		require.NoError(t, err)

		r := setupProtectedRouter(t, issuer, &mockResolver{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token of deleted user is 401", func(t *testing.T) {
		t.Parallel()
		tok, err := issuer.Issue("user-gone")
		require.NoError(t, err)

		users := &mockResolver{
			ExistsFunc: func(ctx context.Context, userID string) (bool, error) {
				return false, nil
			},
		}
		r := setupProtectedRouter(t, issuer, users)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
