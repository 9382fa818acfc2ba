package token

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextUserID is the gin context key under which the authenticated
// user's ID is stored.
const ContextUserID = "userID"

// Verifier resolves a bearer token string to a subject ID.
// Following Go convention: interfaces are defined by the consumer.
type Verifier interface {
	Verify(tokenString string) (string, error)
}

// UserResolver checks that an authenticated subject still maps to a live
// account, so a token issued before account deletion stops working at the
// first protected request.
type UserResolver interface {
	Exists(ctx context.Context, userID string) (bool, error)
}

// AuthRequired はJWT検証を行い、認証済みユーザーのみアクセスを許可する
// ginミドルウェアを返します。検証に成功するとユーザーIDをコンテキストへ
// 格納します。
func AuthRequired(verifier Verifier, users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		userID, err := verifier.Verify(tokenStr)
		if err != nil {
			// 期限切れと署名不正はログ上のみ区別する（呼び出し元には同じ401）
			if errors.Is(err, ErrExpiredToken) {
				slog.Warn("token rejected", "reason", "expired", "remote_addr", c.ClientIP())
			} else {
				slog.Warn("token rejected", "reason", "invalid", "remote_addr", c.ClientIP())
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		ok, err := users.Exists(c.Request.Context(), userID)
		if err != nil {
			slog.Error("failed to resolve token subject", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if !ok {
			slog.Warn("token subject no longer exists", "user_id", userID, "remote_addr", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// CurrentUserID extracts the authenticated user's ID set by AuthRequired.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}
