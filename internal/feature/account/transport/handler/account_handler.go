// Package handler はaccountフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"health_backend/internal/feature/account/transport/http/dto"
	"health_backend/internal/feature/account/usecase"
	"health_backend/internal/feature/auth/domain/entity"
	"health_backend/internal/platform/token"
)

// AccountUsecase は本人アカウント操作のユースケースを定義します。
type AccountUsecase interface {
	Get(ctx context.Context, userID string) (*entity.User, error)
	Update(ctx context.Context, userID string, in usecase.UpdateAccountInput) (*entity.User, error)
	Delete(ctx context.Context, userID string) error
}

// AccountHandler は本人アカウント操作のHTTPリクエストを処理します。
type AccountHandler struct {
	uc AccountUsecase
}

// NewAccountHandler はAccountHandlerの新しいインスタンスを生成します。
func NewAccountHandler(uc AccountUsecase) *AccountHandler {
	return &AccountHandler{uc: uc}
}

// Get は本人アカウント取得APIエンドポイントを処理します。
func (h *AccountHandler) Get(c *gin.Context) {
	user, err := h.uc.Get(c.Request.Context(), token.CurrentUserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Update は本人プロフィールの部分更新APIエンドポイントを処理します。
func (h *AccountHandler) Update(c *gin.Context) {
	var req dto.UpdateAccountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
		return
	}

	user, err := h.uc.Update(c.Request.Context(), token.CurrentUserID(c), usecase.UpdateAccountInput{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Gender:        req.Gender,
		Nationality:   req.Nationality,
		MaritalStatus: req.MaritalStatus,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Delete はアカウントと配下の医療レコードの削除APIエンドポイントを処理します。
// 発行済みトークンは以後、リクエスト認証の存在チェックで拒否されます。
func (h *AccountHandler) Delete(c *gin.Context) {
	userID := token.CurrentUserID(c)
	if err := h.uc.Delete(c.Request.Context(), userID); err != nil {
		h.writeError(c, err)
		return
	}

	slog.Info("account deleted", "user_id", userID)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "account deleted successfully"})
}

// writeError はアカウント操作共通のエラーマッピングを行います。
func (h *AccountHandler) writeError(c *gin.Context, err error) {
	if errors.Is(err, usecase.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "user not found"})
		return
	}
	slog.Error("account operation failed", "error", err)
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
}
