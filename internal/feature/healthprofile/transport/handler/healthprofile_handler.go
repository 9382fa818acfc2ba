// Package handler はhealthprofileフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"health_backend/internal/feature/healthprofile/domain/entity"
	"health_backend/internal/feature/healthprofile/transport/http/dto"
	"health_backend/internal/feature/healthprofile/usecase"
	"health_backend/internal/platform/token"
)

// ProfileUsecase はライフスタイルプロフィール操作のユースケースを定義します。
type ProfileUsecase interface {
	Get(ctx context.Context, userID string) (*entity.HealthProfile, error)
	Upsert(ctx context.Context, userID string, in usecase.UpsertProfileInput) (*entity.HealthProfile, error)
}

// ProfileHandler はライフスタイルプロフィールのHTTPリクエストを処理します。
type ProfileHandler struct {
	uc ProfileUsecase
}

// NewProfileHandler はProfileHandlerの新しいインスタンスを生成します。
func NewProfileHandler(uc ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

// Get はプロフィール取得APIエンドポイントを処理します。未作成なら404を返します。
func (h *ProfileHandler) Get(c *gin.Context) {
	p, err := h.uc.Get(c.Request.Context(), token.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, usecase.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "health profile not found"})
			return
		}
		slog.Error("get health profile failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// Upsert はプロフィール保存APIエンドポイントを処理します。
// 初回は行を作成し、以降は全項目を上書きします。
func (h *ProfileHandler) Upsert(c *gin.Context) {
	var req dto.UpsertProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
		return
	}

	p, err := h.uc.Upsert(c.Request.Context(), token.CurrentUserID(c), usecase.UpsertProfileInput{
		HealthStatus:  req.HealthStatus,
		ActivityLevel: req.ActivityLevel,
		DietaryNotes:  req.DietaryNotes,
		SleepPattern:  req.SleepPattern,
	})
	if err != nil {
		slog.Error("save health profile failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to save health profile"})
		return
	}
	c.JSON(http.StatusOK, p)
}
