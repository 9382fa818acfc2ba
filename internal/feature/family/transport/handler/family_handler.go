// Package handler はfamilyフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"health_backend/internal/feature/family/domain/entity"
	"health_backend/internal/feature/family/transport/http/dto"
	"health_backend/internal/feature/family/usecase"
	"health_backend/internal/platform/token"
)

// FamilyUsecase は家族リンク操作のユースケースを定義します。
type FamilyUsecase interface {
	Link(ctx context.Context, userID, codeNumber, relation string) (*entity.FamilyMemberView, error)
	List(ctx context.Context, userID string) ([]entity.FamilyMemberView, error)
	Get(ctx context.Context, userID, familyID string) (*entity.FamilyMemberView, error)
	Unlink(ctx context.Context, userID, familyID string) error
}

// FamilyHandler は家族リンク操作のHTTPリクエストを処理します。
type FamilyHandler struct {
	uc FamilyUsecase
}

// NewFamilyHandler はFamilyHandlerの新しいインスタンスを生成します。
func NewFamilyHandler(uc FamilyUsecase) *FamilyHandler {
	return &FamilyHandler{uc: uc}
}

// Link は家族リンク作成APIエンドポイントを処理します。
// - 未知のコード番号は404
// - 自己リンク・二重リンクは400
func (h *FamilyHandler) Link(c *gin.Context) {
	var req dto.LinkFamilyMemberReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
		return
	}

	v, err := h.uc.Link(c.Request.Context(), token.CurrentUserID(c), req.CodeNumber, req.Relation)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrCodeNumberNotFound):
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "no account with that code number"})
		case errors.Is(err, usecase.ErrSelfLink):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "cannot link your own account"})
		case errors.Is(err, usecase.ErrDuplicateLink):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "account is already linked"})
		default:
			slog.Error("link family member failed", "error", err)
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to link family member"})
		}
		return
	}
	c.JSON(http.StatusCreated, v)
}

// List は本人の家族リンク一覧APIエンドポイントを処理します。
func (h *FamilyHandler) List(c *gin.Context) {
	out, err := h.uc.List(c.Request.Context(), token.CurrentUserID(c))
	if err != nil {
		slog.Error("list family members failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to list family members"})
		return
	}
	c.JSON(http.StatusOK, out)
}

// Get は家族リンク1件取得APIエンドポイントを処理します。
func (h *FamilyHandler) Get(c *gin.Context) {
	v, err := h.uc.Get(c.Request.Context(), token.CurrentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, usecase.ErrFamilyMemberNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "family member not found"})
			return
		}
		slog.Error("get family member failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
		return
	}
	c.JSON(http.StatusOK, v)
}

// Unlink は家族リンク解除APIエンドポイントを処理します。
func (h *FamilyHandler) Unlink(c *gin.Context) {
	if err := h.uc.Unlink(c.Request.Context(), token.CurrentUserID(c), c.Param("id")); err != nil {
		if errors.Is(err, usecase.ErrFamilyMemberNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "family member not found"})
			return
		}
		slog.Error("unlink family member failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "family member removed successfully"})
}
