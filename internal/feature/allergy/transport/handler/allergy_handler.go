// Package handler はallergyフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"health_backend/internal/feature/allergy/domain/entity"
	"health_backend/internal/feature/allergy/transport/http/dto"
	"health_backend/internal/feature/allergy/usecase"
	"health_backend/internal/platform/token"
)

// AllergyUsecase はアレルギー操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはコンシューマー（handler）が定義します。
type AllergyUsecase interface {
	Create(ctx context.Context, userID, allergyName string) (*entity.Allergy, error)
	List(ctx context.Context, userID string) ([]entity.Allergy, error)
	Get(ctx context.Context, userID, allergyID string) (*entity.Allergy, error)
	Delete(ctx context.Context, userID, allergyID string) error
}

// AllergyHandler はアレルギー操作のHTTPリクエストを処理します。
type AllergyHandler struct {
	uc AllergyUsecase
}

// NewAllergyHandler はAllergyHandlerの新しいインスタンスを生成します。
func NewAllergyHandler(uc AllergyUsecase) *AllergyHandler {
	return &AllergyHandler{uc: uc}
}

// Create はアレルギー登録APIエンドポイントを処理します。
func (h *AllergyHandler) Create(c *gin.Context) {
	var req dto.CreateAllergyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
		return
	}

	a, err := h.uc.Create(c.Request.Context(), token.CurrentUserID(c), req.AllergyName)
	if err != nil {
		slog.Error("create allergy failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to create allergy"})
		return
	}
	c.JSON(http.StatusCreated, a)
}

// List は本人のアレルギー一覧APIエンドポイントを処理します。
func (h *AllergyHandler) List(c *gin.Context) {
	out, err := h.uc.List(c.Request.Context(), token.CurrentUserID(c))
	if err != nil {
		slog.Error("list allergies failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to list allergies"})
		return
	}
	c.JSON(http.StatusOK, out)
}

// Get はアレルギー1件取得APIエンドポイントを処理します。
func (h *AllergyHandler) Get(c *gin.Context) {
	a, err := h.uc.Get(c.Request.Context(), token.CurrentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, usecase.ErrAllergyNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "allergy not found"})
			return
		}
		slog.Error("get allergy failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
		return
	}
	c.JSON(http.StatusOK, a)
}

// Delete はアレルギー削除APIエンドポイントを処理します。
func (h *AllergyHandler) Delete(c *gin.Context) {
	err := h.uc.Delete(c.Request.Context(), token.CurrentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, usecase.ErrAllergyNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "allergy not found"})
			return
		}
		slog.Error("delete allergy failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "allergy deleted successfully"})
}
