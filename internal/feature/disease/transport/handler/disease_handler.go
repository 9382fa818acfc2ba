// Package handler はdiseaseフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"health_backend/internal/feature/disease/domain/entity"
	"health_backend/internal/feature/disease/transport/http/dto"
	"health_backend/internal/feature/disease/usecase"
	"health_backend/internal/platform/token"
)

// DiseaseUsecase は慢性疾患操作のユースケースを定義します。
type DiseaseUsecase interface {
	Create(ctx context.Context, userID, name string, diagnosisDate *time.Time) (*entity.DiseaseView, error)
	List(ctx context.Context, userID string) ([]entity.DiseaseView, error)
	Get(ctx context.Context, userID, diseaseID string) (*entity.DiseaseView, error)
	Delete(ctx context.Context, userID, diseaseID string) error
}

// DiseaseHandler は慢性疾患操作のHTTPリクエストを処理します。
type DiseaseHandler struct {
	uc DiseaseUsecase
}

// NewDiseaseHandler はDiseaseHandlerの新しいインスタンスを生成します。
func NewDiseaseHandler(uc DiseaseUsecase) *DiseaseHandler {
	return &DiseaseHandler{uc: uc}
}

// Create は慢性疾患登録APIエンドポイントを処理します。疾患名は暗号化保存されます。
func (h *DiseaseHandler) Create(c *gin.Context) {
	var req dto.CreateDiseaseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
		return
	}

	v, err := h.uc.Create(c.Request.Context(), token.CurrentUserID(c), req.Name, req.DiagnosisDate)
	if err != nil {
		slog.Error("create disease failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to create disease"})
		return
	}
	c.JSON(http.StatusCreated, v)
}

// List は本人の慢性疾患一覧APIエンドポイントを処理します。
func (h *DiseaseHandler) List(c *gin.Context) {
	out, err := h.uc.List(c.Request.Context(), token.CurrentUserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Get は慢性疾患1件取得APIエンドポイントを処理します。
func (h *DiseaseHandler) Get(c *gin.Context) {
	v, err := h.uc.Get(c.Request.Context(), token.CurrentUserID(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// Delete は慢性疾患削除APIエンドポイントを処理します。
func (h *DiseaseHandler) Delete(c *gin.Context) {
	if err := h.uc.Delete(c.Request.Context(), token.CurrentUserID(c), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "disease deleted successfully"})
}

// writeError は疾患操作共通のエラーマッピングを行います。
// 復号不能（鍵入れ替え・データ破損）は500のデータエラーとして報告します。
func (h *DiseaseHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrDiseaseNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "disease not found"})
	case errors.Is(err, usecase.ErrRecordUnreadable):
		slog.Error("disease record unreadable", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "stored record cannot be read"})
	default:
		slog.Error("disease operation failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
	}
}
