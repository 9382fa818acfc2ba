// Package handler はmedicationフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"health_backend/internal/feature/medication/domain/entity"
	"health_backend/internal/feature/medication/transport/http/dto"
	"health_backend/internal/feature/medication/usecase"
	"health_backend/internal/platform/token"
)

// MedicationUsecase は服薬レコード操作のユースケースを定義します。
type MedicationUsecase interface {
	Create(ctx context.Context, userID string, in usecase.CreateMedicationInput) (*entity.Medication, error)
	List(ctx context.Context, userID string) ([]entity.Medication, error)
	Get(ctx context.Context, userID, medID string) (*entity.Medication, error)
	Update(ctx context.Context, userID, medID string, in usecase.UpdateMedicationInput) (*entity.Medication, error)
	Delete(ctx context.Context, userID, medID string) error
}

// MedicationHandler は服薬レコード操作のHTTPリクエストを処理します。
type MedicationHandler struct {
	uc MedicationUsecase
}

// NewMedicationHandler はMedicationHandlerの新しいインスタンスを生成します。
func NewMedicationHandler(uc MedicationUsecase) *MedicationHandler {
	return &MedicationHandler{uc: uc}
}

// Create は服薬レコード登録APIエンドポイントを処理します。
func (h *MedicationHandler) Create(c *gin.Context) {
	var req dto.CreateMedicationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
		return
	}

	m, err := h.uc.Create(c.Request.Context(), token.CurrentUserID(c), usecase.CreateMedicationInput{
		MedName:     req.MedName,
		Dose:        req.Dose,
		Frequency:   req.Frequency,
		DurationEnd: req.DurationEnd,
	})
	if err != nil {
		slog.Error("create medication failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to create medication"})
		return
	}
	c.JSON(http.StatusCreated, m)
}

// List は本人の服薬レコード一覧APIエンドポイントを処理します。
func (h *MedicationHandler) List(c *gin.Context) {
	out, err := h.uc.List(c.Request.Context(), token.CurrentUserID(c))
	if err != nil {
		slog.Error("list medications failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to list medications"})
		return
	}
	c.JSON(http.StatusOK, out)
}

// Get は服薬レコード1件取得APIエンドポイントを処理します。
func (h *MedicationHandler) Get(c *gin.Context) {
	m, err := h.uc.Get(c.Request.Context(), token.CurrentUserID(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// Update は服薬レコードの部分更新APIエンドポイントを処理します。
// リクエストボディで省略されたフィールドは変更されません。
func (h *MedicationHandler) Update(c *gin.Context) {
	var req dto.UpdateMedicationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
		return
	}

	m, err := h.uc.Update(c.Request.Context(), token.CurrentUserID(c), c.Param("id"), usecase.UpdateMedicationInput{
		MedName:     req.MedName,
		Dose:        req.Dose,
		Frequency:   req.Frequency,
		DurationEnd: req.DurationEnd,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// Delete は服薬レコード削除APIエンドポイントを処理します。
func (h *MedicationHandler) Delete(c *gin.Context) {
	if err := h.uc.Delete(c.Request.Context(), token.CurrentUserID(c), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "medication deleted successfully"})
}

// writeError は服薬レコード操作共通のエラーマッピングを行います。
func (h *MedicationHandler) writeError(c *gin.Context, err error) {
	if errors.Is(err, usecase.ErrMedicationNotFound) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "medication not found"})
		return
	}
	slog.Error("medication operation failed", "error", err)
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
}
