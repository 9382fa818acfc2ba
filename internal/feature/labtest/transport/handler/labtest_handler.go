// Package handler はlabtestフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"health_backend/internal/feature/labtest/domain/entity"
	"health_backend/internal/feature/labtest/transport/http/dto"
	"health_backend/internal/feature/labtest/usecase"
	"health_backend/internal/platform/token"
)

// LabTestUsecase は検査レコード・画像解析のユースケースを定義します。
type LabTestUsecase interface {
	Create(ctx context.Context, userID, testType, imageURL string) (*entity.LabScanTest, error)
	List(ctx context.Context, userID, testType string) ([]entity.LabScanTest, error)
	Get(ctx context.Context, userID, testID string) (*entity.LabScanTest, error)
	Delete(ctx context.Context, userID, testID string) error
	Analyze(ctx context.Context, imageData []byte) (*entity.ScanAnalysis, error)
}

// LabTestHandler は検査レコード・画像解析のHTTPリクエストを処理します。
type LabTestHandler struct {
	uc LabTestUsecase
}

// NewLabTestHandler はLabTestHandlerの新しいインスタンスを生成します。
func NewLabTestHandler(uc LabTestUsecase) *LabTestHandler {
	return &LabTestHandler{uc: uc}
}

// Create は検査レコード登録APIエンドポイントを処理します。
func (h *LabTestHandler) Create(c *gin.Context) {
	var req dto.CreateTestReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
		return
	}

	l, err := h.uc.Create(c.Request.Context(), token.CurrentUserID(c), req.TestType, req.ImageURL)
	if err != nil {
		slog.Error("create test record failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to create test record"})
		return
	}
	c.JSON(http.StatusCreated, l)
}

// List は検査レコード一覧APIエンドポイントを処理します。
// ?test_type=Lab|Scan で絞り込めます。
func (h *LabTestHandler) List(c *gin.Context) {
	testType := c.Query("test_type")
	switch testType {
	case "", entity.TypeLab, entity.TypeScan:
	default:
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "test_type must be Lab or Scan"})
		return
	}

	out, err := h.uc.List(c.Request.Context(), token.CurrentUserID(c), testType)
	if err != nil {
		slog.Error("list test records failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to list test records"})
		return
	}
	c.JSON(http.StatusOK, out)
}

// Get は検査レコード1件取得APIエンドポイントを処理します。
func (h *LabTestHandler) Get(c *gin.Context) {
	l, err := h.uc.Get(c.Request.Context(), token.CurrentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, usecase.ErrTestNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "test record not found"})
			return
		}
		slog.Error("get test record failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
		return
	}
	c.JSON(http.StatusOK, l)
}

// Delete は検査レコード削除APIエンドポイントを処理します。
func (h *LabTestHandler) Delete(c *gin.Context) {
	if err := h.uc.Delete(c.Request.Context(), token.CurrentUserID(c), c.Param("id")); err != nil {
		if errors.Is(err, usecase.ErrTestNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "test record not found"})
			return
		}
		slog.Error("delete test record failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "test record deleted successfully"})
}

// Analyze はレポート画像をアップロードしてOCRと要約を実行します。
//
// エンドポイント: POST /tests/analyze
// Content-Type: multipart/form-data
// フィールド: image（画像ファイル、最大10MB）
func (h *LabTestHandler) Analyze(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		slog.Warn("image file missing from analyze request", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "image file is required"})
		return
	}

	f, err := file.Open()
	if err != nil {
		slog.Error("failed to open uploaded image", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to read image"})
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close uploaded image", "error", err)
		}
	}()

	imageData, err := io.ReadAll(f)
	if err != nil {
		slog.Error("failed to read uploaded image", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to read image"})
		return
	}

	analysis, err := h.uc.Analyze(c.Request.Context(), imageData)
	if err != nil {
		if errors.Is(err, usecase.ErrAnalysisUnavailable) {
			c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: "scan analysis is not available"})
			return
		}
		slog.Error("scan analysis failed", "error", err)
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: "scan analysis failed"})
		return
	}

	c.JSON(http.StatusOK, dto.ScanAnalysisResponse{
		ExtractedText: analysis.ExtractedText,
		Summary:       analysis.Summary,
	})
}
