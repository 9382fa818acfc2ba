package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"health_backend/internal/feature/labtest/domain/entity"
	"health_backend/internal/feature/labtest/usecase"
	"health_backend/internal/platform/token"
)

// mockLabTestUsecase is a mock implementation of the LabTestUsecase interface.
type mockLabTestUsecase struct {
	CreateFunc  func(ctx context.Context, userID, testType, imageURL string) (*entity.LabScanTest, error)
	ListFunc    func(ctx context.Context, userID, testType string) ([]entity.LabScanTest, error)
	GetFunc     func(ctx context.Context, userID, testID string) (*entity.LabScanTest, error)
	DeleteFunc  func(ctx context.Context, userID, testID string) error
	AnalyzeFunc func(ctx context.Context, imageData []byte) (*entity.ScanAnalysis, error)
}

func (m *mockLabTestUsecase) Create(ctx context.Context, userID, testType, imageURL string) (*entity.LabScanTest, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, testType, imageURL)
	}
	return &entity.LabScanTest{TestID: "t-1", UserID: userID, TestType: testType}, nil
}

func (m *mockLabTestUsecase) List(ctx context.Context, userID, testType string) ([]entity.LabScanTest, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID, testType)
	}
	return nil, nil
}

func (m *mockLabTestUsecase) Get(ctx context.Context, userID, testID string) (*entity.LabScanTest, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, userID, testID)
	}
	return nil, usecase.ErrTestNotFound
}

func (m *mockLabTestUsecase) Delete(ctx context.Context, userID, testID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, testID)
	}
	return nil
}

func (m *mockLabTestUsecase) Analyze(ctx context.Context, imageData []byte) (*entity.ScanAnalysis, error) {
	if m.AnalyzeFunc != nil {
		return m.AnalyzeFunc(ctx, imageData)
	}
	return &entity.ScanAnalysis{}, nil
}

// newTestRouter wires the handler behind a stub authenticator that injects
// the given user ID, the way the real middleware does after token checks.
func newTestRouter(h *LabTestHandler, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(token.ContextUserID, userID)
		c.Next()
	})
	r.POST("/tests", h.Create)
	r.GET("/tests", h.List)
	r.POST("/tests/analyze", h.Analyze)
	r.GET("/tests/:id", h.Get)
	r.DELETE("/tests/:id", h.Delete)
	return r
}

// newAnalyzeRequest builds a multipart upload carrying the given image bytes.
func newAnalyzeRequest(t *testing.T, image []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", "report.png")
	require.NoError(t, err)
	_, err = fw.Write(image)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, "/tests/analyze", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestLabTestHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var gotType string
		h := NewLabTestHandler(&mockLabTestUsecase{
			CreateFunc: func(ctx context.Context, userID, testType, imageURL string) (*entity.LabScanTest, error) {
				gotType = testType
				return &entity.LabScanTest{TestID: "t-1", UserID: userID, TestType: testType}, nil
			},
		})
		r := newTestRouter(h, "u-1")

		body, _ := json.Marshal(gin.H{"test_type": "Lab"})
		req, _ := http.NewRequest(http.MethodPost, "/tests", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, entity.TypeLab, gotType)
	})

	t.Run("unknown test type fails binding", func(t *testing.T) {
		h := NewLabTestHandler(&mockLabTestUsecase{})
		r := newTestRouter(h, "u-1")

		body, _ := json.Marshal(gin.H{"test_type": "XRay"})
		req, _ := http.NewRequest(http.MethodPost, "/tests", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLabTestHandler_List(t *testing.T) {
	t.Run("passes the filter through", func(t *testing.T) {
		var gotType string
		h := NewLabTestHandler(&mockLabTestUsecase{
			ListFunc: func(ctx context.Context, userID, testType string) ([]entity.LabScanTest, error) {
				gotType = testType
				return nil, nil
			},
		})
		r := newTestRouter(h, "u-1")

		req, _ := http.NewRequest(http.MethodGet, "/tests?test_type=Scan", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, entity.TypeScan, gotType)
	})

	t.Run("rejects unknown filter before the usecase", func(t *testing.T) {
		h := NewLabTestHandler(&mockLabTestUsecase{
			ListFunc: func(ctx context.Context, userID, testType string) ([]entity.LabScanTest, error) {
				t.Fatal("usecase must not be called for an invalid filter")
				return nil, nil
			},
		})
		r := newTestRouter(h, "u-1")

		req, _ := http.NewRequest(http.MethodGet, "/tests?test_type=XRay", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLabTestHandler_Get(t *testing.T) {
	h := NewLabTestHandler(&mockLabTestUsecase{})
	r := newTestRouter(h, "u-1")

	req, _ := http.NewRequest(http.MethodGet, "/tests/missing", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "test record not found")
}

func TestLabTestHandler_Analyze(t *testing.T) {
	t.Run("returns extracted text and summary", func(t *testing.T) {
		var gotImage []byte
		h := NewLabTestHandler(&mockLabTestUsecase{
			AnalyzeFunc: func(ctx context.Context, imageData []byte) (*entity.ScanAnalysis, error) {
				gotImage = imageData
				return &entity.ScanAnalysis{ExtractedText: "WBC 5.2", Summary: "Counts look normal."}, nil
			},
		})
		r := newTestRouter(h, "u-1")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, newAnalyzeRequest(t, []byte("fake-png-bytes")))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []byte("fake-png-bytes"), gotImage)
		assert.Contains(t, w.Body.String(), "WBC 5.2")
		assert.Contains(t, w.Body.String(), "Counts look normal.")
	})

	t.Run("missing file", func(t *testing.T) {
		h := NewLabTestHandler(&mockLabTestUsecase{})
		r := newTestRouter(h, "u-1")

		req, _ := http.NewRequest(http.MethodPost, "/tests/analyze", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "image file is required")
	})

	t.Run("analysis not configured", func(t *testing.T) {
		h := NewLabTestHandler(&mockLabTestUsecase{
			AnalyzeFunc: func(ctx context.Context, imageData []byte) (*entity.ScanAnalysis, error) {
				return nil, usecase.ErrAnalysisUnavailable
			},
		})
		r := newTestRouter(h, "u-1")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, newAnalyzeRequest(t, []byte("fake-png-bytes")))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "scan analysis is not available")
	})

	t.Run("provider failure", func(t *testing.T) {
		h := NewLabTestHandler(&mockLabTestUsecase{
			AnalyzeFunc: func(ctx context.Context, imageData []byte) (*entity.ScanAnalysis, error) {
				return nil, errors.New("vision: rpc error")
			},
		})
		r := newTestRouter(h, "u-1")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, newAnalyzeRequest(t, []byte("fake-png-bytes")))

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), "scan analysis failed")
	})
}
