package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"health_backend/internal/feature/allergy/domain/entity"
	"health_backend/internal/feature/allergy/usecase"
	"health_backend/internal/platform/token"
)

// mockAllergyUsecase is a mock implementation of the AllergyUsecase interface.
type mockAllergyUsecase struct {
	CreateFunc func(ctx context.Context, userID, allergyName string) (*entity.Allergy, error)
	ListFunc   func(ctx context.Context, userID string) ([]entity.Allergy, error)
	GetFunc    func(ctx context.Context, userID, allergyID string) (*entity.Allergy, error)
	DeleteFunc func(ctx context.Context, userID, allergyID string) error
}

func (m *mockAllergyUsecase) Create(ctx context.Context, userID, allergyName string) (*entity.Allergy, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, allergyName)
	}
	return &entity.Allergy{AllergyID: "a-1", UserID: userID, AllergyName: allergyName}, nil
}

func (m *mockAllergyUsecase) List(ctx context.Context, userID string) ([]entity.Allergy, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockAllergyUsecase) Get(ctx context.Context, userID, allergyID string) (*entity.Allergy, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, userID, allergyID)
	}
	return nil, usecase.ErrAllergyNotFound
}

func (m *mockAllergyUsecase) Delete(ctx context.Context, userID, allergyID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, allergyID)
	}
	return nil
}

// newTestRouter wires the handler behind a stub authenticator that injects
// the given user ID, the way the real middleware does after token checks.
func newTestRouter(h *AllergyHandler, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(token.ContextUserID, userID)
		c.Next()
	})
	r.POST("/allergies", h.Create)
	r.GET("/allergies", h.List)
	r.GET("/allergies/:id", h.Get)
	r.DELETE("/allergies/:id", h.Delete)
	return r
}

func TestAllergyHandler_Create(t *testing.T) {
	t.Run("success passes the authenticated user ID through", func(t *testing.T) {
		var gotUserID string
		h := NewAllergyHandler(&mockAllergyUsecase{
			CreateFunc: func(ctx context.Context, userID, allergyName string) (*entity.Allergy, error) {
				gotUserID = userID
				return &entity.Allergy{AllergyID: "a-1", UserID: userID, AllergyName: allergyName}, nil
			},
		})
		r := newTestRouter(h, "u-1")

		body, _ := json.Marshal(gin.H{"allergy_name": "Peanuts"})
		req, _ := http.NewRequest(http.MethodPost, "/allergies", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "u-1", gotUserID)
	})

	t.Run("missing name fails binding", func(t *testing.T) {
		h := NewAllergyHandler(&mockAllergyUsecase{})
		r := newTestRouter(h, "u-1")

		req, _ := http.NewRequest(http.MethodPost, "/allergies", bytes.NewBufferString("{}"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAllergyHandler_List(t *testing.T) {
	h := NewAllergyHandler(&mockAllergyUsecase{
		ListFunc: func(ctx context.Context, userID string) ([]entity.Allergy, error) {
			return []entity.Allergy{{AllergyID: "a-1", UserID: userID, AllergyName: "Peanuts"}}, nil
		},
	})
	r := newTestRouter(h, "u-1")

	req, _ := http.NewRequest(http.MethodGet, "/allergies", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var out []entity.Allergy
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "Peanuts", out[0].AllergyName)
}

func TestAllergyHandler_GetAndDelete_NotFound(t *testing.T) {
	h := NewAllergyHandler(&mockAllergyUsecase{
		GetFunc: func(ctx context.Context, userID, allergyID string) (*entity.Allergy, error) {
			return nil, usecase.ErrAllergyNotFound
		},
		DeleteFunc: func(ctx context.Context, userID, allergyID string) error {
			return usecase.ErrAllergyNotFound
		},
	})
	r := newTestRouter(h, "u-1")

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		req, _ := http.NewRequest(method, "/allergies/a-404", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code, method)
	}
}

func TestAllergyHandler_Delete_InternalError(t *testing.T) {
	h := NewAllergyHandler(&mockAllergyUsecase{
		DeleteFunc: func(ctx context.Context, userID, allergyID string) error {
			return errors.New("db down")
		},
	})
	r := newTestRouter(h, "u-1")

	req, _ := http.NewRequest(http.MethodDelete, "/allergies/a-1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
