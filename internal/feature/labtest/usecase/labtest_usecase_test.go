package usecase

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"health_backend/internal/feature/labtest/domain/entity"
)

// mockTestRepository is a mock implementation of the TestRepository interface.
type mockTestRepository struct {
	CreateFunc     func(ctx context.Context, l *entity.LabScanTest) error
	ListByUserFunc func(ctx context.Context, userID, testType string) ([]entity.LabScanTest, error)
	FindByIDFunc   func(ctx context.Context, userID, testID string) (*entity.LabScanTest, error)
	DeleteFunc     func(ctx context.Context, userID, testID string) error
}

func (m *mockTestRepository) Create(ctx context.Context, l *entity.LabScanTest) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, l)
	}
	return nil
}

func (m *mockTestRepository) ListByUser(ctx context.Context, userID, testType string) ([]entity.LabScanTest, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID, testType)
	}
	return nil, nil
}

func (m *mockTestRepository) FindByID(ctx context.Context, userID, testID string) (*entity.LabScanTest, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, userID, testID)
	}
	return nil, ErrTestNotFound
}

func (m *mockTestRepository) Delete(ctx context.Context, userID, testID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, testID)
	}
	return nil
}

// mockExtractor is a mock implementation of the ReportTextExtractor interface.
type mockExtractor struct {
	ExtractTextFunc func(ctx context.Context, imageData []byte) (string, error)
}

func (m *mockExtractor) ExtractText(ctx context.Context, imageData []byte) (string, error) {
	if m.ExtractTextFunc != nil {
		return m.ExtractTextFunc(ctx, imageData)
	}
	return "", nil
}

// mockSummarizer is a mock implementation of the ReportSummarizer interface.
type mockSummarizer struct {
	SummarizeFunc func(ctx context.Context, prompt string) (string, error)
}

func (m *mockSummarizer) Summarize(ctx context.Context, prompt string) (string, error) {
	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, prompt)
	}
	return "", nil
}

func TestLabTestUsecase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("valid types", func(t *testing.T) {
		for _, typ := range []string{entity.TypeLab, entity.TypeScan} {
			uc := NewLabTestUsecase(&mockTestRepository{}, nil, nil)
			l, err := uc.Create(ctx, "u-1", typ, "")
			require.NoError(t, err, typ)
			assert.Equal(t, typ, l.TestType)
		}
	})

	t.Run("invalid type rejected", func(t *testing.T) {
		uc := NewLabTestUsecase(&mockTestRepository{
			CreateFunc: func(ctx context.Context, l *entity.LabScanTest) error {
				t.Fatal("repository must not be called")
				return nil
			},
		}, nil, nil)

		_, err := uc.Create(ctx, "u-1", "XRay", "")
		assert.Error(t, err)
	})
}

func TestLabTestUsecase_List(t *testing.T) {
	ctx := context.Background()

	t.Run("filter is passed through", func(t *testing.T) {
		var gotType string
		uc := NewLabTestUsecase(&mockTestRepository{
			ListByUserFunc: func(ctx context.Context, userID, testType string) ([]entity.LabScanTest, error) {
				gotType = testType
				return nil, nil
			},
		}, nil, nil)

		_, err := uc.List(ctx, "u-1", entity.TypeScan)
		require.NoError(t, err)
		assert.Equal(t, entity.TypeScan, gotType)
	})

	t.Run("bad filter rejected", func(t *testing.T) {
		uc := NewLabTestUsecase(&mockTestRepository{}, nil, nil)
		_, err := uc.List(ctx, "u-1", "MRI")
		assert.Error(t, err)
	})
}

func TestLabTestUsecase_Analyze(t *testing.T) {
	ctx := context.Background()
	image := []byte("fake-image-bytes")

	t.Run("extracted text flows into the summary prompt", func(t *testing.T) {
		var gotPrompt string
		uc := NewLabTestUsecase(&mockTestRepository{},
			&mockExtractor{
				ExtractTextFunc: func(ctx context.Context, imageData []byte) (string, error) {
					assert.Equal(t, image, imageData)
					return "Hemoglobin 10.2 g/dL (ref 13.5-17.5)", nil
				},
			},
			&mockSummarizer{
				SummarizeFunc: func(ctx context.Context, prompt string) (string, error) {
					gotPrompt = prompt
					return "Your hemoglobin is below the reference range.", nil
				},
			})

		analysis, err := uc.Analyze(ctx, image)
		require.NoError(t, err)

		assert.Equal(t, "Hemoglobin 10.2 g/dL (ref 13.5-17.5)", analysis.ExtractedText)
		assert.Equal(t, "Your hemoglobin is below the reference range.", analysis.Summary)
		assert.True(t, strings.Contains(gotPrompt, "Hemoglobin 10.2"), "prompt must embed the report text")
	})

	t.Run("unconfigured clients", func(t *testing.T) {
		uc := NewLabTestUsecase(&mockTestRepository{}, nil, nil)
		_, err := uc.Analyze(ctx, image)
		assert.ErrorIs(t, err, ErrAnalysisUnavailable)
	})

	t.Run("empty image", func(t *testing.T) {
		uc := NewLabTestUsecase(&mockTestRepository{}, &mockExtractor{}, &mockSummarizer{})
		_, err := uc.Analyze(ctx, nil)
		assert.Error(t, err)
	})

	t.Run("oversized image", func(t *testing.T) {
		uc := NewLabTestUsecase(&mockTestRepository{}, &mockExtractor{}, &mockSummarizer{})
		_, err := uc.Analyze(ctx, bytes.Repeat([]byte{0x1}, MaxImageSize+1))
		assert.Error(t, err)
	})

	t.Run("no text in image", func(t *testing.T) {
		uc := NewLabTestUsecase(&mockTestRepository{}, &mockExtractor{}, &mockSummarizer{
			SummarizeFunc: func(ctx context.Context, prompt string) (string, error) {
				t.Fatal("summarizer must not run without text")
				return "", nil
			},
		})

		_, err := uc.Analyze(ctx, image)
		assert.Error(t, err)
		assert.False(t, errors.Is(err, ErrAnalysisUnavailable))
	})

	t.Run("extractor failure surfaces", func(t *testing.T) {
		uc := NewLabTestUsecase(&mockTestRepository{},
			&mockExtractor{
				ExtractTextFunc: func(ctx context.Context, imageData []byte) (string, error) {
					return "", errors.New("vision API down")
				},
			}, &mockSummarizer{})

		_, err := uc.Analyze(ctx, image)
		assert.Error(t, err)
	})
}
