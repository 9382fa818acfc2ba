// Package usecase はlabtestフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"

	"health_backend/internal/feature/labtest/domain/entity"
)

const (
	// MaxImageSize は解析用画像アップロードの最大サイズ（10MB）です。
	MaxImageSize = 10 * 1024 * 1024

	// summaryPromptTemplate はレポート要約のプロンプトテンプレートです。
	summaryPromptTemplate = "You are a medical assistant. Summarize the following " +
		"lab or scan report in plain language for a patient. Do not diagnose; " +
		"flag values outside their reference ranges.\n\nReport text:\n%s"
)

// ErrTestNotFound は対象ユーザーの配下にレコードが存在しない場合に返されます。
var ErrTestNotFound = errors.New("test record not found")

// ErrAnalysisUnavailable は解析クライアントが設定されていない場合に返されます。
var ErrAnalysisUnavailable = errors.New("scan analysis is not configured")

// TestRepository は検査レコードの永続化層を抽象化します。
type TestRepository interface {
	Create(ctx context.Context, l *entity.LabScanTest) error
	// ListByUser returns the user's records newest first, optionally
	// filtered by test type ("" for all).
	ListByUser(ctx context.Context, userID, testType string) ([]entity.LabScanTest, error)
	FindByID(ctx context.Context, userID, testID string) (*entity.LabScanTest, error)
	Delete(ctx context.Context, userID, testID string) error
}

// ReportTextExtractor は画像からレポート本文を抽出します。
type ReportTextExtractor interface {
	ExtractText(ctx context.Context, imageData []byte) (string, error)
}

// ReportSummarizer はプロンプトから平易な要約を生成します。
type ReportSummarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

// labtestUsecase は検査レコードと画像解析のビジネスロジックを実装します。
// extractor/summarizerはnil可で、その場合Analyzeは利用不可エラーを返します。
type labtestUsecase struct {
	tests      TestRepository
	extractor  ReportTextExtractor
	summarizer ReportSummarizer
}

// NewLabTestUsecase はlabtestUsecaseの新しいインスタンスを生成します。
func NewLabTestUsecase(tests TestRepository, extractor ReportTextExtractor, summarizer ReportSummarizer) *labtestUsecase {
	return &labtestUsecase{tests: tests, extractor: extractor, summarizer: summarizer}
}

// Create は検査レコードを追加します。
func (u *labtestUsecase) Create(ctx context.Context, userID, testType, imageURL string) (*entity.LabScanTest, error) {
	switch testType {
	case entity.TypeLab, entity.TypeScan:
	default:
		return nil, fmt.Errorf("invalid test type %q", testType)
	}

	l := &entity.LabScanTest{
		UserID:   userID,
		TestType: testType,
		ImageURL: imageURL,
	}
	if err := u.tests.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("failed to create test record: %w", err)
	}
	return l, nil
}

// List は本人の検査レコードを新しい順で返します。testTypeで絞り込み可能です。
func (u *labtestUsecase) List(ctx context.Context, userID, testType string) ([]entity.LabScanTest, error) {
	switch testType {
	case "", entity.TypeLab, entity.TypeScan:
	default:
		return nil, fmt.Errorf("invalid test type %q", testType)
	}
	return u.tests.ListByUser(ctx, userID, testType)
}

// Get は本人の検査レコードを1件取得します。
func (u *labtestUsecase) Get(ctx context.Context, userID, testID string) (*entity.LabScanTest, error) {
	return u.tests.FindByID(ctx, userID, testID)
}

// Delete は本人の検査レコードを削除します。
func (u *labtestUsecase) Delete(ctx context.Context, userID, testID string) error {
	return u.tests.Delete(ctx, userID, testID)
}

// Analyze はアップロードされたレポート画像をOCRにかけ、抽出テキストの
// 平易な要約を生成します。クライアント未設定時はErrAnalysisUnavailable。
func (u *labtestUsecase) Analyze(ctx context.Context, imageData []byte) (*entity.ScanAnalysis, error) {
	if u.extractor == nil || u.summarizer == nil {
		return nil, ErrAnalysisUnavailable
	}
	if len(imageData) == 0 {
		return nil, errors.New("image data is empty")
	}
	if len(imageData) > MaxImageSize {
		return nil, fmt.Errorf("image size exceeds maximum of %d bytes", MaxImageSize)
	}

	text, err := u.extractor.ExtractText(ctx, imageData)
	if err != nil {
		return nil, fmt.Errorf("text extraction failed: %w", err)
	}
	if text == "" {
		return nil, errors.New("no text found in the image")
	}

	summary, err := u.summarizer.Summarize(ctx, fmt.Sprintf(summaryPromptTemplate, text))
	if err != nil {
		return nil, fmt.Errorf("report summarization failed: %w", err)
	}

	return &entity.ScanAnalysis{
		ExtractedText: text,
		Summary:       summary,
	}, nil
}
