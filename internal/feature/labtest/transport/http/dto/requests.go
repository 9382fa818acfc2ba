// Package dto はlabtestフィーチャーのリクエスト/レスポンス型を定義します。
package dto

// CreateTestReq は検査レコード登録リクエストです。
type CreateTestReq struct {
	TestType string `json:"test_type" binding:"required,oneof=Lab Scan"`
	ImageURL string `json:"image_url"`
}

// ScanAnalysisResponse は画像解析の結果です。
type ScanAnalysisResponse struct {
	ExtractedText string `json:"extracted_text"`
	Summary       string `json:"summary"`
}

// ErrorResponse はエラーレスポンスの共通形式です。
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse は成功メッセージの共通形式です。
type MessageResponse struct {
	Message string `json:"message"`
}
