// Package dto はdiseaseフィーチャーのリクエスト/レスポンス型を定義します。
package dto

import "time"

// CreateDiseaseReq は慢性疾患登録リクエストです。
type CreateDiseaseReq struct {
	Name          string     `json:"name" binding:"required"`
	DiagnosisDate *time.Time `json:"diagnosis_date"`
}

// ErrorResponse はエラーレスポンスの共通形式です。
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse は成功メッセージの共通形式です。
type MessageResponse struct {
	Message string `json:"message"`
}
