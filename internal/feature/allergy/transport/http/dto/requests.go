// Package dto はallergyフィーチャーのリクエスト/レスポンス型を定義します。
package dto

// CreateAllergyReq はアレルギー登録リクエストです。
type CreateAllergyReq struct {
	AllergyName string `json:"allergy_name" binding:"required"`
}

// ErrorResponse はエラーレスポンスの共通形式です。
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse は成功メッセージの共通形式です。
type MessageResponse struct {
	Message string `json:"message"`
}
