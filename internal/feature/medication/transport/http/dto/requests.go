// Package dto はmedicationフィーチャーのリクエスト/レスポンス型を定義します。
package dto

import "time"

// CreateMedicationReq は服薬レコード登録リクエストです。
type CreateMedicationReq struct {
	MedName     string     `json:"med_name" binding:"required"`
	Dose        string     `json:"dose"`
	Frequency   string     `json:"frequency"`
	DurationEnd *time.Time `json:"duration_end"`
}

// UpdateMedicationReq は部分更新リクエストです。省略されたフィールドは変更されません。
type UpdateMedicationReq struct {
	MedName     *string    `json:"med_name"`
	Dose        *string    `json:"dose"`
	Frequency   *string    `json:"frequency"`
	DurationEnd *time.Time `json:"duration_end"`
}

// ErrorResponse はエラーレスポンスの共通形式です。
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse は成功メッセージの共通形式です。
type MessageResponse struct {
	Message string `json:"message"`
}
