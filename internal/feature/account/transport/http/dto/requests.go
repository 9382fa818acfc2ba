// Package dto はaccountフィーチャーのリクエスト/レスポンス型を定義します。
package dto

// UpdateAccountReq は本人プロフィールの部分更新リクエストです。
// 省略されたフィールドは変更されません。
type UpdateAccountReq struct {
	FirstName     *string `json:"first_name"`
	LastName      *string `json:"last_name"`
	Gender        *string `json:"gender" binding:"omitempty,oneof=Male Female Other"`
	Nationality   *string `json:"nationality"`
	MaritalStatus *string `json:"marital_status"`
}

// ErrorResponse はエラーレスポンスの共通形式です。
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse は成功メッセージの共通形式です。
type MessageResponse struct {
	Message string `json:"message"`
}
