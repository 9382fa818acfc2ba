// Package dto はfamilyフィーチャーのリクエスト/レスポンス型を定義します。
package dto

// LinkFamilyMemberReq は家族リンク作成リクエストです。
// code_numberはリンク先アカウントの公開コード番号（USR-XXXXXXXX）です。
type LinkFamilyMemberReq struct {
	CodeNumber string `json:"code_number" binding:"required"`
	Relation   string `json:"relation" binding:"required"`
}

// ErrorResponse はエラーレスポンスの共通形式です。
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse は成功メッセージの共通形式です。
type MessageResponse struct {
	Message string `json:"message"`
}
