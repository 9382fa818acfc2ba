// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// RegisterReq は/auth/registerエンドポイントのリクエストボディを表します。
// Ginのbindingタグでバリデーションを行います（必須項目・性別enum・パスワード長）。
type RegisterReq struct {
	FirstName     string `json:"first_name" binding:"required"`
	LastName      string `json:"last_name" binding:"required"`
	PassportID    string `json:"passport_id" binding:"required"`
	Gender        string `json:"gender" binding:"required,oneof=Male Female Other"`
	Nationality   string `json:"nationality"`
	MaritalStatus string `json:"marital_status"`
	PhoneNumber   string `json:"phone_number" binding:"required"`
	Password      string `json:"password" binding:"required,min=6"`
}

// LoginReq は/auth/loginエンドポイントのリクエストボディを表します。
type LoginReq struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	Password    string `json:"password" binding:"required"`
}

// ForgotPasswordReq は/auth/forgot-passwordのリクエストボディを表します。
type ForgotPasswordReq struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
}

// VerifyOTPReq は/auth/verify-otpのリクエストボディを表します。
type VerifyOTPReq struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	OTPCode     string `json:"otp_code" binding:"required"`
}

// ChangePasswordReq は/auth/change-passwordのリクエストボディを表します。
type ChangePasswordReq struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	OTPCode     string `json:"otp_code" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}
