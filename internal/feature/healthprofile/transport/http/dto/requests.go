// Package dto はhealthprofileフィーチャーのリクエスト/レスポンス型を定義します。
package dto

// UpsertProfileReq はプロフィール保存リクエストです。
type UpsertProfileReq struct {
	HealthStatus  string `json:"health_status" binding:"omitempty,oneof=Healthy Checkup Critical"`
	ActivityLevel string `json:"activity_level"`
	DietaryNotes  string `json:"dietary_notes"`
	SleepPattern  string `json:"sleep_pattern"`
}

// ErrorResponse はエラーレスポンスの共通形式です。
type ErrorResponse struct {
	Error string `json:"error"`
}
