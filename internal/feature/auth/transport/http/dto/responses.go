package dto

// ErrorResponse is the uniform error body for the API.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the uniform success body for operations without payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse carries a freshly issued session token.
type TokenResponse struct {
	Token string `json:"token"`
}

// VerifyOTPResponse reports a successful OTP verification.
type VerifyOTPResponse struct {
	Message string `json:"message"`
	Valid   bool   `json:"valid"`
}
