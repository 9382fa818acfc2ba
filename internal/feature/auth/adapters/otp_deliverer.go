package adapters

import (
	"context"
	"log/slog"

	"health_backend/internal/feature/auth/usecase"
)

// LogDeliverer writes OTP codes to the application log instead of sending
// them anywhere. Development stand-in for an SMS gateway; the code is never
// placed in an HTTP response.
type LogDeliverer struct{}

var _ usecase.OTPDeliverer = (*LogDeliverer)(nil)

// NewLogDeliverer creates a new LogDeliverer.
func NewLogDeliverer() *LogDeliverer {
	return &LogDeliverer{}
}

// Deliver logs the code for the operator to relay manually.
func (d *LogDeliverer) Deliver(ctx context.Context, phoneNumber, code string) error {
	slog.Info("OTP generated (dev delivery stub; wire an SMS gateway for production)",
		"phone_number", phoneNumber, "otp_code", code)
	return nil
}
