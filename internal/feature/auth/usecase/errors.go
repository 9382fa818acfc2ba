// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import "errors"

// Domain errors for authentication operations.
// These errors represent business logic failures and should be handled
// appropriately by the transport layer.
var (
	// ErrDuplicatePhoneNumber is returned when registering an already-used phone number.
	ErrDuplicatePhoneNumber = errors.New("phone number already registered")

	// ErrDuplicatePassportID is returned when registering an already-used passport ID.
	ErrDuplicatePassportID = errors.New("passport ID already registered")

	// ErrCodeNumberCollision is returned when a unique public code number
	// could not be stored even after retries.
	ErrCodeNumberCollision = errors.New("could not allocate a unique code number")

	// ErrInvalidCredentials is returned on login failure. It deliberately
	// does not distinguish "no such user" from "wrong password" to avoid
	// account enumeration.
	ErrInvalidCredentials = errors.New("invalid phone number or password")

	// ErrUserNotFound is returned when a user cannot be found by phone number or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrOTPExpired is returned when the stored OTP is absent or past its expiry.
	ErrOTPExpired = errors.New("OTP has expired")

	// ErrOTPMismatch is returned when the supplied code does not equal the stored one.
	ErrOTPMismatch = errors.New("invalid OTP code")

	// ErrDuplicateKey is returned by repositories on a unique-constraint
	// violation that the usecase has to disambiguate.
	ErrDuplicateKey = errors.New("duplicate key")
)
