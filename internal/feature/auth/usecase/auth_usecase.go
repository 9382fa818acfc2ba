package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"health_backend/internal/feature/auth/domain/entity"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 6

	// codeNumberAttempts is how often Register retries a colliding code number.
	codeNumberAttempts = 3
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create persists a new user. A unique-constraint violation is
	// reported as ErrDuplicateKey; the caller disambiguates which key.
	Create(ctx context.Context, user *entity.User) error

	// FindByPhoneNumber returns the user with the given phone number,
	// or ErrUserNotFound.
	FindByPhoneNumber(ctx context.Context, phoneNumber string) (*entity.User, error)

	// FindByPassportID returns the user with the given passport ID,
	// or ErrUserNotFound.
	FindByPassportID(ctx context.Context, passportID string) (*entity.User, error)

	// SetOTP stores an OTP code together with its expiry in one update.
	SetOTP(ctx context.Context, userID, code string, expiry time.Time) error

	// UpdatePasswordAndClearOTP replaces the password hash and clears the
	// OTP pair atomically, in a single row update.
	UpdatePasswordAndClearOTP(ctx context.Context, userID, newHash string) error
}

// PasswordHasher は一方向パスワードハッシュのインターフェースを定義します。
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext matches the digest. A malformed
	// digest is an error distinct from a mismatch.
	Verify(plaintext, digest string) (bool, error)
}

// TokenIssuer はセッショントークン発行のインターフェースを定義します。
type TokenIssuer interface {
	Issue(subjectID string) (string, error)
}

// OTPGenerator produces password-recovery codes and judges their validity.
type OTPGenerator interface {
	Generate() (string, error)
	ExpiryFromNow() time.Time
	IsValid(expiry *time.Time) bool
}

// OTPDeliverer hands a generated code to the account holder out-of-band.
// The production implementation would be an SMS gateway; handing the code
// back in the HTTP response is deliberately not supported.
type OTPDeliverer interface {
	Deliver(ctx context.Context, phoneNumber, code string) error
}

// RegisterInput carries the validated fields for a new account.
type RegisterInput struct {
	FirstName     string
	LastName      string
	PassportID    string
	Gender        string
	Nationality   string
	MaritalStatus string
	PhoneNumber   string
	Password      string
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users     UserRepository
	hasher    PasswordHasher
	tokens    TokenIssuer
	otp       OTPGenerator
	deliverer OTPDeliverer

	// dummyDigest is verified against when the login phone number is
	// unknown, so lookup misses cost the same as wrong passwords.
	dummyDigest string
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, hasher PasswordHasher, tokens TokenIssuer,
	otp OTPGenerator, deliverer OTPDeliverer) *authUsecase {
	dummy, err := hasher.Hash("health-backend-timing-dummy")
	if err != nil {
		dummy = ""
	}
	return &authUsecase{
		users:       users,
		hasher:      hasher,
		tokens:      tokens,
		otp:         otp,
		deliverer:   deliverer,
		dummyDigest: dummy,
	}
}

// validateRegisterInput はトランスポート層のバリデーションを通過した入力を再検証します。
func validateRegisterInput(in RegisterInput) error {
	if in.FirstName == "" || in.LastName == "" {
		return errors.New("first and last name are required")
	}
	switch in.Gender {
	case entity.GenderMale, entity.GenderFemale, entity.GenderOther:
	default:
		return fmt.Errorf("invalid gender %q", in.Gender)
	}
	if len(in.Password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	if in.PhoneNumber == "" || in.PassportID == "" {
		return errors.New("phone number and passport ID are required")
	}
	return nil
}

// Register creates a new account with a hashed password and a fresh public
// code number. The phone-number check runs before the passport check so the
// error for double collisions is deterministic.
func (u *authUsecase) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if err := validateRegisterInput(in); err != nil {
		return nil, err
	}

	if _, err := u.users.FindByPhoneNumber(ctx, in.PhoneNumber); err == nil {
		return nil, ErrDuplicatePhoneNumber
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check phone number: %w", err)
	}
	if _, err := u.users.FindByPassportID(ctx, in.PassportID); err == nil {
		return nil, ErrDuplicatePassportID
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check passport ID: %w", err)
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// The uniqueness constraints at storage time backstop the pre-checks.
	// A duplicate-key failure here is either a registration race on
	// phone/passport or a code-number collision; the latter is retried
	// with a fresh suffix rather than silently overwritten.
	for attempt := 0; attempt < codeNumberAttempts; attempt++ {
		codeNumber, err := generateCodeNumber()
		if err != nil {
			return nil, err
		}

		user := &entity.User{
			CodeNumber:    codeNumber,
			FirstName:     in.FirstName,
			LastName:      in.LastName,
			PassportID:    in.PassportID,
			Gender:        in.Gender,
			Nationality:   in.Nationality,
			MaritalStatus: in.MaritalStatus,
			PhoneNumber:   in.PhoneNumber,
			PasswordHash:  hash,
		}

		err = u.users.Create(ctx, user)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, ErrDuplicateKey) {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}

		// Disambiguate: a concurrent registration may have taken the
		// phone number or passport ID between pre-check and insert.
		if _, lookupErr := u.users.FindByPhoneNumber(ctx, in.PhoneNumber); lookupErr == nil {
			return nil, ErrDuplicatePhoneNumber
		}
		if _, lookupErr := u.users.FindByPassportID(ctx, in.PassportID); lookupErr == nil {
			return nil, ErrDuplicatePassportID
		}
	}
	return nil, ErrCodeNumberCollision
}

// Login はユーザーを認証し、成功時にセッショントークンを返します。
// タイミング攻撃を緩和するため、ユーザーが存在しない場合でもハッシュ検証を実行します。
func (u *authUsecase) Login(ctx context.Context, phoneNumber, pass string) (string, error) {
	user, lookupErr := u.users.FindByPhoneNumber(ctx, phoneNumber)

	digest := u.dummyDigest
	if lookupErr == nil {
		digest = user.PasswordHash
	}

	ok, verifyErr := u.hasher.Verify(pass, digest)
	if verifyErr != nil && lookupErr == nil {
		// A digest we wrote ourselves failed to parse: the credential
		// store is corrupt. Not a wrong password.
		return "", fmt.Errorf("credential store corruption for user %s: %w", user.UserID, verifyErr)
	}
	if lookupErr != nil || !ok {
		return "", ErrInvalidCredentials
	}

	tokenStr, err := u.tokens.Issue(user.UserID)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return tokenStr, nil
}

// ForgotPassword generates a fresh OTP pair, persists it, and hands the
// code to the deliverer. Concurrent calls race at the storage layer with
// last-write-wins; only the most recently stored code verifies.
func (u *authUsecase) ForgotPassword(ctx context.Context, phoneNumber string) error {
	user, err := u.users.FindByPhoneNumber(ctx, phoneNumber)
	if err != nil {
		return err
	}

	code, err := u.otp.Generate()
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}

	if err := u.users.SetOTP(ctx, user.UserID, code, u.otp.ExpiryFromNow()); err != nil {
		return fmt.Errorf("failed to store OTP: %w", err)
	}

	if err := u.deliverer.Deliver(ctx, user.PhoneNumber, code); err != nil {
		return fmt.Errorf("failed to deliver OTP: %w", err)
	}
	return nil
}

// VerifyOTP checks the pending OTP without consuming it: the code stays
// usable for the subsequent change-password call.
func (u *authUsecase) VerifyOTP(ctx context.Context, phoneNumber, code string) error {
	user, err := u.users.FindByPhoneNumber(ctx, phoneNumber)
	if err != nil {
		return err
	}
	return checkOTP(u.otp, user, code)
}

// ChangePassword validates the OTP like VerifyOTP, then replaces the
// password hash and clears the OTP pair in one update.
func (u *authUsecase) ChangePassword(ctx context.Context, phoneNumber, code, newPassword string) error {
	user, err := u.users.FindByPhoneNumber(ctx, phoneNumber)
	if err != nil {
		return err
	}
	if err := checkOTP(u.otp, user, code); err != nil {
		return err
	}
	if len(newPassword) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}

	hash, err := u.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := u.users.UpdatePasswordAndClearOTP(ctx, user.UserID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// checkOTP applies the expiry check before the match check, matching the
// caller-visible ordering of the API.
func checkOTP(gen OTPGenerator, user *entity.User, code string) error {
	if !gen.IsValid(user.OTPExpiry) {
		return ErrOTPExpired
	}
	if user.OTPCode == nil || *user.OTPCode != code {
		return ErrOTPMismatch
	}
	return nil
}
