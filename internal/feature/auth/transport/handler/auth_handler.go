// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"health_backend/internal/feature/auth/domain/entity"
	"health_backend/internal/feature/auth/transport/http/dto"
	"health_backend/internal/feature/auth/usecase"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*entity.User, error)
	Login(ctx context.Context, phoneNumber, password string) (string, error)
	ForgotPassword(ctx context.Context, phoneNumber string) error
	VerifyOTP(ctx context.Context, phoneNumber, code string) error
	ChangePassword(ctx context.Context, phoneNumber, code, newPassword string) error
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register はユーザー登録APIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - 電話番号・パスポートID重複時は409を返却
// - 成功時は201と作成済みユーザーを返却
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), usecase.RegisterInput{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		PassportID:    req.PassportID,
		Gender:        req.Gender,
		Nationality:   req.Nationality,
		MaritalStatus: req.MaritalStatus,
		PhoneNumber:   req.PhoneNumber,
		Password:      req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrDuplicatePhoneNumber):
			c.JSON(http.StatusConflict, dto.ErrorResponse{Error: "phone number already registered"})
		case errors.Is(err, usecase.ErrDuplicatePassportID):
			c.JSON(http.StatusConflict, dto.ErrorResponse{Error: "passport ID already registered"})
		default:
			slog.Error("register failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to create user"})
		}
		return
	}

	slog.Info("user registered", "user_id", user.UserID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, user)
}

// Login はユーザーログインAPIエンドポイントを処理します。
// 認証失敗時は列挙攻撃を防ぐため、原因を区別しない401を返します。
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
		return
	}

	tokenStr, err := h.auth.Login(c.Request.Context(), req.PhoneNumber, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			slog.Warn("login failed", "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "invalid phone number or password"})
			return
		}
		slog.Error("login error", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
		return
	}

	slog.Info("user login successful", "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.TokenResponse{Token: tokenStr})
}

// ForgotPassword はOTP発行APIエンドポイントを処理します。
// OTPコード自体はレスポンスに含まれず、配送コラボレーター経由で届けられます。
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
		return
	}

	if err := h.auth.ForgotPassword(c.Request.Context(), req.PhoneNumber); err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "user not found"})
			return
		}
		slog.Error("forgot-password failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "OTP sent successfully"})
}

// VerifyOTP はOTP検証APIエンドポイントを処理します。
// 検証成功はOTPを消費しません（続くパスワード変更で使用可能）。
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req dto.VerifyOTPReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
		return
	}

	if err := h.auth.VerifyOTP(c.Request.Context(), req.PhoneNumber, req.OTPCode); err != nil {
		h.writeOTPError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.VerifyOTPResponse{Message: "OTP verified successfully", Valid: true})
}

// ChangePassword はOTPを用いたパスワード変更APIエンドポイントを処理します。
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
		return
	}

	if err := h.auth.ChangePassword(c.Request.Context(), req.PhoneNumber, req.OTPCode, req.NewPassword); err != nil {
		h.writeOTPError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "password changed successfully"})
}

// writeOTPError はOTP操作共通のエラーマッピングを行います。
func (h *AuthHandler) writeOTPError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "user not found"})
	case errors.Is(err, usecase.ErrOTPExpired):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "OTP has expired"})
	case errors.Is(err, usecase.ErrOTPMismatch):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid OTP code"})
	default:
		slog.Error("OTP operation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
	}
}
