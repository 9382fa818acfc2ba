// Package router はアプリケーションの全ルートを組み立てます。
package router

import (
	"github.com/gin-gonic/gin"

	accounthandler "health_backend/internal/feature/account/transport/handler"
	allergyhandler "health_backend/internal/feature/allergy/transport/handler"
	authhandler "health_backend/internal/feature/auth/transport/handler"
	diseasehandler "health_backend/internal/feature/disease/transport/handler"
	familyhandler "health_backend/internal/feature/family/transport/handler"
	profilehandler "health_backend/internal/feature/healthprofile/transport/handler"
	labtesthandler "health_backend/internal/feature/labtest/transport/handler"
	medicationhandler "health_backend/internal/feature/medication/transport/handler"
	healthhandler "health_backend/internal/platform/http/handler"
	"health_backend/internal/platform/ratelimit"
	"health_backend/internal/platform/token"
)

// Handlers はルーターが必要とするハンドラー一式です。
type Handlers struct {
	Auth       *authhandler.AuthHandler
	Account    *accounthandler.AccountHandler
	Family     *familyhandler.FamilyHandler
	Allergy    *allergyhandler.AllergyHandler
	Disease    *diseasehandler.DiseaseHandler
	Medication *medicationhandler.MedicationHandler
	LabTest    *labtesthandler.LabTestHandler
	Profile    *profilehandler.ProfileHandler
}

// NewRouter は公開ルートと認証必須ルートを組み立てます。
// authLimiterはnil可で、その場合レート制限なしで動作します。
func NewRouter(h Handlers, verifier token.Verifier, users token.UserResolver,
	authLimiter *ratelimit.Limiter) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", healthhandler.Health)
	r.HEAD("/healthz", healthhandler.Health)

	// 認証エンドポイント。ログインとOTP発行はレート制限対象。
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", ratelimit.Middleware(authLimiter), h.Auth.Login)
		auth.POST("/forgot-password", ratelimit.Middleware(authLimiter), h.Auth.ForgotPassword)
		auth.POST("/verify-otp", h.Auth.VerifyOTP)
		auth.POST("/change-password", h.Auth.ChangePassword)
	}

	// 認証必須のルート。Bearerトークンからuser_idを解決し、
	// アカウントの現存チェックを通過したリクエストのみ到達します。
	protected := r.Group("/")
	protected.Use(token.AuthRequired(verifier, users))
	{
		protected.GET("/users/me", h.Account.Get)
		protected.PUT("/users/me", h.Account.Update)
		protected.DELETE("/users/me", h.Account.Delete)

		protected.POST("/family-members", h.Family.Link)
		protected.GET("/family-members", h.Family.List)
		protected.GET("/family-members/:id", h.Family.Get)
		protected.DELETE("/family-members/:id", h.Family.Unlink)

		protected.POST("/allergies", h.Allergy.Create)
		protected.GET("/allergies", h.Allergy.List)
		protected.GET("/allergies/:id", h.Allergy.Get)
		protected.DELETE("/allergies/:id", h.Allergy.Delete)

		protected.POST("/diseases", h.Disease.Create)
		protected.GET("/diseases", h.Disease.List)
		protected.GET("/diseases/:id", h.Disease.Get)
		protected.DELETE("/diseases/:id", h.Disease.Delete)

		protected.POST("/medications", h.Medication.Create)
		protected.GET("/medications", h.Medication.List)
		protected.GET("/medications/:id", h.Medication.Get)
		protected.PUT("/medications/:id", h.Medication.Update)
		protected.DELETE("/medications/:id", h.Medication.Delete)

		protected.POST("/tests", h.LabTest.Create)
		protected.GET("/tests", h.LabTest.List)
		protected.POST("/tests/analyze", h.LabTest.Analyze)
		protected.GET("/tests/:id", h.LabTest.Get)
		protected.DELETE("/tests/:id", h.LabTest.Delete)

		protected.GET("/health-profile", h.Profile.Get)
		protected.PUT("/health-profile", h.Profile.Upsert)
	}

	return r
}
