package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-contrib/cors"

	"health_backend/internal/app/config"
	"health_backend/internal/app/router"
	"health_backend/internal/platform/crypto"
	"health_backend/internal/platform/db"
	"health_backend/internal/platform/otp"
	"health_backend/internal/platform/password"
	"health_backend/internal/platform/ratelimit"
	predis "health_backend/internal/platform/redis"
	"health_backend/internal/platform/token"

	accountadapters "health_backend/internal/feature/account/adapters"
	accounthandler "health_backend/internal/feature/account/transport/handler"
	accountusecase "health_backend/internal/feature/account/usecase"
	allergyadapters "health_backend/internal/feature/allergy/adapters"
	allergyentity "health_backend/internal/feature/allergy/domain/entity"
	allergyhandler "health_backend/internal/feature/allergy/transport/handler"
	allergyusecase "health_backend/internal/feature/allergy/usecase"
	authadapters "health_backend/internal/feature/auth/adapters"
	authentity "health_backend/internal/feature/auth/domain/entity"
	authhandler "health_backend/internal/feature/auth/transport/handler"
	authusecase "health_backend/internal/feature/auth/usecase"
	diseaseadapters "health_backend/internal/feature/disease/adapters"
	diseaseentity "health_backend/internal/feature/disease/domain/entity"
	diseasehandler "health_backend/internal/feature/disease/transport/handler"
	diseaseusecase "health_backend/internal/feature/disease/usecase"
	familyadapters "health_backend/internal/feature/family/adapters"
	familyentity "health_backend/internal/feature/family/domain/entity"
	familyhandler "health_backend/internal/feature/family/transport/handler"
	familyusecase "health_backend/internal/feature/family/usecase"
	profileadapters "health_backend/internal/feature/healthprofile/adapters"
	profileentity "health_backend/internal/feature/healthprofile/domain/entity"
	profilehandler "health_backend/internal/feature/healthprofile/transport/handler"
	profileusecase "health_backend/internal/feature/healthprofile/usecase"
	labadapters "health_backend/internal/feature/labtest/adapters"
	labgemini "health_backend/internal/feature/labtest/adapters/gemini"
	labvision "health_backend/internal/feature/labtest/adapters/vision"
	labentity "health_backend/internal/feature/labtest/domain/entity"
	labhandler "health_backend/internal/feature/labtest/transport/handler"
	labusecase "health_backend/internal/feature/labtest/usecase"
	medadapters "health_backend/internal/feature/medication/adapters"
	medentity "health_backend/internal/feature/medication/domain/entity"
	medhandler "health_backend/internal/feature/medication/transport/handler"
	medusecase "health_backend/internal/feature/medication/usecase"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// JWT_SECRETチェック（開発中の注意喚起）
	if cfg.JWTSecret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	// DB初期化＋マイグレーション
	gormDB := db.Open(cfg,
		&authentity.User{},
		&familyentity.FamilyMember{},
		&diseaseentity.ChronicDisease{},
		&allergyentity.Allergy{},
		&medentity.Medication{},
		&labentity.LabScanTest{},
		&profileentity.HealthProfile{},
	)

	// フィールド暗号化。鍵未設定時はcrypto側が生成して警告を出します。
	cipher, err := crypto.NewTextCipher(cfg.CipherKey)
	if err != nil {
		log.Fatalf("failed to initialize field cipher: %v", err)
	}

	// Redis（任意）。未設定ならレートリミットなしで動作します。
	var authLimiter *ratelimit.Limiter
	redisClient, err := predis.NewClient(cfg.Redis)
	if err != nil {
		log.Printf("[WARN] Redis unavailable; auth endpoints run unthrottled: %v", err)
	} else if redisClient != nil {
		authLimiter = ratelimit.NewLimiter(redisClient, cfg.RateLimit, cfg.RateLimitWindow, "auth")
	}

	// 解析クライアント（任意）。認証情報がなければ/tests/analyzeは503を返します。
	var (
		extractor  labusecase.ReportTextExtractor
		summarizer labusecase.ReportSummarizer
	)
	if os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") != "" || os.Getenv("GOOGLE_CLOUD_PROJECT") != "" {
		v, err := labvision.NewVisionTextExtractor(ctx)
		if err != nil {
			log.Printf("[WARN] vision client unavailable: %v", err)
		} else {
			defer func() {
				if err := v.Close(); err != nil {
					log.Printf("failed to close vision client: %v", err)
				}
			}()
			extractor = v
		}
		g, err := labgemini.NewGeminiSummarizer(ctx)
		if err != nil {
			log.Printf("[WARN] gemini client unavailable: %v", err)
		} else {
			summarizer = g
		}
	} else {
		log.Println("[INFO] analysis clients not configured; /tests/analyze disabled")
	}

	// Platform
	hasher := password.NewHasher()
	issuer := token.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	otpGen := otp.NewGenerator(cfg.OTPLength, cfg.OTPTTL)

	// Repository
	userRepo := authadapters.NewUserGorm(gormDB)
	accountRepo := accountadapters.NewAccountGorm(gormDB)
	familyRepo := familyadapters.NewFamilyGorm(gormDB)
	userDirectory := familyadapters.NewUserDirectoryGorm(gormDB)
	allergyRepo := allergyadapters.NewAllergyGorm(gormDB)
	diseaseRepo := diseaseadapters.NewDiseaseGorm(gormDB)
	medRepo := medadapters.NewMedicationGorm(gormDB)
	labRepo := labadapters.NewLabTestGorm(gormDB)
	profileRepo := profileadapters.NewProfileGorm(gormDB)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, hasher, issuer, otpGen,
		authadapters.NewLogDeliverer())
	accountUC := accountusecase.NewAccountUsecase(accountRepo)
	familyUC := familyusecase.NewFamilyUsecase(familyRepo, userDirectory)
	allergyUC := allergyusecase.NewAllergyUsecase(allergyRepo)
	diseaseUC := diseaseusecase.NewDiseaseUsecase(diseaseRepo, cipher)
	medUC := medusecase.NewMedicationUsecase(medRepo)
	labUC := labusecase.NewLabTestUsecase(labRepo, extractor, summarizer)
	profileUC := profileusecase.NewProfileUsecase(profileRepo)

	// Handler
	handlers := router.Handlers{
		Auth:       authhandler.NewAuthHandler(authUC),
		Account:    accounthandler.NewAccountHandler(accountUC),
		Family:     familyhandler.NewFamilyHandler(familyUC),
		Allergy:    allergyhandler.NewAllergyHandler(allergyUC),
		Disease:    diseasehandler.NewDiseaseHandler(diseaseUC),
		Medication: medhandler.NewMedicationHandler(medUC),
		LabTest:    labhandler.NewLabTestHandler(labUC),
		Profile:    profilehandler.NewProfileHandler(profileUC),
	}

	// ルータ生成
	r := router.NewRouter(handlers, issuer, userRepo, authLimiter)

	// CORS追加
	r.Use(cors.Default())

	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
