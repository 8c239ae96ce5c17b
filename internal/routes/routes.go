package routes

import (
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sajorahasan/FitSense/internal/config"
	"github.com/sajorahasan/FitSense/internal/handlers"
	"github.com/sajorahasan/FitSense/internal/middleware"
	"github.com/sajorahasan/FitSense/internal/realtime"
	"github.com/sajorahasan/FitSense/internal/repository"
	"github.com/sajorahasan/FitSense/internal/services"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) {
	accountRepo := repository.NewAccountRepository(db)
	userRepo := repository.NewUserRepository(db)

	var emailService services.EmailService
	if cfg.ResendAPIKey != "" && cfg.EmailFrom != "" {
		emailService = services.NewResendEmailService(cfg.ResendAPIKey, cfg.EmailFrom)
	}
	var storageService services.StorageService
	if cfg.SupabaseURL != "" && cfg.SupabaseBucket != "" && cfg.SupabaseServiceKey != "" {
		storageService = services.NewSupabaseStorageService(cfg.SupabaseURL, cfg.SupabaseBucket, cfg.SupabaseServiceKey)
	}

	hub := realtime.NewHub()
	go hub.Run()

	authHandler := handlers.NewAuthHandler(
		db,
		accountRepo,
		userRepo,
		emailService,
		cfg.JWTSecret,
		cfg.DeepLinkURL,
	)
	userHandler := handlers.NewUserHandler(userRepo, accountRepo, hub, storageService)
	onboardingHandler := handlers.NewOnboardingHandler(userRepo, hub)
	realtimeHandler := handlers.NewRealtimeHandler(hub, cfg.JWTSecret)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)
	auth.Post("/password-reset/request", authHandler.RequestPasswordReset)
	auth.Post("/password-reset/confirm", authHandler.ConfirmPasswordReset)

	authProtected := api.Group("/v1", middleware.AuthRequired(cfg.JWTSecret))

	users := authProtected.Group("/users")
	users.Get("/me", userHandler.GetCurrentUser)
	users.Get("/all-data", userHandler.GetAllUserData)
	users.Put("/profile", userHandler.UpdateProfile)
	users.Post("/profile/avatar", userHandler.UploadAvatar)
	users.Get("/onboarding/resume", onboardingHandler.Resume)
	users.Post("/onboarding/steps/:step", onboardingHandler.SubmitStep)
	users.Post("/onboarding/complete", userHandler.CompleteOnboarding)
	users.Delete("/account", authHandler.DeleteAccount)

	api.Use("/v1/ws", realtimeHandler.WebSocketAuth)
	api.Get("/v1/ws", websocket.New(realtimeHandler.HandleWebSocket))
}
