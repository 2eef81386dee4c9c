package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/freelance_marketplace_be/internal/middleware"
	"github.com/Windi-Fikriyansyah/freelance_marketplace_be/internal/models"
	"github.com/Windi-Fikriyansyah/freelance_marketplace_be/internal/realtime"
)

type AppDeps struct {
	DB            *gorm.DB
	Hub           *realtime.Hub
	RDB           *redis.Client
	JWTSecret     string
	JWTExpiresMin int

	GoogleClientID  string
	GoogleSecret    string
	GoogleRedirect  string
	FrontendBaseURL string

	CORSOrigins string
}

// NewApp merakit seluruh route di atas satu fiber.App.
func NewApp(deps AppDeps) *fiber.App {
	app := fiber.New()

	origins := deps.CORSOrigins
	if origins == "" {
		origins = "http://127.0.0.1:3000, http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders:    "Content-Length",
		AllowCredentials: true,
	}))

	authH := &AuthHandler{
		DB:        deps.DB,
		JWTSecret: deps.JWTSecret,
		Expires:   deps.JWTExpiresMin,
	}
	googleH := &GoogleOAuthHandler{
		DB:              deps.DB,
		JWTSecret:       deps.JWTSecret,
		Expires:         deps.JWTExpiresMin,
		GoogleClientID:  deps.GoogleClientID,
		GoogleSecret:    deps.GoogleSecret,
		GoogleRedirect:  deps.GoogleRedirect,
		FrontendBaseURL: deps.FrontendBaseURL,
	}

	api := app.Group("/api")

	// public
	api.Post("/auth/register", authH.Register)
	api.Post("/auth/login", authH.Login)
	api.Post("/auth/logout", authH.Logout)
	api.Get("/auth/google/start", googleH.GoogleStart)
	api.Get("/auth/google/callback", googleH.GoogleCallback)

	// protected (JWT)
	protected := api.Group("/", middleware.Protect(deps.JWTSecret))

	protected.Get("/me", authH.Me)

	Register(protected, "users", NewUserResource(deps.DB))
	Register(protected, "freelancers", NewFreelancerResource(deps.DB))
	Register(protected, "projects", NewProjectResource(deps.DB))
	Register(protected, "proposals", NewProposalResource(deps.DB))
	Register(protected, "payments", NewPaymentResource(deps.DB))
	Register(protected, "reviews", NewReviewResource(deps.DB))
	Register(protected, "messages", NewMessageResource(deps.DB, deps.Hub, deps.RDB))
	Register(protected, "skills", NewSkillResource(deps.DB))

	NewFreelancerSkillHandler(deps.DB).RegisterRoutes(protected)

	// admin only
	adminH := NewAdminHandler(deps.DB)
	protected.Get("/admin/stats", middleware.RequireRoles(models.RoleAdmin), adminH.Stats)

	// websocket notifikasi (autentikasi via query param token)
	if deps.Hub != nil {
		app.Get("/ws/notifications", websocket.New(NotificationSocket(deps.Hub, deps.JWTSecret)))
	}

	return app
}
