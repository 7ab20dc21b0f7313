package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/quizforge/quizforge-backend/internal/config"
	"github.com/quizforge/quizforge-backend/internal/handler"
	"github.com/quizforge/quizforge-backend/internal/middleware"
	"github.com/quizforge/quizforge-backend/internal/response"
	"github.com/quizforge/quizforge-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth        *handler.AuthHandler
	Exercise    *handler.ExerciseHandler
	Exam        *handler.ExamHandler
	History     *handler.HistoryHandler
	Leaderboard *handler.LeaderboardHandler
	Chat        *handler.ChatHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// Auth group (public, rate limited).
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)

		auth.POST("/logout", middleware.RequireJWT(authService), handlers.Auth.Logout)
		auth.GET("/me", middleware.RequireJWT(authService), handlers.Auth.Me)
	}

	// Leaderboards are public and change slowly; allow short client caching.
	leaderboard := router.Group("/api/v1/leaderboard")
	leaderboard.Use(middleware.CacheControl(30))
	{
		leaderboard.GET("/credit", handlers.Leaderboard.TopByCredit)
		leaderboard.GET("/time", handlers.Leaderboard.TopByLearningTime)
	}

	// Authenticated group (JWT + single device session).
	api := router.Group("/api/v1")
	api.Use(
		middleware.RequireJWT(authService),
		middleware.CheckSession(authService),
	)
	{
		api.GET("/exercises", handlers.Exercise.ListExercises)
		api.GET("/exercises/:id", handlers.Exercise.GetExercise)

		api.POST("/exams", handlers.Exam.ComposeExam)
		api.POST("/exams/:exam_id/submit", handlers.Exam.SubmitExam)
		api.GET("/exams/history", handlers.History.ListExamHistory)
		api.GET("/exams/history/:exam_id", handlers.History.GetExamHistoryDetail)

		api.GET("/questions/missed", handlers.History.ListMissedQuestions)
		api.POST("/questions/:id/chat", handlers.Chat.AskQuestion)
	}

	// WebSocket group (token passed as query parameter).
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireWSAuth(authService))
	{
		ws.GET("/chat", handlers.Chat.ChatStream)
	}

	return router
}
