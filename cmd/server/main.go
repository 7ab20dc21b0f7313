package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quizforge/quizforge-backend/internal/config"
	"github.com/quizforge/quizforge-backend/internal/database"
	"github.com/quizforge/quizforge-backend/internal/handler"
	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/repository"
	"github.com/quizforge/quizforge-backend/internal/router"
	"github.com/quizforge/quizforge-backend/internal/service"
	"github.com/quizforge/quizforge-backend/internal/validator"
	"github.com/quizforge/quizforge-backend/internal/worker"
	"github.com/rs/zerolog"
)

func main() {
	cfg := config.Load()

	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting QuizForge Backend")

	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	userRepo := repository.NewUserRepository(pool)
	exerciseRepo := repository.NewExerciseRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	examRepo := repository.NewExamRepository(pool)
	attemptRepo := repository.NewAttemptRepository(pool)

	authService := service.NewAuthService(cfg, rdb)
	userService := service.NewUserService(userRepo, authService)
	exerciseService := service.NewExerciseService(exerciseRepo, questionRepo)
	examService := service.NewExamService(examRepo, attemptRepo, exerciseRepo, questionRepo, userRepo, rdb, log)
	historyService := service.NewHistoryService(examRepo, attemptRepo, questionRepo)
	leaderboardService := service.NewLeaderboardService(userRepo, rdb, log)
	chatService := service.NewChatService(questionRepo, log)

	handlers := &router.Handlers{
		Auth:        handler.NewAuthHandler(authService, userService),
		Exercise:    handler.NewExerciseHandler(exerciseService),
		Exam:        handler.NewExamHandler(examService),
		History:     handler.NewHistoryHandler(historyService),
		Leaderboard: handler.NewLeaderboardHandler(leaderboardService),
		Chat:        handler.NewChatHandler(chatService, log, cfg.AllowedOrigins),
	}

	workerCtx, workerCancel := context.WithCancel(context.Background())

	leaderboardWorker := worker.NewLeaderboardWorker(leaderboardService, cfg.LeaderboardRefresh, log)
	go leaderboardWorker.Start(workerCtx)

	r := router.SetupRouter(authService, handlers, cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	workerCancel()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
