package worker

import (
	"context"
	"time"

	"github.com/quizforge/quizforge-backend/internal/service"
	"github.com/rs/zerolog"
)

// LeaderboardWorker periodically rebuilds the cached leaderboards so the
// public endpoints stay warm even without read traffic.
type LeaderboardWorker struct {
	leaderboardService *service.LeaderboardService
	interval           time.Duration
	log                zerolog.Logger
}

func NewLeaderboardWorker(leaderboardService *service.LeaderboardService, interval time.Duration, log zerolog.Logger) *LeaderboardWorker {
	return &LeaderboardWorker{
		leaderboardService: leaderboardService,
		interval:           interval,
		log:                log.With().Str("component", "leaderboard_worker").Logger(),
	}
}

func (w *LeaderboardWorker) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("LeaderboardWorker started")

	// Warm the caches immediately instead of waiting a full interval.
	w.refreshSafe(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("LeaderboardWorker stopped")
			return
		case <-ticker.C:
			w.refreshSafe(ctx)
		}
	}
}

func (w *LeaderboardWorker) refreshSafe(ctx context.Context) {
	refreshCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := w.leaderboardService.Refresh(refreshCtx); err != nil {
		w.log.Error().Err(err).Msg("Leaderboard refresh failed")
		return
	}
	w.log.Debug().Msg("Leaderboards refreshed")
}
