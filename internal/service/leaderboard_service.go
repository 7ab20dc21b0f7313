package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/quizforge/quizforge-backend/internal/config"
	"github.com/quizforge/quizforge-backend/internal/model"
	"github.com/quizforge/quizforge-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// LeaderboardSize is the fixed number of entries on each leaderboard.
const LeaderboardSize = 10

// leaderboardTTL bounds staleness if the refresh worker is down.
const leaderboardTTL = 5 * time.Minute

// LeaderboardService serves the credit and learning-time rankings, cached in
// Redis with a database fallback.
type LeaderboardService struct {
	userRepo *repository.UserRepository
	rdb      *redis.Client
	log      zerolog.Logger
}

// NewLeaderboardService creates a new LeaderboardService.
func NewLeaderboardService(userRepo *repository.UserRepository, rdb *redis.Client, log zerolog.Logger) *LeaderboardService {
	return &LeaderboardService{
		userRepo: userRepo,
		rdb:      rdb,
		log:      log.With().Str("component", "leaderboard_service").Logger(),
	}
}

// TopByCredit returns the highest-credit users.
func (s *LeaderboardService) TopByCredit(ctx context.Context) ([]model.LeaderboardEntry, error) {
	return s.cached(ctx, config.CacheKey.LeaderboardCreditKey(), s.userRepo.ListTopByCredit)
}

// TopByLearningTime returns the users with most cumulative learning time.
func (s *LeaderboardService) TopByLearningTime(ctx context.Context) ([]model.LeaderboardEntry, error) {
	return s.cached(ctx, config.CacheKey.LeaderboardTimeKey(), s.userRepo.ListTopByLearningTime)
}

// Refresh rebuilds both cached leaderboards from the database. Called by the
// background worker and usable at startup for prewarming.
func (s *LeaderboardService) Refresh(ctx context.Context) error {
	if _, err := s.rebuild(ctx, config.CacheKey.LeaderboardCreditKey(), s.userRepo.ListTopByCredit); err != nil {
		return fmt.Errorf("refresh credit leaderboard: %w", err)
	}
	if _, err := s.rebuild(ctx, config.CacheKey.LeaderboardTimeKey(), s.userRepo.ListTopByLearningTime); err != nil {
		return fmt.Errorf("refresh time leaderboard: %w", err)
	}
	return nil
}

type fetchFunc func(ctx context.Context, limit int) ([]model.LeaderboardEntry, error)

// cached reads a leaderboard from Redis, falling back to the database and
// self-healing the cache on a miss.
func (s *LeaderboardService) cached(ctx context.Context, key string, fetch fetchFunc) ([]model.LeaderboardEntry, error) {
	raw, err := s.rdb.Get(ctx, key).Result()
	if err == nil {
		var entries []model.LeaderboardEntry
		if err := json.Unmarshal([]byte(raw), &entries); err == nil {
			return entries, nil
		}
		s.log.Warn().Str("key", key).Msg("Invalid leaderboard cache payload, rebuilding")
	} else if !errors.Is(err, redis.Nil) {
		// Real Redis error: keep serving from the database.
		s.log.Warn().Err(err).Str("key", key).Msg("Leaderboard cache unavailable")
		return fetch(ctx, LeaderboardSize)
	}

	return s.rebuild(ctx, key, fetch)
}

func (s *LeaderboardService) rebuild(ctx context.Context, key string, fetch fetchFunc) ([]model.LeaderboardEntry, error) {
	entries, err := fetch(ctx, LeaderboardSize)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.LeaderboardEntry{}
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("encode leaderboard: %w", err)
	}
	if err := s.rdb.Set(ctx, key, raw, leaderboardTTL).Err(); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("Failed to cache leaderboard")
	}
	return entries, nil
}
