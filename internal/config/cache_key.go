package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// UserSessionKey returns the cache key for a user's login session.
func (r *CacheKeyStruct) UserSessionKey(userID int) string {
	return fmt.Sprintf("login:%d", userID)
}

// ExamStartKey returns the cache key for an exam attempt's start timestamp.
func (r *CacheKeyStruct) ExamStartKey(examID string) string {
	return fmt.Sprintf("exam:%s:started_at", examID)
}

// LeaderboardCreditKey returns the cache key for the credit leaderboard.
func (r *CacheKeyStruct) LeaderboardCreditKey() string {
	return "leaderboard:credit"
}

// LeaderboardTimeKey returns the cache key for the learning-time leaderboard.
func (r *CacheKeyStruct) LeaderboardTimeKey() string {
	return "leaderboard:time"
}

var CacheKey = NewCacheKeyStruct()
