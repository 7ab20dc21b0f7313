package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/quizforge/quizforge-backend/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func newTestExamService(t *testing.T) (*ExamService, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewExamService(nil, nil, nil, nil, nil, client, zerolog.Nop()), mr
}

func TestSessionStartPrefersCache(t *testing.T) {
	svc, mr := newTestExamService(t)
	examID := uuid.New()

	cached := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	fallback := cached.Add(time.Hour)
	mr.Set(config.CacheKey.ExamStartKey(examID.String()), strconv.FormatInt(cached.Unix(), 10))

	got := svc.sessionStart(context.Background(), examID, fallback)
	if !got.Equal(cached) {
		t.Fatalf("expected cached start %v, got %v", cached, got)
	}
}

func TestSessionStartFallsBackOnMiss(t *testing.T) {
	svc, _ := newTestExamService(t)
	fallback := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	got := svc.sessionStart(context.Background(), uuid.New(), fallback)
	if !got.Equal(fallback) {
		t.Fatalf("expected fallback %v, got %v", fallback, got)
	}
}

func TestSessionStartFallsBackOnGarbage(t *testing.T) {
	svc, mr := newTestExamService(t)
	examID := uuid.New()
	fallback := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	mr.Set(config.CacheKey.ExamStartKey(examID.String()), "not-a-unix-timestamp")

	got := svc.sessionStart(context.Background(), examID, fallback)
	if !got.Equal(fallback) {
		t.Fatalf("expected fallback %v, got %v", fallback, got)
	}
}
