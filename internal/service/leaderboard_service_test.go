package service

import (
	"context"
	"encoding/json"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/quizforge/quizforge-backend/internal/config"
	"github.com/quizforge/quizforge-backend/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func newTestLeaderboardService(t *testing.T) (*LeaderboardService, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewLeaderboardService(nil, client, zerolog.Nop()), mr
}

func TestLeaderboardCacheHitSkipsDatabase(t *testing.T) {
	svc, mr := newTestLeaderboardService(t)
	key := config.CacheKey.LeaderboardCreditKey()

	want := []model.LeaderboardEntry{
		{UserID: 1, Name: "Alice", Credit: 120, LearningTime: 900},
		{UserID: 2, Name: "Bob", Credit: 80, LearningTime: 1500},
	}
	raw, _ := json.Marshal(want)
	mr.Set(key, string(raw))

	entries, err := svc.cached(context.Background(), key, func(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
		t.Fatal("database must not be queried on a cache hit")
		return nil, nil
	})
	if err != nil {
		t.Fatalf("cached: %v", err)
	}
	if len(entries) != 2 || entries[0].Name != "Alice" || entries[1].Credit != 80 {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestLeaderboardCacheMissRebuilds(t *testing.T) {
	svc, mr := newTestLeaderboardService(t)
	key := config.CacheKey.LeaderboardTimeKey()

	fetched := []model.LeaderboardEntry{{UserID: 3, Name: "Cara", LearningTime: 4200}}
	entries, err := svc.cached(context.Background(), key, func(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
		if limit != LeaderboardSize {
			t.Fatalf("expected limit %d, got %d", LeaderboardSize, limit)
		}
		return fetched, nil
	})
	if err != nil {
		t.Fatalf("cached: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "Cara" {
		t.Fatalf("unexpected entries: %+v", entries)
	}

	if !mr.Exists(key) {
		t.Fatal("cache must be populated after a miss")
	}
	if mr.TTL(key) != leaderboardTTL {
		t.Fatalf("expected TTL %v, got %v", leaderboardTTL, mr.TTL(key))
	}
}

func TestLeaderboardCorruptCacheRebuilds(t *testing.T) {
	svc, mr := newTestLeaderboardService(t)
	key := config.CacheKey.LeaderboardCreditKey()
	mr.Set(key, "not-json")

	entries, err := svc.cached(context.Background(), key, func(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
		return []model.LeaderboardEntry{{UserID: 5, Name: "Drew", Credit: 10}}, nil
	})
	if err != nil {
		t.Fatalf("cached: %v", err)
	}
	if len(entries) != 1 || entries[0].UserID != 5 {
		t.Fatalf("unexpected entries: %+v", entries)
	}

	var stored []model.LeaderboardEntry
	raw, _ := mr.Get(key)
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		t.Fatalf("cache must be healed with valid JSON: %v", err)
	}
}

func TestLeaderboardEmptyResultCachesEmptyList(t *testing.T) {
	svc, mr := newTestLeaderboardService(t)
	key := config.CacheKey.LeaderboardCreditKey()

	entries, err := svc.rebuild(context.Background(), key, func(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
		return nil, nil
	})
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", entries)
	}

	raw, _ := mr.Get(key)
	if raw != "[]" {
		t.Fatalf("expected cached empty array, got %q", raw)
	}
}
