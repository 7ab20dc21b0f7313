package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/quizforge/quizforge-backend/internal/config"
	"github.com/redis/go-redis/v9"
)

func newTestAuthService(t *testing.T) (*AuthService, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cfg := &config.Config{
		JWTSecret:  "test-secret",
		JWTExpiry:  time.Hour,
		BcryptCost: 4,
	}
	return NewAuthService(cfg, client), mr
}

func TestPasswordHashRoundtrip(t *testing.T) {
	svc, _ := newTestAuthService(t)

	hash, err := svc.HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if err := svc.CheckPassword(hash, "s3cret"); err != nil {
		t.Fatalf("correct password rejected: %v", err)
	}
	if err := svc.CheckPassword(hash, "wrong"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc, mr := newTestAuthService(t)
	ctx := context.Background()

	token, err := svc.GenerateToken(ctx, 42)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("expected user 42, got %d", claims.UserID)
	}

	if !mr.Exists(config.CacheKey.UserSessionKey(42)) {
		t.Fatal("session key must be stored on login")
	}
	if err := svc.ValidateSession(ctx, 42, claims.ID); err != nil {
		t.Fatalf("session must be valid after login: %v", err)
	}
}

func TestNewLoginInvalidatesOldSession(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	first, err := svc.GenerateToken(ctx, 7)
	if err != nil {
		t.Fatalf("generate first token: %v", err)
	}
	if _, err := svc.GenerateToken(ctx, 7); err != nil {
		t.Fatalf("generate second token: %v", err)
	}

	oldClaims, err := svc.ValidateToken(first)
	if err != nil {
		t.Fatalf("old token must still parse: %v", err)
	}
	if err := svc.ValidateSession(ctx, 7, oldClaims.ID); err == nil {
		t.Fatal("old session must be invalidated by a new login")
	}
}

func TestClearSession(t *testing.T) {
	svc, mr := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.GenerateToken(ctx, 9); err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if err := svc.ClearSession(ctx, 9); err != nil {
		t.Fatalf("clear session: %v", err)
	}
	if mr.Exists(config.CacheKey.UserSessionKey(9)) {
		t.Fatal("session key must be removed on logout")
	}
}

func TestValidateTokenRejectsForgedToken(t *testing.T) {
	svc, _ := newTestAuthService(t)
	other, _ := newTestAuthService(t)
	other.cfg.JWTSecret = "different-secret"

	forged, err := other.GenerateToken(context.Background(), 1)
	if err != nil {
		t.Fatalf("generate forged token: %v", err)
	}
	if _, err := svc.ValidateToken(forged); err == nil {
		t.Fatal("token signed with a different secret must be rejected")
	}
}
