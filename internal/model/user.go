package model

import "time"

// User represents a registered quiz taker.
type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Credit       int       `json:"credit"`
	LearningTime int       `json:"learning_time"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RegisterRequest is the payload for creating a new account.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=4,max=128"`
}

// LoginResponse is returned after successful registration or login.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// LeaderboardEntry is a user projection for the public leaderboards.
type LeaderboardEntry struct {
	UserID       int    `json:"user_id"`
	Name         string `json:"name"`
	Credit       int    `json:"credit"`
	LearningTime int    `json:"learning_time"`
}
