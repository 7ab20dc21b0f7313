package model

import "time"

// Exercise is a named pool of questions that exams are composed from.
// Exercises are immutable after creation.
type Exercise struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
