package model

import (
	"time"

	"github.com/google/uuid"
)

// ExamAttempt is the scoring and timing summary of one exam. One row exists
// per exam; CreatedAt is the authoritative session-start marker. Score and
// TimeUsed are written by the grading engine at submission time.
type ExamAttempt struct {
	ID        int       `json:"id"`
	ExamID    uuid.UUID `json:"exam_id"`
	UserID    int       `json:"user_id"`
	Score     int       `json:"score"`
	TimeUsed  int       `json:"time_used"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// QuestionAttempt records one user's answer to one question within one exam.
// Exactly one row exists per (exam, question); it is created as a placeholder
// at composition time (nil UserAnswer, IsCorrect false) and mutated at
// submission time.
type QuestionAttempt struct {
	ID         int       `json:"id"`
	ExamID     uuid.UUID `json:"exam_id"`
	QuestionID int       `json:"question_id"`
	UserID     int       `json:"user_id"`
	UserAnswer *string   `json:"user_answer"`
	IsCorrect  bool      `json:"is_correct"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ExamHistorySummary is one row of the paginated exam history listing.
type ExamHistorySummary struct {
	ExamID   uuid.UUID `json:"exam_id"`
	Title    string    `json:"title"`
	Score    int       `json:"score"`
	TimeUsed int       `json:"time_used"`
	TakenAt  time.Time `json:"taken_at"`
}

// ExamHistoryDetail is the full reconstruction of a past exam.
type ExamHistoryDetail struct {
	ExamID    uuid.UUID         `json:"exam_id"`
	Title     string            `json:"title"`
	Score     int               `json:"score"`
	TimeUsed  int               `json:"time_used"`
	TakenAt   time.Time         `json:"taken_at"`
	Questions []QuestionForUser `json:"questions"`
	Answers   []UserAnswer      `json:"user_answers"`
}
