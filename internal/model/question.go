package model

import (
	"encoding/json"
	"time"
)

// QuestionType enumerates supported question kinds.
type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "MULTIPLE_CHOICE"
	QuestionTypeShortAnswer    QuestionType = "SHORT_ANSWER"
)

// Question belongs to exactly one exercise. The Answer field is the stored
// correct answer and must never reach a client; use QuestionForUser for any
// externally visible projection.
type Question struct {
	ID           int             `json:"id"`
	ExerciseID   int             `json:"exercise_id"`
	QuestionType QuestionType    `json:"question_type"`
	Content      string          `json:"content"`
	Options      json.RawMessage `json:"options"`
	Answer       string          `json:"-"`
	CreatedAt    time.Time       `json:"created_at"`
}

// QuestionForUser is a question stripped of its correct answer.
type QuestionForUser struct {
	ID           int             `json:"question_id"`
	QuestionType QuestionType    `json:"question_type"`
	Content      string          `json:"content"`
	Options      json.RawMessage `json:"options"`
}

// ForUser returns the safe projection of q.
func (q Question) ForUser() QuestionForUser {
	return QuestionForUser{
		ID:           q.ID,
		QuestionType: q.QuestionType,
		Content:      q.Content,
		Options:      q.Options,
	}
}

// ChatRequest is the payload for the question chat endpoint.
type ChatRequest struct {
	ExamID  string `json:"exam_id" binding:"omitempty,uuid"`
	Content string `json:"content" binding:"required,min=1,max=2000"`
}
