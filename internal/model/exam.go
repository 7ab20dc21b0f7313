package model

import (
	"time"

	"github.com/google/uuid"
)

// Exam is one attempt session owned by a single user. It is created once at
// composition time and never mutated afterwards.
type Exam struct {
	ID          uuid.UUID `json:"id"`
	UserID      int       `json:"user_id"`
	Title       string    `json:"title"`
	ExerciseIDs []int     `json:"exercise_ids"`
	CreatedAt   time.Time `json:"created_at"`
}

// ComposeExamRequest is the payload for starting a new exam.
type ComposeExamRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=255"`
	ExerciseIDs []int  `json:"exercise_ids" binding:"required,min=1,dive,min=1"`
}

// ComposeExamResponse returns the new exam and its questions without answers.
type ComposeExamResponse struct {
	ExamID    uuid.UUID         `json:"exam_id"`
	Title     string            `json:"title"`
	Questions []QuestionForUser `json:"questions"`
}

// UserAnswer is one submitted answer within an exam submission.
type UserAnswer struct {
	QuestionID int    `json:"question_id" binding:"required,min=1"`
	Answer     string `json:"answer"`
}

// SubmitExamRequest is the payload for submitting an exam.
type SubmitExamRequest struct {
	Answers []UserAnswer `json:"answers" binding:"required,min=1,dive"`
}

// SubmitExamResponse echoes the graded exam back to the user.
type SubmitExamResponse struct {
	ExamID    uuid.UUID         `json:"exam_id"`
	Score     int               `json:"score"`
	TimeUsed  int               `json:"time_used"`
	Questions []QuestionForUser `json:"questions"`
	Answers   []UserAnswer      `json:"user_answers"`
}
