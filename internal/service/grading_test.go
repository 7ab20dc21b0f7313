package service

import (
	"testing"
	"time"

	"github.com/quizforge/quizforge-backend/internal/model"
)

func testQuestions(answers map[int]string) map[int]model.Question {
	questions := make(map[int]model.Question, len(answers))
	for id, answer := range answers {
		questions[id] = model.Question{ID: id, Answer: answer}
	}
	return questions
}

func testPlaceholders(questionIDs ...int) map[int]model.QuestionAttempt {
	placeholders := make(map[int]model.QuestionAttempt, len(questionIDs))
	for i, id := range questionIDs {
		placeholders[id] = model.QuestionAttempt{ID: 100 + i, QuestionID: id}
	}
	return placeholders
}

func TestEvaluateSubmissionScoreAndCredit(t *testing.T) {
	questions := testQuestions(map[int]string{1: "A", 2: "B", 3: "C"})
	placeholders := testPlaceholders(1, 2, 3)

	graded, score, creditDelta := evaluateSubmission(questions, placeholders, map[int]bool{}, []model.UserAnswer{
		{QuestionID: 1, Answer: "A"},
		{QuestionID: 2, Answer: "wrong"},
		{QuestionID: 3, Answer: "C"},
	})

	if len(graded) != 3 {
		t.Fatalf("expected 3 graded answers, got %d", len(graded))
	}
	if score != 2*ScorePerQuestion {
		t.Fatalf("expected score %d, got %d", 2*ScorePerQuestion, score)
	}
	if creditDelta != 2*CreditPerQuestion {
		t.Fatalf("expected credit delta %d, got %d", 2*CreditPerQuestion, creditDelta)
	}
	if !graded[0].Correct || graded[1].Correct || !graded[2].Correct {
		t.Fatalf("unexpected correctness: %+v", graded)
	}
	if !graded[0].AwardCredit || graded[1].AwardCredit || !graded[2].AwardCredit {
		t.Fatalf("unexpected credit flags: %+v", graded)
	}
}

func TestEvaluateSubmissionNoCreditForRepeatCorrect(t *testing.T) {
	questions := testQuestions(map[int]string{1: "A", 2: "B"})
	placeholders := testPlaceholders(1, 2)
	everCorrect := map[int]bool{1: true}

	graded, score, creditDelta := evaluateSubmission(questions, placeholders, everCorrect, []model.UserAnswer{
		{QuestionID: 1, Answer: "A"},
		{QuestionID: 2, Answer: "B"},
	})

	if score != 2*ScorePerQuestion {
		t.Fatalf("score must count every correct answer, got %d", score)
	}
	if creditDelta != CreditPerQuestion {
		t.Fatalf("expected credit only for the newly correct question, got %d", creditDelta)
	}
	if graded[0].AwardCredit {
		t.Fatal("previously correct question must not earn credit again")
	}
	if !graded[1].AwardCredit {
		t.Fatal("first-time correct question must earn credit")
	}
}

func TestEvaluateSubmissionSkipsForeignQuestions(t *testing.T) {
	questions := testQuestions(map[int]string{1: "A"})
	placeholders := testPlaceholders(1)

	graded, score, creditDelta := evaluateSubmission(questions, placeholders, map[int]bool{}, []model.UserAnswer{
		{QuestionID: 99, Answer: "A"},
		{QuestionID: 1, Answer: "A"},
	})

	if len(graded) != 1 {
		t.Fatalf("answer for a question outside the exam must be skipped, got %d graded", len(graded))
	}
	if graded[0].QuestionID != 1 {
		t.Fatalf("expected question 1, got %d", graded[0].QuestionID)
	}
	if score != ScorePerQuestion || creditDelta != CreditPerQuestion {
		t.Fatalf("unexpected aggregates: score=%d credit=%d", score, creditDelta)
	}
}

func TestEvaluateSubmissionDuplicateQuestionGradedOnce(t *testing.T) {
	questions := testQuestions(map[int]string{1: "A"})
	placeholders := testPlaceholders(1)

	graded, score, _ := evaluateSubmission(questions, placeholders, map[int]bool{}, []model.UserAnswer{
		{QuestionID: 1, Answer: "wrong"},
		{QuestionID: 1, Answer: "A"},
	})

	if len(graded) != 1 {
		t.Fatalf("duplicate question must be graded once, got %d", len(graded))
	}
	if graded[0].Correct {
		t.Fatal("first occurrence must win, later duplicates are ignored")
	}
	if score != 0 {
		t.Fatalf("expected score 0, got %d", score)
	}
}

func TestEvaluateSubmissionCaseSensitive(t *testing.T) {
	questions := testQuestions(map[int]string{1: "Paris"})
	placeholders := testPlaceholders(1)

	graded, score, _ := evaluateSubmission(questions, placeholders, map[int]bool{}, []model.UserAnswer{
		{QuestionID: 1, Answer: "paris"},
	})

	if graded[0].Correct || score != 0 {
		t.Fatal("comparison must be exact and case sensitive")
	}
}

func TestEvaluateSubmissionEmptySubmission(t *testing.T) {
	questions := testQuestions(map[int]string{1: "A"})
	placeholders := testPlaceholders(1)

	graded, score, creditDelta := evaluateSubmission(questions, placeholders, map[int]bool{}, nil)
	if len(graded) != 0 || score != 0 || creditDelta != 0 {
		t.Fatalf("empty submission must yield zero aggregates: %+v score=%d credit=%d", graded, score, creditDelta)
	}
}

func TestClampElapsedSeconds(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	if got := clampElapsedSeconds(start, start.Add(95*time.Second)); got != 95 {
		t.Fatalf("expected 95, got %d", got)
	}
	if got := clampElapsedSeconds(start, start.Add(1500*time.Millisecond)); got != 1 {
		t.Fatalf("expected truncation to 1, got %d", got)
	}
	if got := clampElapsedSeconds(start, start.Add(-time.Minute)); got != 0 {
		t.Fatalf("negative elapsed must clamp to 0, got %d", got)
	}
}
