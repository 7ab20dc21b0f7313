package service

import (
	"time"

	"github.com/quizforge/quizforge-backend/internal/model"
)

const (
	// ScorePerQuestion is the fixed score increment per correct answer.
	ScorePerQuestion = 10
	// CreditPerQuestion is the fixed credit increment awarded the first time
	// a user ever answers a question correctly.
	CreditPerQuestion = 10
)

// gradedAnswer is the outcome of grading one submitted answer against its
// placeholder.
type gradedAnswer struct {
	AttemptID   int
	QuestionID  int
	Answer      string
	Correct     bool
	AwardCredit bool
}

// evaluateSubmission grades submitted answers against the exam's stored
// questions and placeholders.
//
//   - answers without a placeholder refer to questions not in this exam and
//     are skipped silently (tolerant policy)
//   - comparison against the stored correct answer is exact and case
//     sensitive
//   - credit is awarded only when the answer is correct and everCorrect
//     reports no previously-correct attempt for that question, so repeat
//     correct answers never earn credit twice
//   - a question id submitted more than once is graded on its first
//     occurrence only
//
// The returned score and creditDelta are aggregates over the submission; the
// caller applies creditDelta to the ledger exactly once.
func evaluateSubmission(
	questions map[int]model.Question,
	placeholders map[int]model.QuestionAttempt,
	everCorrect map[int]bool,
	answers []model.UserAnswer,
) (graded []gradedAnswer, score, creditDelta int) {
	seen := make(map[int]bool, len(answers))

	for _, ans := range answers {
		if seen[ans.QuestionID] {
			continue
		}
		placeholder, ok := placeholders[ans.QuestionID]
		if !ok {
			continue // Not part of this exam.
		}
		question, ok := questions[ans.QuestionID]
		if !ok {
			continue
		}
		seen[ans.QuestionID] = true

		g := gradedAnswer{
			AttemptID:  placeholder.ID,
			QuestionID: ans.QuestionID,
			Answer:     ans.Answer,
			Correct:    ans.Answer == question.Answer,
		}
		if g.Correct {
			score += ScorePerQuestion
			if !everCorrect[ans.QuestionID] {
				g.AwardCredit = true
				creditDelta += CreditPerQuestion
			}
		}
		graded = append(graded, g)
	}
	return graded, score, creditDelta
}

// clampElapsedSeconds returns the whole seconds between start and now,
// clamped to zero for non-monotonic clocks.
func clampElapsedSeconds(start, now time.Time) int {
	elapsed := int(now.Sub(start) / time.Second)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}
