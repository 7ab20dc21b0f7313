package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/quizforge/quizforge-backend/internal/model"
	"github.com/quizforge/quizforge-backend/internal/repository"
	"github.com/quizforge/quizforge-backend/internal/response"
)

// HistoryService reconstructs past exams and missed questions from attempt
// records.
type HistoryService struct {
	examRepo     *repository.ExamRepository
	attemptRepo  *repository.AttemptRepository
	questionRepo *repository.QuestionRepository
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(
	examRepo *repository.ExamRepository,
	attemptRepo *repository.AttemptRepository,
	questionRepo *repository.QuestionRepository,
) *HistoryService {
	return &HistoryService{
		examRepo:     examRepo,
		attemptRepo:  attemptRepo,
		questionRepo: questionRepo,
	}
}

// ListExamHistory retrieves the user's exam summaries, newest first.
func (s *HistoryService) ListExamHistory(ctx context.Context, userID, page, perPage int) ([]model.ExamHistorySummary, *response.Pagination, error) {
	page, perPage, limit, offset := normalizePaging(page, perPage)

	summaries, total, err := s.attemptRepo.ListExamHistory(ctx, userID, limit, offset)
	if err != nil {
		return nil, nil, err
	}
	if summaries == nil {
		summaries = []model.ExamHistorySummary{}
	}
	return summaries, buildPagination(page, perPage, total), nil
}

// GetExamDetail reconstructs one past exam: questions (answers stripped),
// the user's answers, score, and time. Requesting an exam owned by another
// user fails with ErrNotFound; existence is never revealed to non-owners.
func (s *HistoryService) GetExamDetail(ctx context.Context, examID uuid.UUID, userID int) (*model.ExamHistoryDetail, error) {
	exam, err := s.examRepo.GetByIDAndUser(ctx, examID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get exam: %w", err)
	}

	attempt, err := s.attemptRepo.GetExamAttempt(ctx, examID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get attempt: %w", err)
	}

	questionAttempts, err := s.attemptRepo.ListQuestionAttempts(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}

	questionIDs := make([]int, len(questionAttempts))
	for i, qa := range questionAttempts {
		questionIDs[i] = qa.QuestionID
	}
	questions, err := s.questionRepo.ListByIDs(ctx, questionIDs)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	answers := make([]model.UserAnswer, 0, len(questionAttempts))
	for _, qa := range questionAttempts {
		if qa.UserAnswer == nil {
			continue // Never submitted.
		}
		answers = append(answers, model.UserAnswer{QuestionID: qa.QuestionID, Answer: *qa.UserAnswer})
	}

	return &model.ExamHistoryDetail{
		ExamID:    exam.ID,
		Title:     exam.Title,
		Score:     attempt.Score,
		TimeUsed:  attempt.TimeUsed,
		TakenAt:   attempt.CreatedAt,
		Questions: safeProjections(questions),
		Answers:   answers,
	}, nil
}

// ListMissedQuestions retrieves questions the user has ever answered
// incorrectly, paginated. A later correct attempt does not remove a question
// from the list; it marks material that needed more than one try.
func (s *HistoryService) ListMissedQuestions(ctx context.Context, userID, page, perPage int) ([]model.QuestionForUser, *response.Pagination, error) {
	page, perPage, limit, offset := normalizePaging(page, perPage)

	questions, total, err := s.questionRepo.ListMissedByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, nil, err
	}
	return safeProjections(questions), buildPagination(page, perPage, total), nil
}
