package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/quizforge/quizforge-backend/internal/model"
	"github.com/quizforge/quizforge-backend/internal/repository"
	"github.com/quizforge/quizforge-backend/internal/response"
)

// ExerciseService handles exercise browsing.
type ExerciseService struct {
	exerciseRepo *repository.ExerciseRepository
	questionRepo *repository.QuestionRepository
}

// NewExerciseService creates a new ExerciseService.
func NewExerciseService(exerciseRepo *repository.ExerciseRepository, questionRepo *repository.QuestionRepository) *ExerciseService {
	return &ExerciseService{exerciseRepo: exerciseRepo, questionRepo: questionRepo}
}

// List retrieves exercises with pagination.
func (s *ExerciseService) List(ctx context.Context, page, perPage int) ([]model.Exercise, *response.Pagination, error) {
	page, perPage, limit, offset := normalizePaging(page, perPage)

	exercises, total, err := s.exerciseRepo.ListPaginated(ctx, limit, offset)
	if err != nil {
		return nil, nil, err
	}
	if exercises == nil {
		exercises = []model.Exercise{}
	}
	return exercises, buildPagination(page, perPage, total), nil
}

// ExerciseDetail is an exercise together with its question pool, answers
// stripped.
type ExerciseDetail struct {
	model.Exercise
	Questions []model.QuestionForUser `json:"questions"`
}

// Get retrieves one exercise and its questions (safe projection).
func (s *ExerciseService) Get(ctx context.Context, id int) (*ExerciseDetail, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	questions, err := s.questionRepo.ListByExercises(ctx, []int{id})
	if err != nil {
		return nil, err
	}

	return &ExerciseDetail{Exercise: *exercise, Questions: safeProjections(questions)}, nil
}
