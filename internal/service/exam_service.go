package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/quizforge/quizforge-backend/internal/config"
	"github.com/quizforge/quizforge-backend/internal/model"
	"github.com/quizforge/quizforge-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ExamService handles exam composition, grading, and the credit/time ledger.
type ExamService struct {
	examRepo     *repository.ExamRepository
	attemptRepo  *repository.AttemptRepository
	exerciseRepo *repository.ExerciseRepository
	questionRepo *repository.QuestionRepository
	userRepo     *repository.UserRepository
	rdb          *redis.Client
	log          zerolog.Logger
}

// NewExamService creates a new ExamService.
func NewExamService(
	examRepo *repository.ExamRepository,
	attemptRepo *repository.AttemptRepository,
	exerciseRepo *repository.ExerciseRepository,
	questionRepo *repository.QuestionRepository,
	userRepo *repository.UserRepository,
	rdb *redis.Client,
	log zerolog.Logger,
) *ExamService {
	return &ExamService{
		examRepo:     examRepo,
		attemptRepo:  attemptRepo,
		exerciseRepo: exerciseRepo,
		questionRepo: questionRepo,
		userRepo:     userRepo,
		rdb:          rdb,
		log:          log.With().Str("component", "exam_service").Logger(),
	}
}

// Compose builds a new exam for the user from the question pools of the given
// exercises. Every exercise id must exist; otherwise ErrNotFound is returned
// before anything is written. The exam row, its exercise references, one
// placeholder per question, and the attempt summary commit as a single
// transaction, so a partial failure never leaves an exam without placeholders.
func (s *ExamService) Compose(ctx context.Context, userID int, req model.ComposeExamRequest) (*model.ComposeExamResponse, error) {
	exerciseIDs := dedupeInts(req.ExerciseIDs)

	count, err := s.exerciseRepo.CountByIDs(ctx, exerciseIDs)
	if err != nil {
		return nil, fmt.Errorf("count exercises: %w", err)
	}
	if count != len(exerciseIDs) {
		return nil, ErrNotFound
	}

	questions, err := s.questionRepo.ListByExercises(ctx, exerciseIDs)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	exam := &model.Exam{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       req.Title,
		ExerciseIDs: exerciseIDs,
	}
	attempt := &model.ExamAttempt{ExamID: exam.ID, UserID: userID}

	questionIDs := make([]int, len(questions))
	for i, q := range questions {
		questionIDs[i] = q.ID
	}

	tx, err := s.examRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.examRepo.CreateTx(ctx, tx, exam); err != nil {
		return nil, fmt.Errorf("create exam: %w", err)
	}
	if err := s.attemptRepo.CreateExamAttemptTx(ctx, tx, attempt); err != nil {
		return nil, fmt.Errorf("create exam attempt: %w", err)
	}
	if err := s.attemptRepo.CreateQuestionAttemptsTx(ctx, tx, exam.ID, userID, questionIDs); err != nil {
		return nil, fmt.Errorf("create placeholders: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	// Cache the session start so grading can read it without touching the
	// attempt row. The attempt row stays the source of truth on a miss.
	startKey := config.CacheKey.ExamStartKey(exam.ID.String())
	if err := s.rdb.Set(ctx, startKey, attempt.CreatedAt.Unix(), 0).Err(); err != nil {
		s.log.Warn().Err(err).Str("exam_id", exam.ID.String()).Msg("Failed to cache start time")
	}

	s.log.Info().
		Str("exam_id", exam.ID.String()).
		Int("user_id", userID).
		Int("questions", len(questions)).
		Msg("Exam composed")

	return &model.ComposeExamResponse{
		ExamID:    exam.ID,
		Title:     exam.Title,
		Questions: safeProjections(questions),
	}, nil
}

// Submit grades an exam submission. Placeholder mutations, the attempt's
// score/time write, and the ledger update run in one transaction under row
// locks on the user and the attempt, so concurrent submissions by the same
// user serialize and credit is never double-applied.
func (s *ExamService) Submit(ctx context.Context, examID uuid.UUID, userID int, req model.SubmitExamRequest) (*model.SubmitExamResponse, error) {
	tx, err := s.examRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock the user before the attempt. This serializes the user's
	// submissions across different exams, so the first-ever-correct check
	// below cannot race with a concurrent submission sharing a question.
	// Every submission locks in the same order, keeping deadlocks out.
	if err := s.userRepo.LockTx(ctx, tx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lock user: %w", err)
	}

	attempt, err := s.attemptRepo.LockExamAttemptTx(ctx, tx, examID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lock attempt: %w", err)
	}

	placeholderList, err := s.attemptRepo.ListQuestionAttemptsTx(ctx, tx, examID)
	if err != nil {
		return nil, fmt.Errorf("list placeholders: %w", err)
	}
	placeholders := make(map[int]model.QuestionAttempt, len(placeholderList))
	questionIDs := make([]int, 0, len(placeholderList))
	for _, p := range placeholderList {
		placeholders[p.QuestionID] = p
		questionIDs = append(questionIDs, p.QuestionID)
	}

	questionList, err := s.questionRepo.ListByIDs(ctx, questionIDs)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	questions := make(map[int]model.Question, len(questionList))
	for _, q := range questionList {
		questions[q.ID] = q
	}

	// First-ever-correct bookkeeping, read before any placeholder mutation.
	everCorrect := make(map[int]bool)
	for _, ans := range req.Answers {
		if _, ok := placeholders[ans.QuestionID]; !ok {
			continue
		}
		if _, done := everCorrect[ans.QuestionID]; done {
			continue
		}
		was, err := s.attemptRepo.HasCorrectAttemptTx(ctx, tx, userID, ans.QuestionID)
		if err != nil {
			return nil, fmt.Errorf("check prior attempts: %w", err)
		}
		everCorrect[ans.QuestionID] = was
	}

	graded, score, creditDelta := evaluateSubmission(questions, placeholders, everCorrect, req.Answers)

	for _, g := range graded {
		if err := s.attemptRepo.UpdateQuestionAttemptTx(ctx, tx, g.AttemptID, g.Answer, g.Correct); err != nil {
			return nil, fmt.Errorf("write attempt: %w", err)
		}
	}

	elapsed := clampElapsedSeconds(s.sessionStart(ctx, examID, attempt.CreatedAt), time.Now())
	if err := s.attemptRepo.FinalizeExamAttemptTx(ctx, tx, examID, score, elapsed); err != nil {
		return nil, fmt.Errorf("finalize attempt: %w", err)
	}

	// Learning time accumulates the increment over the previously recorded
	// time_used, so a resubmission does not double-count the session.
	timeDelta := elapsed - attempt.TimeUsed
	if timeDelta < 0 {
		timeDelta = 0
	}
	if _, err := s.userRepo.ApplyLedgerTx(ctx, tx, userID, creditDelta, timeDelta); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("ledger user %d missing: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("apply ledger: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	s.log.Info().
		Str("exam_id", examID.String()).
		Int("user_id", userID).
		Int("score", score).
		Int("credit_delta", creditDelta).
		Int("time_used", elapsed).
		Msg("Exam graded")

	return &model.SubmitExamResponse{
		ExamID:    examID,
		Score:     score,
		TimeUsed:  elapsed,
		Questions: safeProjections(questionList),
		Answers:   req.Answers,
	}, nil
}

// sessionStart resolves the exam's start time from the Redis cache, falling
// back to the attempt row's timestamp on a miss or an unreadable value.
func (s *ExamService) sessionStart(ctx context.Context, examID uuid.UUID, fallback time.Time) time.Time {
	raw, err := s.rdb.Get(ctx, config.CacheKey.ExamStartKey(examID.String())).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn().Err(err).Str("exam_id", examID.String()).Msg("Start time cache unavailable")
		}
		return fallback
	}

	unix, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.log.Warn().Str("exam_id", examID.String()).Msg("Invalid cached start time")
		return fallback
	}
	return time.Unix(unix, 0)
}

func safeProjections(questions []model.Question) []model.QuestionForUser {
	out := make([]model.QuestionForUser, len(questions))
	for i, q := range questions {
		out[i] = q.ForUser()
	}
	return out
}

func dedupeInts(in []int) []int {
	seen := make(map[int]bool, len(in))
	out := make([]int, 0, len(in))
	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
