package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quizforge/quizforge-backend/internal/model"
)

// AttemptRepository handles exam-attempt and question-attempt data access.
type AttemptRepository struct {
	pool *pgxpool.Pool
}

// NewAttemptRepository creates a new AttemptRepository.
func NewAttemptRepository(pool *pgxpool.Pool) *AttemptRepository {
	return &AttemptRepository{pool: pool}
}

// CreateExamAttemptTx inserts the exam-attempt summary row inside tx.
// Its created_at is the authoritative session-start marker.
func (r *AttemptRepository) CreateExamAttemptTx(ctx context.Context, tx pgx.Tx, a *model.ExamAttempt) error {
	return tx.QueryRow(ctx,
		`INSERT INTO exam_attempts (exam_id, user_id)
		 VALUES ($1, $2)
		 RETURNING id, score, time_used, created_at, updated_at`,
		a.ExamID, a.UserID,
	).Scan(&a.ID, &a.Score, &a.TimeUsed, &a.CreatedAt, &a.UpdatedAt)
}

// CreateQuestionAttemptsTx inserts one unanswered placeholder per question
// inside tx, using a single batch round trip.
func (r *AttemptRepository) CreateQuestionAttemptsTx(ctx context.Context, tx pgx.Tx, examID uuid.UUID, userID int, questionIDs []int) error {
	batch := &pgx.Batch{}
	for _, questionID := range questionIDs {
		batch.Queue(
			`INSERT INTO question_attempts (exam_id, question_id, user_id)
			 VALUES ($1, $2, $3)`,
			examID, questionID, userID,
		)
	}
	return tx.SendBatch(ctx, batch).Close()
}

// LockExamAttemptTx loads the attempt row for (exam, user) with a row-level
// lock. Two submissions racing on the same exam serialize here.
func (r *AttemptRepository) LockExamAttemptTx(ctx context.Context, tx pgx.Tx, examID uuid.UUID, userID int) (*model.ExamAttempt, error) {
	a := &model.ExamAttempt{}
	err := tx.QueryRow(ctx,
		`SELECT id, exam_id, user_id, score, time_used, created_at, updated_at
		 FROM exam_attempts
		 WHERE exam_id = $1 AND user_id = $2
		 FOR UPDATE`, examID, userID,
	).Scan(&a.ID, &a.ExamID, &a.UserID, &a.Score, &a.TimeUsed, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListQuestionAttemptsTx retrieves the placeholders of an exam inside tx.
func (r *AttemptRepository) ListQuestionAttemptsTx(ctx context.Context, tx pgx.Tx, examID uuid.UUID) ([]model.QuestionAttempt, error) {
	rows, err := tx.Query(ctx,
		`SELECT id, exam_id, question_id, user_id, user_answer, is_correct, created_at, updated_at
		 FROM question_attempts WHERE exam_id = $1
		 ORDER BY id`, examID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanQuestionAttempts(rows)
}

// HasCorrectAttemptTx reports whether the user has ever answered the question
// correctly, based on the stored rows as they were before the current
// submission's writes. The grading engine reads this before mutating the
// placeholder, so a resubmission never re-awards credit for a question that
// was already correct.
func (r *AttemptRepository) HasCorrectAttemptTx(ctx context.Context, tx pgx.Tx, userID, questionID int) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM question_attempts
			WHERE user_id = $1 AND question_id = $2 AND is_correct = TRUE
		 )`, userID, questionID,
	).Scan(&exists)
	return exists, err
}

// UpdateQuestionAttemptTx writes the submitted answer and correctness onto a
// placeholder inside tx.
func (r *AttemptRepository) UpdateQuestionAttemptTx(ctx context.Context, tx pgx.Tx, id int, answer string, correct bool) error {
	_, err := tx.Exec(ctx,
		`UPDATE question_attempts
		 SET user_answer = $1, is_correct = $2, updated_at = NOW()
		 WHERE id = $3`,
		answer, correct, id)
	return err
}

// FinalizeExamAttemptTx writes the aggregate score and elapsed time inside tx.
func (r *AttemptRepository) FinalizeExamAttemptTx(ctx context.Context, tx pgx.Tx, examID uuid.UUID, score, timeUsed int) error {
	_, err := tx.Exec(ctx,
		`UPDATE exam_attempts
		 SET score = $1, time_used = $2, updated_at = NOW()
		 WHERE exam_id = $3`,
		score, timeUsed, examID)
	return err
}

// GetExamAttempt retrieves the attempt summary for (exam, user) without a lock.
func (r *AttemptRepository) GetExamAttempt(ctx context.Context, examID uuid.UUID, userID int) (*model.ExamAttempt, error) {
	a := &model.ExamAttempt{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, exam_id, user_id, score, time_used, created_at, updated_at
		 FROM exam_attempts WHERE exam_id = $1 AND user_id = $2`, examID, userID,
	).Scan(&a.ID, &a.ExamID, &a.UserID, &a.Score, &a.TimeUsed, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListQuestionAttempts retrieves an exam's attempts outside a transaction,
// for history reconstruction.
func (r *AttemptRepository) ListQuestionAttempts(ctx context.Context, examID uuid.UUID) ([]model.QuestionAttempt, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, exam_id, question_id, user_id, user_answer, is_correct, created_at, updated_at
		 FROM question_attempts WHERE exam_id = $1
		 ORDER BY id`, examID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanQuestionAttempts(rows)
}

// ListExamHistory retrieves a user's exam-attempt summaries, newest first.
func (r *AttemptRepository) ListExamHistory(ctx context.Context, userID, limit, offset int) ([]model.ExamHistorySummary, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM exam_attempts WHERE user_id = $1`, userID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT ea.exam_id, e.title, ea.score, ea.time_used, ea.created_at
		 FROM exam_attempts ea
		 JOIN exams e ON e.id = ea.exam_id
		 WHERE ea.user_id = $1
		 ORDER BY ea.created_at DESC, ea.id DESC
		 LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var summaries []model.ExamHistorySummary
	for rows.Next() {
		var s model.ExamHistorySummary
		if err := rows.Scan(&s.ExamID, &s.Title, &s.Score, &s.TimeUsed, &s.TakenAt); err != nil {
			return nil, 0, err
		}
		summaries = append(summaries, s)
	}
	return summaries, total, rows.Err()
}

func scanQuestionAttempts(rows pgx.Rows) ([]model.QuestionAttempt, error) {
	var attempts []model.QuestionAttempt
	for rows.Next() {
		var a model.QuestionAttempt
		if err := rows.Scan(&a.ID, &a.ExamID, &a.QuestionID, &a.UserID, &a.UserAnswer, &a.IsCorrect, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}
