package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quizforge/quizforge-backend/internal/model"
)

// ExamRepository handles exam data access.
type ExamRepository struct {
	pool *pgxpool.Pool
}

// NewExamRepository creates a new ExamRepository.
func NewExamRepository(pool *pgxpool.Pool) *ExamRepository {
	return &ExamRepository{pool: pool}
}

// Begin starts a transaction on the underlying pool. The exam composer and
// grading engine run their multi-row writes inside one transaction so a
// partial failure never leaves an exam without placeholders or a ledger
// update without graded attempts.
func (r *ExamRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

// CreateTx inserts an exam and its exercise references inside tx.
func (r *ExamRepository) CreateTx(ctx context.Context, tx pgx.Tx, e *model.Exam) error {
	err := tx.QueryRow(ctx,
		`INSERT INTO exams (id, user_id, title)
		 VALUES ($1, $2, $3)
		 RETURNING created_at`,
		e.ID, e.UserID, e.Title,
	).Scan(&e.CreatedAt)
	if err != nil {
		return err
	}

	for _, exerciseID := range e.ExerciseIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO exam_exercises (exam_id, exercise_id) VALUES ($1, $2)`,
			e.ID, exerciseID,
		); err != nil {
			return err
		}
	}
	return nil
}

// GetByIDAndUser retrieves an exam only if it is owned by userID. A missing
// exam and a foreign exam are indistinguishable to the caller: both surface
// as pgx.ErrNoRows, which the service maps to its not-found error.
func (r *ExamRepository) GetByIDAndUser(ctx context.Context, examID uuid.UUID, userID int) (*model.Exam, error) {
	e := &model.Exam{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, title, created_at
		 FROM exams WHERE id = $1 AND user_id = $2`, examID, userID,
	).Scan(&e.ID, &e.UserID, &e.Title, &e.CreatedAt)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT exercise_id FROM exam_exercises WHERE exam_id = $1 ORDER BY exercise_id`, examID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var exerciseID int
		if err := rows.Scan(&exerciseID); err != nil {
			return nil, err
		}
		e.ExerciseIDs = append(e.ExerciseIDs, exerciseID)
	}
	return e, rows.Err()
}
