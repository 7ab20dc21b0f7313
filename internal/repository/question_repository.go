package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quizforge/quizforge-backend/internal/model"
)

// QuestionRepository handles question data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// ListByExercises retrieves all questions belonging to the given exercises,
// ordered by exercise then question id so composed exams are deterministic.
func (r *QuestionRepository) ListByExercises(ctx context.Context, exerciseIDs []int) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, exercise_id, question_type, content, options, answer, created_at
		 FROM questions WHERE exercise_id = ANY($1)
		 ORDER BY exercise_id, id`, exerciseIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanQuestions(rows)
}

// ListByIDs retrieves questions by id, ordered by id.
func (r *QuestionRepository) ListByIDs(ctx context.Context, ids []int) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, exercise_id, question_type, content, options, answer, created_at
		 FROM questions WHERE id = ANY($1)
		 ORDER BY id`, ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanQuestions(rows)
}

// ListMissedByUser retrieves questions the user has ever answered incorrectly,
// with pagination. A question qualifies if ANY attempt was wrong, even when a
// later attempt corrected it.
func (r *QuestionRepository) ListMissedByUser(ctx context.Context, userID, limit, offset int) ([]model.Question, int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(DISTINCT qa.question_id)
		 FROM question_attempts qa
		 WHERE qa.user_id = $1 AND qa.user_answer IS NOT NULL AND qa.is_correct = FALSE`,
		userID,
	).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT q.id, q.exercise_id, q.question_type, q.content, q.options, q.answer, q.created_at
		 FROM questions q
		 WHERE q.id IN (
			SELECT qa.question_id FROM question_attempts qa
			WHERE qa.user_id = $1 AND qa.user_answer IS NOT NULL AND qa.is_correct = FALSE
		 )
		 ORDER BY q.id LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	questions, err := scanQuestions(rows)
	if err != nil {
		return nil, 0, err
	}
	return questions, total, nil
}

// Create inserts a new question. Used by the seeder.
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO questions (exercise_id, question_type, content, options, answer)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		q.ExerciseID, q.QuestionType, q.Content, q.Options, q.Answer,
	).Scan(&q.ID, &q.CreatedAt)
}

func scanQuestions(rows pgx.Rows) ([]model.Question, error) {
	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.ExerciseID, &q.QuestionType, &q.Content, &q.Options, &q.Answer, &q.CreatedAt); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}
