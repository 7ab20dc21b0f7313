package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quizforge/quizforge-backend/internal/model"
)

// ExerciseRepository handles exercise data access.
type ExerciseRepository struct {
	pool *pgxpool.Pool
}

// NewExerciseRepository creates a new ExerciseRepository.
func NewExerciseRepository(pool *pgxpool.Pool) *ExerciseRepository {
	return &ExerciseRepository{pool: pool}
}

// GetByID retrieves an exercise by ID.
func (r *ExerciseRepository) GetByID(ctx context.Context, id int) (*model.Exercise, error) {
	e := &model.Exercise{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, description, created_at
		 FROM exercises WHERE id = $1`, id,
	).Scan(&e.ID, &e.Title, &e.Description, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// ListPaginated retrieves exercises with pagination, oldest first.
func (r *ExerciseRepository) ListPaginated(ctx context.Context, limit, offset int) ([]model.Exercise, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM exercises`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, title, description, created_at
		 FROM exercises ORDER BY id LIMIT $1 OFFSET $2`, limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var exercises []model.Exercise
	for rows.Next() {
		var e model.Exercise
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.CreatedAt); err != nil {
			return nil, 0, err
		}
		exercises = append(exercises, e)
	}
	return exercises, total, rows.Err()
}

// CountByIDs returns how many of the given exercise ids exist. Used by the
// exam composer to reject unknown exercises before any write happens.
func (r *ExerciseRepository) CountByIDs(ctx context.Context, ids []int) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM exercises WHERE id = ANY($1)`, ids,
	).Scan(&count)
	return count, err
}

// Create inserts a new exercise. Used by the seeder.
func (r *ExerciseRepository) Create(ctx context.Context, e *model.Exercise) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO exercises (title, description)
		 VALUES ($1, $2)
		 RETURNING id, created_at`,
		e.Title, e.Description,
	).Scan(&e.ID, &e.CreatedAt)
}
