package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quizforge/quizforge-backend/internal/model"
)

var ErrDuplicateEmail = errors.New("user with this email already exists")

// UserRepository handles user data access.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*model.User, error) {
	u := &model.User{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, email, name, password_hash, credit, learning_time, created_at, updated_at
		 FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Credit, &u.LearningTime, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetByEmail retrieves a user by their unique email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u := &model.User{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, email, name, password_hash, credit, learning_time, created_at, updated_at
		 FROM users WHERE email = $1`, email,
	).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Credit, &u.LearningTime, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Create inserts a new user. Returns ErrDuplicateEmail on a unique violation.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (email, name, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id, credit, learning_time, created_at, updated_at`,
		u.Email, u.Name, u.PasswordHash,
	).Scan(&u.ID, &u.Credit, &u.LearningTime, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// LockTx takes a row lock on the user inside tx. Submissions acquire it
// before reading prior attempts, so two exams of the same user serialize even
// when they share questions.
func (r *UserRepository) LockTx(ctx context.Context, tx pgx.Tx, userID int) error {
	var id int
	return tx.QueryRow(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&id)
}

// ApplyLedgerTx atomically adds credit and learning time to a user inside the
// submission transaction. The caller aggregates all per-question awards into a
// single delta so the update runs exactly once per submission.
func (r *UserRepository) ApplyLedgerTx(ctx context.Context, tx pgx.Tx, userID, creditDelta, timeDelta int) (*model.User, error) {
	u := &model.User{}
	err := tx.QueryRow(ctx,
		`UPDATE users
		 SET credit = credit + $1, learning_time = learning_time + $2, updated_at = NOW()
		 WHERE id = $3
		 RETURNING id, email, name, password_hash, credit, learning_time, created_at, updated_at`,
		creditDelta, timeDelta, userID,
	).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Credit, &u.LearningTime, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// ListTopByCredit retrieves the highest-credit users for the leaderboard.
func (r *UserRepository) ListTopByCredit(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	return r.listTop(ctx, `SELECT id, name, credit, learning_time FROM users ORDER BY credit DESC, id ASC LIMIT $1`, limit)
}

// ListTopByLearningTime retrieves the users with the most cumulative learning time.
func (r *UserRepository) ListTopByLearningTime(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	return r.listTop(ctx, `SELECT id, name, credit, learning_time FROM users ORDER BY learning_time DESC, id ASC LIMIT $1`, limit)
}

func (r *UserRepository) listTop(ctx context.Context, query string, limit int) ([]model.LeaderboardEntry, error) {
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.LeaderboardEntry
	for rows.Next() {
		var e model.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Name, &e.Credit, &e.LearningTime); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
