package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/lifeboard/backend/internal/dates"
	"example.com/lifeboard/backend/internal/models"
)

type GoalRepository struct {
	db *pgxpool.Pool
}

// NewGoalRepository создает репозиторий целей.
func NewGoalRepository(db *pgxpool.Pool) *GoalRepository {
	return &GoalRepository{db: db}
}

// Create сохраняет цель пользователя.
func (r *GoalRepository) Create(ctx context.Context, goal models.Goal) (models.Goal, error) {
	if !goal.Deadline.Valid() {
		return models.Goal{}, ErrInvalid
	}
	deadline := goal.Deadline.Time()

	row := r.db.QueryRow(ctx,
		`INSERT INTO goals (user_id, title, kind, deadline, current_amount_cents, target_amount_cents)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, user_id, title, kind, deadline, is_completed, current_amount_cents, target_amount_cents, created_at, updated_at`,
		goal.UserID, goal.Title, goal.Kind, deadline, goal.CurrentAmountCents, goal.TargetAmountCents,
	)

	return scanGoal(row)
}

// Update изменяет цель в границах владельца.
func (r *GoalRepository) Update(ctx context.Context, goal models.Goal) (models.Goal, error) {
	if !goal.Deadline.Valid() {
		return models.Goal{}, ErrInvalid
	}
	deadline := goal.Deadline.Time()

	row := r.db.QueryRow(ctx,
		`UPDATE goals
		 SET title = $3, kind = $4, deadline = $5, target_amount_cents = $6, updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, title, kind, deadline, is_completed, current_amount_cents, target_amount_cents, created_at, updated_at`,
		goal.ID, goal.UserID, goal.Title, goal.Kind, deadline, goal.TargetAmountCents,
	)

	updated, err := scanGoal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Goal{}, ErrNotFound
		}
		return models.Goal{}, err
	}

	return updated, nil
}

// Delete удаляет цель; задачи, привязанные к ней, остаются без цели.
func (r *GoalRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM goals WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// List возвращает цели пользователя: сначала ближайшие дедлайны.
func (r *GoalRepository) List(ctx context.Context, userID uuid.UUID) ([]models.Goal, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, title, kind, deadline, is_completed, current_amount_cents, target_amount_cents, created_at, updated_at
		 FROM goals
		 WHERE user_id = $1
		 ORDER BY deadline ASC, created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := make([]models.Goal, 0)
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}

	return goals, rows.Err()
}

// GetByID возвращает цель владельца.
func (r *GoalRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (models.Goal, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, title, kind, deadline, is_completed, current_amount_cents, target_amount_cents, created_at, updated_at
		 FROM goals
		 WHERE id = $1 AND user_id = $2`,
		id, userID,
	)

	goal, err := scanGoal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Goal{}, ErrNotFound
		}
		return models.Goal{}, err
	}

	return goal, nil
}

// AddProgress увеличивает накопленную сумму цели.
func (r *GoalRepository) AddProgress(ctx context.Context, userID, id uuid.UUID, amountCents int64) (models.Goal, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE goals
		 SET current_amount_cents = current_amount_cents + $3, updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, title, kind, deadline, is_completed, current_amount_cents, target_amount_cents, created_at, updated_at`,
		id, userID, amountCents,
	)

	goal, err := scanGoal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Goal{}, ErrNotFound
		}
		return models.Goal{}, err
	}

	return goal, nil
}

// Complete помечает цель выполненной и сообщает, был ли это первый раз.
// Повторный вызов не ошибка: цель возвращается как есть.
func (r *GoalRepository) Complete(ctx context.Context, userID, id uuid.UUID) (models.Goal, bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return models.Goal{}, false, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	row := tx.QueryRow(ctx,
		`SELECT id, user_id, title, kind, deadline, is_completed, current_amount_cents, target_amount_cents, created_at, updated_at
		 FROM goals
		 WHERE id = $1 AND user_id = $2
		 FOR UPDATE`,
		id, userID,
	)

	goal, err := scanGoal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Goal{}, false, ErrNotFound
		}
		return models.Goal{}, false, err
	}

	if goal.IsCompleted {
		return goal, false, tx.Commit(ctx)
	}

	row = tx.QueryRow(ctx,
		`UPDATE goals
		 SET is_completed = TRUE, updated_at = NOW()
		 WHERE id = $1
		 RETURNING id, user_id, title, kind, deadline, is_completed, current_amount_cents, target_amount_cents, created_at, updated_at`,
		id,
	)

	goal, err = scanGoal(row)
	if err != nil {
		return models.Goal{}, false, err
	}

	return goal, true, tx.Commit(ctx)
}

func scanGoal(row pgx.Row) (models.Goal, error) {
	var goal models.Goal
	var deadline time.Time

	err := row.Scan(
		&goal.ID, &goal.UserID, &goal.Title, &goal.Kind, &deadline, &goal.IsCompleted,
		&goal.CurrentAmountCents, &goal.TargetAmountCents, &goal.CreatedAt, &goal.UpdatedAt,
	)
	if err != nil {
		return goal, err
	}

	goal.Deadline = dates.KeyOf(deadline)
	return goal, nil
}
