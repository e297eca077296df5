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

type TaskRepository struct {
	db *pgxpool.Pool
}

// NewTaskRepository создает репозиторий задач.
func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create сохраняет задачу пользователя.
func (r *TaskRepository) Create(ctx context.Context, task models.Task) (models.Task, error) {
	if !task.DueOn.Valid() {
		return models.Task{}, ErrInvalid
	}
	dueOn := task.DueOn.Time()

	row := r.db.QueryRow(ctx,
		`INSERT INTO tasks (user_id, title, priority, due_on, goal_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, user_id, title, priority, due_on, is_completed, goal_id, created_at, updated_at`,
		task.UserID, task.Title, task.Priority, dueOn, task.GoalID,
	)

	return scanTask(row)
}

// Update изменяет задачу в границах владельца.
func (r *TaskRepository) Update(ctx context.Context, task models.Task) (models.Task, error) {
	if !task.DueOn.Valid() {
		return models.Task{}, ErrInvalid
	}
	dueOn := task.DueOn.Time()

	row := r.db.QueryRow(ctx,
		`UPDATE tasks
		 SET title = $3, priority = $4, due_on = $5, goal_id = $6, updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, title, priority, due_on, is_completed, goal_id, created_at, updated_at`,
		task.ID, task.UserID, task.Title, task.Priority, dueOn, task.GoalID,
	)

	updated, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Task{}, ErrNotFound
		}
		return models.Task{}, err
	}

	return updated, nil
}

// Delete удаляет задачу в границах владельца.
func (r *TaskRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM tasks WHERE id = $1 AND user_id = $2`,
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

// List возвращает задачи пользователя: сначала ближайшие дедлайны.
func (r *TaskRepository) List(ctx context.Context, userID uuid.UUID) ([]models.Task, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, title, priority, due_on, is_completed, goal_id, created_at, updated_at
		 FROM tasks
		 WHERE user_id = $1
		 ORDER BY due_on ASC, created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]models.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

// Toggle переключает статус выполнения задачи и возвращает ее новое состояние.
func (r *TaskRepository) Toggle(ctx context.Context, userID, id uuid.UUID) (models.Task, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE tasks
		 SET is_completed = NOT is_completed, updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, title, priority, due_on, is_completed, goal_id, created_at, updated_at`,
		id, userID,
	)

	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Task{}, ErrNotFound
		}
		return models.Task{}, err
	}

	return task, nil
}

func scanTask(row pgx.Row) (models.Task, error) {
	var task models.Task
	var dueOn time.Time

	err := row.Scan(
		&task.ID, &task.UserID, &task.Title, &task.Priority, &dueOn,
		&task.IsCompleted, &task.GoalID, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		return task, err
	}

	task.DueOn = dates.KeyOf(dueOn)
	return task, nil
}
