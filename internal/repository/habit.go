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

type HabitRepository struct {
	db *pgxpool.Pool
}

// NewHabitRepository создает репозиторий привычек.
func NewHabitRepository(db *pgxpool.Pool) *HabitRepository {
	return &HabitRepository{db: db}
}

// Create сохраняет привычку пользователя.
func (r *HabitRepository) Create(ctx context.Context, habit models.Habit) (models.Habit, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO habits (user_id, title, target_per_month)
		 VALUES ($1, $2, $3)
		 RETURNING id, user_id, title, target_per_month, created_at, updated_at`,
		habit.UserID, habit.Title, habit.TargetPerMonth,
	).Scan(&habit.ID, &habit.UserID, &habit.Title, &habit.TargetPerMonth, &habit.CreatedAt, &habit.UpdatedAt)
	if err != nil {
		return models.Habit{}, err
	}

	habit.CompletedDates = make(map[dates.Key]struct{})
	return habit, nil
}

// Update изменяет название и месячную цель привычки.
func (r *HabitRepository) Update(ctx context.Context, userID, id uuid.UUID, title string, targetPerMonth int) (models.Habit, error) {
	var habit models.Habit

	err := r.db.QueryRow(ctx,
		`UPDATE habits
		 SET title = $3, target_per_month = $4, updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, title, target_per_month, created_at, updated_at`,
		id, userID, title, targetPerMonth,
	).Scan(&habit.ID, &habit.UserID, &habit.Title, &habit.TargetPerMonth, &habit.CreatedAt, &habit.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Habit{}, ErrNotFound
		}
		return models.Habit{}, err
	}

	loaded := []models.Habit{habit}
	if err := r.loadCompletions(ctx, loaded); err != nil {
		return models.Habit{}, err
	}

	return loaded[0], nil
}

// Delete удаляет привычку вместе с отметками выполнения.
func (r *HabitRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM habits WHERE id = $1 AND user_id = $2`,
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

// List возвращает привычки пользователя с датами выполнения в порядке создания.
func (r *HabitRepository) List(ctx context.Context, userID uuid.UUID) ([]models.Habit, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, title, target_per_month, created_at, updated_at
		 FROM habits
		 WHERE user_id = $1
		 ORDER BY created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	habits := make([]models.Habit, 0)
	for rows.Next() {
		var habit models.Habit
		if err := rows.Scan(&habit.ID, &habit.UserID, &habit.Title, &habit.TargetPerMonth, &habit.CreatedAt, &habit.UpdatedAt); err != nil {
			return nil, err
		}
		habits = append(habits, habit)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadCompletions(ctx, habits); err != nil {
		return nil, err
	}

	return habits, nil
}

// GetByID возвращает привычку владельца с датами выполнения.
func (r *HabitRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (models.Habit, error) {
	var habit models.Habit

	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, title, target_per_month, created_at, updated_at
		 FROM habits
		 WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&habit.ID, &habit.UserID, &habit.Title, &habit.TargetPerMonth, &habit.CreatedAt, &habit.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Habit{}, ErrNotFound
		}
		return models.Habit{}, err
	}

	loaded := []models.Habit{habit}
	if err := r.loadCompletions(ctx, loaded); err != nil {
		return models.Habit{}, err
	}

	return loaded[0], nil
}

// Toggle переключает отметку выполнения привычки за день и сообщает итог.
// Строка привычки блокируется, чтобы параллельные переключения не гонялись.
func (r *HabitRepository) Toggle(ctx context.Context, userID, id uuid.UUID, day dates.Key) (bool, error) {
	if !day.Valid() {
		return false, ErrInvalid
	}
	completedOn := day.Time()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var habitID uuid.UUID
	err = tx.QueryRow(ctx,
		`SELECT id FROM habits WHERE id = $1 AND user_id = $2 FOR UPDATE`,
		id, userID,
	).Scan(&habitID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, ErrNotFound
		}
		return false, err
	}

	cmd, err := tx.Exec(ctx,
		`DELETE FROM habit_completions WHERE habit_id = $1 AND completed_on = $2`,
		id, completedOn,
	)
	if err != nil {
		return false, err
	}

	nowCompleted := cmd.RowsAffected() == 0
	if nowCompleted {
		_, err = tx.Exec(ctx,
			`INSERT INTO habit_completions (habit_id, completed_on) VALUES ($1, $2)`,
			id, completedOn,
		)
		if err != nil {
			return false, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}

	return nowCompleted, nil
}

func (r *HabitRepository) loadCompletions(ctx context.Context, habits []models.Habit) error {
	if len(habits) == 0 {
		return nil
	}

	index := make(map[uuid.UUID]int, len(habits))
	ids := make([]uuid.UUID, 0, len(habits))
	for i := range habits {
		habits[i].CompletedDates = make(map[dates.Key]struct{})
		index[habits[i].ID] = i
		ids = append(ids, habits[i].ID)
	}

	rows, err := r.db.Query(ctx,
		`SELECT habit_id, completed_on FROM habit_completions WHERE habit_id = ANY($1)`,
		ids,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var habitID uuid.UUID
		var completedOn time.Time
		if err := rows.Scan(&habitID, &completedOn); err != nil {
			return err
		}

		if i, ok := index[habitID]; ok {
			habits[i].CompletedDates[dates.KeyOf(completedOn)] = struct{}{}
		}
	}

	return rows.Err()
}
