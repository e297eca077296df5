package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/lifeboard/backend/internal/gamification"
)

// XPRepository хранит состояние игрока и сериализует начисления.
// Сама книга XP чистая, поэтому вся конкуренция гасится здесь
// блокировкой строки на время перехода.
type XPRepository struct {
	db *pgxpool.Pool
}

// NewXPRepository создает репозиторий XP.
func NewXPRepository(db *pgxpool.Pool) *XPRepository {
	return &XPRepository{db: db}
}

// Get возвращает состояние пользователя, создавая запись при первом обращении.
func (r *XPRepository) Get(ctx context.Context, userID uuid.UUID) (gamification.State, error) {
	state := gamification.DefaultState()

	err := r.db.QueryRow(ctx,
		`INSERT INTO xp_states (user_id, level, current_xp, required_xp)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id) DO UPDATE SET user_id = xp_states.user_id
		 RETURNING level, current_xp, required_xp`,
		userID, state.Level, state.CurrentXP, state.RequiredXP,
	).Scan(&state.Level, &state.CurrentXP, &state.RequiredXP)
	if err != nil {
		return gamification.State{}, err
	}

	return state, nil
}

// Award начисляет XP под блокировкой строки и возвращает исход перехода.
func (r *XPRepository) Award(ctx context.Context, userID uuid.UUID, amount int64) (gamification.Result, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return gamification.Result{}, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var state gamification.State
	err = tx.QueryRow(ctx,
		`SELECT level, current_xp, required_xp
		 FROM xp_states
		 WHERE user_id = $1
		 FOR UPDATE`,
		userID,
	).Scan(&state.Level, &state.CurrentXP, &state.RequiredXP)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return gamification.Result{}, err
		}

		state = gamification.DefaultState()
		_, err = tx.Exec(ctx,
			`INSERT INTO xp_states (user_id, level, current_xp, required_xp)
			 VALUES ($1, $2, $3, $4)`,
			userID, state.Level, state.CurrentXP, state.RequiredXP,
		)
		if err != nil {
			return gamification.Result{}, err
		}
	}

	result, err := gamification.AddXP(state, amount)
	if err != nil {
		return gamification.Result{}, err
	}

	_, err = tx.Exec(ctx,
		`UPDATE xp_states
		 SET level = $2, current_xp = $3, required_xp = $4, updated_at = NOW()
		 WHERE user_id = $1`,
		userID, result.State.Level, result.State.CurrentXP, result.State.RequiredXP,
	)
	if err != nil {
		return gamification.Result{}, err
	}

	return result, tx.Commit(ctx)
}
