package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AdminRepository struct {
	db *pgxpool.Pool
}

// NewAdminRepository создает репозиторий административной статистики.
func NewAdminRepository(db *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{db: db}
}

type AdminUser struct {
	ID               string  `json:"id"`
	Email            string  `json:"email"`
	Name             *string `json:"name,omitempty"`
	TransactionCount int64   `json:"transaction_count"`
	HabitCount       int64   `json:"habit_count"`
	Level            int     `json:"level"`
	CreatedAt        string  `json:"created_at"`
}

type UsageSummary struct {
	Users        int64 `json:"users"`
	Transactions int64 `json:"transactions"`
	Habits       int64 `json:"habits"`
	Tasks        int64 `json:"tasks"`
	Goals        int64 `json:"goals"`
	Notes        int64 `json:"notes"`
}

// ListUsers возвращает пользователей с объемом их данных и уровнем.
func (r *AdminRepository) ListUsers(ctx context.Context) ([]AdminUser, error) {
	rows, err := r.db.Query(ctx,
		`SELECT u.id, u.email, u.name,
		        (SELECT COUNT(*) FROM transactions t WHERE t.user_id = u.id),
		        (SELECT COUNT(*) FROM habits h WHERE h.user_id = u.id),
		        COALESCE(x.level, 1),
		        to_char(u.created_at, 'YYYY-MM-DD"T"HH24:MI:SS"Z"')
		 FROM users u
		 LEFT JOIN xp_states x ON x.user_id = u.id
		 ORDER BY u.created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]AdminUser, 0)
	for rows.Next() {
		var user AdminUser
		if err := rows.Scan(&user.ID, &user.Email, &user.Name, &user.TransactionCount, &user.HabitCount, &user.Level, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

// Usage возвращает суммарные счетчики по всем таблицам домена.
func (r *AdminRepository) Usage(ctx context.Context) (UsageSummary, error) {
	var summary UsageSummary

	err := r.db.QueryRow(ctx,
		`SELECT
		   (SELECT COUNT(*) FROM users),
		   (SELECT COUNT(*) FROM transactions),
		   (SELECT COUNT(*) FROM habits),
		   (SELECT COUNT(*) FROM tasks),
		   (SELECT COUNT(*) FROM goals),
		   (SELECT COUNT(*) FROM notes)`,
	).Scan(&summary.Users, &summary.Transactions, &summary.Habits, &summary.Tasks, &summary.Goals, &summary.Notes)
	if err != nil {
		return UsageSummary{}, err
	}

	return summary, nil
}
