package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/lifeboard/backend/internal/models"
)

type NoteRepository struct {
	db *pgxpool.Pool
}

// NewNoteRepository создает репозиторий заметок.
func NewNoteRepository(db *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{db: db}
}

// Create сохраняет заметку пользователя.
func (r *NoteRepository) Create(ctx context.Context, note models.Note) (models.Note, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO notes (user_id, title, content, is_pinned)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		note.UserID, note.Title, note.Content, note.IsPinned,
	).Scan(&note.ID, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		return models.Note{}, err
	}

	return note, nil
}

// Update изменяет заметку в границах владельца.
func (r *NoteRepository) Update(ctx context.Context, note models.Note) (models.Note, error) {
	err := r.db.QueryRow(ctx,
		`UPDATE notes
		 SET title = $3, content = $4, is_pinned = $5, updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING created_at, updated_at`,
		note.ID, note.UserID, note.Title, note.Content, note.IsPinned,
	).Scan(&note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Note{}, ErrNotFound
		}
		return models.Note{}, err
	}

	return note, nil
}

// Delete удаляет заметку в границах владельца.
func (r *NoteRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM notes WHERE id = $1 AND user_id = $2`,
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

// List возвращает заметки пользователя: закрепленные раньше остальных.
func (r *NoteRepository) List(ctx context.Context, userID uuid.UUID) ([]models.Note, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, title, content, is_pinned, created_at, updated_at
		 FROM notes
		 WHERE user_id = $1
		 ORDER BY is_pinned DESC, updated_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]models.Note, 0)
	for rows.Next() {
		var note models.Note
		if err := rows.Scan(&note.ID, &note.UserID, &note.Title, &note.Content, &note.IsPinned, &note.CreatedAt, &note.UpdatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}

	return notes, rows.Err()
}

// TogglePin переключает закрепление заметки.
func (r *NoteRepository) TogglePin(ctx context.Context, userID, id uuid.UUID) (models.Note, error) {
	var note models.Note

	err := r.db.QueryRow(ctx,
		`UPDATE notes
		 SET is_pinned = NOT is_pinned, updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, title, content, is_pinned, created_at, updated_at`,
		id, userID,
	).Scan(&note.ID, &note.UserID, &note.Title, &note.Content, &note.IsPinned, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Note{}, ErrNotFound
		}
		return models.Note{}, err
	}

	return note, nil
}
