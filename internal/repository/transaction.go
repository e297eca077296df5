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

type TransactionRepository struct {
	db *pgxpool.Pool
}

// NewTransactionRepository создает репозиторий транзакций.
func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// TransactionFilter ограничивает выборку по диапазону дат включительно.
// Нулевые значения снимают соответствующую границу.
type TransactionFilter struct {
	From dates.Key
	To   dates.Key
}

// Create сохраняет транзакцию пользователя.
func (r *TransactionRepository) Create(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	if !tx.OccurredOn.Valid() {
		return models.Transaction{}, ErrInvalid
	}
	occurredOn := tx.OccurredOn.Time()

	row := r.db.QueryRow(ctx,
		`INSERT INTO transactions (user_id, amount_cents, kind, payment_mode, category, investment_type, note, occurred_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, user_id, amount_cents, kind, payment_mode, category, investment_type, note, occurred_on, created_at, updated_at`,
		tx.UserID, tx.AmountCents, tx.Kind, tx.PaymentMode, tx.Category, tx.InvestmentType, tx.Note, occurredOn,
	)

	return scanTransaction(row)
}

// Update изменяет транзакцию в границах владельца.
func (r *TransactionRepository) Update(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	if !tx.OccurredOn.Valid() {
		return models.Transaction{}, ErrInvalid
	}
	occurredOn := tx.OccurredOn.Time()

	row := r.db.QueryRow(ctx,
		`UPDATE transactions
		 SET amount_cents = $3, kind = $4, payment_mode = $5, category = $6,
		     investment_type = $7, note = $8, occurred_on = $9, updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, amount_cents, kind, payment_mode, category, investment_type, note, occurred_on, created_at, updated_at`,
		tx.ID, tx.UserID, tx.AmountCents, tx.Kind, tx.PaymentMode, tx.Category, tx.InvestmentType, tx.Note, occurredOn,
	)

	updated, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Transaction{}, ErrNotFound
		}
		return models.Transaction{}, err
	}

	return updated, nil
}

// Delete удаляет транзакцию в границах владельца.
func (r *TransactionRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM transactions WHERE id = $1 AND user_id = $2`,
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

// GetByID возвращает транзакцию владельца.
func (r *TransactionRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (models.Transaction, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, amount_cents, kind, payment_mode, category, investment_type, note, occurred_on, created_at, updated_at
		 FROM transactions
		 WHERE id = $1 AND user_id = $2`,
		id, userID,
	)

	tx, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Transaction{}, ErrNotFound
		}
		return models.Transaction{}, err
	}

	return tx, nil
}

// List возвращает транзакции пользователя от новых к старым.
func (r *TransactionRepository) List(ctx context.Context, userID uuid.UUID, filter TransactionFilter) ([]models.Transaction, error) {
	query := `SELECT id, user_id, amount_cents, kind, payment_mode, category, investment_type, note, occurred_on, created_at, updated_at
	          FROM transactions
	          WHERE user_id = $1`
	args := []any{userID}

	if filter.From != "" {
		if !filter.From.Valid() {
			return nil, ErrInvalid
		}
		args = append(args, filter.From.Time())
		query += ` AND occurred_on >= $2`
	}

	if filter.To != "" {
		if !filter.To.Valid() {
			return nil, ErrInvalid
		}
		args = append(args, filter.To.Time())
		if filter.From != "" {
			query += ` AND occurred_on <= $3`
		} else {
			query += ` AND occurred_on <= $2`
		}
	}

	query += ` ORDER BY occurred_on DESC, created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := make([]models.Transaction, 0)
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	return transactions, rows.Err()
}

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var tx models.Transaction
	var occurredOn time.Time

	err := row.Scan(
		&tx.ID, &tx.UserID, &tx.AmountCents, &tx.Kind, &tx.PaymentMode,
		&tx.Category, &tx.InvestmentType, &tx.Note, &occurredOn, &tx.CreatedAt, &tx.UpdatedAt,
	)
	if err != nil {
		return tx, err
	}

	tx.OccurredOn = dates.KeyOf(occurredOn)
	return tx, nil
}
