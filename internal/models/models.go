package models

import (
	"time"

	"github.com/google/uuid"

	"example.com/lifeboard/backend/internal/dates"
)

type TransactionKind string

type PaymentMode string

type TaskPriority string

type GoalKind string

const (
	TransactionKindIncome   TransactionKind = "income"
	TransactionKindExpense  TransactionKind = "expense"
	TransactionKindTransfer TransactionKind = "transfer"

	PaymentModeCash       PaymentMode = "cash"
	PaymentModeBank       PaymentMode = "bank"
	PaymentModeInvestment PaymentMode = "investment"

	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityLow    TaskPriority = "low"

	GoalKindLongTerm  GoalKind = "long_term"
	GoalKindShortTerm GoalKind = "short_term"
)

// InvestmentCategory помечает транзакцию как инвестиционную независимо от kind.
const InvestmentCategory = "Investment"

// KnownInvestmentTypes — закрытый список типов инвестиций.
// Валидируется на границе (handlers), агрегаторы принимают значения как есть.
var KnownInvestmentTypes = []string{"SIP", "Stocks", "Mutual Fund", "FD", "Crypto", "Gold"}

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         *string   `json:"name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Transaction struct {
	ID             uuid.UUID       `json:"id"`
	UserID         uuid.UUID       `json:"user_id"`
	AmountCents    int64           `json:"amount_cents"`
	Kind           TransactionKind `json:"kind"`
	PaymentMode    PaymentMode     `json:"payment_mode"`
	Category       string          `json:"category"`
	InvestmentType *string         `json:"investment_type,omitempty"`
	Note           *string         `json:"note,omitempty"`
	OccurredOn     dates.Key       `json:"occurred_on"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Habit несет множество дат выполнения; членство проверяется по календарному ключу.
type Habit struct {
	ID             uuid.UUID              `json:"id"`
	UserID         uuid.UUID              `json:"user_id"`
	Title          string                 `json:"title"`
	TargetPerMonth int                    `json:"target_per_month"`
	CompletedDates map[dates.Key]struct{} `json:"-"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// Completed сообщает, выполнена ли привычка в указанный день.
func (h Habit) Completed(day dates.Key) bool {
	_, ok := h.CompletedDates[day]
	return ok
}

type Task struct {
	ID          uuid.UUID    `json:"id"`
	UserID      uuid.UUID    `json:"user_id"`
	Title       string       `json:"title"`
	Priority    TaskPriority `json:"priority"`
	DueOn       dates.Key    `json:"due_on"`
	IsCompleted bool         `json:"is_completed"`
	GoalID      *uuid.UUID   `json:"goal_id,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

type Goal struct {
	ID                 uuid.UUID `json:"id"`
	UserID             uuid.UUID `json:"user_id"`
	Title              string    `json:"title"`
	Kind               GoalKind  `json:"kind"`
	Deadline           dates.Key `json:"deadline"`
	IsCompleted        bool      `json:"is_completed"`
	CurrentAmountCents int64     `json:"current_amount_cents"`
	TargetAmountCents  int64     `json:"target_amount_cents"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type Note struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	IsPinned  bool      `json:"is_pinned"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RefreshToken struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	TokenHash  string     `json:"-"`
	ExpiresAt  time.Time  `json:"expires_at"`
	CreatedAt  time.Time  `json:"created_at"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
	ReplacedBy *uuid.UUID `json:"replaced_by,omitempty"`
}

// IsKnownInvestmentType проверяет значение по закрытому списку типов.
func IsKnownInvestmentType(value string) bool {
	for _, known := range KnownInvestmentTypes {
		if known == value {
			return true
		}
	}
	return false
}
