// Package gamification реализует одностороннюю XP-книгу: начисления за
// выполненные привычки, задачи и цели и монотонную кривую уровней.
// Пакет определяет только чистую функцию перехода; сериализацию
// конкурирующих начислений обеспечивает слой хранения.
package gamification

import "errors"

// ErrInvalidAmount возвращается при попытке начислить отрицательный XP.
// Вызывающая сторона должна исправить место вызова, ретраи не имеют смысла.
var ErrInvalidAmount = errors.New("xp amount must not be negative")

// Награды за события. Снятие отметки выполнения XP не отнимает:
// книга односторонняя, это осознанное продуктовое решение.
const (
	AwardHabitCompleted = 10
	AwardTaskCompleted  = 20
	AwardGoalCompleted  = 50
)

// BaseLevelXP — плоская кривая: столько XP требует каждый уровень.
const BaseLevelXP = 100

// State — нормализованное состояние игрока: 0 <= CurrentXP < RequiredXP,
// Level только растет.
type State struct {
	Level      int   `json:"level"`
	CurrentXP  int64 `json:"current_xp"`
	RequiredXP int64 `json:"required_xp"`
}

// DefaultState возвращает состояние нового пользователя.
func DefaultState() State {
	return State{Level: 1, CurrentXP: 0, RequiredXP: NextRequiredXP(1)}
}

// Result описывает исход начисления для явной передачи наружу:
// вызывающая сторона сама решает, как донести level-up до пользователя.
type Result struct {
	State        State `json:"state"`
	LeveledUp    bool  `json:"leveled_up"`
	LevelsGained int   `json:"levels_gained"`
}

// NextRequiredXP возвращает стоимость указанного уровня. Функция обязана
// быть неубывающей по уровню, чтобы смена кривой никогда не обесценивала
// уже накопленный прогресс; текущая кривая плоская.
func NextRequiredXP(level int) int64 {
	_ = level
	return BaseLevelXP
}

// AddXP начисляет XP и прокручивает уровни, пока накопленного хватает.
// Входное состояние не мутируется; отрицательная сумма отклоняется с
// ErrInvalidAmount.
func AddXP(state State, amount int64) (Result, error) {
	if amount < 0 {
		return Result{}, ErrInvalidAmount
	}

	next := state
	if next.Level < 1 {
		next.Level = 1
	}
	if next.RequiredXP <= 0 {
		next.RequiredXP = NextRequiredXP(next.Level)
	}

	next.CurrentXP += amount

	levelsGained := 0
	for next.CurrentXP >= next.RequiredXP {
		next.CurrentXP -= next.RequiredXP
		next.Level++
		next.RequiredXP = NextRequiredXP(next.Level)
		levelsGained++
	}

	return Result{
		State:        next,
		LeveledUp:    levelsGained > 0,
		LevelsGained: levelsGained,
	}, nil
}
