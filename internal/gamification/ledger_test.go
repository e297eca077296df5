package gamification

import (
	"errors"
	"testing"
)

// TestAddXPSimple проверяет начисление без перехода уровня.
func TestAddXPSimple(t *testing.T) {
	result, err := AddXP(DefaultState(), 40)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.LeveledUp {
		t.Fatal("expected no level up")
	}
	if result.State.Level != 1 || result.State.CurrentXP != 40 {
		t.Fatalf("unexpected state: %+v", result.State)
	}
}

// TestAddXPLevelUp проверяет переход уровня с переносом остатка.
func TestAddXPLevelUp(t *testing.T) {
	state := State{Level: 1, CurrentXP: 95, RequiredXP: 100}

	result, err := AddXP(state, 20)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !result.LeveledUp || result.LevelsGained != 1 {
		t.Fatalf("expected single level up, got %+v", result)
	}
	if result.State.Level != 2 || result.State.CurrentXP != 15 {
		t.Fatalf("unexpected state: %+v", result.State)
	}
	if result.State.RequiredXP != NextRequiredXP(2) {
		t.Fatalf("unexpected required xp: %d", result.State.RequiredXP)
	}
}

// TestAddXPMultiLevel проверяет прокрутку нескольких уровней одним начислением.
func TestAddXPMultiLevel(t *testing.T) {
	result, err := AddXP(DefaultState(), 250)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.LevelsGained != 2 {
		t.Fatalf("expected 2 levels gained, got %d", result.LevelsGained)
	}
	if result.State.Level != 3 || result.State.CurrentXP != 50 {
		t.Fatalf("unexpected state: %+v", result.State)
	}
}

// TestAddXPNegative проверяет отклонение отрицательной суммы без изменения состояния.
func TestAddXPNegative(t *testing.T) {
	state := State{Level: 3, CurrentXP: 10, RequiredXP: 100}

	_, err := AddXP(state, -1)
	if !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}

	if state.Level != 3 || state.CurrentXP != 10 {
		t.Fatalf("expected input state untouched, got %+v", state)
	}
}

// TestAddXPMonotonic проверяет, что уровень не убывает, а XP не уходит в минус.
func TestAddXPMonotonic(t *testing.T) {
	state := DefaultState()
	amounts := []int64{0, 10, 95, 0, 300, 5, 99, 1}

	for _, amount := range amounts {
		result, err := AddXP(state, amount)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.State.Level < state.Level {
			t.Fatalf("level decreased: %d -> %d", state.Level, result.State.Level)
		}
		if result.State.CurrentXP < 0 {
			t.Fatalf("negative xp: %+v", result.State)
		}
		if result.State.CurrentXP >= result.State.RequiredXP {
			t.Fatalf("state not normalized: %+v", result.State)
		}
		state = result.State
	}
}

// TestAddXPNormalizesLegacyState проверяет починку нулевого required_xp.
func TestAddXPNormalizesLegacyState(t *testing.T) {
	result, err := AddXP(State{}, 5)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.State.Level != 1 || result.State.RequiredXP != BaseLevelXP {
		t.Fatalf("unexpected state: %+v", result.State)
	}
}

// TestNextRequiredXPMonotonic проверяет неубывание кривой уровней.
func TestNextRequiredXPMonotonic(t *testing.T) {
	prev := NextRequiredXP(1)
	for level := 2; level <= 100; level++ {
		curr := NextRequiredXP(level)
		if curr < prev {
			t.Fatalf("curve decreased at level %d: %d -> %d", level, prev, curr)
		}
		prev = curr
	}
}
