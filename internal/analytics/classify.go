// Package analytics содержит чистый вычислительный слой приложения:
// финансовые агрегаты, аналитику привычек, портфель и движок подсказок.
// Функции не мутируют входные снимки и не выполняют I/O.
package analytics

import (
	"errors"

	"example.com/lifeboard/backend/internal/models"
)

// ErrMalformedRecord сигнализирует о нарушении контракта данных: запись с
// отрицательной суммой или неизвестным enum-значением. Это баг слоя данных,
// а не пользовательская ошибка, поэтому агрегаторы падают сразу, вместо того
// чтобы молча выдавать неверные суммы.
var ErrMalformedRecord = errors.New("malformed record")

// Class — единственная точка истины о том, чем является транзакция.
// Разрозненные ad hoc проверки "категория значит инвестиция" здесь сведены
// в одну функцию классификации, которую используют все агрегаторы.
type Class int

const (
	ClassIncome Class = iota
	ClassExpense
	ClassInvestment
	ClassTransferBank
	ClassTransferCash
)

// Classify относит транзакцию ровно к одному классу.
//
// Инвестиционная окраска (категория "Investment", заполненный investment_type
// или перевод через инвестиционный режим оплаты) имеет приоритет над kind:
// инвестиционный расход попадает в ClassInvestment, а не в ClassExpense.
func Classify(tx models.Transaction) (Class, error) {
	if err := validate(tx); err != nil {
		return 0, err
	}

	if investmentFlavored(tx) {
		return ClassInvestment, nil
	}

	switch tx.Kind {
	case models.TransactionKindIncome:
		return ClassIncome, nil
	case models.TransactionKindExpense:
		return ClassExpense, nil
	default: // transfer
		if tx.PaymentMode == models.PaymentModeCash {
			return ClassTransferCash, nil
		}
		return ClassTransferBank, nil
	}
}

// IsWithdrawal сообщает, является ли транзакция выводом средств из инвестиций:
// перевод, проведенный через инвестиционный режим оплаты.
func IsWithdrawal(tx models.Transaction) bool {
	return tx.Kind == models.TransactionKindTransfer && tx.PaymentMode == models.PaymentModeInvestment
}

func investmentFlavored(tx models.Transaction) bool {
	if tx.Category == models.InvestmentCategory || tx.InvestmentType != nil {
		return true
	}
	return IsWithdrawal(tx)
}

// signedCents возвращает сумму со знаком: доход со знаком плюс, расход и
// исходящий перевод — минус. Знак выводится из kind и никогда не хранится.
func signedCents(tx models.Transaction) int64 {
	if tx.Kind == models.TransactionKindIncome {
		return tx.AmountCents
	}
	return -tx.AmountCents
}

func validate(tx models.Transaction) error {
	if tx.AmountCents < 0 {
		return ErrMalformedRecord
	}

	switch tx.Kind {
	case models.TransactionKindIncome, models.TransactionKindExpense, models.TransactionKindTransfer:
	default:
		return ErrMalformedRecord
	}

	switch tx.PaymentMode {
	case models.PaymentModeCash, models.PaymentModeBank, models.PaymentModeInvestment:
	default:
		return ErrMalformedRecord
	}

	if !tx.OccurredOn.Valid() {
		return ErrMalformedRecord
	}

	return nil
}
