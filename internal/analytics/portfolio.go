package analytics

import (
	"sort"

	"example.com/lifeboard/backend/internal/models"
)

type InvestmentTotal struct {
	Type       string `json:"type"`
	TotalCents int64  `json:"total_cents"`
}

// PortfolioByType считает чистый вклад по каждому известному типу инвестиций:
// взносы прибавляются, выводы (переводы через инвестиционный режим) вычитаются.
// Типы с нулевым или отрицательным итогом отбрасываются, результат
// сортируется по убыванию суммы.
func PortfolioByType(txs []models.Transaction, knownTypes []string) ([]InvestmentTotal, error) {
	for _, tx := range txs {
		if err := validate(tx); err != nil {
			return nil, err
		}
	}

	totals := make([]InvestmentTotal, 0, len(knownTypes))
	for _, investmentType := range knownTypes {
		var total int64
		for _, tx := range txs {
			if !matchesType(tx, investmentType) {
				continue
			}
			if IsWithdrawal(tx) {
				total -= tx.AmountCents
			} else {
				total += tx.AmountCents
			}
		}
		if total > 0 {
			totals = append(totals, InvestmentTotal{Type: investmentType, TotalCents: total})
		}
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].TotalCents > totals[j].TotalCents
	})

	return totals, nil
}

func matchesType(tx models.Transaction, investmentType string) bool {
	if tx.InvestmentType != nil && *tx.InvestmentType == investmentType {
		return true
	}
	return tx.Category == investmentType
}
