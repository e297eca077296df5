package analytics

import (
	"sort"

	"example.com/lifeboard/backend/internal/dates"
	"example.com/lifeboard/backend/internal/models"
)

type BalanceSummary struct {
	BankCents     int64 `json:"bank_cents"`
	CashCents     int64 `json:"cash_cents"`
	NetWorthCents int64 `json:"net_worth_cents"`
}

type MonthlyTotals struct {
	IncomeCents   int64 `json:"income_cents"`
	ExpenseCents  int64 `json:"expense_cents"`
	InvestedCents int64 `json:"invested_cents"`
}

type CategoryTotal struct {
	Category   string `json:"category"`
	TotalCents int64  `json:"total_cents"`
}

type DailyPoint struct {
	Date            dates.Key `json:"date"`
	IncomeCents     int64     `json:"income_cents"`
	ExpenseCents    int64     `json:"expense_cents"`
	InvestmentCents int64     `json:"investment_cents"`
}

// Balances считает балансы по снимку транзакций. Чистый капитал — сумма всех
// знаковых сумм; банк и наличные — те же суммы, ограниченные своим режимом
// оплаты. Инвестиционный режим исключен из банка и наличных, но входит в
// чистый капитал: это документированное правило, источник вел себя
// по-разному в разных представлениях.
func Balances(txs []models.Transaction) (BalanceSummary, error) {
	var summary BalanceSummary

	for _, tx := range txs {
		if err := validate(tx); err != nil {
			return BalanceSummary{}, err
		}

		signed := signedCents(tx)
		summary.NetWorthCents += signed

		switch tx.PaymentMode {
		case models.PaymentModeBank:
			summary.BankCents += signed
		case models.PaymentModeCash:
			summary.CashCents += signed
		}
	}

	return summary, nil
}

// MonthlyTotalsFor считает доход/расход/инвестиции за календарный месяц.
// Каждая транзакция попадает ровно в одну корзину; инвестиционная
// классификация имеет приоритет над расходом.
func MonthlyTotalsFor(txs []models.Transaction, month dates.Month) (MonthlyTotals, error) {
	var totals MonthlyTotals

	for _, tx := range txs {
		class, err := Classify(tx)
		if err != nil {
			return MonthlyTotals{}, err
		}

		if !month.Contains(tx.OccurredOn) {
			continue
		}

		switch class {
		case ClassIncome:
			totals.IncomeCents += tx.AmountCents
		case ClassExpense:
			totals.ExpenseCents += tx.AmountCents
		case ClassInvestment:
			totals.InvestedCents += tx.AmountCents
		}
	}

	return totals, nil
}

// CategoryBreakdown группирует транзакции указанного вида по категориям.
// Сортировка — по убыванию суммы, при равенстве сохраняется порядок первого
// появления категории во входе. Для расходов инвестиционно окрашенные
// записи уже отфильтрованы классификацией.
func CategoryBreakdown(txs []models.Transaction, kind models.TransactionKind) ([]CategoryTotal, error) {
	want := ClassExpense
	if kind == models.TransactionKindIncome {
		want = ClassIncome
	}

	totals := make(map[string]int64)
	firstSeen := make(map[string]int)
	order := make([]string, 0)

	for _, tx := range txs {
		class, err := Classify(tx)
		if err != nil {
			return nil, err
		}
		if class != want {
			continue
		}

		if _, seen := totals[tx.Category]; !seen {
			firstSeen[tx.Category] = len(order)
			order = append(order, tx.Category)
		}
		totals[tx.Category] += tx.AmountCents
	}

	breakdown := make([]CategoryTotal, 0, len(order))
	for _, category := range order {
		breakdown = append(breakdown, CategoryTotal{Category: category, TotalCents: totals[category]})
	}

	sort.SliceStable(breakdown, func(i, j int) bool {
		if breakdown[i].TotalCents != breakdown[j].TotalCents {
			return breakdown[i].TotalCents > breakdown[j].TotalCents
		}
		return firstSeen[breakdown[i].Category] < firstSeen[breakdown[j].Category]
	})

	return breakdown, nil
}

// DailySeries строит ряд по дням: одна строка на каждый день, встретившийся
// во входе, по возрастанию даты. Пропущенные дни не заполняются нулями —
// непрерывный ряд при необходимости строит вызывающая сторона.
func DailySeries(txs []models.Transaction) ([]DailyPoint, error) {
	byDay := make(map[dates.Key]*DailyPoint)

	for _, tx := range txs {
		class, err := Classify(tx)
		if err != nil {
			return nil, err
		}

		point, ok := byDay[tx.OccurredOn]
		if !ok {
			point = &DailyPoint{Date: tx.OccurredOn}
			byDay[tx.OccurredOn] = point
		}

		switch class {
		case ClassIncome:
			point.IncomeCents += tx.AmountCents
		case ClassExpense:
			point.ExpenseCents += tx.AmountCents
		case ClassInvestment:
			point.InvestmentCents += tx.AmountCents
		}
	}

	series := make([]DailyPoint, 0, len(byDay))
	for _, point := range byDay {
		series = append(series, *point)
	}

	sort.Slice(series, func(i, j int) bool {
		return series[i].Date < series[j].Date
	})

	return series, nil
}
