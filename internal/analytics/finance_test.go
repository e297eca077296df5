package analytics

import (
	"errors"
	"testing"
	"time"

	"example.com/lifeboard/backend/internal/dates"
	"example.com/lifeboard/backend/internal/models"
)

func tx(kind models.TransactionKind, mode models.PaymentMode, amount int64, category string, day dates.Key) models.Transaction {
	return models.Transaction{
		AmountCents: amount,
		Kind:        kind,
		PaymentMode: mode,
		Category:    category,
		OccurredOn:  day,
	}
}

// TestBalancesAndMonthlyTotals проверяет сквозной сценарий: доход в банк,
// расход наличными и инвестиционный расход.
func TestBalancesAndMonthlyTotals(t *testing.T) {
	sip := "SIP"
	investment := tx(models.TransactionKindExpense, models.PaymentModeInvestment, 2000, models.InvestmentCategory, "2024-06-10")
	investment.InvestmentType = &sip

	txs := []models.Transaction{
		tx(models.TransactionKindIncome, models.PaymentModeBank, 10000, "Salary", "2024-06-01"),
		tx(models.TransactionKindExpense, models.PaymentModeCash, 3000, "Food", "2024-06-05"),
		investment,
	}

	balances, err := Balances(txs)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if balances.BankCents != 10000 || balances.CashCents != -3000 || balances.NetWorthCents != 5000 {
		t.Fatalf("unexpected balances: %+v", balances)
	}

	totals, err := MonthlyTotalsFor(txs, dates.Month{Year: 2024, Month: time.June})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if totals.IncomeCents != 10000 || totals.ExpenseCents != 3000 || totals.InvestedCents != 2000 {
		t.Fatalf("unexpected totals: %+v", totals)
	}
}

// TestBalancesEmpty проверяет нулевые агрегаты на пустом входе.
func TestBalancesEmpty(t *testing.T) {
	balances, err := Balances(nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if balances != (BalanceSummary{}) {
		t.Fatalf("expected zero balances, got %+v", balances)
	}
}

// TestBalanceIdentity проверяет, что чистый капитал равен сумме знаковых сумм.
func TestBalanceIdentity(t *testing.T) {
	txs := []models.Transaction{
		tx(models.TransactionKindIncome, models.PaymentModeBank, 12345, "Salary", "2024-06-01"),
		tx(models.TransactionKindExpense, models.PaymentModeBank, 678, "Bills", "2024-06-02"),
		tx(models.TransactionKindTransfer, models.PaymentModeBank, 1000, models.InvestmentCategory, "2024-06-03"),
		tx(models.TransactionKindExpense, models.PaymentModeCash, 90, "Food", "2024-06-04"),
	}

	balances, err := Balances(txs)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var want int64
	for _, transaction := range txs {
		want += signedCents(transaction)
	}
	if balances.NetWorthCents != want {
		t.Fatalf("expected net worth %d, got %d", want, balances.NetWorthCents)
	}
}

// TestClassifyExclusive проверяет, что транзакция попадает ровно в одну корзину.
func TestClassifyExclusive(t *testing.T) {
	sip := "SIP"
	flavored := tx(models.TransactionKindExpense, models.PaymentModeBank, 500, "Misc", "2024-06-01")
	flavored.InvestmentType = &sip

	cases := []models.Transaction{
		tx(models.TransactionKindIncome, models.PaymentModeBank, 100, "Salary", "2024-06-01"),
		tx(models.TransactionKindExpense, models.PaymentModeCash, 100, "Food", "2024-06-01"),
		tx(models.TransactionKindExpense, models.PaymentModeBank, 100, models.InvestmentCategory, "2024-06-01"),
		tx(models.TransactionKindTransfer, models.PaymentModeInvestment, 100, "Payout", "2024-06-01"),
		flavored,
	}

	for i, transaction := range cases {
		totals, err := MonthlyTotalsFor([]models.Transaction{transaction}, dates.Month{Year: 2024, Month: time.June})
		if err != nil {
			t.Fatalf("case %d: expected no error, got %v", i, err)
		}

		buckets := 0
		if totals.IncomeCents > 0 {
			buckets++
		}
		if totals.ExpenseCents > 0 {
			buckets++
		}
		if totals.InvestedCents > 0 {
			buckets++
		}
		if buckets != 1 {
			t.Fatalf("case %d: expected exactly one bucket, got %+v", i, totals)
		}
	}
}

// TestClassifyInvestmentPrecedence проверяет приоритет инвестиции над расходом.
func TestClassifyInvestmentPrecedence(t *testing.T) {
	class, err := Classify(tx(models.TransactionKindExpense, models.PaymentModeBank, 100, models.InvestmentCategory, "2024-06-01"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if class != ClassInvestment {
		t.Fatalf("expected ClassInvestment, got %v", class)
	}
}

// TestClassifyMalformed проверяет быстрый отказ на испорченной записи.
func TestClassifyMalformed(t *testing.T) {
	bad := []models.Transaction{
		tx(models.TransactionKindIncome, models.PaymentModeBank, -1, "Salary", "2024-06-01"),
		tx("bonus", models.PaymentModeBank, 100, "Salary", "2024-06-01"),
		tx(models.TransactionKindIncome, "wallet", 100, "Salary", "2024-06-01"),
		tx(models.TransactionKindIncome, models.PaymentModeBank, 100, "Salary", "June 1st"),
	}

	for i, transaction := range bad {
		if _, err := Classify(transaction); !errors.Is(err, ErrMalformedRecord) {
			t.Fatalf("case %d: expected ErrMalformedRecord, got %v", i, err)
		}
	}

	if _, err := Balances(bad[:1]); !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("expected ErrMalformedRecord from Balances, got %v", err)
	}
}

// TestCategoryBreakdownOrder проверяет сортировку по убыванию и стабильность.
func TestCategoryBreakdownOrder(t *testing.T) {
	txs := []models.Transaction{
		tx(models.TransactionKindExpense, models.PaymentModeCash, 100, "Food", "2024-06-01"),
		tx(models.TransactionKindExpense, models.PaymentModeCash, 300, "Rent", "2024-06-01"),
		tx(models.TransactionKindExpense, models.PaymentModeCash, 100, "Travel", "2024-06-02"),
		tx(models.TransactionKindExpense, models.PaymentModeCash, 200, "Food", "2024-06-03"),
		tx(models.TransactionKindExpense, models.PaymentModeBank, 999, models.InvestmentCategory, "2024-06-03"),
	}

	breakdown, err := CategoryBreakdown(txs, models.TransactionKindExpense)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := []CategoryTotal{
		{Category: "Food", TotalCents: 300},
		{Category: "Rent", TotalCents: 300},
		{Category: "Travel", TotalCents: 100},
	}
	if len(breakdown) != len(want) {
		t.Fatalf("expected %d categories, got %d", len(want), len(breakdown))
	}
	for i := range want {
		if breakdown[i] != want[i] {
			t.Fatalf("position %d: expected %+v, got %+v", i, want[i], breakdown[i])
		}
	}
}

// TestDailySeries проверяет порядок ряда и отсутствие заполнения нулями.
func TestDailySeries(t *testing.T) {
	txs := []models.Transaction{
		tx(models.TransactionKindExpense, models.PaymentModeCash, 50, "Food", "2024-06-10"),
		tx(models.TransactionKindIncome, models.PaymentModeBank, 900, "Salary", "2024-06-01"),
		tx(models.TransactionKindExpense, models.PaymentModeCash, 25, "Food", "2024-06-10"),
		tx(models.TransactionKindExpense, models.PaymentModeBank, 10, models.InvestmentCategory, "2024-06-10"),
	}

	series, err := DailySeries(txs)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(series) != 2 {
		t.Fatalf("expected 2 points, got %d", len(series))
	}
	if series[0].Date != "2024-06-01" || series[0].IncomeCents != 900 {
		t.Fatalf("unexpected first point: %+v", series[0])
	}
	if series[1].Date != "2024-06-10" || series[1].ExpenseCents != 75 || series[1].InvestmentCents != 10 {
		t.Fatalf("unexpected second point: %+v", series[1])
	}
}

// TestPortfolioByType проверяет чистый вклад по типам и вычитание выводов.
func TestPortfolioByType(t *testing.T) {
	sip := "SIP"
	stocks := "Stocks"

	contribution := tx(models.TransactionKindExpense, models.PaymentModeInvestment, 5000, models.InvestmentCategory, "2024-06-01")
	contribution.InvestmentType = &sip
	topUp := tx(models.TransactionKindTransfer, models.PaymentModeBank, 1000, models.InvestmentCategory, "2024-06-05")
	topUp.InvestmentType = &sip
	withdrawal := tx(models.TransactionKindTransfer, models.PaymentModeInvestment, 2000, "Payout", "2024-06-10")
	withdrawal.InvestmentType = &sip
	stocksBuy := tx(models.TransactionKindExpense, models.PaymentModeInvestment, 4500, models.InvestmentCategory, "2024-06-03")
	stocksBuy.InvestmentType = &stocks
	drained := tx(models.TransactionKindTransfer, models.PaymentModeInvestment, 100, "Gold", "2024-06-04")

	portfolio, err := PortfolioByType(
		[]models.Transaction{contribution, topUp, withdrawal, stocksBuy, drained},
		[]string{"SIP", "Stocks", "Gold", "FD"},
	)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := []InvestmentTotal{
		{Type: "Stocks", TotalCents: 4500},
		{Type: "SIP", TotalCents: 4000},
	}
	if len(portfolio) != len(want) {
		t.Fatalf("expected %d entries, got %d: %+v", len(want), len(portfolio), portfolio)
	}
	for i := range want {
		if portfolio[i] != want[i] {
			t.Fatalf("position %d: expected %+v, got %+v", i, want[i], portfolio[i])
		}
	}
}
