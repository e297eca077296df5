package handlers

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/google/uuid"

	"example.com/lifeboard/backend/internal/models"
)

// TestWriteTransactionsCSV проверяет заголовок и строки выгрузки.
func TestWriteTransactionsCSV(t *testing.T) {
	sip := "SIP"
	transactions := []models.Transaction{
		{
			ID:          uuid.New(),
			AmountCents: 12345,
			Kind:        models.TransactionKindExpense,
			PaymentMode: models.PaymentModeCash,
			Category:    "Food",
			OccurredOn:  "2024-06-01",
		},
		{
			ID:             uuid.New(),
			AmountCents:    5000,
			Kind:           models.TransactionKindExpense,
			PaymentMode:    models.PaymentModeInvestment,
			Category:       models.InvestmentCategory,
			InvestmentType: &sip,
			OccurredOn:     "2024-06-02",
		},
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writeTransactionsCSV(writer, transactions); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	writer.Flush()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %d lines", len(lines))
	}

	if !strings.HasPrefix(lines[0], "id,occurred_on,kind") {
		t.Fatalf("unexpected header: %s", lines[0])
	}
	if !strings.Contains(lines[1], "2024-06-01,expense,cash,Food,,12345,") {
		t.Fatalf("unexpected first row: %s", lines[1])
	}
	if !strings.Contains(lines[2], "SIP,5000") {
		t.Fatalf("unexpected second row: %s", lines[2])
	}
}
