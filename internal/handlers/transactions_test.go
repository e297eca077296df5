package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type testValidator struct {
	validate *validator.Validate
}

func (v testValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func jsonContext(t *testing.T, body string) echo.Context {
	t.Helper()

	e := echo.New()
	e.Validator = testValidator{validate: validator.New()}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

// TestBindTransactionTransfer проверяет, что перевод обязан ссылаться на инвестиции.
func TestBindTransactionTransfer(t *testing.T) {
	h := &TransactionHandler{}
	userID := uuid.New()

	plain := `{"amount_cents":100,"kind":"transfer","payment_mode":"bank","category":"Misc","occurred_on":"2024-06-01"}`
	if _, err := h.bindTransaction(jsonContext(t, plain), userID); err == nil {
		t.Fatal("expected error for plain transfer")
	}

	flavored := `{"amount_cents":100,"kind":"transfer","payment_mode":"bank","category":"Investment","occurred_on":"2024-06-01"}`
	if _, err := h.bindTransaction(jsonContext(t, flavored), userID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	withdrawal := `{"amount_cents":100,"kind":"transfer","payment_mode":"investment","category":"Payout","occurred_on":"2024-06-01"}`
	if _, err := h.bindTransaction(jsonContext(t, withdrawal), userID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

// TestBindTransactionInvestmentType проверяет закрытый список типов инвестиций.
func TestBindTransactionInvestmentType(t *testing.T) {
	h := &TransactionHandler{}
	userID := uuid.New()

	known := `{"amount_cents":100,"kind":"expense","payment_mode":"investment","category":"Investment","investment_type":"SIP","occurred_on":"2024-06-01"}`
	tx, err := h.bindTransaction(jsonContext(t, known), userID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if tx.InvestmentType == nil || *tx.InvestmentType != "SIP" {
		t.Fatalf("unexpected investment type: %+v", tx.InvestmentType)
	}

	unknown := `{"amount_cents":100,"kind":"expense","payment_mode":"investment","category":"Investment","investment_type":"Lottery","occurred_on":"2024-06-01"}`
	if _, err := h.bindTransaction(jsonContext(t, unknown), userID); err == nil {
		t.Fatal("expected error for unknown investment type")
	}
}

// TestBindTransactionBadDate проверяет отказ на неканонической дате.
func TestBindTransactionBadDate(t *testing.T) {
	h := &TransactionHandler{}

	body := `{"amount_cents":100,"kind":"expense","payment_mode":"cash","category":"Food","occurred_on":"June 1st"}`
	if _, err := h.bindTransaction(jsonContext(t, body), uuid.New()); err == nil {
		t.Fatal("expected error for invalid date")
	}
}

// TestNormalizeOptional проверяет обрезку и схлопывание пустых значений.
func TestNormalizeOptional(t *testing.T) {
	if got := normalizeOptional(nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}

	empty := "   "
	if got := normalizeOptional(&empty); got != nil {
		t.Fatalf("expected nil for blank, got %q", *got)
	}

	value := "  SIP  "
	got := normalizeOptional(&value)
	if got == nil || *got != "SIP" {
		t.Fatalf("expected SIP, got %v", got)
	}
}
