package handlers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"example.com/lifeboard/backend/internal/auth"
	"example.com/lifeboard/backend/internal/dates"
	"example.com/lifeboard/backend/internal/models"
	"example.com/lifeboard/backend/internal/repository"
)

var errInvalidDate = errors.New("date must be YYYY-MM-DD")

// ExportJSON выгружает транзакции пользователя в JSON-файл.
func (h *TransactionHandler) ExportJSON(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	filter, err := exportFilter(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	transactions, err := h.Transactions.List(c.Request().Context(), userID, filter)
	if err != nil {
		return serverError(c)
	}

	c.Response().Header().Set(echo.HeaderContentType, "application/json")
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\"transactions.json\"")
	return c.JSON(http.StatusOK, TransactionListResponse{Transactions: transactions})
}

// ExportCSV выгружает транзакции пользователя в CSV-файл.
func (h *TransactionHandler) ExportCSV(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	filter, err := exportFilter(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	transactions, err := h.Transactions.List(c.Request().Context(), userID, filter)
	if err != nil {
		return serverError(c)
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writeTransactionsCSV(writer, transactions); err != nil {
		return serverError(c)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return serverError(c)
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\"transactions.csv\"")
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func exportFilter(c echo.Context) (repository.TransactionFilter, error) {
	filter := repository.TransactionFilter{}

	if from := c.QueryParam("from"); from != "" {
		if !dates.Key(from).Valid() {
			return filter, errInvalidDate
		}
		filter.From = dates.Key(from)
	}
	if to := c.QueryParam("to"); to != "" {
		if !dates.Key(to).Valid() {
			return filter, errInvalidDate
		}
		filter.To = dates.Key(to)
	}

	return filter, nil
}

func writeTransactionsCSV(writer *csv.Writer, transactions []models.Transaction) error {
	header := []string{
		"id",
		"occurred_on",
		"kind",
		"payment_mode",
		"category",
		"investment_type",
		"amount_cents",
		"note",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, tx := range transactions {
		investmentType := ""
		if tx.InvestmentType != nil {
			investmentType = *tx.InvestmentType
		}
		note := ""
		if tx.Note != nil {
			note = *tx.Note
		}

		record := []string{
			tx.ID.String(),
			string(tx.OccurredOn),
			string(tx.Kind),
			string(tx.PaymentMode),
			tx.Category,
			investmentType,
			strconv.FormatInt(tx.AmountCents, 10),
			note,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}
