package generator

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finprofile-dev/finprofile/internal/model"
)

// Header is the CSV header for transaction files. The label comes first.
const Header = "future_transaction,transaction_id,customer_name,amount,transaction_count,days_since_last,balance"

const (
	numFields   = 7
	colLabel    = 0
	colID       = 1
	colCustomer = 2
	colAmount   = 3
	colCount    = 4
	colDays     = 5
	colBalance  = 6
)

// MarshalTransaction converts a Transaction to a CSV row.
func MarshalTransaction(t model.Transaction) []string {
	row := make([]string, numFields)
	row[colLabel] = strconv.Itoa(t.Label)
	row[colID] = t.ID.String()
	row[colCustomer] = t.Customer
	row[colAmount] = t.Amount.StringFixed(2)
	row[colCount] = strconv.Itoa(t.TransactionCount)
	row[colDays] = strconv.Itoa(t.DaysSinceLast)
	row[colBalance] = t.Balance.StringFixed(2)
	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	label, err := strconv.Atoi(record[colLabel])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing label %q: %w", record[colLabel], err)
	}
	id, err := uuid.Parse(record[colID])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing transaction_id %q: %w", record[colID], err)
	}
	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}
	count, err := strconv.Atoi(record[colCount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing transaction_count %q: %w", record[colCount], err)
	}
	days, err := strconv.Atoi(record[colDays])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing days_since_last %q: %w", record[colDays], err)
	}
	balance, err := decimal.NewFromString(record[colBalance])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing balance %q: %w", record[colBalance], err)
	}

	return model.Transaction{
		ID:               id,
		Customer:         record[colCustomer],
		Amount:           amount,
		TransactionCount: count,
		DaysSinceLast:    days,
		Balance:          balance,
		Label:            label,
	}, nil
}

// WriteTransactions writes a header and one row per transaction.
func WriteTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, t := range txns {
		if err := cw.Write(MarshalTransaction(t)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// ReadTransactions reads a transaction CSV written by WriteTransactions.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading transactions CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var txns []model.Transaction
	for i, rec := range records[1:] {
		t, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, t)
	}
	return txns, nil
}

// WriteFile writes txns to path, creating parent directories.
func WriteFile(path string, txns []model.Transaction) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteTransactions(f, txns); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
