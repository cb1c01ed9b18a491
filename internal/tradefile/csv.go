// Package tradefile reads trade tables from CSV files. A row is
// {Symbol, Quantity, Price, Date, Commission}; the reserved symbols
// SUBSCRIPTION and WITHDRAWAL mark cash movements.
package tradefile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"portfoliotracker/types"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var EmptyFileErr = errors.New("trade file contains no rows")

const columns = 5

// Load reads the trade table at path. Each row is assigned a fresh order id.
func Load(path string) ([]types.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	txns, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return txns, nil
}

// Read parses a trade table from r. A header row is skipped when the
// quantity column is not numeric.
func Read(r io.Reader) ([]types.Transaction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = columns
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 && isHeader(rows[0]) {
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return nil, EmptyFileErr
	}

	var txns []types.Transaction
	for i, row := range rows {
		txn, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

func parseRow(row []string) (types.Transaction, error) {
	quantity, err := decimal.NewFromString(row[1])
	if err != nil {
		return types.Transaction{}, fmt.Errorf("quantity %q: %w", row[1], err)
	}
	price, err := decimal.NewFromString(emptyToZero(row[2]))
	if err != nil {
		return types.Transaction{}, fmt.Errorf("price %q: %w", row[2], err)
	}
	date, err := types.ParseDate(row[3])
	if err != nil {
		return types.Transaction{}, err
	}
	commission, err := decimal.NewFromString(emptyToZero(row[4]))
	if err != nil {
		return types.Transaction{}, fmt.Errorf("commission %q: %w", row[4], err)
	}
	return types.NewTransaction(row[0], quantity, date, price, commission, uuid.NewString())
}

func isHeader(row []string) bool {
	_, err := decimal.NewFromString(row[1])
	return err != nil
}

func emptyToZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
