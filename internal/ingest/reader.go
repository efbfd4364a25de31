// Package ingest turns CSV rows into ledger events. Rows that cannot be
// parsed are reported one at a time as RowErrors so the caller can skip
// them and keep reading; they never reach the ledger engine.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sbridger/reckon/internal/ledger"
)

// RowError reports a single row that could not be turned into an event.
// The row is skipped; the next call to Next continues with the row after
// it.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// columns maps the four event fields to their positions in a record.
type columns struct {
	kind, client, tx, amount int
}

// defaultColumns is the conventional order used when the file carries no
// header row.
var defaultColumns = columns{kind: 0, client: 1, tx: 2, amount: 3}

// Reader streams ledger events out of CSV input. The first row may be a
// header naming the columns in any order; without one the conventional
// type,client,tx,amount order is assumed. Field values are trimmed and
// the type keyword is matched case-insensitively.
type Reader struct {
	csv        *csv.Reader
	cols       columns
	headerDone bool
}

func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	// Rows for dispute, resolve, and chargeback often omit the amount
	// column entirely, so record lengths vary within one file.
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return &Reader{csv: cr, cols: defaultColumns}
}

// Next returns the next event in the input. It returns a *RowError for a
// row that cannot be parsed, io.EOF once the input is exhausted, and any
// other error only when the underlying reader fails.
func (r *Reader) Next() (ledger.Transaction[decimal.Decimal], error) {
	var zero ledger.Transaction[decimal.Decimal]

	for {
		record, err := r.csv.Read()
		if errors.Is(err, io.EOF) {
			return zero, io.EOF
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return zero, &RowError{Line: pe.Line, Err: err}
			}
			return zero, err
		}

		line, _ := r.csv.FieldPos(0)

		for i := range record {
			record[i] = strings.TrimSpace(record[i])
		}

		if isBlank(record) {
			continue
		}

		if !r.headerDone {
			r.headerDone = true
			if isHeader(record) {
				r.cols = headerColumns(record)
				continue
			}
		}

		ev, err := r.parseRow(record)
		if err != nil {
			return zero, &RowError{Line: line, Err: err}
		}
		return ev, nil
	}
}

// isHeader reports whether a record is a header row, recognized by any
// cell naming one of the four known columns.
func isHeader(record []string) bool {
	for _, cell := range record {
		switch strings.ToLower(cell) {
		case "type", "client", "tx", "amount":
			return true
		}
	}
	return false
}

// headerColumns builds the column mapping from a header row. Columns the
// header does not name keep their conventional position.
func headerColumns(record []string) columns {
	cols := defaultColumns
	for i, cell := range record {
		switch strings.ToLower(cell) {
		case "type":
			cols.kind = i
		case "client":
			cols.client = i
		case "tx":
			cols.tx = i
		case "amount":
			cols.amount = i
		}
	}
	return cols
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if cell != "" {
			return false
		}
	}
	return true
}

func (r *Reader) parseRow(record []string) (ledger.Transaction[decimal.Decimal], error) {
	var zero ledger.Transaction[decimal.Decimal]

	kindCell, err := field(record, r.cols.kind, "type")
	if err != nil {
		return zero, err
	}
	kind, ok := parseKind(kindCell)
	if !ok {
		return zero, fmt.Errorf("unknown transaction type %q", kindCell)
	}

	clientCell, err := field(record, r.cols.client, "client")
	if err != nil {
		return zero, err
	}
	client, err := strconv.ParseUint(clientCell, 10, 16)
	if err != nil {
		return zero, fmt.Errorf("client id %q: %w", clientCell, err)
	}
	account := ledger.AccountID(client)

	txCell, err := field(record, r.cols.tx, "tx")
	if err != nil {
		return zero, err
	}
	tx, err := strconv.ParseUint(txCell, 10, 32)
	if err != nil {
		return zero, fmt.Errorf("tx id %q: %w", txCell, err)
	}
	id := ledger.TransactionID(tx)

	// Referencing kinds carry no amount of their own; whatever is in the
	// amount column is ignored for them.
	if !kind.HasAmount() {
		switch kind {
		case ledger.KindDispute:
			return ledger.Dispute[decimal.Decimal](account, id), nil
		case ledger.KindResolve:
			return ledger.Resolve[decimal.Decimal](account, id), nil
		default:
			return ledger.Chargeback[decimal.Decimal](account, id), nil
		}
	}

	amountCell, err := field(record, r.cols.amount, "amount")
	if err != nil {
		return zero, err
	}
	amount, err := decimal.NewFromString(amountCell)
	if err != nil {
		return zero, fmt.Errorf("amount %q: %w", amountCell, err)
	}

	if kind == ledger.KindDeposit {
		return ledger.Deposit(account, id, amount), nil
	}
	return ledger.Withdrawal(account, id, amount), nil
}

// field returns the named cell, rejecting rows where it is absent or
// empty.
func field(record []string, idx int, name string) (string, error) {
	if idx >= len(record) || record[idx] == "" {
		return "", fmt.Errorf("missing %s field", name)
	}
	return record[idx], nil
}

func parseKind(s string) (ledger.Kind, bool) {
	switch strings.ToLower(s) {
	case "deposit":
		return ledger.KindDeposit, true
	case "withdrawal":
		return ledger.KindWithdrawal, true
	case "dispute":
		return ledger.KindDispute, true
	case "resolve":
		return ledger.KindResolve, true
	case "chargeback":
		return ledger.KindChargeback, true
	default:
		return 0, false
	}
}
