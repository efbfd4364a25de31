// Package report writes final account balances as CSV.
package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/sbridger/reckon/internal/ledger"
	"github.com/sbridger/reckon/internal/utils"
)

// WriteCSV writes the report header followed by one row per account in
// ascending client order, so the same ledger always produces the same
// bytes. places follows utils.FormatAmount.
func WriteCSV(w io.Writer, accounts *ledger.AccountStore[decimal.Decimal], places int32) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"client", "available", "held", "total", "locked"}); err != nil {
		return err
	}

	for _, id := range accounts.IDs() {
		acct, _ := accounts.Get(id)
		row := []string{
			strconv.FormatUint(uint64(id), 10),
			utils.FormatAmount(acct.Available, places),
			utils.FormatAmount(acct.Held, places),
			utils.FormatAmount(acct.Total(), places),
			strconv.FormatBool(acct.Locked),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
