// Package report renders fetched balances as human-readable lines.
package report

import (
	"fmt"
	"io"
	"strconv"

	"solbalance/internal/fetcher"
)

// Write prints a header with the number of balances followed by one
// "<address>: <amount> <unit>" line per balance, in slice order.
func Write(w io.Writer, balances []fetcher.Balance, unit string) error {
	if _, err := fmt.Fprintf(w, "Balances for %d wallets:\n", len(balances)); err != nil {
		return fmt.Errorf("write report header: %w", err)
	}

	for _, b := range balances {
		if _, err := fmt.Fprintf(w, "%s: %s %s\n", b.Address, FormatAmount(b.Amount), unit); err != nil {
			return fmt.Errorf("write balance for %s: %w", b.Address, err)
		}
	}

	return nil
}

// FormatAmount renders a whole-unit amount with the fewest digits that
// round-trip, never in exponent form: 1, 0.000000001, 18446744073.709553.
func FormatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
