package export

import (
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/kislikjeka/osmotax/internal/osmosis"
)

// filenamePrefix is the fixed leading segment of generated report filenames.
const filenamePrefix = "osmosis-tax-report"

// ExportCSV encodes the transactions as a tax-report CSV document: header
// row, one row per transaction, comma-separated, newline row terminator.
// Fields containing commas, quotes, or newlines are quoted with internal
// quotes doubled (RFC 4180).
func ExportCSV(txs []osmosis.Transaction) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write(columns); err != nil {
		return "", fmt.Errorf("failed to write report header: %w", err)
	}
	for _, row := range ToReportRows(txs) {
		if err := w.Write(row.fields()); err != nil {
			return "", fmt.Errorf("failed to write report row for %s: %w", row.TransactionID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush report: %w", err)
	}
	return sb.String(), nil
}

// Filename builds the deterministic report filename for an address and date:
// fixed prefix, the wallet address, and the date in YYYY-MM-DD form.
func Filename(address string, date time.Time) string {
	return fmt.Sprintf("%s_%s_%s.csv", filenamePrefix, address, date.UTC().Format("2006-01-02"))
}
