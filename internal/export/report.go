// Package export maps normalized transactions into the fixed 10-column
// tax-report schema and encodes them as CSV.
package export

import (
	"strings"

	"github.com/kislikjeka/osmotax/internal/classify"
	"github.com/kislikjeka/osmotax/internal/osmosis"
	"github.com/kislikjeka/osmotax/pkg/money"
)

// Exchange is the constant exchange label stamped on every report row.
const Exchange = "Osmosis"

// timestampLayout renders an ISO-8601 instant with seconds and a trailing
// offset marker; report rows are always UTC so this yields a "Z" suffix.
const timestampLayout = "2006-01-02T15:04:05Z07:00"

// ReportRow is one tax-report record. Unset fields are empty strings, never
// omitted columns.
type ReportRow struct {
	Date          string
	Type          string
	BuyAmount     string
	BuyCurrency   string
	SellAmount    string
	SellCurrency  string
	FeeAmount     string
	FeeCurrency   string
	Exchange      string
	TransactionID string
}

// columns is the fixed header, in output order.
var columns = []string{
	"Date", "Type",
	"Buy Amount", "Buy Currency",
	"Sell Amount", "Sell Currency",
	"Fee Amount", "Fee Currency",
	"Exchange", "Transaction ID",
}

// typeLabels maps each transaction type to its report Type column value.
var typeLabels = map[classify.TransactionType]string{
	classify.TxTypeSwap:             "Trade",
	classify.TxTypeTransfer:         "Transfer",
	classify.TxTypeStake:            "Stake",
	classify.TxTypeUnstake:          "Unstake",
	classify.TxTypeClaimRewards:     "Income",
	classify.TxTypeProvideLiquidity: "Trade",
	classify.TxTypeRemoveLiquidity:  "Trade",
	classify.TxTypeVote:             "Vote",
	classify.TxTypeUnknown:          "Other",
}

// ToReportRows maps transactions to report rows, preserving order.
func ToReportRows(txs []osmosis.Transaction) []ReportRow {
	rows := make([]ReportRow, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, rowFor(tx))
	}
	return rows
}

// rowFor maps one transaction to its report row per the per-type rules.
func rowFor(tx osmosis.Transaction) ReportRow {
	row := ReportRow{
		Date:          tx.Timestamp.UTC().Format(timestampLayout),
		Type:          typeLabels[tx.Type],
		FeeAmount:     tx.Fee.Value,
		FeeCurrency:   tx.Fee.Symbol,
		Exchange:      Exchange,
		TransactionID: tx.Hash,
	}
	if row.Type == "" {
		row.Type = typeLabels[classify.TxTypeUnknown]
	}

	switch tx.Type {
	case classify.TxTypeSwap:
		// amounts[0] is the sold side; amounts[1], when present, the bought
		if len(tx.Amounts) >= 1 {
			row.SellAmount = tx.Amounts[0].Value
			row.SellCurrency = tx.Amounts[0].Symbol
		}
		if len(tx.Amounts) >= 2 {
			row.BuyAmount = tx.Amounts[1].Value
			row.BuyCurrency = tx.Amounts[1].Symbol
		}

	case classify.TxTypeTransfer, classify.TxTypeStake:
		// Direction is not inferred from sender/recipient; transfers map to
		// the sell side only.
		if len(tx.Amounts) >= 1 {
			row.SellAmount = tx.Amounts[0].Value
			row.SellCurrency = tx.Amounts[0].Symbol
		}

	case classify.TxTypeUnstake, classify.TxTypeClaimRewards:
		if len(tx.Amounts) >= 1 {
			row.BuyAmount = tx.Amounts[0].Value
			row.BuyCurrency = tx.Amounts[0].Symbol
		}

	case classify.TxTypeProvideLiquidity:
		// All deposited legs collapse into one combined sell pair; the
		// minted pool-share token is not in the message and is left for
		// manual entry.
		row.SellAmount, row.SellCurrency = joinAmounts(tx.Amounts)

	case classify.TxTypeRemoveLiquidity:
		row.BuyAmount, row.BuyCurrency = joinAmounts(tx.Amounts)
	}

	return row
}

// joinAmounts combines multiple legs into "+"-separated value and symbol
// strings.
func joinAmounts(amounts []money.Amount) (values string, symbols string) {
	if len(amounts) == 0 {
		return "", ""
	}
	vals := make([]string, len(amounts))
	syms := make([]string, len(amounts))
	for i, a := range amounts {
		vals[i] = a.Value
		syms[i] = a.Symbol
	}
	return strings.Join(vals, "+"), strings.Join(syms, "+")
}

// fields returns the row's values in column order.
func (r ReportRow) fields() []string {
	return []string{
		r.Date, r.Type,
		r.BuyAmount, r.BuyCurrency,
		r.SellAmount, r.SellCurrency,
		r.FeeAmount, r.FeeCurrency,
		r.Exchange, r.TransactionID,
	}
}
