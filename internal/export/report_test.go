package export_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kislikjeka/osmotax/internal/classify"
	"github.com/kislikjeka/osmotax/internal/export"
	"github.com/kislikjeka/osmotax/internal/osmosis"
	"github.com/kislikjeka/osmotax/pkg/money"
)

var testTime = time.Date(2024, time.March, 15, 10, 30, 45, 0, time.UTC)

func makeTx(txType classify.TransactionType, amounts ...money.Amount) osmosis.Transaction {
	return osmosis.Transaction{
		Hash:      "HASH1",
		Timestamp: testTime,
		Type:      txType,
		Status:    osmosis.StatusSuccess,
		Amounts:   amounts,
		Fee:       money.Amount{Value: "0.005", Denom: "uosmo", Symbol: "OSMO"},
	}
}

func TestToReportRows_Swap(t *testing.T) {
	tx := makeTx(classify.TxTypeSwap,
		money.Amount{Value: "10", Denom: "uosmo", Symbol: "OSMO"},
		money.Amount{Value: "5", Denom: "uatom", Symbol: "ATOM"},
	)

	rows := export.ToReportRows([]osmosis.Transaction{tx})
	require.Len(t, rows, 1)
	row := rows[0]

	assert.Equal(t, "Trade", row.Type)
	assert.Equal(t, "10", row.SellAmount)
	assert.Equal(t, "OSMO", row.SellCurrency)
	assert.Equal(t, "5", row.BuyAmount)
	assert.Equal(t, "ATOM", row.BuyCurrency)
	assert.Equal(t, "0.005", row.FeeAmount)
	assert.Equal(t, "OSMO", row.FeeCurrency)
	assert.Equal(t, "Osmosis", row.Exchange)
	assert.Equal(t, "HASH1", row.TransactionID)
	assert.Equal(t, "2024-03-15T10:30:45Z", row.Date)
}

func TestToReportRows_SwapSingleAmount(t *testing.T) {
	tx := makeTx(classify.TxTypeSwap,
		money.Amount{Value: "10", Denom: "uosmo", Symbol: "OSMO"},
	)

	row := export.ToReportRows([]osmosis.Transaction{tx})[0]

	// A lone amount maps only to the sell side
	assert.Equal(t, "10", row.SellAmount)
	assert.Equal(t, "OSMO", row.SellCurrency)
	assert.Empty(t, row.BuyAmount)
	assert.Empty(t, row.BuyCurrency)
}

func TestToReportRows_Transfer(t *testing.T) {
	tx := makeTx(classify.TxTypeTransfer,
		money.Amount{Value: "3", Denom: "uosmo", Symbol: "OSMO"},
	)

	row := export.ToReportRows([]osmosis.Transaction{tx})[0]

	assert.Equal(t, "Transfer", row.Type)
	assert.Equal(t, "3", row.SellAmount)
	assert.Equal(t, "OSMO", row.SellCurrency)
	assert.Empty(t, row.BuyAmount)
}

func TestToReportRows_Stake(t *testing.T) {
	tx := makeTx(classify.TxTypeStake,
		money.Amount{Value: "100", Denom: "uosmo", Symbol: "OSMO"},
	)

	row := export.ToReportRows([]osmosis.Transaction{tx})[0]

	assert.Equal(t, "Stake", row.Type)
	assert.Equal(t, "100", row.SellAmount)
	assert.Empty(t, row.BuyAmount)
}

func TestToReportRows_Unstake(t *testing.T) {
	tx := makeTx(classify.TxTypeUnstake,
		money.Amount{Value: "50", Denom: "uosmo", Symbol: "OSMO"},
	)

	row := export.ToReportRows([]osmosis.Transaction{tx})[0]

	assert.Equal(t, "Unstake", row.Type)
	assert.Equal(t, "50", row.BuyAmount)
	assert.Equal(t, "OSMO", row.BuyCurrency)
	assert.Empty(t, row.SellAmount)
}

func TestToReportRows_ClaimRewards(t *testing.T) {
	// Normally carries no amounts at all
	row := export.ToReportRows([]osmosis.Transaction{makeTx(classify.TxTypeClaimRewards)})[0]

	assert.Equal(t, "Income", row.Type)
	assert.Empty(t, row.BuyAmount)
	assert.Empty(t, row.SellAmount)
}

func TestToReportRows_ProvideLiquidity(t *testing.T) {
	tx := makeTx(classify.TxTypeProvideLiquidity,
		money.Amount{Value: "10", Denom: "uosmo", Symbol: "OSMO"},
		money.Amount{Value: "2", Denom: "uatom", Symbol: "ATOM"},
	)

	row := export.ToReportRows([]osmosis.Transaction{tx})[0]

	assert.Equal(t, "Trade", row.Type)
	// Both legs collapse into one combined sell pair
	assert.Equal(t, "10+2", row.SellAmount)
	assert.Equal(t, "OSMO+ATOM", row.SellCurrency)
	// Pool share token is unknown from the message: buy side stays empty
	assert.Empty(t, row.BuyAmount)
	assert.Empty(t, row.BuyCurrency)
}

func TestToReportRows_RemoveLiquidity(t *testing.T) {
	tx := makeTx(classify.TxTypeRemoveLiquidity,
		money.Amount{Value: "9", Denom: "uosmo", Symbol: "OSMO"},
		money.Amount{Value: "1.5", Denom: "uion", Symbol: "ION"},
	)

	row := export.ToReportRows([]osmosis.Transaction{tx})[0]

	assert.Equal(t, "Trade", row.Type)
	assert.Equal(t, "9+1.5", row.BuyAmount)
	assert.Equal(t, "OSMO+ION", row.BuyCurrency)
	assert.Empty(t, row.SellAmount)
}

func TestToReportRows_Vote(t *testing.T) {
	row := export.ToReportRows([]osmosis.Transaction{makeTx(classify.TxTypeVote)})[0]

	assert.Equal(t, "Vote", row.Type)
	assert.Empty(t, row.BuyAmount)
	assert.Empty(t, row.SellAmount)
}

func TestToReportRows_Unknown(t *testing.T) {
	row := export.ToReportRows([]osmosis.Transaction{makeTx(classify.TxTypeUnknown)})[0]

	assert.Equal(t, "Other", row.Type)
}

func TestToReportRows_DateIsAlwaysUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	tx := makeTx(classify.TxTypeVote)
	tx.Timestamp = time.Date(2024, time.March, 15, 12, 30, 45, 0, loc)

	row := export.ToReportRows([]osmosis.Transaction{tx})[0]

	assert.Equal(t, "2024-03-15T10:30:45Z", row.Date)
}
