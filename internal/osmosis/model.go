package osmosis

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/kislikjeka/osmotax/internal/classify"
	"github.com/kislikjeka/osmotax/pkg/money"
)

// TransactionStatus is the ledger-reported execution outcome.
type TransactionStatus string

const (
	StatusSuccess TransactionStatus = "success"
	StatusFailed  TransactionStatus = "failed"
	StatusPending TransactionStatus = "pending"
)

// statusFromCode maps a ledger result code to a status. The search endpoint
// never returns records that are still pending.
func statusFromCode(code int) TransactionStatus {
	if code == 0 {
		return StatusSuccess
	}
	return StatusFailed
}

// Transaction is one normalized ledger transaction. Instances are built once
// during fetch and are immutable afterward; nothing is persisted.
type Transaction struct {
	Hash      string                   `json:"hash"`
	Timestamp time.Time                `json:"timestamp"`
	Type      classify.TransactionType `json:"type"`
	Status    TransactionStatus        `json:"status"`
	// Amounts is ordered: by convention the first entry is the sent/input
	// side and later entries the received/output side, depending on type.
	Amounts []money.Amount `json:"amounts"`
	Fee     money.Amount   `json:"fee"`
	Memo    string         `json:"memo,omitempty"`
}

// TransactionDetail extends Transaction with the raw execution fields only
// available from the single-transaction lookup.
type TransactionDetail struct {
	Transaction
	BlockHeight int64             `json:"block_height"`
	GasUsed     int64             `json:"gas_used"`
	GasWanted   int64             `json:"gas_wanted"`
	RawLog      string            `json:"raw_log"`
	Messages    []json.RawMessage `json:"messages"`
}

// FetchOptions controls a transaction history fetch.
type FetchOptions struct {
	// PageSize is the search page size (default 100).
	PageSize int
	// Limit caps the total number of returned transactions; 0 means no cap.
	Limit int
	// StartDate/EndDate exclude out-of-range records per record, after the
	// page has been fetched. Nil means unbounded.
	StartDate *time.Time
	EndDate   *time.Time
}

// FetchResult is the outcome of a history fetch. A failed page request stops
// pagination and surfaces the already-accumulated transactions with
// Incomplete set. Partial results are a success at the data level.
type FetchResult struct {
	Transactions []Transaction `json:"transactions"`
	Incomplete   bool          `json:"incomplete"`
	// Reason describes why pagination stopped early, empty when complete.
	Reason string `json:"reason,omitempty"`
}

// The chain does not expose block timestamps through the search endpoint, so
// record times are approximated as genesis plus height times a fixed block
// interval. This is an explicit approximation, not a ledger-time oracle.
var chainGenesis = time.Date(2021, time.June, 18, 17, 0, 0, 0, time.UTC)

const blockInterval = 6 * time.Second

// timestampForHeight approximates the wall-clock instant of a block height.
func timestampForHeight(height int64) time.Time {
	return chainGenesis.Add(time.Duration(height) * blockInterval)
}

// parseInt64 parses a wire integer string, returning 0 on malformed input.
func parseInt64(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
