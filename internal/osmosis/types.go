package osmosis

import (
	"encoding/json"

	"github.com/kislikjeka/osmotax/internal/classify"
)

// SearchResponse is the paged payload returned by the ledger's transaction
// search endpoint.
type SearchResponse struct {
	Txs        []TxRecord `json:"txs"`
	TotalCount string     `json:"total_count"`
}

// TxRecord is one raw transaction record as returned by the search and
// detail endpoints. The gas and log fields are only populated on detail
// lookups.
type TxRecord struct {
	Hash      string `json:"hash"`
	Height    string `json:"height"`
	Code      int    `json:"code"`
	Tx        RawTx  `json:"tx"`
	GasUsed   string `json:"gas_used,omitempty"`
	GasWanted string `json:"gas_wanted,omitempty"`
	RawLog    string `json:"raw_log,omitempty"`
}

// RawTx is the decoded transaction envelope.
type RawTx struct {
	Body     TxBody   `json:"body"`
	AuthInfo AuthInfo `json:"auth_info"`
}

// TxBody carries the transaction's messages and optional memo.
type TxBody struct {
	Messages []json.RawMessage `json:"messages"`
	Memo     string            `json:"memo,omitempty"`
}

// AuthInfo carries the fee block. Fee may be absent.
type AuthInfo struct {
	Fee *classify.Fee `json:"fee,omitempty"`
}

// statusResponse is the minimal node status payload used to verify
// reachability on connect.
type statusResponse struct {
	NodeInfo struct {
		Network string `json:"network"`
	} `json:"node_info"`
}
