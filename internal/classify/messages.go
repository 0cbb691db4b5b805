package classify

import "encoding/json"

// Coin is the wire shape of a single denominated amount inside a message.
type Coin struct {
	Denom  string `json:"denom"`
	Amount string `json:"amount"`
}

// Fee is the wire shape of a transaction fee block (auth_info.fee).
type Fee struct {
	Amount   []Coin `json:"amount"`
	GasLimit string `json:"gas_limit"`
}

// Message type identifiers carry version-qualified prefixes on the wire
// (e.g. "/osmosis.gamm.v1beta1.MsgSwapExactAmountIn"), so matching is
// substring containment against these patterns, not exact equality.
const (
	patternSwapExactIn    = "SwapExactAmountIn"
	patternSwapExactOut   = "SwapExactAmountOut"
	patternSend           = "Send"
	patternUndelegate     = "Undelegate"
	patternDelegate       = "Delegate"
	patternWithdrawReward = "WithdrawDelegatorReward"
	patternJoinPool       = "JoinPool"
	patternExitPool       = "ExitPool"
	patternVote           = "Vote"
)

// envelope extracts only the type identifier from a raw message.
type envelope struct {
	Type string `json:"@type"`
}

// swapExactInMsg decodes MsgSwapExactAmountIn: a swap with a fixed input and
// a minimum output expressed through the last route hop's out-denom.
type swapExactInMsg struct {
	Routes []struct {
		PoolID        string `json:"pool_id"`
		TokenOutDenom string `json:"token_out_denom"`
	} `json:"routes"`
	TokenIn           *Coin  `json:"token_in"`
	TokenOutMinAmount string `json:"token_out_min_amount"`
}

// swapExactOutMsg decodes MsgSwapExactAmountOut: a swap with a fixed output
// and a maximum input expressed through the first route hop's in-denom.
type swapExactOutMsg struct {
	Routes []struct {
		PoolID       string `json:"pool_id"`
		TokenInDenom string `json:"token_in_denom"`
	} `json:"routes"`
	TokenOut         *Coin  `json:"token_out"`
	TokenInMaxAmount string `json:"token_in_max_amount"`
}

// sendMsg decodes MsgSend.
type sendMsg struct {
	FromAddress string `json:"from_address"`
	ToAddress   string `json:"to_address"`
	Amount      []Coin `json:"amount"`
}

// delegateMsg decodes MsgDelegate and MsgUndelegate (same shape).
type delegateMsg struct {
	DelegatorAddress string `json:"delegator_address"`
	ValidatorAddress string `json:"validator_address"`
	Amount           *Coin  `json:"amount"`
}

// joinPoolMsg decodes MsgJoinPool.
type joinPoolMsg struct {
	PoolID      string `json:"pool_id"`
	TokenInMaxs []Coin `json:"token_in_maxs"`
}

// exitPoolMsg decodes MsgExitPool.
type exitPoolMsg struct {
	PoolID       string `json:"pool_id"`
	TokenOutMins []Coin `json:"token_out_mins"`
}

// decodeInto unmarshals a raw message into the given variant, tolerating
// missing fields. Decode failures leave the variant zero-valued; absent
// sub-fields never abort classification.
func decodeInto(raw json.RawMessage, v interface{}) {
	_ = json.Unmarshal(raw, v)
}

// typeOf returns the message's embedded type identifier, or "" when the
// envelope cannot be decoded.
func typeOf(raw json.RawMessage) string {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return ""
	}
	return env.Type
}
