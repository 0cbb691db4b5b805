// Package classify maps the raw messages inside an Osmosis transaction to a
// single economic transaction type and the list of token amounts it moves.
package classify

import (
	"encoding/json"
	"strings"

	"github.com/kislikjeka/osmotax/pkg/money"
)

// TransactionType is the closed set of economic transaction categories.
type TransactionType string

const (
	TxTypeSwap             TransactionType = "swap"
	TxTypeTransfer         TransactionType = "transfer"
	TxTypeStake            TransactionType = "stake"
	TxTypeUnstake          TransactionType = "unstake"
	TxTypeClaimRewards     TransactionType = "claim_rewards"
	TxTypeProvideLiquidity TransactionType = "provide_liquidity"
	TxTypeRemoveLiquidity  TransactionType = "remove_liquidity"
	TxTypeVote             TransactionType = "vote"
	TxTypeUnknown          TransactionType = "unknown"
)

// Result is the classifier output for one transaction: exactly one type and
// the ordered amounts extracted from its first message.
type Result struct {
	Type    TransactionType `json:"type"`
	Amounts []money.Amount  `json:"amounts"`
}

// ParseMessages classifies a transaction from its ordered message list.
//
// Only the first message is inspected; multi-message transactions are not
// decomposed (a documented limitation of the format). The address under
// inspection is accepted for interface symmetry but does not influence
// classification; transfer direction is not inferred from it.
func ParseMessages(msgs []json.RawMessage, address string) Result {
	_ = address

	if len(msgs) == 0 {
		return Result{Type: TxTypeUnknown, Amounts: []money.Amount{}}
	}

	first := msgs[0]
	msgType := typeOf(first)

	// Ordered pattern match: first containment wins. Undelegate is checked
	// before Delegate so the stake rule never claims an unbonding.
	switch {
	case strings.Contains(msgType, patternSwapExactIn):
		return Result{Type: TxTypeSwap, Amounts: swapExactInAmounts(first)}
	case strings.Contains(msgType, patternSwapExactOut):
		return Result{Type: TxTypeSwap, Amounts: swapExactOutAmounts(first)}
	case strings.Contains(msgType, patternSend):
		return Result{Type: TxTypeTransfer, Amounts: sendAmounts(first)}
	case strings.Contains(msgType, patternUndelegate):
		return Result{Type: TxTypeUnstake, Amounts: delegationAmounts(first)}
	case strings.Contains(msgType, patternDelegate):
		return Result{Type: TxTypeStake, Amounts: delegationAmounts(first)}
	case strings.Contains(msgType, patternWithdrawReward):
		// Reward magnitude lives in ledger events, not the message; amounts
		// stay empty.
		return Result{Type: TxTypeClaimRewards, Amounts: []money.Amount{}}
	case strings.Contains(msgType, patternJoinPool):
		return Result{Type: TxTypeProvideLiquidity, Amounts: joinPoolAmounts(first)}
	case strings.Contains(msgType, patternExitPool):
		return Result{Type: TxTypeRemoveLiquidity, Amounts: exitPoolAmounts(first)}
	case strings.Contains(msgType, patternVote):
		return Result{Type: TxTypeVote, Amounts: []money.Amount{}}
	default:
		return Result{Type: TxTypeUnknown, Amounts: []money.Amount{}}
	}
}

// ParseFee normalizes a transaction's fee block: the first fee coin, or a
// zero amount in the chain's default fee denom when the block is absent.
func ParseFee(fee *Fee) money.Amount {
	if fee == nil || len(fee.Amount) == 0 {
		return money.ZeroAmount(money.DefaultFeeDenom)
	}
	coin := fee.Amount[0]
	return money.NewAmount(coin.Denom, coin.Amount)
}

// swapExactInAmounts extracts [input token, minimum output] for
// MsgSwapExactAmountIn. The output denom comes from the last route hop.
func swapExactInAmounts(raw json.RawMessage) []money.Amount {
	var msg swapExactInMsg
	decodeInto(raw, &msg)

	amounts := make([]money.Amount, 0, 2)
	if msg.TokenIn != nil {
		amounts = append(amounts, money.NewAmount(msg.TokenIn.Denom, msg.TokenIn.Amount))
	}
	if len(msg.Routes) > 0 && msg.TokenOutMinAmount != "" {
		lastHop := msg.Routes[len(msg.Routes)-1]
		amounts = append(amounts, money.NewAmount(lastHop.TokenOutDenom, msg.TokenOutMinAmount))
	}
	return amounts
}

// swapExactOutAmounts extracts [maximum input, output token] for
// MsgSwapExactAmountOut. The input denom comes from the first route hop.
func swapExactOutAmounts(raw json.RawMessage) []money.Amount {
	var msg swapExactOutMsg
	decodeInto(raw, &msg)

	amounts := make([]money.Amount, 0, 2)
	if len(msg.Routes) > 0 && msg.TokenInMaxAmount != "" {
		firstHop := msg.Routes[0]
		amounts = append(amounts, money.NewAmount(firstHop.TokenInDenom, msg.TokenInMaxAmount))
	}
	if msg.TokenOut != nil {
		amounts = append(amounts, money.NewAmount(msg.TokenOut.Denom, msg.TokenOut.Amount))
	}
	return amounts
}

func sendAmounts(raw json.RawMessage) []money.Amount {
	var msg sendMsg
	decodeInto(raw, &msg)
	return coinAmounts(msg.Amount)
}

func delegationAmounts(raw json.RawMessage) []money.Amount {
	var msg delegateMsg
	decodeInto(raw, &msg)
	if msg.Amount == nil {
		return []money.Amount{}
	}
	return []money.Amount{money.NewAmount(msg.Amount.Denom, msg.Amount.Amount)}
}

func joinPoolAmounts(raw json.RawMessage) []money.Amount {
	var msg joinPoolMsg
	decodeInto(raw, &msg)
	return coinAmounts(msg.TokenInMaxs)
}

func exitPoolAmounts(raw json.RawMessage) []money.Amount {
	var msg exitPoolMsg
	decodeInto(raw, &msg)
	return coinAmounts(msg.TokenOutMins)
}

func coinAmounts(coins []Coin) []money.Amount {
	amounts := make([]money.Amount, 0, len(coins))
	for _, c := range coins {
		amounts = append(amounts, money.NewAmount(c.Denom, c.Amount))
	}
	return amounts
}
