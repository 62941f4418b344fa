package models

import (
	"fmt"
	"strings"
)

// TradeType is the event recorded on a history row. Its sign rule decides
// whether the stored quantity is positive or negative.
type TradeType string

const (
	TradeBuy      TradeType = "Buy"
	TradeSell     TradeType = "Sell"
	TradePut      TradeType = "Put"
	TradeWithdraw TradeType = "Withdraw"
	TradeDeposit  TradeType = "Deposit"
)

var tradeTypes = []TradeType{TradeBuy, TradeSell, TradePut, TradeWithdraw, TradeDeposit}

func TradeTypes() []TradeType {
	out := make([]TradeType, len(tradeTypes))
	copy(out, tradeTypes)
	return out
}

func ParseTradeType(raw string) (TradeType, error) {
	raw = strings.TrimSpace(raw)
	for _, t := range tradeTypes {
		if strings.EqualFold(raw, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown trade type %q", raw)
}

// Sign returns -1 for events that reduce the holding and 1 otherwise.
func (t TradeType) Sign() int64 {
	switch t {
	case TradeSell, TradePut, TradeWithdraw:
		return -1
	default:
		return 1
	}
}
