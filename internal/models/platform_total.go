package models

import "github.com/shopspring/decimal"

// PlatformTotal is the per (symbol, platform) rollup of history rows.
// TotalTrades sums total_price and stays zero for bonds.
type PlatformTotal struct {
	Symbol        string          `json:"symbol"`
	Platform      string          `json:"platform"`
	TotalTrades   decimal.Decimal `json:"total_trades"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
}
