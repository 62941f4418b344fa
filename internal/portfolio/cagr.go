// Package portfolio holds the pure read-side transforms behind the stock and
// bond pages: per-trade and weighted CAGR, the per-platform rollup, and the
// merge of both onto shortlist rows.
package portfolio

import (
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arifshehab/Capstone-Project/internal/models"
)

const daysPerYear = 365.0

// WeightedCAGR is one symbol's total_price-weighted growth rate together with
// the purchase and quantity totals of every matched trade.
type WeightedCAGR struct {
	Symbol        string          `json:"symbol"`
	WeightedCAGR  float64         `json:"weightedCAGR"`
	TotalPurchase decimal.Decimal `json:"totalPurchase"`
	TotalQuantity decimal.Decimal `json:"totalQuantity"`
}

// TradeCAGR is a history row joined to its shortlist price. Defined is false
// when the growth rate cannot be computed for the row.
type TradeCAGR struct {
	Trade   models.StockTrade `json:"trade"`
	Price   decimal.Decimal   `json:"price"`
	CAGR    float64           `json:"cagr"`
	Defined bool              `json:"defined"`
}

// TradeCAGRs joins history to shortlist prices on symbol and computes
// ((quantity*price)/total_price)^(365/days)-1 per row. Rows without a
// shortlist match are dropped; a zero shortlist price yields a rate of -1.
func TradeCAGRs(shortlist []models.ShortlistEntry, history []models.StockTrade, now time.Time) []TradeCAGR {
	prices := make(map[string]decimal.Decimal, len(shortlist))
	for _, entry := range shortlist {
		prices[strings.TrimSpace(entry.Symbol)] = entry.Price
	}

	out := make([]TradeCAGR, 0, len(history))
	for _, h := range history {
		price, ok := prices[strings.TrimSpace(h.Symbol)]
		if !ok {
			continue
		}
		cagr, defined := tradeCAGR(h.Quantity, price, h.TotalPrice, h.Date, now)
		out = append(out, TradeCAGR{
			Trade:   h,
			Price:   price,
			CAGR:    cagr,
			Defined: defined,
		})
	}
	return out
}

// ComputeWeighted rolls per-trade CAGR into one total_price-weighted rate per
// symbol, in the order symbols first appear in history. Trades with an
// undefined rate count towards the totals but not towards the weights.
func ComputeWeighted(shortlist []models.ShortlistEntry, history []models.StockTrade, now time.Time) []WeightedCAGR {
	type acc struct {
		symbol    string
		numerator decimal.Decimal
		weight    decimal.Decimal
		purchase  decimal.Decimal
		quantity  decimal.Decimal
	}

	var order []string
	groups := map[string]*acc{}
	for _, tc := range TradeCAGRs(shortlist, history, now) {
		symbol := strings.TrimSpace(tc.Trade.Symbol)
		g, ok := groups[symbol]
		if !ok {
			g = &acc{
				symbol:    symbol,
				numerator: decimal.Zero,
				weight:    decimal.Zero,
				purchase:  decimal.Zero,
				quantity:  decimal.Zero,
			}
			groups[symbol] = g
			order = append(order, symbol)
		}
		g.purchase = g.purchase.Add(tc.Trade.TotalPrice)
		g.quantity = g.quantity.Add(tc.Trade.Quantity)
		if tc.Defined {
			g.numerator = g.numerator.Add(decimal.NewFromFloat(tc.CAGR).Mul(tc.Trade.TotalPrice))
			g.weight = g.weight.Add(tc.Trade.TotalPrice)
		}
	}

	out := make([]WeightedCAGR, 0, len(order))
	for _, symbol := range order {
		g := groups[symbol]
		// Weights are summed exactly; totals that cancel to zero report 0.
		rate := 0.0
		if !g.weight.IsZero() {
			rate = g.numerator.DivRound(g.weight, 16).InexactFloat64()
		}
		out = append(out, WeightedCAGR{
			Symbol:        g.symbol,
			WeightedCAGR:  rate,
			TotalPurchase: g.purchase,
			TotalQuantity: g.quantity,
		})
	}
	return out
}

func tradeCAGR(quantity, price, total decimal.Decimal, date, now time.Time) (float64, bool) {
	if total.IsZero() {
		return 0, false
	}
	days := now.Sub(date).Hours() / 24
	if days <= 0 {
		return 0, false
	}
	ratio := quantity.Mul(price).Div(total).InexactFloat64()
	v := math.Pow(ratio, daysPerYear/days) - 1
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
