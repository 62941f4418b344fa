package portfolio

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/arifshehab/Capstone-Project/internal/models"
)

// PlatformSummary is one platform's history totals for a symbol.
type PlatformSummary struct {
	Platform      string          `json:"platform"`
	TotalTrades   decimal.Decimal `json:"total_trades"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
}

// ShortlistRow is a shortlist entry with its per-platform rollup attached.
type ShortlistRow struct {
	models.ShortlistEntry
	Platforms []PlatformSummary `json:"platforms"`
}

// CombinedView is what the stocks page renders. The CAGR fields are nil when
// the symbol has no history.
type CombinedView struct {
	models.ShortlistEntry
	WeightedCAGR  *float64          `json:"weightedCAGR,omitempty"`
	TotalPurchase *decimal.Decimal  `json:"totalPurchase,omitempty"`
	TotalQuantity *decimal.Decimal  `json:"totalQuantity,omitempty"`
	Platforms     []PlatformSummary `json:"platforms"`
}

// BondView is a bond issue with the platforms holding it.
type BondView struct {
	models.BondIssue
	Platforms []PlatformSummary `json:"platforms"`
}

// Combine merges weighted CAGR results onto shortlist rows, preserving
// shortlist order. Symbols match case-sensitively after trimming whitespace.
func Combine(results []WeightedCAGR, rows []ShortlistRow) []CombinedView {
	bySymbol := make(map[string]WeightedCAGR, len(results))
	for _, r := range results {
		key := strings.TrimSpace(r.Symbol)
		if _, ok := bySymbol[key]; ok {
			continue
		}
		bySymbol[key] = r
	}

	out := make([]CombinedView, 0, len(rows))
	for _, row := range rows {
		view := CombinedView{
			ShortlistEntry: row.ShortlistEntry,
			Platforms:      row.Platforms,
		}
		if view.Platforms == nil {
			view.Platforms = []PlatformSummary{}
		}
		if r, ok := bySymbol[strings.TrimSpace(row.Symbol)]; ok {
			rate := r.WeightedCAGR
			purchase := r.TotalPurchase
			quantity := r.TotalQuantity
			view.WeightedCAGR = &rate
			view.TotalPurchase = &purchase
			view.TotalQuantity = &quantity
		}
		out = append(out, view)
	}
	return out
}
