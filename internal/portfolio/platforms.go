package portfolio

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/arifshehab/Capstone-Project/internal/models"
)

// SummarizeStockPlatforms groups stock history by (symbol, platform), summing
// total_price and quantity. Groups keep first-appearance order.
func SummarizeStockPlatforms(history []models.StockTrade) []models.PlatformTotal {
	return summarize(history, func(t models.StockTrade) (string, string, decimal.Decimal, decimal.Decimal) {
		return t.Symbol, t.Platform, t.TotalPrice, t.Quantity
	})
}

// SummarizeBondPlatforms is SummarizeStockPlatforms for bonds, which only
// carry quantity.
func SummarizeBondPlatforms(history []models.BondTrade) []models.PlatformTotal {
	return summarize(history, func(t models.BondTrade) (string, string, decimal.Decimal, decimal.Decimal) {
		return t.Symbol, t.Platform, decimal.Zero, t.Quantity
	})
}

func summarize[T any](rows []T, fields func(T) (string, string, decimal.Decimal, decimal.Decimal)) []models.PlatformTotal {
	type key struct{ symbol, platform string }
	index := map[key]int{}
	out := make([]models.PlatformTotal, 0)
	for _, row := range rows {
		symbol, platform, total, qty := fields(row)
		k := key{strings.TrimSpace(symbol), platform}
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, models.PlatformTotal{
				Symbol:        k.symbol,
				Platform:      platform,
				TotalTrades:   decimal.Zero,
				TotalQuantity: decimal.Zero,
			})
		}
		out[i].TotalTrades = out[i].TotalTrades.Add(total)
		out[i].TotalQuantity = out[i].TotalQuantity.Add(qty)
	}
	return out
}

// AttachPlatforms left-joins platform totals onto shortlist entries. An entry
// with no history gets an empty, non-nil list.
func AttachPlatforms(entries []models.ShortlistEntry, totals []models.PlatformTotal) []ShortlistRow {
	grouped := groupTotals(totals)
	out := make([]ShortlistRow, 0, len(entries))
	for _, entry := range entries {
		out = append(out, ShortlistRow{
			ShortlistEntry: entry,
			Platforms:      platformsFor(grouped, entry.Symbol),
		})
	}
	return out
}

// AttachBondPlatforms joins bond history totals onto issues by issue code.
func AttachBondPlatforms(issues []models.BondIssue, totals []models.PlatformTotal) []BondView {
	grouped := groupTotals(totals)
	out := make([]BondView, 0, len(issues))
	for _, issue := range issues {
		out = append(out, BondView{
			BondIssue: issue,
			Platforms: platformsFor(grouped, issue.IssueCode),
		})
	}
	return out
}

func groupTotals(totals []models.PlatformTotal) map[string][]PlatformSummary {
	grouped := map[string][]PlatformSummary{}
	for _, t := range totals {
		symbol := strings.TrimSpace(t.Symbol)
		grouped[symbol] = append(grouped[symbol], PlatformSummary{
			Platform:      t.Platform,
			TotalTrades:   t.TotalTrades,
			TotalQuantity: t.TotalQuantity,
		})
	}
	return grouped
}

func platformsFor(grouped map[string][]PlatformSummary, symbol string) []PlatformSummary {
	items := grouped[strings.TrimSpace(symbol)]
	if items == nil {
		return []PlatformSummary{}
	}
	return items
}
