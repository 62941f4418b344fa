package repository

import (
	"strings"

	"github.com/arifshehab/Capstone-Project/internal/models"
)

var shortlistColumnSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(models.ShortlistQuoteColumns))
	for _, col := range models.ShortlistQuoteColumns {
		set[col] = struct{}{}
	}
	return set
}()

// ShortlistColumns filters columns down to the quote columns a shortlist
// upsert may write, dropping duplicates and anything unknown.
func ShortlistColumns(columns []string) []string {
	out := make([]string, 0, len(columns))
	seen := map[string]struct{}{}
	for _, col := range columns {
		col = strings.TrimSpace(col)
		if _, ok := shortlistColumnSet[col]; !ok {
			continue
		}
		if _, ok := seen[col]; ok {
			continue
		}
		seen[col] = struct{}{}
		out = append(out, col)
	}
	return out
}

// NormalizeSymbol is applied to every symbol before it is stored or used as
// a lookup key.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
