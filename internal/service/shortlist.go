package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/arifshehab/Capstone-Project/internal/client/marketdata"
	"github.com/arifshehab/Capstone-Project/internal/models"
	"github.com/arifshehab/Capstone-Project/internal/repository"
)

// ShortlistService keeps one stocks_interested row per traded symbol in step
// with the latest provider quote.
type ShortlistService struct {
	Repo    repository.ShortlistRepository
	Gateway marketdata.Gateway
	Logger  *zap.Logger
}

type RefreshResult struct {
	Total   int `json:"total"`
	Updated int `json:"updated"`
	Failed  int `json:"failed"`
}

// Sync upserts the shortlist row for q.Symbol. Only the quote keys the
// provider actually returned are written on update.
func (s *ShortlistService) Sync(ctx context.Context, q *marketdata.Quote) error {
	if s == nil || s.Repo == nil || q == nil {
		return nil
	}
	entry, columns := EntryFromQuote(q)
	if entry.Symbol == "" {
		return invalid("quote without symbol")
	}
	if err := s.Repo.UpsertShortlistEntry(ctx, &entry, columns); err != nil {
		return fmt.Errorf("sync shortlist %s: %w", entry.Symbol, err)
	}
	return nil
}

// RefreshAll re-quotes every shortlisted symbol. A failing symbol is logged
// and counted; the others still refresh.
func (s *ShortlistService) RefreshAll(ctx context.Context) (RefreshResult, error) {
	var res RefreshResult
	if s == nil || s.Repo == nil || s.Gateway == nil {
		return res, nil
	}
	entries, err := s.Repo.ListShortlistEntries(ctx)
	if err != nil {
		return res, err
	}
	res.Total = len(entries)
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		q, err := s.Gateway.Quote(ctx, entry.Symbol)
		if err == nil {
			err = s.Sync(ctx, q)
		}
		if err != nil {
			res.Failed++
			s.logger().Warn("shortlist refresh failed", zap.String("symbol", entry.Symbol), zap.Error(err))
			continue
		}
		res.Updated++
	}
	s.logger().Info("shortlist refreshed",
		zap.Int("total", res.Total),
		zap.Int("updated", res.Updated),
		zap.Int("failed", res.Failed),
	)
	return res, nil
}

func (s *ShortlistService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// EntryFromQuote maps a provider quote onto the typed shortlist row and
// returns the columns that were present and convertible.
func EntryFromQuote(q *marketdata.Quote) (models.ShortlistEntry, []string) {
	entry := models.ShortlistEntry{Symbol: repository.NormalizeSymbol(q.Symbol)}
	if entry.Symbol == "" {
		if v, ok := toString(q.Fields["symbol"]); ok {
			entry.Symbol = repository.NormalizeSymbol(v)
		}
	}

	columns := make([]string, 0, len(models.ShortlistQuoteColumns))
	for key, column := range models.ShortlistQuoteColumns {
		raw, ok := q.Fields[key]
		if !ok || raw == nil {
			continue
		}
		if setQuoteColumn(&entry, column, raw) {
			columns = append(columns, column)
		}
	}
	sort.Strings(columns)
	if b, err := json.Marshal(q.Fields); err == nil {
		entry.Snapshot = datatypes.JSON(b)
	}
	return entry, columns
}

func setQuoteColumn(e *models.ShortlistEntry, column string, raw any) bool {
	switch column {
	case "name", "exchange", "earnings_announcement":
		v, ok := toString(raw)
		if !ok {
			return false
		}
		switch column {
		case "name":
			e.Name = v
		case "exchange":
			e.Exchange = v
		default:
			e.EarningsAnnouncement = v
		}
		return true
	case "volume", "avg_volume", "shares_outstanding", "quote_timestamp":
		v, ok := toInt64(raw)
		if !ok {
			return false
		}
		switch column {
		case "volume":
			e.Volume = v
		case "avg_volume":
			e.AvgVolume = v
		case "shares_outstanding":
			e.SharesOutstanding = v
		default:
			e.QuoteTimestamp = v
		}
		return true
	}

	v, ok := toDecimal(raw)
	if !ok {
		return false
	}
	switch column {
	case "price":
		e.Price = v
	case "changes_percentage":
		e.ChangesPercentage = v
	case "change":
		e.Change = v
	case "day_low":
		e.DayLow = v
	case "day_high":
		e.DayHigh = v
	case "year_low":
		e.YearLow = v
	case "year_high":
		e.YearHigh = v
	case "market_cap":
		e.MarketCap = v
	case "price_avg50":
		e.PriceAvg50 = v
	case "price_avg200":
		e.PriceAvg200 = v
	case "open":
		e.Open = v
	case "previous_close":
		e.PreviousClose = v
	case "eps":
		e.EPS = v
	case "pe":
		e.PE = v
	default:
		return false
	}
	return true
}

func toDecimal(raw any) (decimal.Decimal, bool) {
	switch v := raw.(type) {
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		return d, err == nil
	case float64:
		return decimal.NewFromFloat(v), true
	case float32:
		return decimal.NewFromFloat32(v), true
	case int64:
		return decimal.NewFromInt(v), true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		return d, err == nil
	default:
		return decimal.Zero, false
	}
}

func toInt64(raw any) (int64, bool) {
	switch v := raw.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, true
		}
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return 0, false
		}
		return d.IntPart(), true
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

func toString(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case nil:
		return "", false
	default:
		return fmt.Sprint(v), true
	}
}
