package marketdata

import (
	"context"
	"fmt"
	"strings"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/quote"
	"github.com/shopspring/decimal"
)

// Yahoo reads quotes and one-minute bars through finance-go. Yahoo only keeps
// minute bars for roughly the last 30 days.
type Yahoo struct {
	loc *time.Location
}

// NewYahoo uses loc as the exchange time zone for intraday lookups, New York
// when nil.
func NewYahoo(loc *time.Location) *Yahoo {
	if loc == nil {
		if ny, err := time.LoadLocation("America/New_York"); err == nil {
			loc = ny
		} else {
			loc = time.UTC
		}
	}
	return &Yahoo{loc: loc}
}

func (y *Yahoo) Quote(ctx context.Context, symbol string) (*Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, ErrSymbolNotFound
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q, err := quote.Get(symbol)
	if err != nil {
		return nil, fmt.Errorf("yahoo quote %s: %w", symbol, err)
	}
	if q == nil {
		return nil, fmt.Errorf("yahoo quote %s: %w", symbol, ErrSymbolNotFound)
	}
	return &Quote{Symbol: symbol, Fields: yahooFields(q)}, nil
}

func yahooFields(q *finance.Quote) map[string]any {
	return map[string]any{
		"symbol":            q.Symbol,
		"name":              q.ShortName,
		"price":             q.RegularMarketPrice,
		"changesPercentage": q.RegularMarketChangePercent,
		"change":            q.RegularMarketChange,
		"dayLow":            q.RegularMarketDayLow,
		"dayHigh":           q.RegularMarketDayHigh,
		"yearLow":           q.FiftyTwoWeekLow,
		"yearHigh":          q.FiftyTwoWeekHigh,
		"priceAvg50":        q.FiftyDayAverage,
		"priceAvg200":       q.TwoHundredDayAverage,
		"exchange":          q.FullExchangeName,
		"volume":            int64(q.RegularMarketVolume),
		"avgVolume":         int64(q.AverageDailyVolume3Month),
		"open":              q.RegularMarketOpen,
		"previousClose":     q.RegularMarketPreviousClose,
		"timestamp":         int64(q.RegularMarketTime),
	}
}

func (y *Yahoo) IntradayPrice(ctx context.Context, symbol string, at time.Time) (decimal.Decimal, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if err := ctx.Err(); err != nil {
		return decimal.Zero, err
	}
	start := time.Date(at.Year(), at.Month(), at.Day(), at.Hour(), at.Minute(), 0, 0, y.loc)
	end := start.Add(time.Minute)
	iter := chart.Get(&chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneMin,
	})
	for iter.Next() {
		bar := iter.Bar()
		if int64(bar.Timestamp) == start.Unix() && !bar.Open.IsZero() {
			return bar.Open, nil
		}
	}
	if err := iter.Err(); err != nil {
		return decimal.Zero, fmt.Errorf("yahoo intraday %s: %w", symbol, err)
	}
	return decimal.Zero, fmt.Errorf("yahoo intraday %s at %s: %w", symbol, MinuteKey(at), ErrPriceNotFound)
}
