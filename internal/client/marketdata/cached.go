package marketdata

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/arifshehab/Capstone-Project/internal/cache"
)

// intraday bars for a past minute never change.
const intradayTTL = 24 * time.Hour

// Cached serves repeated lookups from a cache.Store. Cache failures are logged
// and the provider is called directly.
type Cached struct {
	next   Gateway
	store  cache.Store
	ttl    time.Duration
	logger *zap.Logger
}

func NewCached(next Gateway, store cache.Store, ttl time.Duration, logger *zap.Logger) *Cached {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cached{next: next, store: store, ttl: ttl, logger: logger}
}

func (c *Cached) Quote(ctx context.Context, symbol string) (*Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	key := "quote:" + symbol
	if b, ok, err := c.store.Get(ctx, key); err != nil {
		c.logger.Warn("quote cache get failed", zap.String("symbol", symbol), zap.Error(err))
	} else if ok {
		var fields map[string]any
		if err := decodeNumbers(b, &fields); err == nil {
			return &Quote{Symbol: symbol, Fields: fields}, nil
		}
	}

	q, err := c.next.Quote(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(q.Fields); err == nil {
		if err := c.store.Set(ctx, key, b, c.ttl); err != nil {
			c.logger.Warn("quote cache set failed", zap.String("symbol", symbol), zap.Error(err))
		}
	}
	return q, nil
}

func (c *Cached) IntradayPrice(ctx context.Context, symbol string, at time.Time) (decimal.Decimal, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	key := "intraday:" + symbol + ":" + at.Format("2006-01-02T15:04")
	if b, ok, err := c.store.Get(ctx, key); err != nil {
		c.logger.Warn("intraday cache get failed", zap.String("symbol", symbol), zap.Error(err))
	} else if ok {
		if price, err := decimal.NewFromString(string(b)); err == nil {
			return price, nil
		}
	}

	price, err := c.next.IntradayPrice(ctx, symbol, at)
	if err != nil {
		return decimal.Zero, err
	}
	if err := c.store.Set(ctx, key, []byte(price.String()), intradayTTL); err != nil {
		c.logger.Warn("intraday cache set failed", zap.String("symbol", symbol), zap.Error(err))
	}
	return price, nil
}
