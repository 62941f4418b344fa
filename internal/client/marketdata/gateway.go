// Package marketdata fetches quotes and intraday prices from an external
// market data provider.
package marketdata

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/arifshehab/Capstone-Project/internal/cache"
	"github.com/arifshehab/Capstone-Project/internal/config"
)

var (
	ErrSymbolNotFound = errors.New("symbol not found")
	ErrPriceNotFound  = errors.New("price not found at requested minute")
)

// Quote is a provider quote as a flat key/value map. Keys follow the FMP
// naming (price, dayLow, marketCap, ...). Numeric values are json.Number,
// float64 or int64 depending on the provider.
type Quote struct {
	Symbol string
	Fields map[string]any
}

type Gateway interface {
	Quote(ctx context.Context, symbol string) (*Quote, error)
	// IntradayPrice returns the opening price of the one-minute bar that starts
	// at the given wall-clock minute in the exchange's time zone.
	IntradayPrice(ctx context.Context, symbol string, at time.Time) (decimal.Decimal, error)
}

// New builds the configured provider, wrapped in a cache when store is non-nil.
func New(cfg config.MarketDataConfig, store cache.Store, ttl time.Duration, logger *zap.Logger) (Gateway, error) {
	var gw Gateway
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "fmp":
		if strings.TrimSpace(cfg.APIKey) == "" && logger != nil {
			logger.Warn("market data api key is empty; FMP requests will be rejected")
		}
		gw = NewFMP(cfg.BaseURL, cfg.APIKey, cfg.Timeout)
	case "yahoo":
		gw = NewYahoo(nil)
	default:
		return nil, fmt.Errorf("unsupported market data provider %q", cfg.Provider)
	}
	if store == nil {
		return gw, nil
	}
	return NewCached(gw, store, ttl, logger), nil
}

// MinuteKey formats the minute the way intraday bars are labelled.
func MinuteKey(at time.Time) string {
	return at.Format("2006-01-02 15:04") + ":00"
}
