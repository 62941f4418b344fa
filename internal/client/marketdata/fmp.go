package marketdata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

const defaultFMPBaseURL = "https://financialmodelingprep.com/api/v3"

// FMP talks to the Financial Modeling Prep v3 REST API.
type FMP struct {
	client *resty.Client
	apiKey string
}

func NewFMP(baseURL, apiKey string, timeout time.Duration) *FMP {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultFMPBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	client := resty.New()
	client.SetBaseURL(strings.TrimRight(baseURL, "/"))
	client.SetTimeout(timeout)
	client.SetHeader("Accept", "application/json")
	return &FMP{client: client, apiKey: apiKey}
}

func (f *FMP) Quote(ctx context.Context, symbol string) (*Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, ErrSymbolNotFound
	}
	resp, err := f.client.R().
		SetContext(ctx).
		SetPathParam("symbol", symbol).
		SetQueryParam("apikey", f.apiKey).
		Get("/quote/{symbol}")
	if err != nil {
		return nil, fmt.Errorf("fmp quote %s: %w", symbol, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("fmp quote %s: status %d: %s", symbol, resp.StatusCode(), truncate(resp.String(), 200))
	}

	var rows []map[string]any
	if err := decodeNumbers(resp.Body(), &rows); err != nil {
		return nil, fmt.Errorf("fmp quote %s: decode: %w", symbol, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("fmp quote %s: %w", symbol, ErrSymbolNotFound)
	}
	return &Quote{Symbol: symbol, Fields: rows[0]}, nil
}

type fmpBar struct {
	Date string          `json:"date"`
	Open decimal.Decimal `json:"open"`
}

func (f *FMP) IntradayPrice(ctx context.Context, symbol string, at time.Time) (decimal.Decimal, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	day := at.Format("2006-01-02")
	resp, err := f.client.R().
		SetContext(ctx).
		SetPathParam("symbol", symbol).
		SetQueryParams(map[string]string{
			"from":   day,
			"to":     day,
			"apikey": f.apiKey,
		}).
		Get("/historical-chart/1min/{symbol}")
	if err != nil {
		return decimal.Zero, fmt.Errorf("fmp intraday %s: %w", symbol, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return decimal.Zero, fmt.Errorf("fmp intraday %s: status %d: %s", symbol, resp.StatusCode(), truncate(resp.String(), 200))
	}

	var bars []fmpBar
	if err := json.Unmarshal(resp.Body(), &bars); err != nil {
		return decimal.Zero, fmt.Errorf("fmp intraday %s: decode: %w", symbol, err)
	}
	want := MinuteKey(at)
	for _, bar := range bars {
		if bar.Date == want && !bar.Open.IsZero() {
			return bar.Open, nil
		}
	}
	return decimal.Zero, fmt.Errorf("fmp intraday %s at %s: %w", symbol, want, ErrPriceNotFound)
}

func decodeNumbers(body []byte, out any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	return dec.Decode(out)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
