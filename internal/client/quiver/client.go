// Package quiver reads congressional trading disclosures from Quiver Quant.
package quiver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

const defaultBaseURL = "https://api.quiverquant.com"

var ErrNoToken = errors.New("quiver token not configured")

// Disclosure is one senate trading disclosure.
type Disclosure struct {
	Senator         string          `json:"Senator"`
	Ticker          string          `json:"Ticker"`
	Transaction     string          `json:"Transaction"`
	Range           string          `json:"Range"`
	Amount          decimal.Decimal `json:"Amount"`
	Party           string          `json:"Party"`
	House           string          `json:"House"`
	TransactionDate string          `json:"TransactionDate"`
	ReportDate      string          `json:"ReportDate"`
}

type Client struct {
	client *resty.Client
	token  string
}

func New(baseURL, token string, timeout time.Duration) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	client := resty.New()
	client.SetBaseURL(strings.TrimRight(baseURL, "/"))
	client.SetTimeout(timeout)
	client.SetHeader("Accept", "application/json")
	return &Client{client: client, token: strings.TrimSpace(token)}
}

// SenateTrading returns the live senate disclosures whose ticker equals
// ticker exactly.
func (c *Client) SenateTrading(ctx context.Context, ticker string) ([]Disclosure, error) {
	if c == nil || c.token == "" {
		return nil, ErrNoToken
	}
	ticker = strings.TrimSpace(ticker)
	resp, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(c.token).
		SetQueryParam("options", "true").
		Get("/beta/live/senatetrading")
	if err != nil {
		return nil, fmt.Errorf("quiver senatetrading: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("quiver senatetrading: status %d", resp.StatusCode())
	}

	var all []Disclosure
	if err := json.Unmarshal(resp.Body(), &all); err != nil {
		return nil, fmt.Errorf("quiver senatetrading: decode: %w", err)
	}
	out := make([]Disclosure, 0)
	for _, d := range all {
		if d.Ticker == ticker {
			out = append(out, d)
		}
	}
	return out, nil
}
