// Package sgs scrapes the public Singapore Government Securities bond
// listing into BondIssue rows.
package sgs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/arifshehab/Capstone-Project/internal/models"
)

type Client struct {
	client *resty.Client
	url    string
}

func New(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetHeader("User-Agent", "Mozilla/5.0 (compatible; portfolio/1.0)")
	return &Client{client: client, url: strings.TrimSpace(url)}
}

// Fetch downloads the listing page and parses every bond table on it.
func (c *Client) Fetch(ctx context.Context) ([]models.BondIssue, error) {
	if c == nil || c.url == "" {
		return nil, fmt.Errorf("bond catalog url not configured")
	}
	resp, err := c.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(c.url)
	if err != nil {
		return nil, fmt.Errorf("fetch bond catalog: %w", err)
	}
	body := resp.RawBody()
	defer body.Close()
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("fetch bond catalog: status %d", resp.StatusCode())
	}
	return Parse(body)
}

// Parse reads bond rows from any <table> whose header row names an issue
// code column. Other columns are matched by header text.
func Parse(r io.Reader) ([]models.BondIssue, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse bond catalog: %w", err)
	}

	out := make([]models.BondIssue, 0)
	seen := map[string]struct{}{}
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		cols := headerColumns(table)
		if _, ok := cols["issue_code"]; !ok {
			return
		}
		table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			cells := tr.Find("td")
			if cells.Length() == 0 {
				return
			}
			values := make([]string, cells.Length())
			cells.Each(func(i int, td *goquery.Selection) {
				values[i] = strings.TrimSpace(td.Text())
			})
			issue, ok := rowToIssue(cols, values)
			if !ok {
				return
			}
			if _, dup := seen[issue.IssueCode]; dup {
				return
			}
			seen[issue.IssueCode] = struct{}{}
			out = append(out, issue)
		})
	})
	return out, nil
}

func headerColumns(table *goquery.Selection) map[string]int {
	cols := map[string]int{}
	table.Find("tr").First().Find("th").Each(func(i int, th *goquery.Selection) {
		h := strings.ToLower(strings.Join(strings.Fields(th.Text()), " "))
		switch {
		case strings.Contains(h, "issue code"):
			cols["issue_code"] = i
		case strings.Contains(h, "isin"):
			cols["isin"] = i
		case strings.Contains(h, "coupon"):
			cols["coupon_rate"] = i
		case strings.Contains(h, "issue date"):
			cols["issue_date"] = i
		case strings.Contains(h, "maturity"):
			cols["maturity_date"] = i
		case strings.Contains(h, "yield"):
			cols["yield"] = i
		case strings.Contains(h, "description"), strings.Contains(h, "name"):
			cols["description"] = i
		}
	})
	return cols
}

func rowToIssue(cols map[string]int, values []string) (models.BondIssue, bool) {
	get := func(key string) string {
		i, ok := cols[key]
		if !ok || i >= len(values) {
			return ""
		}
		return values[i]
	}
	code := strings.ToUpper(get("issue_code"))
	if code == "" {
		return models.BondIssue{}, false
	}

	raw := map[string]string{}
	for key := range cols {
		raw[key] = get(key)
	}
	snapshot, _ := json.Marshal(raw)

	return models.BondIssue{
		IssueCode:    code,
		ISIN:         strings.ToUpper(get("isin")),
		Description:  get("description"),
		CouponRate:   parsePercent(get("coupon_rate")),
		IssueDate:    parseDate(get("issue_date")),
		MaturityDate: parseDate(get("maturity_date")),
		Yield:        parsePercent(get("yield")),
		Snapshot:     datatypes.JSON(snapshot),
	}, true
}

func parsePercent(s string) decimal.Decimal {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" || s == "-" {
		return decimal.Zero
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return v
}

var dateLayouts = []string{"02 Jan 2006", "2 Jan 2006", "2006-01-02", "02/01/2006", "2 January 2006"}

func parseDate(s string) *time.Time {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
