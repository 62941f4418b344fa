package web

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoney(t *testing.T) {
	if got := Money(decimal.RequireFromString("1234.567")); got != "$1,234.57" {
		t.Fatalf("money=%q", got)
	}
	if got := Money(decimal.RequireFromString("-10")); !strings.Contains(got, "10.00") || !strings.HasPrefix(got, "-") {
		t.Fatalf("money=%q", got)
	}
}

func TestPercent(t *testing.T) {
	rate := 0.12345
	if got := Percent(&rate); got != "12.35%" {
		t.Fatalf("percent=%q", got)
	}
	var none *float64
	if got := Percent(none); got != "-" {
		t.Fatalf("percent=%q", got)
	}
}

func TestTemplatesParse(t *testing.T) {
	tmpl, err := Templates()
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	for _, name := range []string{"index.html", "stocks.html", "bonds.html", "addasset.html", "analytics.html", "error.html"} {
		if tmpl.Lookup(name) == nil {
			t.Fatalf("template %s missing", name)
		}
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "addasset.html", map[string]any{"Message": "Successfully added", "Content": "ABC"}); err != nil {
		t.Fatalf("exec: %v", err)
	}
	if !strings.Contains(buf.String(), "Successfully added") {
		t.Fatalf("body=%s", buf.String())
	}
}
