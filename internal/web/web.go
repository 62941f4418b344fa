// Package web embeds the HTML templates, stylesheet and operator guide.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"math"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

//go:embed guide.md
var Guide []byte

const displayCurrency = "USD"

func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs()).ParseFS(templateFS, "templates/*.html")
}

// Static is the stylesheet tree served under /static.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

func Funcs() template.FuncMap {
	return template.FuncMap{
		"money":   Money,
		"percent": Percent,
		"qty":     func(d decimal.Decimal) string { return d.String() },
		"deref": func(d *decimal.Decimal) decimal.Decimal {
			if d == nil {
				return decimal.Zero
			}
			return *d
		},
		"date":    func(t time.Time) string { return t.Format("2006-01-02") },
		"optdate": func(t *time.Time) string {
			if t == nil {
				return "-"
			}
			return t.Format("2006-01-02")
		},
	}
}

// Money renders an amount in the display currency, rounded to its minor unit.
func Money(d decimal.Decimal) string {
	cur := money.GetCurrency(displayCurrency)
	if cur == nil {
		return d.StringFixed(2)
	}
	minor := d.Shift(int32(cur.Fraction)).Round(0)
	return money.New(minor.IntPart(), displayCurrency).Display()
}

// Percent renders a rate (0.25 = 25%) with two decimals. Nil renders "-".
func Percent(rate any) string {
	var v float64
	switch r := rate.(type) {
	case float64:
		v = r
	case *float64:
		if r == nil {
			return "-"
		}
		v = *r
	case decimal.Decimal:
		v = r.InexactFloat64()
	default:
		return "-"
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	return fmt.Sprintf("%.2f%%", v*100)
}
