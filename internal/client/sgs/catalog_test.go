package sgs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const listing = `<html><body>
<table><tr><th>Unrelated</th></tr><tr><td>x</td></tr></table>
<table>
  <tr><th>Issue Code</th><th>ISIN Code</th><th>Coupon (%)</th><th>Issue Date</th><th>Maturity Date</th><th>Yield</th></tr>
  <tr><td>nx23100h</td><td>sg7j37000000</td><td>2.875%</td><td>01 Sep 2023</td><td>01 Sep 2033</td><td>3.10</td></tr>
  <tr><td>NA19100H</td><td>SGXF1234567</td><td>-</td><td>2019-06-01</td><td>n/a</td><td></td></tr>
  <tr><td></td><td>SKIP</td><td>1</td><td></td><td></td><td></td></tr>
  <tr><td>NX23100H</td><td>DUP</td><td>9</td><td></td><td></td><td></td></tr>
</table>
</body></html>`

func TestParse_ReadsBondTable(t *testing.T) {
	issues, err := Parse(strings.NewReader(listing))
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if len(issues) != 2 {
		t.Fatalf("len=%d want 2: %+v", len(issues), issues)
	}
	first := issues[0]
	if first.IssueCode != "NX23100H" || first.ISIN != "SG7J37000000" {
		t.Fatalf("first=%+v", first)
	}
	if first.CouponRate.String() != "2.875" || first.Yield.String() != "3.1" {
		t.Fatalf("coupon=%s yield=%s", first.CouponRate, first.Yield)
	}
	if first.MaturityDate == nil || first.MaturityDate.Year() != 2033 {
		t.Fatalf("maturity=%v", first.MaturityDate)
	}
	if len(first.Snapshot) == 0 {
		t.Fatalf("snapshot empty")
	}

	second := issues[1]
	if !second.CouponRate.IsZero() || second.MaturityDate != nil || second.IssueDate == nil {
		t.Fatalf("second=%+v", second)
	}
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(listing))
	}))
	defer srv.Close()

	issues, err := New(srv.URL, time.Second).Fetch(context.Background())
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if len(issues) != 2 {
		t.Fatalf("len=%d want 2", len(issues))
	}
}
