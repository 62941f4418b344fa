package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arifshehab/Capstone-Project/internal/models"
	"github.com/arifshehab/Capstone-Project/internal/repository"
)

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func stockTrade(symbol, platform, qty, price string) *models.StockTrade {
	q, p := d(qty), d(price)
	return &models.StockTrade{
		Symbol:        symbol,
		Type:          models.TradeBuy,
		Quantity:      q,
		Date:          time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
		Time:          "10:00",
		PurchasePrice: p,
		TotalPrice:    p.Mul(q),
		Platform:      platform,
	}
}

func TestUpsertShortlistEntry_OnlyGivenColumnsOverwrite(t *testing.T) {
	ctx := context.Background()
	s := New()

	first := &models.ShortlistEntry{Symbol: " abc ", Name: "ABC Corp", Price: d("100"), Exchange: "NASDAQ"}
	if err := s.UpsertShortlistEntry(ctx, first, []string{"name", "price", "exchange"}); err != nil {
		t.Fatalf("err=%v", err)
	}
	second := &models.ShortlistEntry{Symbol: "ABC", Price: d("120"), Name: ""}
	if err := s.UpsertShortlistEntry(ctx, second, []string{"price", "bogus; DROP TABLE"}); err != nil {
		t.Fatalf("err=%v", err)
	}

	got, err := s.GetShortlistEntry(ctx, "abc")
	if err != nil || got == nil {
		t.Fatalf("get: %v %v", got, err)
	}
	if !got.Price.Equal(d("120")) {
		t.Fatalf("price=%s want 120", got.Price)
	}
	if got.Name != "ABC Corp" || got.Exchange != "NASDAQ" {
		t.Fatalf("untouched columns changed: %+v", got)
	}
	items, _ := s.ListShortlistEntries(ctx)
	if len(items) != 1 {
		t.Fatalf("len=%d want 1", len(items))
	}
}

func TestUpsertShortlistEntry_ConcurrentFirstInsertKeepsOneRow(t *testing.T) {
	ctx := context.Background()
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.UpsertShortlistEntry(ctx, &models.ShortlistEntry{Symbol: "RACE", Price: d("1")}, []string{"price"})
		}()
	}
	wg.Wait()
	items, _ := s.ListShortlistEntries(ctx)
	if len(items) != 1 {
		t.Fatalf("len=%d want 1", len(items))
	}
}

func TestDeleteStockTrades_OnlyMatchingPlatform(t *testing.T) {
	ctx := context.Background()
	s := New()
	_ = s.InsertStockTrade(ctx, stockTrade("ABC", "Broker1", "10", "100"))
	_ = s.InsertStockTrade(ctx, stockTrade("ABC", "Broker2", "5", "100"))
	_ = s.InsertStockTrade(ctx, stockTrade("XYZ", "Broker1", "1", "7"))

	n, err := s.DeleteStockTrades(ctx, "abc", "Broker1")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if n != 1 {
		t.Fatalf("deleted=%d want 1", n)
	}
	rest, _ := s.ListStockTrades(ctx, repository.ListTradesParams{})
	if len(rest) != 2 || rest[0].Platform != "Broker2" || rest[1].Symbol != "XYZ" {
		t.Fatalf("rest=%+v", rest)
	}
}

func TestListStockTrades_FiltersAndPages(t *testing.T) {
	ctx := context.Background()
	s := New()
	for i := 0; i < 5; i++ {
		_ = s.InsertStockTrade(ctx, stockTrade("ABC", "Broker1", "1", "1"))
	}
	_ = s.InsertStockTrade(ctx, stockTrade("XYZ", "Broker1", "1", "1"))

	symbol := "abc"
	params := repository.ListTradesParams{Symbol: &symbol, Limit: 2, Offset: 1}
	got, _ := s.ListStockTrades(ctx, params)
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 3 {
		t.Fatalf("got=%+v", got)
	}
	total, _ := s.CountStockTrades(ctx, params)
	if total != 5 {
		t.Fatalf("total=%d want 5", total)
	}
}

func TestListStockPlatformTotals(t *testing.T) {
	ctx := context.Background()
	s := New()
	_ = s.InsertStockTrade(ctx, stockTrade("ABC", "Broker1", "10", "50"))
	_ = s.InsertStockTrade(ctx, stockTrade("ABC", "Broker1", "-4", "60"))

	totals, _ := s.ListStockPlatformTotals(ctx)
	if len(totals) != 1 {
		t.Fatalf("len=%d want 1", len(totals))
	}
	if !totals[0].TotalQuantity.Equal(d("6")) || !totals[0].TotalTrades.Equal(d("260")) {
		t.Fatalf("totals=%+v", totals[0])
	}
}

func TestBondIssuesAndTrades(t *testing.T) {
	ctx := context.Background()
	s := New()
	later := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	sooner := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	_ = s.UpsertBondIssues(ctx, []models.BondIssue{
		{IssueCode: "NX30100A", MaturityDate: &later},
		{IssueCode: "NA27100B", MaturityDate: &sooner},
		{IssueCode: "NONE"},
	})
	issues, _ := s.ListBondIssues(ctx)
	if len(issues) != 3 || issues[0].IssueCode != "NA27100B" || issues[2].IssueCode != "NONE" {
		t.Fatalf("order=%v", issues)
	}

	_ = s.InsertBondTrade(ctx, &models.BondTrade{Symbol: "NX30100A", Platform: "DBS", Quantity: d("1000")})
	_ = s.InsertBondTrade(ctx, &models.BondTrade{Symbol: "NX30100A", Platform: "OCBC", Quantity: d("500")})
	n, _ := s.DeleteBondTrades(ctx, "NX30100A", "DBS")
	if n != 1 {
		t.Fatalf("deleted=%d want 1", n)
	}
	n, _ = s.DeleteBondTradesBySymbol(ctx, "nx30100a")
	if n != 1 {
		t.Fatalf("deleted=%d want 1", n)
	}
	rest, _ := s.ListBondTrades(ctx, repository.ListTradesParams{})
	if len(rest) != 0 {
		t.Fatalf("rest=%v", rest)
	}
}
