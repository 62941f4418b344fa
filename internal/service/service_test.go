package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arifshehab/Capstone-Project/internal/client/marketdata"
	"github.com/arifshehab/Capstone-Project/internal/models"
	"github.com/arifshehab/Capstone-Project/internal/repository"
	"github.com/arifshehab/Capstone-Project/internal/repository/memory"
)

type fakeGateway struct {
	quotes map[string]map[string]any
	prices map[string]decimal.Decimal // symbol + " " + minute
	failOn string
}

func (g *fakeGateway) Quote(ctx context.Context, symbol string) (*marketdata.Quote, error) {
	if symbol == g.failOn {
		return nil, errors.New("provider down")
	}
	fields, ok := g.quotes[symbol]
	if !ok {
		return nil, fmt.Errorf("quote %s: %w", symbol, marketdata.ErrSymbolNotFound)
	}
	return &marketdata.Quote{Symbol: symbol, Fields: fields}, nil
}

func (g *fakeGateway) IntradayPrice(ctx context.Context, symbol string, at time.Time) (decimal.Decimal, error) {
	p, ok := g.prices[symbol+" "+marketdata.MinuteKey(at)]
	if !ok {
		return decimal.Zero, marketdata.ErrPriceNotFound
	}
	return p, nil
}

func newFixture() (*TradeService, *ViewService, *memory.Store, *fakeGateway) {
	store := memory.New()
	gw := &fakeGateway{
		quotes: map[string]map[string]any{
			"ABC": {"symbol": "ABC", "name": "ABC Corp", "price": json.Number("120"), "volume": json.Number("5000")},
		},
		prices: map[string]decimal.Decimal{
			"ABC 2023-06-01 10:00:00": decimal.NewFromInt(100),
		},
	}
	trades := &TradeService{Repo: store, Gateway: gw}
	views := &ViewService{Repo: store, Now: func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }}
	return trades, views, store, gw
}

func buyABC(platform string) TradeInput {
	return TradeInput{
		Symbol:   "ABC",
		Quantity: "10",
		Type:     "Buy",
		Category: CategoryStocks,
		Date:     "2023-06-01",
		Time:     "10:00",
		Platform: platform,
	}
}

func TestRecordTrade_EndToEnd(t *testing.T) {
	ctx := context.Background()
	trades, views, store, _ := newFixture()

	res, err := trades.RecordTrade(ctx, buyABC("Broker1"))
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if res.Message != MessageAdded || res.Stock == nil {
		t.Fatalf("res=%+v", res)
	}

	shortlist, _ := store.ListShortlistEntries(ctx)
	if len(shortlist) != 1 || shortlist[0].Symbol != "ABC" || !shortlist[0].Price.Equal(decimal.NewFromInt(120)) {
		t.Fatalf("shortlist=%+v", shortlist)
	}
	history, _ := store.ListStockTrades(ctx, repository.ListTradesParams{})
	if len(history) != 1 || !history[0].TotalPrice.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("history=%+v", history)
	}

	got, err := views.StockViews(ctx)
	if err != nil {
		t.Fatalf("views err=%v", err)
	}
	if len(got) != 1 || got[0].TotalQuantity == nil || got[0].TotalPurchase == nil {
		t.Fatalf("views=%+v", got)
	}
	if !got[0].TotalQuantity.Equal(decimal.NewFromInt(10)) || !got[0].TotalPurchase.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("totals=%s/%s", got[0].TotalQuantity, got[0].TotalPurchase)
	}
	if len(got[0].Platforms) != 1 || got[0].Platforms[0].Platform != "Broker1" {
		t.Fatalf("platforms=%+v", got[0].Platforms)
	}
}

func TestRecordTrade_SellNegatesQuantity(t *testing.T) {
	ctx := context.Background()
	trades, _, _, _ := newFixture()
	in := buyABC("Broker1")
	in.Type = "sell"
	res, err := trades.RecordTrade(ctx, in)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if !res.Stock.Quantity.Equal(decimal.NewFromInt(-10)) || !res.Stock.TotalPrice.Equal(decimal.NewFromInt(-1000)) {
		t.Fatalf("row=%+v", res.Stock)
	}
}

func TestRecordTrade_PriceUnavailableWritesNoHistory(t *testing.T) {
	ctx := context.Background()
	trades, _, store, _ := newFixture()
	in := buyABC("Broker1")
	in.Time = "15:59"

	res, err := trades.RecordTrade(ctx, in)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if res.Message != MessagePriceUnavailable || res.Stock != nil {
		t.Fatalf("res=%+v", res)
	}
	history, _ := store.ListStockTrades(ctx, repository.ListTradesParams{})
	if len(history) != 0 {
		t.Fatalf("history=%+v want none", history)
	}
	if e, _ := store.GetShortlistEntry(ctx, "ABC"); e == nil {
		t.Fatalf("shortlist row should still be synced")
	}
}

func TestRecordTrade_UnknownSymbol(t *testing.T) {
	trades, _, _, _ := newFixture()
	in := buyABC("Broker1")
	in.Symbol = "NOPE"
	_, err := trades.RecordTrade(context.Background(), in)
	if !errors.Is(err, marketdata.ErrSymbolNotFound) {
		t.Fatalf("err=%v want ErrSymbolNotFound", err)
	}
}

func TestRecordTrade_Validation(t *testing.T) {
	trades, _, _, _ := newFixture()
	cases := []func(*TradeInput){
		func(in *TradeInput) { in.Symbol = " " },
		func(in *TradeInput) { in.Quantity = "ten" },
		func(in *TradeInput) { in.Quantity = "-1" },
		func(in *TradeInput) { in.Type = "Short" },
		func(in *TradeInput) { in.Category = "Crypto" },
		func(in *TradeInput) { in.Date = "01/06/2023" },
		func(in *TradeInput) { in.Time = "25:00" },
		func(in *TradeInput) { in.Platform = "" },
	}
	for i, mutate := range cases {
		in := buyABC("Broker1")
		mutate(&in)
		if _, err := trades.RecordTrade(context.Background(), in); !errors.Is(err, ErrValidation) {
			t.Fatalf("case %d: err=%v want ErrValidation", i, err)
		}
	}
}

func TestRecordTrade_Bond(t *testing.T) {
	ctx := context.Background()
	trades, _, store, _ := newFixture()
	res, err := trades.RecordTrade(ctx, TradeInput{
		Symbol:   "nx23100h",
		Quantity: "1000",
		Type:     "Withdraw",
		Category: CategoryBonds,
		Date:     "2023-09-01",
		Time:     "09:00",
		Platform: "DBS",
	})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if res.Bond == nil || res.Bond.Symbol != "NX23100H" || !res.Bond.Quantity.Equal(decimal.NewFromInt(-1000)) {
		t.Fatalf("bond=%+v", res.Bond)
	}
	rows, _ := store.ListBondTrades(ctx, repository.ListTradesParams{})
	if len(rows) != 1 {
		t.Fatalf("rows=%d want 1", len(rows))
	}
}

func TestDeleteStockTrades_LeavesShortlist(t *testing.T) {
	ctx := context.Background()
	trades, _, store, _ := newFixture()
	_, _ = trades.RecordTrade(ctx, buyABC("Broker1"))
	_, _ = trades.RecordTrade(ctx, buyABC("Broker2"))

	n, err := trades.DeleteStockTrades(ctx, "ABC", "Broker1")
	if err != nil || n != 1 {
		t.Fatalf("n=%d err=%v", n, err)
	}
	history, _ := store.ListStockTrades(ctx, repository.ListTradesParams{})
	if len(history) != 1 || history[0].Platform != "Broker2" {
		t.Fatalf("history=%+v", history)
	}
	if e, _ := store.GetShortlistEntry(ctx, "ABC"); e == nil {
		t.Fatalf("shortlist row removed")
	}
	if _, err := trades.DeleteStockTrades(ctx, "ABC", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("err=%v want ErrValidation", err)
	}
}

func TestShortlistSync_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := &ShortlistService{Repo: store}

	q := &marketdata.Quote{Symbol: "ABC", Fields: map[string]any{"symbol": "ABC", "price": json.Number("10"), "name": "ABC Corp"}}
	if err := svc.Sync(ctx, q); err != nil {
		t.Fatalf("err=%v", err)
	}
	q2 := &marketdata.Quote{Symbol: "ABC", Fields: map[string]any{"symbol": "ABC", "price": json.Number("11")}}
	if err := svc.Sync(ctx, q2); err != nil {
		t.Fatalf("err=%v", err)
	}
	items, _ := store.ListShortlistEntries(ctx)
	if len(items) != 1 {
		t.Fatalf("rows=%d want 1", len(items))
	}
	if !items[0].Price.Equal(decimal.NewFromInt(11)) || items[0].Name != "ABC Corp" {
		t.Fatalf("row=%+v", items[0])
	}
}

func TestShortlistRefreshAll_ContinuesPastFailures(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	gw := &fakeGateway{
		quotes: map[string]map[string]any{
			"AAA": {"price": json.Number("1")},
			"BBB": {"price": json.Number("2")},
		},
		failOn: "BBB",
	}
	_ = store.UpsertShortlistEntry(ctx, &models.ShortlistEntry{Symbol: "AAA"}, nil)
	_ = store.UpsertShortlistEntry(ctx, &models.ShortlistEntry{Symbol: "BBB"}, nil)
	_ = store.UpsertShortlistEntry(ctx, &models.ShortlistEntry{Symbol: "CCC"}, nil)

	svc := &ShortlistService{Repo: store, Gateway: gw}
	res, err := svc.RefreshAll(ctx)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if res.Total != 3 || res.Updated != 1 || res.Failed != 2 {
		t.Fatalf("res=%+v", res)
	}
	a, _ := store.GetShortlistEntry(ctx, "AAA")
	if !a.Price.Equal(decimal.NewFromInt(1)) {
		t.Fatalf("AAA price=%s", a.Price)
	}
}

func TestEntryFromQuote_SkipsUnusableValues(t *testing.T) {
	entry, columns := EntryFromQuote(&marketdata.Quote{Symbol: "abc", Fields: map[string]any{
		"price":                json.Number("1.5"),
		"pe":                   nil,
		"eps":                  "n/a",
		"marketCap":            float64(2e9),
		"timestamp":            json.Number("1700000000"),
		"earningsAnnouncement": "2024-01-30T21:00:00.000+0000",
		"unknownKey":           "x",
	}})
	if entry.Symbol != "ABC" {
		t.Fatalf("symbol=%s", entry.Symbol)
	}
	want := []string{"earnings_announcement", "market_cap", "price", "quote_timestamp"}
	if fmt.Sprint(columns) != fmt.Sprint(want) {
		t.Fatalf("columns=%v want %v", columns, want)
	}
	if entry.QuoteTimestamp != 1700000000 || !entry.MarketCap.Equal(decimal.NewFromInt(2000000000)) {
		t.Fatalf("entry=%+v", entry)
	}
	if len(entry.Snapshot) == 0 {
		t.Fatalf("snapshot empty")
	}
}

type fakeBondSource struct{ issues []models.BondIssue }

func (f fakeBondSource) Fetch(ctx context.Context) ([]models.BondIssue, error) { return f.issues, nil }

func TestBondCatalogSync(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := &BondCatalogService{Repo: store, Source: fakeBondSource{issues: []models.BondIssue{{IssueCode: "NX23100H"}, {IssueCode: "NA19100H"}}}}
	n, err := svc.Sync(ctx)
	if err != nil || n != 2 {
		t.Fatalf("n=%d err=%v", n, err)
	}
	issues, _ := store.ListBondIssues(ctx)
	if len(issues) != 2 {
		t.Fatalf("issues=%d", len(issues))
	}
}

func TestRecordTrade_ProviderFailureIsUpstream(t *testing.T) {
	trades, _, _, gw := newFixture()
	gw.failOn = "ABC"
	_, err := trades.RecordTrade(context.Background(), buyABC("Broker1"))
	if !errors.Is(err, ErrUpstream) || errors.Is(err, marketdata.ErrSymbolNotFound) {
		t.Fatalf("err=%v want ErrUpstream", err)
	}
}
