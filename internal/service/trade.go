package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/arifshehab/Capstone-Project/internal/client/marketdata"
	"github.com/arifshehab/Capstone-Project/internal/models"
	"github.com/arifshehab/Capstone-Project/internal/repository"
)

const (
	CategoryStocks = "Stocks and ETFs"
	CategoryBonds  = "Bonds"
)

const (
	MessageAdded            = "Successfully added"
	MessagePriceUnavailable = "Price at given time cannot be retrieved"
)

// TradeInput is a trade entry as submitted by the form or the JSON API.
type TradeInput struct {
	Symbol   string `form:"aName" json:"symbol"`
	Quantity string `form:"aQuantity" json:"quantity"`
	Type     string `form:"selectedType" json:"type"`
	Category string `form:"selectedCat" json:"category"`
	Date     string `form:"aDate" json:"date"`
	Time     string `form:"aTime" json:"time"`
	Platform string `form:"aPlatform" json:"platform"`
}

// TradeResult reports what RecordTrade wrote. Stock and Bond are nil when
// nothing was written.
type TradeResult struct {
	Category string             `json:"category"`
	Message  string             `json:"message"`
	Content  string             `json:"content,omitempty"`
	Stock    *models.StockTrade `json:"stock,omitempty"`
	Bond     *models.BondTrade  `json:"bond,omitempty"`
}

type parsedTrade struct {
	symbol   string
	kind     models.TradeType
	quantity decimal.Decimal
	date     time.Time
	clock    string
	platform string
	category string
}

type TradeService struct {
	Repo      repository.Repository
	Gateway   marketdata.Gateway
	Shortlist *ShortlistService
	Logger    *zap.Logger
}

// RecordTrade validates in and appends one history row. For stocks it first
// syncs the shortlist from a fresh quote, then prices the trade at the
// requested minute. A missing minute price is reported in the result and no
// row is written.
func (s *TradeService) RecordTrade(ctx context.Context, in TradeInput) (*TradeResult, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("trade service not initialized")
	}
	p, err := parseTrade(in)
	if err != nil {
		return nil, err
	}
	if p.category == CategoryBonds {
		return s.recordBond(ctx, p)
	}
	return s.recordStock(ctx, p)
}

func (s *TradeService) recordStock(ctx context.Context, p parsedTrade) (*TradeResult, error) {
	if s.Gateway == nil {
		return nil, errors.New("market data gateway not configured")
	}
	q, err := s.Gateway.Quote(ctx, p.symbol)
	if err != nil {
		return nil, upstream(err)
	}
	if err := s.shortlist().Sync(ctx, q); err != nil {
		return nil, err
	}

	at := time.Date(p.date.Year(), p.date.Month(), p.date.Day(), 0, 0, 0, 0, time.UTC)
	clock, _ := time.Parse("15:04", p.clock)
	at = at.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute)

	price, err := s.Gateway.IntradayPrice(ctx, p.symbol, at)
	if errors.Is(err, marketdata.ErrPriceNotFound) {
		s.logger().Info("no intraday price",
			zap.String("symbol", p.symbol),
			zap.String("minute", marketdata.MinuteKey(at)),
		)
		return &TradeResult{Category: p.category, Message: MessagePriceUnavailable}, nil
	}
	if err != nil {
		return nil, upstream(err)
	}

	row := &models.StockTrade{
		Symbol:        p.symbol,
		Type:          p.kind,
		Quantity:      p.quantity,
		Date:          p.date,
		Time:          p.clock,
		PurchasePrice: price,
		TotalPrice:    price.Mul(p.quantity),
		Platform:      p.platform,
	}
	if err := s.Repo.InsertStockTrade(ctx, row); err != nil {
		s.logger().Error("insert stock trade failed",
			zap.String("symbol", row.Symbol),
			zap.String("type", string(row.Type)),
			zap.String("quantity", row.Quantity.String()),
			zap.Time("date", row.Date),
			zap.String("time", row.Time),
			zap.String("purchase_price", row.PurchasePrice.String()),
			zap.String("total_price", row.TotalPrice.String()),
			zap.String("platform", row.Platform),
			zap.Error(err),
		)
		return nil, fmt.Errorf("insert stock trade %s: %w", row.Symbol, err)
	}
	return &TradeResult{
		Category: p.category,
		Message:  MessageAdded,
		Content: fmt.Sprintf("%s Market %s: %s share(s) at $%s per share on %s",
			row.Symbol, row.Type, row.Quantity, row.PurchasePrice, row.Platform),
		Stock: row,
	}, nil
}

func (s *TradeService) recordBond(ctx context.Context, p parsedTrade) (*TradeResult, error) {
	row := &models.BondTrade{
		Symbol:   p.symbol,
		Type:     p.kind,
		Quantity: p.quantity,
		Date:     p.date,
		Time:     p.clock,
		Platform: p.platform,
	}
	if err := s.Repo.InsertBondTrade(ctx, row); err != nil {
		s.logger().Error("insert bond trade failed",
			zap.String("symbol", row.Symbol),
			zap.String("type", string(row.Type)),
			zap.String("quantity", row.Quantity.String()),
			zap.Time("date", row.Date),
			zap.String("time", row.Time),
			zap.String("platform", row.Platform),
			zap.Error(err),
		)
		return nil, fmt.Errorf("insert bond trade %s: %w", row.Symbol, err)
	}
	return &TradeResult{
		Category: p.category,
		Message:  MessageAdded,
		Content:  fmt.Sprintf("%s %s: %s on %s", row.Symbol, row.Type, row.Quantity, row.Platform),
		Bond:     row,
	}, nil
}

// DeleteStockTrades removes every history row for (symbol, platform). The
// shortlist row is left alone.
func (s *TradeService) DeleteStockTrades(ctx context.Context, symbol, platform string) (int64, error) {
	symbol, platform, err := deleteKey(symbol, platform)
	if err != nil {
		return 0, err
	}
	return s.Repo.DeleteStockTrades(ctx, symbol, platform)
}

func (s *TradeService) DeleteShortlistEntry(ctx context.Context, symbol string) (int64, error) {
	if strings.TrimSpace(symbol) == "" {
		return 0, invalid("symbol is required")
	}
	return s.Repo.DeleteShortlistEntry(ctx, symbol)
}

func (s *TradeService) DeleteBondTrades(ctx context.Context, issueCode, platform string) (int64, error) {
	issueCode, platform, err := deleteKey(issueCode, platform)
	if err != nil {
		return 0, err
	}
	return s.Repo.DeleteBondTrades(ctx, issueCode, platform)
}

// DeleteBondHoldings removes all history rows for an issue on every platform.
func (s *TradeService) DeleteBondHoldings(ctx context.Context, issueCode string) (int64, error) {
	if strings.TrimSpace(issueCode) == "" {
		return 0, invalid("issue code is required")
	}
	return s.Repo.DeleteBondTradesBySymbol(ctx, issueCode)
}

func (s *TradeService) shortlist() *ShortlistService {
	if s.Shortlist != nil {
		return s.Shortlist
	}
	return &ShortlistService{Repo: s.Repo, Gateway: s.Gateway, Logger: s.Logger}
}

func (s *TradeService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func deleteKey(symbol, platform string) (string, string, error) {
	symbol = strings.TrimSpace(symbol)
	platform = strings.TrimSpace(platform)
	if symbol == "" {
		return "", "", invalid("symbol is required")
	}
	if platform == "" {
		return "", "", invalid("platform is required")
	}
	return symbol, platform, nil
}

func parseTrade(in TradeInput) (parsedTrade, error) {
	var p parsedTrade

	p.symbol = repository.NormalizeSymbol(in.Symbol)
	if p.symbol == "" {
		return p, invalid("symbol is required")
	}

	switch strings.TrimSpace(in.Category) {
	case "", CategoryStocks:
		p.category = CategoryStocks
	case CategoryBonds:
		p.category = CategoryBonds
	default:
		return p, invalid("unknown category %q", in.Category)
	}

	kind, err := models.ParseTradeType(in.Type)
	if err != nil {
		return p, invalid("%v", err)
	}
	p.kind = kind

	qty, err := decimal.NewFromString(strings.TrimSpace(in.Quantity))
	if err != nil {
		return p, invalid("quantity %q is not a number", in.Quantity)
	}
	if !qty.IsPositive() {
		return p, invalid("quantity must be positive")
	}
	p.quantity = qty.Mul(decimal.NewFromInt(kind.Sign()))

	date, err := time.Parse("2006-01-02", strings.TrimSpace(in.Date))
	if err != nil {
		return p, invalid("date %q must be YYYY-MM-DD", in.Date)
	}
	p.date = date

	clock := strings.TrimSpace(in.Time)
	if _, err := time.Parse("15:04", clock); err != nil {
		return p, invalid("time %q must be HH:MM", in.Time)
	}
	p.clock = clock

	p.platform = strings.TrimSpace(in.Platform)
	if p.platform == "" {
		return p, invalid("platform is required")
	}
	return p, nil
}
