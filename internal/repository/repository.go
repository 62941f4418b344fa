package repository

import (
	"context"
	"errors"

	"github.com/arifshehab/Capstone-Project/internal/models"
)

var ErrNotFound = errors.New("not found")

type ShortlistRepository interface {
	// UpsertShortlistEntry inserts item or, when the symbol exists, overwrites
	// only the given columns (plus snapshot and updated_at) in one statement.
	UpsertShortlistEntry(ctx context.Context, item *models.ShortlistEntry, columns []string) error
	GetShortlistEntry(ctx context.Context, symbol string) (*models.ShortlistEntry, error)
	ListShortlistEntries(ctx context.Context) ([]models.ShortlistEntry, error)
	DeleteShortlistEntry(ctx context.Context, symbol string) (int64, error)
}

type StockHistoryRepository interface {
	InsertStockTrade(ctx context.Context, item *models.StockTrade) error
	ListStockTrades(ctx context.Context, params ListTradesParams) ([]models.StockTrade, error)
	CountStockTrades(ctx context.Context, params ListTradesParams) (int64, error)
	DeleteStockTrades(ctx context.Context, symbol, platform string) (int64, error)
	ListStockPlatformTotals(ctx context.Context) ([]models.PlatformTotal, error)
}

type BondRepository interface {
	UpsertBondIssues(ctx context.Context, items []models.BondIssue) error
	ListBondIssues(ctx context.Context) ([]models.BondIssue, error)
	InsertBondTrade(ctx context.Context, item *models.BondTrade) error
	ListBondTrades(ctx context.Context, params ListTradesParams) ([]models.BondTrade, error)
	DeleteBondTrades(ctx context.Context, symbol, platform string) (int64, error)
	DeleteBondTradesBySymbol(ctx context.Context, symbol string) (int64, error)
	ListBondPlatformTotals(ctx context.Context) ([]models.PlatformTotal, error)
}

// Repository is the trade store. Implementations are opened at startup and
// closed at shutdown.
type Repository interface {
	ShortlistRepository
	StockHistoryRepository
	BondRepository

	Ping(ctx context.Context) error
	Close() error
}

type ListTradesParams struct {
	Limit    int
	Offset   int
	Symbol   *string
	Platform *string
	OrderBy  string
	Asc      *bool
}
