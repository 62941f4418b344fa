package gormrepository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/arifshehab/Capstone-Project/internal/models"
	"github.com/arifshehab/Capstone-Project/internal/repository"
)

var _ repository.Repository = (*Store)(nil)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.db == nil {
		return errors.New("store not initialized")
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// --- shortlist --------------------------------------------------------------

func (s *Store) UpsertShortlistEntry(ctx context.Context, item *models.ShortlistEntry, columns []string) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	item.Symbol = repository.NormalizeSymbol(item.Symbol)
	if item.Symbol == "" {
		return errors.New("shortlist entry without symbol")
	}
	return upsertShortlistQuery(s.db.WithContext(ctx), item, columns).Error
}

// upsertShortlistQuery inserts item or overwrites only the allow-listed
// columns of the existing row in the same statement.
func upsertShortlistQuery(tx *gorm.DB, item *models.ShortlistEntry, columns []string) *gorm.DB {
	updates := append(repository.ShortlistColumns(columns), "snapshot", "updated_at")
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}},
		DoUpdates: clause.AssignmentColumns(updates),
	}).Create(item)
}

func (s *Store) GetShortlistEntry(ctx context.Context, symbol string) (*models.ShortlistEntry, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	symbol = repository.NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, nil
	}
	var item models.ShortlistEntry
	err := s.db.WithContext(ctx).Model(&models.ShortlistEntry{}).Where("symbol = ?", symbol).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListShortlistEntries(ctx context.Context) ([]models.ShortlistEntry, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.ShortlistEntry
	if err := s.db.WithContext(ctx).
		Model(&models.ShortlistEntry{}).
		Order("symbol asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) DeleteShortlistEntry(ctx context.Context, symbol string) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	res := s.db.WithContext(ctx).
		Where("symbol = ?", repository.NormalizeSymbol(symbol)).
		Delete(&models.ShortlistEntry{})
	return res.RowsAffected, res.Error
}

// --- stock history ----------------------------------------------------------

func (s *Store) InsertStockTrade(ctx context.Context, item *models.StockTrade) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	item.Symbol = repository.NormalizeSymbol(item.Symbol)
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) ListStockTrades(ctx context.Context, params repository.ListTradesParams) ([]models.StockTrade, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.StockTrade
	if err := listTradesQuery(s.db.WithContext(ctx).Model(&models.StockTrade{}), params).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountStockTrades(ctx context.Context, params repository.ListTradesParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	if err := tradeFilter(s.db.WithContext(ctx).Model(&models.StockTrade{}), params).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) DeleteStockTrades(ctx context.Context, symbol, platform string) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	res := s.db.WithContext(ctx).
		Where("platform = ?", strings.TrimSpace(platform)).
		Where("symbol = ?", repository.NormalizeSymbol(symbol)).
		Delete(&models.StockTrade{})
	return res.RowsAffected, res.Error
}

func (s *Store) ListStockPlatformTotals(ctx context.Context) ([]models.PlatformTotal, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var rows []models.PlatformTotal
	if err := platformTotalsQuery(s.db.WithContext(ctx).Model(&models.StockTrade{}), "COALESCE(SUM(total_price), 0)", &rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// --- bonds ------------------------------------------------------------------

func (s *Store) UpsertBondIssues(ctx context.Context, items []models.BondIssue) error {
	if s == nil || s.db == nil || len(items) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "issue_code"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"isin",
			"description",
			"coupon_rate",
			"issue_date",
			"maturity_date",
			"yield",
			"snapshot",
			"updated_at",
		}),
	}).CreateInBatches(items, 200).Error
}

func (s *Store) ListBondIssues(ctx context.Context) ([]models.BondIssue, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.BondIssue
	if err := s.db.WithContext(ctx).
		Model(&models.BondIssue{}).
		Order("maturity_date asc NULLS LAST, issue_code asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) InsertBondTrade(ctx context.Context, item *models.BondTrade) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	item.Symbol = repository.NormalizeSymbol(item.Symbol)
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) ListBondTrades(ctx context.Context, params repository.ListTradesParams) ([]models.BondTrade, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.BondTrade
	if err := listTradesQuery(s.db.WithContext(ctx).Model(&models.BondTrade{}), params).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) DeleteBondTrades(ctx context.Context, symbol, platform string) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	res := s.db.WithContext(ctx).
		Where("platform = ?", strings.TrimSpace(platform)).
		Where("symbol = ?", repository.NormalizeSymbol(symbol)).
		Delete(&models.BondTrade{})
	return res.RowsAffected, res.Error
}

func (s *Store) DeleteBondTradesBySymbol(ctx context.Context, symbol string) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	res := s.db.WithContext(ctx).
		Where("symbol = ?", repository.NormalizeSymbol(symbol)).
		Delete(&models.BondTrade{})
	return res.RowsAffected, res.Error
}

func (s *Store) ListBondPlatformTotals(ctx context.Context) ([]models.PlatformTotal, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var rows []models.PlatformTotal
	if err := platformTotalsQuery(s.db.WithContext(ctx).Model(&models.BondTrade{}), "0", &rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// --- helpers ----------------------------------------------------------------

var tradeOrderColumns = map[string]string{
	"date":        "date",
	"symbol":      "symbol",
	"platform":    "platform",
	"quantity":    "quantity",
	"total_price": "total_price",
	"created_at":  "created_at",
}

// platformTotalsQuery groups the model's history by (symbol, platform) in
// first-insert order. tradesExpr fills total_trades.
func platformTotalsQuery(tx *gorm.DB, tradesExpr string, dest *[]models.PlatformTotal) *gorm.DB {
	return tx.
		Select("symbol, platform, " + tradesExpr + " AS total_trades, COALESCE(SUM(quantity), 0) AS total_quantity").
		Group("symbol, platform").
		Order("symbol asc, MIN(id) asc").
		Scan(dest)
}

func listTradesQuery(tx *gorm.DB, params repository.ListTradesParams) *gorm.DB {
	query := tradeFilter(tx, params)
	query = applyTradeOrder(query, params)
	return applyPaging(query, params.Limit, params.Offset)
}

func tradeFilter(query *gorm.DB, params repository.ListTradesParams) *gorm.DB {
	if params.Symbol != nil && strings.TrimSpace(*params.Symbol) != "" {
		query = query.Where("symbol = ?", repository.NormalizeSymbol(*params.Symbol))
	}
	if params.Platform != nil && strings.TrimSpace(*params.Platform) != "" {
		query = query.Where("platform = ?", strings.TrimSpace(*params.Platform))
	}
	return query
}

// applyTradeOrder defaults to insertion order so aggregations see history in
// the order it was recorded.
func applyTradeOrder(query *gorm.DB, params repository.ListTradesParams) *gorm.DB {
	column, ok := tradeOrderColumns[strings.ToLower(strings.TrimSpace(params.OrderBy))]
	if !ok {
		return query.Order("id asc")
	}
	direction := "desc"
	if params.Asc != nil && *params.Asc {
		direction = "asc"
	}
	return query.Order(column + " " + direction).Order("id asc")
}

// applyPaging leaves the query unbounded when limit <= 0; aggregations need
// the whole history.
func applyPaging(query *gorm.DB, limit, offset int) *gorm.DB {
	if limit > 0 {
		if limit > 500 {
			limit = 500
		}
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	return query
}
