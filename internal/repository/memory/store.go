package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/arifshehab/Capstone-Project/internal/models"
	"github.com/arifshehab/Capstone-Project/internal/portfolio"
	"github.com/arifshehab/Capstone-Project/internal/repository"
)

var _ repository.Repository = (*Store)(nil)

// Store is an in-process repository.Repository. It backs tests and the
// "memory" db driver.
type Store struct {
	mu sync.RWMutex

	shortlist map[string]models.ShortlistEntry
	stocks    []models.StockTrade
	bondIssue map[string]models.BondIssue
	bonds     []models.BondTrade

	nextStockID uint64
	nextBondID  uint64
	now         func() time.Time
}

func New() *Store {
	return &Store{
		shortlist: map[string]models.ShortlistEntry{},
		bondIssue: map[string]models.BondIssue{},
		now:       time.Now,
	}
}

func (s *Store) Ping(ctx context.Context) error { return nil }
func (s *Store) Close() error                   { return nil }

func (s *Store) UpsertShortlistEntry(ctx context.Context, item *models.ShortlistEntry, columns []string) error {
	if s == nil || item == nil {
		return nil
	}
	item.Symbol = repository.NormalizeSymbol(item.Symbol)
	if item.Symbol == "" {
		return errors.New("shortlist entry without symbol")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	existing, ok := s.shortlist[item.Symbol]
	if !ok {
		item.CreatedAt = now
		item.UpdatedAt = now
		s.shortlist[item.Symbol] = *item
		return nil
	}
	existing.ApplyColumns(*item, append(repository.ShortlistColumns(columns), "snapshot"))
	existing.UpdatedAt = now
	s.shortlist[item.Symbol] = existing
	*item = existing
	return nil
}

func (s *Store) GetShortlistEntry(ctx context.Context, symbol string) (*models.ShortlistEntry, error) {
	if s == nil {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.shortlist[repository.NormalizeSymbol(symbol)]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (s *Store) ListShortlistEntries(ctx context.Context) ([]models.ShortlistEntry, error) {
	if s == nil {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ShortlistEntry, 0, len(s.shortlist))
	for _, item := range s.shortlist {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out, nil
}

func (s *Store) DeleteShortlistEntry(ctx context.Context, symbol string) (int64, error) {
	if s == nil {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	symbol = repository.NormalizeSymbol(symbol)
	if _, ok := s.shortlist[symbol]; !ok {
		return 0, nil
	}
	delete(s.shortlist, symbol)
	return 1, nil
}

func (s *Store) InsertStockTrade(ctx context.Context, item *models.StockTrade) error {
	if s == nil || item == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextStockID++
	item.ID = s.nextStockID
	item.Symbol = repository.NormalizeSymbol(item.Symbol)
	item.CreatedAt = s.now().UTC()
	s.stocks = append(s.stocks, *item)
	return nil
}

func (s *Store) ListStockTrades(ctx context.Context, params repository.ListTradesParams) ([]models.StockTrade, error) {
	if s == nil {
		return nil, nil
	}
	s.mu.RLock()
	matched := filterTrades(s.stocks, params, func(t models.StockTrade) (string, string) { return t.Symbol, t.Platform })
	s.mu.RUnlock()
	return page(matched, params), nil
}

func (s *Store) CountStockTrades(ctx context.Context, params repository.ListTradesParams) (int64, error) {
	if s == nil {
		return 0, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := filterTrades(s.stocks, params, func(t models.StockTrade) (string, string) { return t.Symbol, t.Platform })
	return int64(len(matched)), nil
}

func (s *Store) DeleteStockTrades(ctx context.Context, symbol, platform string) (int64, error) {
	if s == nil {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var removed int64
	s.stocks, removed = removeTrades(s.stocks, repository.NormalizeSymbol(symbol), strings.TrimSpace(platform), true,
		func(t models.StockTrade) (string, string) { return t.Symbol, t.Platform })
	return removed, nil
}

func (s *Store) ListStockPlatformTotals(ctx context.Context) ([]models.PlatformTotal, error) {
	if s == nil {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return portfolio.SummarizeStockPlatforms(s.stocks), nil
}

func (s *Store) UpsertBondIssues(ctx context.Context, items []models.BondIssue) error {
	if s == nil || len(items) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now().UTC()
	for _, item := range items {
		code := strings.TrimSpace(item.IssueCode)
		if code == "" {
			continue
		}
		item.IssueCode = code
		item.UpdatedAt = now
		if existing, ok := s.bondIssue[code]; ok {
			item.CreatedAt = existing.CreatedAt
		} else {
			item.CreatedAt = now
		}
		s.bondIssue[code] = item
	}
	return nil
}

func (s *Store) ListBondIssues(ctx context.Context) ([]models.BondIssue, error) {
	if s == nil {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.BondIssue, 0, len(s.bondIssue))
	for _, item := range s.bondIssue {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].MaturityDate, out[j].MaturityDate
		switch {
		case a != nil && b != nil && !a.Equal(*b):
			return a.Before(*b)
		case a != nil && b == nil:
			return true
		case a == nil && b != nil:
			return false
		}
		return out[i].IssueCode < out[j].IssueCode
	})
	return out, nil
}

func (s *Store) InsertBondTrade(ctx context.Context, item *models.BondTrade) error {
	if s == nil || item == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextBondID++
	item.ID = s.nextBondID
	item.Symbol = repository.NormalizeSymbol(item.Symbol)
	item.CreatedAt = s.now().UTC()
	s.bonds = append(s.bonds, *item)
	return nil
}

func (s *Store) ListBondTrades(ctx context.Context, params repository.ListTradesParams) ([]models.BondTrade, error) {
	if s == nil {
		return nil, nil
	}
	s.mu.RLock()
	matched := filterTrades(s.bonds, params, func(t models.BondTrade) (string, string) { return t.Symbol, t.Platform })
	s.mu.RUnlock()
	return page(matched, params), nil
}

func (s *Store) DeleteBondTrades(ctx context.Context, symbol, platform string) (int64, error) {
	if s == nil {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var removed int64
	s.bonds, removed = removeTrades(s.bonds, repository.NormalizeSymbol(symbol), strings.TrimSpace(platform), true,
		func(t models.BondTrade) (string, string) { return t.Symbol, t.Platform })
	return removed, nil
}

func (s *Store) DeleteBondTradesBySymbol(ctx context.Context, symbol string) (int64, error) {
	if s == nil {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var removed int64
	s.bonds, removed = removeTrades(s.bonds, repository.NormalizeSymbol(symbol), "", false,
		func(t models.BondTrade) (string, string) { return t.Symbol, t.Platform })
	return removed, nil
}

func (s *Store) ListBondPlatformTotals(ctx context.Context) ([]models.PlatformTotal, error) {
	if s == nil {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return portfolio.SummarizeBondPlatforms(s.bonds), nil
}

func filterTrades[T any](rows []T, params repository.ListTradesParams, key func(T) (string, string)) []T {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		symbol, platform := key(row)
		if params.Symbol != nil && strings.TrimSpace(*params.Symbol) != "" && symbol != repository.NormalizeSymbol(*params.Symbol) {
			continue
		}
		if params.Platform != nil && strings.TrimSpace(*params.Platform) != "" && platform != strings.TrimSpace(*params.Platform) {
			continue
		}
		out = append(out, row)
	}
	return out
}

func removeTrades[T any](rows []T, symbol, platform string, matchPlatform bool, key func(T) (string, string)) ([]T, int64) {
	kept := rows[:0]
	var removed int64
	for _, row := range rows {
		s, p := key(row)
		if s == symbol && (!matchPlatform || p == platform) {
			removed++
			continue
		}
		kept = append(kept, row)
	}
	return kept, removed
}

func page[T any](rows []T, params repository.ListTradesParams) []T {
	if params.Offset > 0 {
		if params.Offset >= len(rows) {
			return []T{}
		}
		rows = rows[params.Offset:]
	}
	if params.Limit > 0 && params.Limit < len(rows) {
		rows = rows[:params.Limit]
	}
	return rows
}
