package service

import (
	"context"
	"time"

	"github.com/arifshehab/Capstone-Project/internal/models"
	"github.com/arifshehab/Capstone-Project/internal/portfolio"
	"github.com/arifshehab/Capstone-Project/internal/repository"
)

// ViewService assembles the read models behind the stocks and bonds pages.
type ViewService struct {
	Repo repository.Repository
	Now  func() time.Time
}

func (s *ViewService) StockViews(ctx context.Context) ([]portfolio.CombinedView, error) {
	if s == nil || s.Repo == nil {
		return []portfolio.CombinedView{}, nil
	}
	shortlist, err := s.Repo.ListShortlistEntries(ctx)
	if err != nil {
		return nil, err
	}
	history, err := s.Repo.ListStockTrades(ctx, repository.ListTradesParams{})
	if err != nil {
		return nil, err
	}
	totals, err := s.Repo.ListStockPlatformTotals(ctx)
	if err != nil {
		return nil, err
	}
	results := portfolio.ComputeWeighted(shortlist, history, s.now())
	return portfolio.Combine(results, portfolio.AttachPlatforms(shortlist, totals)), nil
}

func (s *ViewService) BondViews(ctx context.Context) ([]portfolio.BondView, error) {
	if s == nil || s.Repo == nil {
		return []portfolio.BondView{}, nil
	}
	issues, err := s.Repo.ListBondIssues(ctx)
	if err != nil {
		return nil, err
	}
	totals, err := s.Repo.ListBondPlatformTotals(ctx)
	if err != nil {
		return nil, err
	}
	return portfolio.AttachBondPlatforms(issues, totals), nil
}

func (s *ViewService) StockTrades(ctx context.Context, params repository.ListTradesParams) ([]models.StockTrade, int64, error) {
	items, err := s.Repo.ListStockTrades(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.Repo.CountStockTrades(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *ViewService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}
