package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/arifshehab/Capstone-Project/internal/models"
	"github.com/arifshehab/Capstone-Project/internal/repository"
)

type BondSource interface {
	Fetch(ctx context.Context) ([]models.BondIssue, error)
}

// BondCatalogService refreshes sg_bonds_data from the public listing.
type BondCatalogService struct {
	Repo   repository.BondRepository
	Source BondSource
	Logger *zap.Logger
}

func (s *BondCatalogService) Sync(ctx context.Context) (int, error) {
	if s == nil || s.Repo == nil || s.Source == nil {
		return 0, nil
	}
	issues, err := s.Source.Fetch(ctx)
	if err != nil {
		return 0, upstream(err)
	}
	if err := s.Repo.UpsertBondIssues(ctx, issues); err != nil {
		return 0, fmt.Errorf("upsert bond issues: %w", err)
	}
	if s.Logger != nil {
		s.Logger.Info("bond catalog synced", zap.Int("issues", len(issues)))
	}
	return len(issues), nil
}
