package service

import (
	"context"
	"errors"
	"strings"

	"github.com/arifshehab/Capstone-Project/internal/client/quiver"
)

type DisclosureSource interface {
	SenateTrading(ctx context.Context, ticker string) ([]quiver.Disclosure, error)
}

type AnalyticsService struct {
	Source DisclosureSource
}

func (s *AnalyticsService) SenateTrades(ctx context.Context, ticker string) ([]quiver.Disclosure, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, invalid("ticker is required")
	}
	if s == nil || s.Source == nil {
		return nil, quiver.ErrNoToken
	}
	items, err := s.Source.SenateTrading(ctx, ticker)
	if err != nil && !errors.Is(err, quiver.ErrNoToken) {
		return nil, upstream(err)
	}
	return items, err
}
