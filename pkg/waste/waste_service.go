package waste

import (
	"context"
	"time"

	"freshtrack-backend/domain"
)

type (
	WasteService interface {
		GetWasteStats(ctx context.Context, asOf time.Time) (domain.WasteStatsResponse, error)
		GetEnhancedWasteStats(ctx context.Context, asOf time.Time) (domain.EnhancedWasteStatsResponse, error)
	}

	wasteService struct {
		wasteRepository WasteRepository
	}
)

func NewWasteService(wasteRepository WasteRepository) WasteService {
	return &wasteService{wasteRepository: wasteRepository}
}

// GetWasteStats is the legacy surface: trend and summary without the
// category breakdown.
func (s *wasteService) GetWasteStats(ctx context.Context, asOf time.Time) (domain.WasteStatsResponse, error) {
	enhanced, err := s.GetEnhancedWasteStats(ctx, asOf)
	if err != nil {
		return domain.WasteStatsResponse{}, err
	}

	return domain.WasteStatsResponse{
		Trend:   enhanced.Trend,
		Summary: enhanced.Summary,
	}, nil
}

func (s *wasteService) GetEnhancedWasteStats(ctx context.Context, asOf time.Time) (domain.EnhancedWasteStatsResponse, error) {
	events, err := s.wasteRepository.GetAllWasteEvents(ctx)
	if err != nil {
		return domain.EnhancedWasteStatsResponse{}, err
	}

	return ComputeStats(events, asOf), nil
}
