package usecase

import (
	"context"
	"fmt"

	"cinema-ticket/internal/data/repository"
	"cinema-ticket/internal/dto/response"

	"go.uber.org/zap"
)

type RefreshmentService interface {
	ListActive(ctx context.Context) ([]response.RefreshmentResponse, error)
}

type refreshmentService struct {
	refreshments repository.RefreshmentRepository
	log          *zap.Logger
}

func NewRefreshmentService(refreshments repository.RefreshmentRepository, log *zap.Logger) RefreshmentService {
	return &refreshmentService{
		refreshments: refreshments,
		log:          log.With(zap.String("service", "refreshment")),
	}
}

func (s *refreshmentService) ListActive(ctx context.Context) ([]response.RefreshmentResponse, error) {
	items, err := s.refreshments.FindAllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list refreshments: %w", err)
	}

	out := make([]response.RefreshmentResponse, 0, len(items))
	for _, item := range items {
		out = append(out, response.RefreshmentToResponse(item))
	}
	return out, nil
}
