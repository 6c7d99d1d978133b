package services

import (
	"context"
	"fmt"
	"time"

	"conferencehub/internal/domain"
)

type catalogService struct {
	repo           domain.CatalogRepository
	contextTimeout time.Duration
}

func NewCatalogService(repo domain.CatalogRepository, timeout time.Duration) domain.CatalogService {
	return &catalogService{repo: repo, contextTimeout: timeout}
}

func (s *catalogService) ListDirections(ctx context.Context) ([]*domain.Direction, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	dirs, err := s.repo.ListDirections(ctx)
	if err != nil {
		return nil, fmt.Errorf("list directions: %w", err)
	}
	return dirs, nil
}

func (s *catalogService) ListCities(ctx context.Context) ([]*domain.City, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	cities, err := s.repo.ListCities(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	return cities, nil
}
