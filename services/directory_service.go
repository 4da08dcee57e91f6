package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/manager-directory/metrics"
	"github.com/Dosada05/manager-directory/models"
	"github.com/Dosada05/manager-directory/repositories"
)

type DirectoryService interface {
	// ListManagers never returns an error: on any store failure the public
	// directory degrades to an empty list so the page keeps rendering. The
	// failure is logged and counted instead.
	ListManagers(ctx context.Context) []models.Manager
	GetManagerByID(ctx context.Context, id string) (*models.Manager, error)
}

type directoryService struct {
	managerRepo repositories.ManagerRepository
	logger      *slog.Logger
}

func NewDirectoryService(managerRepo repositories.ManagerRepository, logger *slog.Logger) DirectoryService {
	return &directoryService{
		managerRepo: managerRepo,
		logger:      logger,
	}
}

func (s *directoryService) ListManagers(ctx context.Context) []models.Manager {
	managers, err := s.managerRepo.List(ctx)
	if err != nil {
		s.logger.Error("directory read degraded to empty list", slog.Any("error", err))
		metrics.DirectoryDegraded.Inc()
		return []models.Manager{}
	}
	if managers == nil {
		return []models.Manager{}
	}
	return managers
}

func (s *directoryService) GetManagerByID(ctx context.Context, id string) (*models.Manager, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrManagerIDRequired
	}
	manager, err := s.managerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrManagerNotFound) {
			return nil, ErrManagerNotFound
		}
		return nil, fmt.Errorf("failed to get manager %s: %w", id, err)
	}
	return manager, nil
}
