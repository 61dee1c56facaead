package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"weddingplanner/internal/domain"
)

type scheduleService struct {
	scheduleRepo   domain.ScheduleItemRepository
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

func NewScheduleService(scheduleRepo domain.ScheduleItemRepository, eventRepo domain.EventRepository, timeout time.Duration) domain.ScheduleService {
	return &scheduleService{
		scheduleRepo:   scheduleRepo,
		eventRepo:      eventRepo,
		contextTimeout: timeout,
	}
}

func (s *scheduleService) Create(ctx context.Context, item *domain.ScheduleItem) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	item.Title = strings.TrimSpace(item.Title)
	if item.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if !item.StartTime.Before(item.EndTime) {
		return fmt.Errorf("%w: start time must be before end time", domain.ErrInvalidInput)
	}
	if _, err := s.eventRepo.GetByID(ctx, item.EventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if err := s.scheduleRepo.Create(ctx, item); err != nil {
		return fmt.Errorf("create schedule item: %w", err)
	}
	return nil
}

func (s *scheduleService) List(ctx context.Context) ([]*domain.ScheduleItem, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	items, err := s.scheduleRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list schedule items: %w", err)
	}
	return items, nil
}

func (s *scheduleService) Update(ctx context.Context, id string, patch domain.ScheduleItemPatch) (*domain.ScheduleItem, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	current, err := s.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get schedule item: %w", err)
	}

	// Validate the effective values before any write.
	start, end := current.StartTime, current.EndTime
	if patch.StartTime != nil {
		start = *patch.StartTime
	}
	if patch.EndTime != nil {
		end = *patch.EndTime
	}
	if !start.Before(end) {
		return nil, fmt.Errorf("%w: start time must be before end time", domain.ErrInvalidInput)
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", domain.ErrInvalidInput)
	}

	item, err := s.scheduleRepo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update schedule item: %w", err)
	}
	return item, nil
}

func (s *scheduleService) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.scheduleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete schedule item: %w", err)
	}
	return nil
}
