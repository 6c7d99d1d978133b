package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"conferencehub/internal/domain"
)

type staffService struct {
	eventRepo      domain.EventRepository
	activityRepo   domain.ActivityRepository
	staffRepo      domain.StaffRepository
	contextTimeout time.Duration
}

func NewStaffService(
	eventRepo domain.EventRepository,
	activityRepo domain.ActivityRepository,
	staffRepo domain.StaffRepository,
	timeout time.Duration,
) domain.StaffService {
	return &staffService{
		eventRepo:      eventRepo,
		activityRepo:   activityRepo,
		staffRepo:      staffRepo,
		contextTimeout: timeout,
	}
}

func (s *staffService) requireEvent(ctx context.Context, eventID string) error {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	return nil
}

func (s *staffService) requireActivity(ctx context.Context, activityID string) error {
	if _, err := s.activityRepo.GetByID(ctx, activityID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get activity: %w", err)
	}
	return nil
}

func (s *staffService) AvailableForModeration(ctx context.Context, moderatorID, eventID string) ([]*domain.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.requireEvent(ctx, eventID); err != nil {
		return nil, err
	}
	activities, err := s.staffRepo.ListNotModeratedBy(ctx, eventID, moderatorID)
	if err != nil {
		return nil, fmt.Errorf("list activities for moderation: %w", err)
	}
	return activities, nil
}

func (s *staffService) AssignModerator(ctx context.Context, moderatorID, activityID string) (*domain.ModeratorAssignment, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.requireActivity(ctx, activityID); err != nil {
		return nil, err
	}
	m := &domain.ModeratorAssignment{ActivityID: activityID, ModeratorID: moderatorID, AssignedAt: time.Now()}
	if err := s.staffRepo.AssignModerator(ctx, m); err != nil {
		if errors.Is(err, domain.ErrHasModerator) || errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("assign moderator: %w", err)
	}
	return m, nil
}

func (s *staffService) AvailableForJury(ctx context.Context, juryID, eventID string) ([]*domain.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.requireEvent(ctx, eventID); err != nil {
		return nil, err
	}
	activities, err := s.staffRepo.ListNotJudgedBy(ctx, eventID, juryID)
	if err != nil {
		return nil, fmt.Errorf("list activities for jury: %w", err)
	}
	return activities, nil
}

func (s *staffService) MyJuryActivities(ctx context.Context, juryID, eventID string) ([]*domain.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.requireEvent(ctx, eventID); err != nil {
		return nil, err
	}
	activities, err := s.staffRepo.ListJudgedBy(ctx, eventID, juryID)
	if err != nil {
		return nil, fmt.Errorf("list jury activities: %w", err)
	}
	return activities, nil
}

func (s *staffService) JoinJury(ctx context.Context, juryID, activityID string) (*domain.JuryAssignment, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.requireActivity(ctx, activityID); err != nil {
		return nil, err
	}
	j := &domain.JuryAssignment{ActivityID: activityID, JuryID: juryID, AssignedAt: time.Now()}
	if err := s.staffRepo.AddJury(ctx, j); err != nil {
		if errors.Is(err, domain.ErrAlreadyAssigned) || errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("join jury: %w", err)
	}
	return j, nil
}

func (s *staffService) LeaveJury(ctx context.Context, juryID, activityID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.staffRepo.RemoveJury(ctx, activityID, juryID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("leave jury: %w", err)
	}
	return nil
}
