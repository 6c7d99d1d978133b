package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"conferencehub/internal/domain"
	"conferencehub/internal/schedule"
)

// activityService manages the activities of an organizer's events. Every
// write goes through the slot allocator.
type activityService struct {
	eventRepo      domain.EventRepository
	activityRepo   domain.ActivityRepository
	staffRepo      domain.StaffRepository
	schedule       schedule.Config
	contextTimeout time.Duration
}

func NewActivityService(
	eventRepo domain.EventRepository,
	activityRepo domain.ActivityRepository,
	staffRepo domain.StaffRepository,
	cfg schedule.Config,
	timeout time.Duration,
) domain.ActivityService {
	return &activityService{
		eventRepo:      eventRepo,
		activityRepo:   activityRepo,
		staffRepo:      staffRepo,
		schedule:       cfg,
		contextTimeout: timeout,
	}
}

func checkDay(event *domain.Event, day int) error {
	if day < 1 || day > event.DaysCount {
		return fmt.Errorf("%w: day %d, event has %d days", domain.ErrDayOutOfRange, day, event.DaysCount)
	}
	return nil
}

func (s *activityService) bookings(ctx context.Context, eventID string, day int) ([]*domain.Activity, error) {
	activities, err := s.activityRepo.ListByEventDay(ctx, eventID, day)
	if err != nil {
		return nil, fmt.Errorf("list day activities: %w", err)
	}
	return activities, nil
}

func (s *activityService) AvailableSlots(ctx context.Context, organizerID, eventID string, day int, excludeActivityID string) (*domain.SlotAvailability, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := ownedEvent(ctx, s.eventRepo, organizerID, eventID)
	if err != nil {
		return nil, err
	}
	if err := checkDay(event, day); err != nil {
		return nil, err
	}
	activities, err := s.bookings(ctx, eventID, day)
	if err != nil {
		return nil, err
	}

	var exempt *schedule.Exemption
	if excludeActivityID != "" {
		for _, a := range activities {
			if a.ID == excludeActivityID {
				exempt = &schedule.Exemption{ActivityID: a.ID, Start: a.StartTime}
				break
			}
		}
	}

	slots := schedule.AvailableSlots(s.schedule, domain.Bookings(activities), exempt)
	return &domain.SlotAvailability{
		EventID: eventID,
		Day:     day,
		Date:    event.DateOfDay(day),
		Slots:   slots,
		Message: domain.SlotMessage(len(slots), s.schedule),
	}, nil
}

func (s *activityService) ListForOrganizer(ctx context.Context, filter domain.ActivityFilter) ([]*domain.ActivityView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if filter.Sort == "" {
		filter.Sort = domain.SortAsc
	}
	views, err := s.activityRepo.ListForOrganizer(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return views, nil
}

func (s *activityService) Create(ctx context.Context, organizerID string, in domain.ActivityInput) (*domain.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := in.Validate(); err != nil {
		return nil, err
	}
	event, err := ownedEvent(ctx, s.eventRepo, organizerID, in.EventID)
	if err != nil {
		return nil, err
	}
	if err := checkDay(event, in.Day); err != nil {
		return nil, err
	}
	existing, err := s.bookings(ctx, in.EventID, in.Day)
	if err != nil {
		return nil, err
	}
	if !schedule.Fits(s.schedule, domain.Bookings(existing), nil, in.StartTime) {
		return nil, fmt.Errorf("%w: %s on day %d", domain.ErrSlotUnavailable, in.StartTime, in.Day)
	}

	a := &domain.Activity{
		EventID:         in.EventID,
		Day:             in.Day,
		StartTime:       in.StartTime,
		DurationMinutes: s.schedule.ActivityMinutes(),
		Name:            strings.TrimSpace(in.Name),
		Description:     strings.TrimSpace(in.Description),
	}
	if err := s.activityRepo.Create(ctx, a); err != nil {
		if errors.Is(err, domain.ErrSlotUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("create activity: %w", err)
	}
	return a, nil
}

func (s *activityService) Update(ctx context.Context, organizerID, activityID string, in domain.ActivityInput) (*domain.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := in.Validate(); err != nil {
		return nil, err
	}
	a, err := s.activityRepo.GetByID(ctx, activityID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get activity: %w", err)
	}
	if _, err := ownedEvent(ctx, s.eventRepo, organizerID, a.EventID); err != nil {
		return nil, err
	}
	target, err := ownedEvent(ctx, s.eventRepo, organizerID, in.EventID)
	if err != nil {
		return nil, err
	}
	if err := checkDay(target, in.Day); err != nil {
		return nil, err
	}

	existing, err := s.bookings(ctx, in.EventID, in.Day)
	if err != nil {
		return nil, err
	}
	var exempt *schedule.Exemption
	if a.EventID == in.EventID && a.Day == in.Day {
		exempt = &schedule.Exemption{ActivityID: a.ID, Start: a.StartTime}
	}
	if !schedule.Fits(s.schedule, domain.Bookings(existing), exempt, in.StartTime) {
		return nil, fmt.Errorf("%w: %s on day %d", domain.ErrSlotUnavailable, in.StartTime, in.Day)
	}

	a.EventID = in.EventID
	a.Day = in.Day
	a.StartTime = in.StartTime
	a.DurationMinutes = s.schedule.ActivityMinutes()
	a.Name = strings.TrimSpace(in.Name)
	a.Description = strings.TrimSpace(in.Description)
	if err := s.activityRepo.Update(ctx, a); err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrSlotUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("update activity: %w", err)
	}
	return a, nil
}

func (s *activityService) Delete(ctx context.Context, organizerID, activityID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	a, err := s.activityRepo.GetByID(ctx, activityID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get activity: %w", err)
	}
	if _, err := ownedEvent(ctx, s.eventRepo, organizerID, a.EventID); err != nil {
		return err
	}
	jurors, err := s.staffRepo.CountJury(ctx, activityID)
	if err != nil {
		return fmt.Errorf("count jury: %w", err)
	}
	if jurors > 0 {
		return domain.ErrActivityHasJury
	}
	if err := s.activityRepo.Delete(ctx, activityID); err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrActivityHasJury) {
			return err
		}
		return fmt.Errorf("delete activity: %w", err)
	}
	return nil
}
