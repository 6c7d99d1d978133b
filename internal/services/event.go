package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"conferencehub/internal/domain"
	"conferencehub/internal/schedule"
)

type eventService struct {
	eventRepo      domain.EventRepository
	activityRepo   domain.ActivityRepository
	staffRepo      domain.StaffRepository
	exporter       domain.CalendarExporter
	schedule       schedule.Config
	contextTimeout time.Duration
}

func NewEventService(
	eventRepo domain.EventRepository,
	activityRepo domain.ActivityRepository,
	staffRepo domain.StaffRepository,
	exporter domain.CalendarExporter,
	cfg schedule.Config,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		activityRepo:   activityRepo,
		staffRepo:      staffRepo,
		exporter:       exporter,
		schedule:       cfg,
		contextTimeout: timeout,
	}
}

// ownedEvent loads the event and checks that organizerID owns it.
func ownedEvent(ctx context.Context, repo domain.EventRepository, organizerID, eventID string) (*domain.Event, error) {
	event, err := repo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.OrganizerID != organizerID {
		return nil, domain.ErrForbidden
	}
	return event, nil
}

func (s *eventService) List(ctx context.Context, filter domain.EventFilter, params domain.PaginationParams) ([]*domain.EventView, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}
	events, total, err := s.eventRepo.List(ctx, filter, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	return events, total, nil
}

func (s *eventService) GetDetail(ctx context.Context, id string) (*domain.EventDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	view, err := s.eventRepo.GetView(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	activities, err := s.activityRepo.ListByEvent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	ids := make([]string, len(activities))
	for i, a := range activities {
		ids[i] = a.ID
	}
	withJury, err := s.staffRepo.ActivitiesWithJury(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load jury flags: %w", err)
	}

	views := make([]*domain.ActivityView, 0, len(activities))
	for _, a := range activities {
		views = append(views, domain.NewActivityView(a, view.Name, view.StartDate, withJury[a.ID]))
	}
	return &domain.EventDetail{Event: view, Activities: views}, nil
}

func (s *eventService) ExportCalendar(ctx context.Context, id string) ([]byte, error) {
	detail, err := s.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	out, err := s.exporter.Export(detail)
	if err != nil {
		return nil, fmt.Errorf("export calendar: %w", err)
	}
	return out, nil
}

func (s *eventService) Create(ctx context.Context, organizerID string, in domain.EventInput) (*domain.Event, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if organizerID == "" {
		return nil, 0, fmt.Errorf("%w: event organizer is required", domain.ErrInvalidInput)
	}
	if err := in.Validate(); err != nil {
		return nil, 0, err
	}

	now := time.Now()
	event := domain.NewEvent(organizerID, in, now, now)

	var activities []*domain.Activity
	for _, ds := range schedule.GenerateDays(s.schedule, event.StartDate, event.EndDate) {
		for _, start := range ds.Slots {
			activities = append(activities, domain.GeneratedActivity("", ds.Day, start, s.schedule))
		}
	}

	if err := s.eventRepo.CreateWithActivities(ctx, event, activities); err != nil {
		return nil, 0, fmt.Errorf("create event: %w", err)
	}
	return event, len(activities), nil
}

func (s *eventService) Update(ctx context.Context, organizerID, eventID string, in domain.EventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := in.Validate(); err != nil {
		return nil, err
	}
	event, err := ownedEvent(ctx, s.eventRepo, organizerID, eventID)
	if err != nil {
		return nil, err
	}

	lastDay, err := s.activityRepo.MaxDay(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("get last activity day: %w", err)
	}
	if days := schedule.DayCount(in.StartDate, in.EndDate); lastDay > days {
		return nil, fmt.Errorf("%w: activities are scheduled on day %d but the event would last %d days",
			domain.ErrEventHasActivities, lastDay, days)
	}

	event.Apply(in)
	event.UpdatedAt = time.Now()
	if err := s.eventRepo.Update(ctx, event); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

func (s *eventService) Delete(ctx context.Context, organizerID, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := ownedEvent(ctx, s.eventRepo, organizerID, eventID); err != nil {
		return err
	}
	lastDay, err := s.activityRepo.MaxDay(ctx, eventID)
	if err != nil {
		return fmt.Errorf("get last activity day: %w", err)
	}
	if lastDay > 0 {
		return domain.ErrEventHasActivities
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrEventHasActivities) {
			return err
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
