package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"agenda/internal/application/dto"
	"agenda/internal/domain/entity"
	"agenda/internal/domain/repository"
	appErrors "agenda/internal/pkg/errors"
	"agenda/internal/pkg/logger"
	"agenda/internal/pkg/timeparse"
)

const defaultUpcomingDays = 7

type reminderService struct {
	reminderRepo repository.ReminderRepository
	eventRepo    repository.EventRepository
	schedulerSvc SchedulerService
	log          logger.Logger
	// now is swappable so tests can pin the reference time for parsing.
	now func() time.Time
}

// NewReminderService creates a new instance of ReminderService implementation.
func NewReminderService(
	reminderRepo repository.ReminderRepository,
	eventRepo repository.EventRepository,
	schedulerSvc SchedulerService,
	log logger.Logger,
) ReminderService {
	return &reminderService{
		reminderRepo: reminderRepo,
		eventRepo:    eventRepo,
		schedulerSvc: schedulerSvc,
		log:          log,
		now:          time.Now,
	}
}

// AddReminder resolves, persists, then arms — in that order. Persisting
// before arming means a crash in between loses only the timer, which
// recovery rebuilds from the store.
func (s *reminderService) AddReminder(ctx context.Context, req dto.CreateReminderRequest) (dto.ReminderResponse, error) {
	triggerTime, err := timeparse.Resolve(req.When, s.now())
	if err != nil {
		s.log.Warn(fmt.Sprintf("Rejected reminder %q: unparseable time expression %q", req.Title, req.When))
		return dto.ReminderResponse{}, err
	}

	reminder := &entity.Reminder{
		Title:       req.Title,
		Description: req.Description,
		TriggerTime: triggerTime,
	}
	if _, err := s.reminderRepo.Create(ctx, reminder); err != nil {
		s.log.Error(fmt.Sprintf("Failed to create reminder %q", req.Title), err)
		return dto.ReminderResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	if err := s.schedulerSvc.ArmReminder(ctx, reminder); err != nil {
		// The row is durable; recovery will arm it on the next start.
		s.log.Error(fmt.Sprintf("Failed to arm reminder %d after creation", reminder.ID), err)
		return dto.ReminderResponse{}, err
	}

	s.log.Info(fmt.Sprintf("Created reminder %d (%q) for %v", reminder.ID, reminder.Title, triggerTime))
	return dto.ToReminderResponse(reminder), nil
}

// AddEvent resolves the start expression and persists the event.
func (s *reminderService) AddEvent(ctx context.Context, req dto.CreateEventRequest) (dto.EventResponse, error) {
	startTime, err := timeparse.Resolve(req.When, s.now())
	if err != nil {
		s.log.Warn(fmt.Sprintf("Rejected event %q: unparseable time expression %q", req.Title, req.When))
		return dto.EventResponse{}, err
	}

	var endTime *time.Time
	if req.Duration != "" {
		d, err := timeparse.ResolveDuration(req.Duration)
		if err != nil {
			s.log.Warn(fmt.Sprintf("Rejected event %q: unparseable duration %q", req.Title, req.Duration))
			return dto.EventResponse{}, err
		}
		end := startTime.Add(d)
		endTime = &end
	}

	event := &entity.Event{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   startTime,
		EndTime:     endTime,
	}
	if _, err := s.eventRepo.Create(ctx, event); err != nil {
		s.log.Error(fmt.Sprintf("Failed to create event %q", req.Title), err)
		return dto.EventResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	s.log.Info(fmt.Sprintf("Created event %d (%q) starting %v", event.ID, event.Title, startTime))
	return dto.ToEventResponse(event), nil
}

// ListPendingReminders returns non-completed reminders, ascending by trigger time.
func (s *reminderService) ListPendingReminders(ctx context.Context) ([]dto.ReminderResponse, error) {
	reminders, err := s.reminderRepo.FindPending(ctx)
	if err != nil {
		s.log.Error("Failed to list pending reminders", err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return dto.ToReminderResponseList(reminders), nil
}

// ListEvents returns all events.
func (s *reminderService) ListEvents(ctx context.Context) ([]dto.EventResponse, error) {
	events, err := s.eventRepo.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list events", err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return dto.ToEventResponseList(events), nil
}

// ListUpcomingEvents returns events starting within the next N days.
func (s *reminderService) ListUpcomingEvents(ctx context.Context, days int) ([]dto.EventResponse, error) {
	if days <= 0 {
		days = defaultUpcomingDays
	}
	now := s.now()
	events, err := s.eventRepo.FindBetween(ctx, now, now.AddDate(0, 0, days))
	if err != nil {
		s.log.Error("Failed to list upcoming events", err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return dto.ToEventResponseList(events), nil
}

// CancelReminder disarms the engine entry and completes the row through the
// same compare-and-set the firing path uses, so a cancelled reminder never
// re-arms after a restart. If firing already won the transition this is a
// no-op that still reports success.
func (s *reminderService) CancelReminder(ctx context.Context, reminderID uint) error {
	if _, err := s.reminderRepo.FindByID(ctx, reminderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErrors.ErrReminderNotFound
		}
		s.log.Error(fmt.Sprintf("Failed to find reminder %d for cancellation", reminderID), err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	s.schedulerSvc.DisarmReminder(ctx, reminderID)

	transitioned, err := s.reminderRepo.MarkCompleted(ctx, reminderID)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to complete reminder %d during cancellation", reminderID), err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	if !transitioned {
		s.log.Debug(fmt.Sprintf("Reminder %d was already completed when cancelled", reminderID))
	}

	s.log.Info(fmt.Sprintf("Cancelled reminder %d", reminderID))
	return nil
}
