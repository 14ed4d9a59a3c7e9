package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"agenda/internal/domain/entity"
	"agenda/internal/domain/repository"
	"agenda/internal/infrastructure/dispatch"
	"agenda/internal/infrastructure/scheduler"
	appErrors "agenda/internal/pkg/errors"
	"agenda/internal/pkg/logger"
)

const (
	defaultNotifyTimeout = 30 * time.Second
	defaultCleanupGrace  = 24 * time.Hour
	// Daily retention sweep at 04:00 local time.
	cleanupCronSpec = "0 4 * * *"
	notifyQueueSize = 64
)

// SchedulerOptions tunes the scheduler service. Zero values fall back to
// defaults.
type SchedulerOptions struct {
	// NotifyTimeout bounds a single dispatcher call so a hanging handler
	// cannot leak the notification worker forever.
	NotifyTimeout time.Duration
	// CleanupGrace is how long completed reminders are retained before the
	// maintenance sweep purges them.
	CleanupGrace time.Duration
}

type schedulerService struct {
	engine       *scheduler.Engine
	maintenance  *scheduler.Maintenance
	reminderRepo repository.ReminderRepository
	dispatcher   dispatch.AlertDispatcher
	log          logger.Logger
	opts         SchedulerOptions

	notifyCh chan *entity.Reminder
	workerWG sync.WaitGroup
}

// NewSchedulerService wires the firing engine, the notification worker and
// the maintenance cron around the given store and dispatcher.
func NewSchedulerService(
	reminderRepo repository.ReminderRepository,
	dispatcher dispatch.AlertDispatcher,
	opts SchedulerOptions,
	log logger.Logger,
) SchedulerService {
	if opts.NotifyTimeout <= 0 {
		opts.NotifyTimeout = defaultNotifyTimeout
	}
	if opts.CleanupGrace <= 0 {
		opts.CleanupGrace = defaultCleanupGrace
	}
	s := &schedulerService{
		reminderRepo: reminderRepo,
		dispatcher:   dispatcher,
		log:          log,
		opts:         opts,
		maintenance:  scheduler.NewMaintenance(log),
	}
	s.engine = scheduler.NewEngine(s.handleFire, log)
	return s
}

// ArmReminder arms a persisted reminder in the engine.
func (s *schedulerService) ArmReminder(ctx context.Context, reminder *entity.Reminder) error {
	if reminder.Completed {
		return fmt.Errorf("%w: reminder %d is already completed", appErrors.ErrScheduling, reminder.ID)
	}
	if reminder.TriggerTime.IsZero() {
		return fmt.Errorf("%w: reminder %d has no trigger time", appErrors.ErrScheduling, reminder.ID)
	}
	s.engine.Arm(reminder.ID, reminder.TriggerTime)
	s.log.Info(fmt.Sprintf("Armed reminder %d (%q) for %v", reminder.ID, reminder.Title, reminder.TriggerTime))
	return nil
}

// DisarmReminder removes an armed reminder from the engine.
func (s *schedulerService) DisarmReminder(_ context.Context, reminderID uint) bool {
	return s.engine.Cancel(reminderID)
}

// InitializeSchedules re-arms every pending reminder from the store. The
// store returns them ascending by trigger time, so past-due reminders form
// a burst at the head and fire first once the loop starts.
func (s *schedulerService) InitializeSchedules(ctx context.Context) error {
	s.log.Info("Initializing schedules from database...")
	reminders, err := s.reminderRepo.FindPending(ctx)
	if err != nil {
		s.log.Error("Failed to retrieve pending reminders for initialization", err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	now := time.Now()
	pastDue := 0
	for _, reminder := range reminders {
		if reminder.TriggerTime.Before(now) {
			pastDue++
		}
		s.engine.Arm(reminder.ID, reminder.TriggerTime)
	}

	s.log.Info(fmt.Sprintf("Schedule initialization complete. Armed: %d, past due: %d", len(reminders), pastDue))
	return nil
}

// Start launches the notification worker, the engine loop and the
// maintenance cron. The worker starts first so fired reminders always have
// a consumer.
func (s *schedulerService) Start() {
	s.notifyCh = make(chan *entity.Reminder, notifyQueueSize)
	s.workerWG.Add(1)
	go s.notifyWorker(s.notifyCh)

	s.engine.Start()

	if _, err := s.maintenance.AddJob("retention-sweep", cleanupCronSpec, s.runRetentionSweep); err == nil {
		s.maintenance.Start()
	}
}

// Stop shuts down in reverse order: engine first so nothing new fires, then
// the notification queue is closed and drained, then the maintenance cron.
func (s *schedulerService) Stop() {
	s.engine.Stop()
	if s.notifyCh != nil {
		close(s.notifyCh)
		s.workerWG.Wait()
		s.notifyCh = nil
	}
	s.maintenance.Stop()
}

// handleFire is the engine's fire callback and the single path for the
// completed transition. Marking completed before dispatching is what makes
// delivery at-most-once: whoever loses the compare-and-set skips Notify.
func (s *schedulerService) handleFire(reminderID uint) {
	ctx := context.Background()

	transitioned, err := s.reminderRepo.MarkCompleted(ctx, reminderID)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to mark reminder %d completed during firing", reminderID), err)
		return
	}
	if !transitioned {
		s.log.Debug(fmt.Sprintf("Reminder %d already completed, skipping dispatch", reminderID))
		return
	}

	reminder, err := s.reminderRepo.FindByID(ctx, reminderID)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to load reminder %d for dispatch", reminderID), err)
		return
	}

	select {
	case s.notifyCh <- reminder:
	default:
		s.log.Warn(fmt.Sprintf("Notification queue full, dropping alert for reminder %d", reminderID))
	}
}

// notifyWorker consumes fired reminders and invokes the dispatcher, one at
// a time, each bounded by the notify timeout. A failed dispatch is logged
// and the reminder stays completed; there is no automatic retry.
func (s *schedulerService) notifyWorker(ch <-chan *entity.Reminder) {
	defer s.workerWG.Done()
	for reminder := range ch {
		ctx, cancel := context.WithTimeout(context.Background(), s.opts.NotifyTimeout)
		if err := s.dispatcher.Notify(ctx, reminder); err != nil {
			s.log.Error(fmt.Sprintf("Dispatch for reminder %d failed", reminder.ID),
				fmt.Errorf("%w: %v", appErrors.ErrDispatchFailed, err))
		} else {
			s.log.Info(fmt.Sprintf("Dispatched alert for reminder %d (%q)", reminder.ID, reminder.Title))
		}
		cancel()
	}
}

// runRetentionSweep purges completed reminders older than the grace period.
func (s *schedulerService) runRetentionSweep() {
	threshold := time.Now().Add(-s.opts.CleanupGrace)
	deleted, err := s.reminderRepo.DeleteCompletedBefore(context.Background(), threshold)
	if err != nil {
		s.log.Error("Retention sweep failed", err)
		return
	}
	if deleted > 0 {
		s.log.Info(fmt.Sprintf("Retention sweep removed %d completed reminders", deleted))
	}
}
