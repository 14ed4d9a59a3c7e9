package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"agenda/internal/domain/entity"
)

// memoryReminderRepo is an in-memory ReminderRepository with the same
// contract as the sqlite implementation.
type memoryReminderRepo struct {
	mu        sync.Mutex
	nextID    uint
	reminders map[uint]*entity.Reminder
}

func newMemoryReminderRepo() *memoryReminderRepo {
	return &memoryReminderRepo{nextID: 1, reminders: map[uint]*entity.Reminder{}}
}

func (m *memoryReminderRepo) FindByID(_ context.Context, id uint) (*entity.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reminders[id]
	if !ok {
		return nil, fmt.Errorf("reminder with ID %d not found: %w", id, gorm.ErrRecordNotFound)
	}
	cp := *r
	return &cp, nil
}

func (m *memoryReminderRepo) FindPending(_ context.Context) ([]*entity.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Reminder
	for _, r := range m.reminders {
		if !r.Completed {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TriggerTime.Before(out[j].TriggerTime) })
	return out, nil
}

func (m *memoryReminderRepo) Create(_ context.Context, reminder *entity.Reminder) (uint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	reminder.ID = m.nextID
	reminder.CreatedAt = time.Now()
	m.nextID++
	cp := *reminder
	m.reminders[reminder.ID] = &cp
	return reminder.ID, nil
}

func (m *memoryReminderRepo) MarkCompleted(_ context.Context, id uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reminders[id]
	if !ok || r.Completed {
		return false, nil
	}
	r.Completed = true
	return true, nil
}

func (m *memoryReminderRepo) CountPending(ctx context.Context) (int64, error) {
	pending, _ := m.FindPending(ctx)
	return int64(len(pending)), nil
}

func (m *memoryReminderRepo) DeleteCompletedBefore(_ context.Context, threshold time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var deleted int64
	for id, r := range m.reminders {
		if r.Completed && r.TriggerTime.Before(threshold) {
			delete(m.reminders, id)
			deleted++
		}
	}
	return deleted, nil
}

// memoryEventRepo is an in-memory EventRepository.
type memoryEventRepo struct {
	mu     sync.Mutex
	nextID uint
	events map[uint]*entity.Event
}

func newMemoryEventRepo() *memoryEventRepo {
	return &memoryEventRepo{nextID: 1, events: map[uint]*entity.Event{}}
}

func (m *memoryEventRepo) FindByID(_ context.Context, id uint) (*entity.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[id]
	if !ok {
		return nil, fmt.Errorf("event with ID %d not found: %w", id, gorm.ErrRecordNotFound)
	}
	cp := *e
	return &cp, nil
}

func (m *memoryEventRepo) FindAll(_ context.Context) ([]*entity.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Event
	for _, e := range m.events {
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (m *memoryEventRepo) FindBetween(ctx context.Context, from, to time.Time) ([]*entity.Event, error) {
	all, _ := m.FindAll(ctx)
	var out []*entity.Event
	for _, e := range all {
		if !e.StartTime.Before(from) && e.StartTime.Before(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memoryEventRepo) Create(_ context.Context, event *entity.Event) (uint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	event.ID = m.nextID
	event.CreatedAt = time.Now()
	m.nextID++
	cp := *event
	m.events[event.ID] = &cp
	return event.ID, nil
}

// recordingDispatcher counts Notify calls and can be told to fail.
type recordingDispatcher struct {
	mu       sync.Mutex
	notified []*entity.Reminder
	failWith error
}

func (d *recordingDispatcher) Notify(_ context.Context, reminder *entity.Reminder) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.notified = append(d.notified, reminder)
	return d.failWith
}

func (d *recordingDispatcher) calls() []*entity.Reminder {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*entity.Reminder(nil), d.notified...)
}

// fakeSchedulerService records arm/disarm calls for ReminderService tests.
type fakeSchedulerService struct {
	mu       sync.Mutex
	armed    []uint
	disarmed []uint
	armErr   error
}

func (f *fakeSchedulerService) ArmReminder(_ context.Context, r *entity.Reminder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.armErr != nil {
		return f.armErr
	}
	f.armed = append(f.armed, r.ID)
	return nil
}

func (f *fakeSchedulerService) DisarmReminder(_ context.Context, id uint) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disarmed = append(f.disarmed, id)
	return true
}

func (f *fakeSchedulerService) InitializeSchedules(context.Context) error { return nil }
func (f *fakeSchedulerService) Start()                                    {}
func (f *fakeSchedulerService) Stop()                                     {}

var errDispatcherBroken = errors.New("dispatcher broken")
