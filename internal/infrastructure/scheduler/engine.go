// Package scheduler holds the in-process timing machinery: a time-ordered
// engine firing one-shot reminders, and a cron-backed maintenance runner for
// recurring housekeeping.
package scheduler

import (
	"container/heap"
	"fmt"
	"sync"
	"time"

	"agenda/internal/pkg/logger"
)

// idlePoll bounds the sleep when the queue is empty; a wake signal
// interrupts it long before that in practice.
const idlePoll = time.Hour

// FireFunc is invoked by the run loop for each due reminder. It must be
// quick; slow work (notification rendering) belongs on the consumer side of
// a hand-off channel.
type FireFunc func(id uint)

// Engine owns a min-heap of armed reminders keyed by trigger time and a
// single background loop that fires due entries. Producers only touch the
// heap under the mutex and signal the loop through the wake channel; the
// loop is the only goroutine that pops. The heap is a rebuildable cache of
// the store's pending set, never persisted itself.
type Engine struct {
	log  logger.Logger
	fire FireFunc

	mu      sync.Mutex
	entries entryHeap
	armed   map[uint]*entry

	wake   chan struct{}
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewEngine creates an engine that calls fire for each due reminder id.
func NewEngine(fire FireFunc, log logger.Logger) *Engine {
	return &Engine{
		log:   log,
		fire:  fire,
		armed: make(map[uint]*entry),
		wake:  make(chan struct{}, 1),
	}
}

// Start launches the run loop. Starting a started engine is a no-op.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopCh != nil {
		return
	}
	e.stopCh = make(chan struct{})
	e.doneCh = make(chan struct{})
	go e.run(e.stopCh, e.doneCh)
	e.log.Info("Scheduler engine started.")
}

// Stop signals the run loop and waits for it to exit. Armed entries stay in
// the heap; they are rebuilt from the store on the next start anyway.
func (e *Engine) Stop() {
	e.mu.Lock()
	if e.stopCh == nil {
		e.mu.Unlock()
		return
	}
	stopCh, doneCh := e.stopCh, e.doneCh
	e.stopCh = nil
	e.doneCh = nil
	e.mu.Unlock()

	close(stopCh)
	<-doneCh
	e.log.Info("Scheduler engine stopped.")
}

// Arm inserts a reminder into the queue. A trigger time at or before now is
// kept as immediately due rather than discarded, which is what makes missed
// reminders fire after recovery. Re-arming an armed id updates its time.
func (e *Engine) Arm(id uint, at time.Time) {
	e.mu.Lock()
	if existing, ok := e.armed[id]; ok {
		existing.at = at
		heap.Fix(&e.entries, existing.index)
	} else {
		ent := &entry{id: id, at: at}
		heap.Push(&e.entries, ent)
		e.armed[id] = ent
	}
	e.mu.Unlock()

	e.log.Debug(fmt.Sprintf("Armed reminder %d for %v", id, at))
	e.signal()
}

// Cancel removes an armed entry. Best-effort: once the loop has popped the
// entry the cancellation reports false and the reminder still fires.
func (e *Engine) Cancel(id uint) bool {
	e.mu.Lock()
	ent, ok := e.armed[id]
	if ok {
		heap.Remove(&e.entries, ent.index)
		delete(e.armed, id)
	}
	e.mu.Unlock()

	if ok {
		e.log.Debug(fmt.Sprintf("Cancelled armed reminder %d", id))
		e.signal()
	}
	return ok
}

// Len reports how many reminders are currently armed.
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.entries)
}

// signal wakes the run loop without blocking; one pending wake is enough.
func (e *Engine) signal() {
	select {
	case e.wake <- struct{}{}:
	default:
	}
}

// run sleeps until the earliest trigger time, pops everything due, and
// fires each popped entry in ascending trigger order. Fire callbacks happen
// outside the mutex so producers are never blocked by a firing batch.
func (e *Engine) run(stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)
	for {
		now := time.Now()

		e.mu.Lock()
		var due []*entry
		for e.entries.Len() > 0 && !e.entries[0].at.After(now) {
			ent := heap.Pop(&e.entries).(*entry)
			delete(e.armed, ent.id)
			due = append(due, ent)
		}
		wait := idlePoll
		if e.entries.Len() > 0 {
			wait = time.Until(e.entries[0].at)
		}
		e.mu.Unlock()

		for _, ent := range due {
			e.fire(ent.id)
		}
		if len(due) > 0 {
			// Firing took time; recompute the due set before sleeping.
			continue
		}

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-e.wake:
			timer.Stop()
		case <-stopCh:
			timer.Stop()
			return
		}
	}
}
