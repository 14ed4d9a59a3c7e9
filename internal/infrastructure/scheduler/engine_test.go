package scheduler

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agenda/internal/pkg/logger"
)

// fireRecorder collects fired ids and lets tests wait for a count.
type fireRecorder struct {
	mu    sync.Mutex
	fired []uint
}

func (f *fireRecorder) fire(id uint) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fired = append(f.fired, id)
}

func (f *fireRecorder) snapshot() []uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]uint(nil), f.fired...)
}

func (f *fireRecorder) waitFor(t *testing.T, n int, timeout time.Duration) []uint {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if got := f.snapshot(); len(got) >= n {
			return got
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d firings, got %v", n, f.snapshot())
	return nil
}

func TestEngineFiresDueReminder(t *testing.T) {
	rec := &fireRecorder{}
	eng := NewEngine(rec.fire, logger.Nop())
	eng.Start()
	defer eng.Stop()

	eng.Arm(1, time.Now().Add(20*time.Millisecond))
	fired := rec.waitFor(t, 1, time.Second)
	assert.Equal(t, []uint{1}, fired)
	assert.Equal(t, 0, eng.Len())
}

func TestEngineFiresPastDueImmediately(t *testing.T) {
	rec := &fireRecorder{}
	eng := NewEngine(rec.fire, logger.Nop())
	eng.Start()
	defer eng.Stop()

	// Five minutes overdue, as after a crash. Must fire, not be discarded.
	eng.Arm(7, time.Now().Add(-5*time.Minute))
	fired := rec.waitFor(t, 1, time.Second)
	assert.Equal(t, []uint{7}, fired)
}

func TestEngineFiresInTriggerOrder(t *testing.T) {
	rec := &fireRecorder{}
	eng := NewEngine(rec.fire, logger.Nop())

	// Arm before Start, out of order, all already due: the recovery burst.
	now := time.Now()
	eng.Arm(3, now.Add(-time.Minute))
	eng.Arm(1, now.Add(-3*time.Minute))
	eng.Arm(2, now.Add(-2*time.Minute))

	eng.Start()
	defer eng.Stop()

	fired := rec.waitFor(t, 3, time.Second)
	assert.Equal(t, []uint{1, 2, 3}, fired, "burst fires in ascending trigger order")
}

func TestEngineWakesForEarlierArm(t *testing.T) {
	rec := &fireRecorder{}
	eng := NewEngine(rec.fire, logger.Nop())
	eng.Start()
	defer eng.Stop()

	// The loop is asleep waiting for a far-future entry; a nearer arm must
	// interrupt that sleep.
	eng.Arm(1, time.Now().Add(time.Hour))
	eng.Arm(2, time.Now().Add(30*time.Millisecond))

	fired := rec.waitFor(t, 1, time.Second)
	assert.Equal(t, []uint{2}, fired)
	assert.Equal(t, 1, eng.Len())
}

func TestEngineCancel(t *testing.T) {
	rec := &fireRecorder{}
	eng := NewEngine(rec.fire, logger.Nop())
	eng.Start()
	defer eng.Stop()

	eng.Arm(1, time.Now().Add(time.Hour))
	require.Equal(t, 1, eng.Len())

	assert.True(t, eng.Cancel(1))
	assert.Equal(t, 0, eng.Len())
	assert.False(t, eng.Cancel(1), "cancelling twice reports no armed entry")
	assert.False(t, eng.Cancel(99), "cancelling an unknown id is a no-op")
	assert.Empty(t, rec.snapshot())
}

func TestEngineRearmUpdatesTriggerTime(t *testing.T) {
	rec := &fireRecorder{}
	eng := NewEngine(rec.fire, logger.Nop())
	eng.Start()
	defer eng.Stop()

	eng.Arm(1, time.Now().Add(time.Hour))
	eng.Arm(1, time.Now().Add(20*time.Millisecond))
	require.Equal(t, 1, eng.Len())

	fired := rec.waitFor(t, 1, time.Second)
	assert.Equal(t, []uint{1}, fired, "re-armed entry fires once at the new time")
}

func TestEngineStartStopIdempotent(t *testing.T) {
	eng := NewEngine(func(uint) {}, logger.Nop())
	eng.Start()
	eng.Start()
	eng.Stop()
	eng.Stop()

	// Restart works after a stop.
	rec := &fireRecorder{}
	eng2 := NewEngine(rec.fire, logger.Nop())
	eng2.Start()
	eng2.Stop()
	eng2.Start()
	defer eng2.Stop()
	eng2.Arm(1, time.Now())
	rec.waitFor(t, 1, time.Second)
}
