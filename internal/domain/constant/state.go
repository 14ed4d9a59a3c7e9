package constant

// ScheduleState describes the lifecycle of an armed reminder inside the
// scheduler engine. Legal transitions are Scheduled→Firing→Completed and
// Scheduled→Cancelled; Firing exists only to guarantee at-most-once dispatch.
type ScheduleState int

const (
	// StateScheduled means the reminder is armed and waiting for its trigger time.
	StateScheduled ScheduleState = iota
	// StateFiring marks the transient window between popping the entry and
	// recording completion.
	StateFiring
	// StateCompleted means the reminder has fired and was marked in the store.
	StateCompleted
	// StateCancelled means the reminder was disarmed before firing.
	StateCancelled
)

func (s ScheduleState) String() string {
	switch s {
	case StateScheduled:
		return "scheduled"
	case StateFiring:
		return "firing"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}
