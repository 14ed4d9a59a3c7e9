// Package dispatch defines the notification boundary. The scheduling core
// is agnostic to rendering: anything implementing AlertDispatcher can be
// registered, and the core invokes it at most once per fired reminder.
package dispatch

import (
	"context"

	"agenda/internal/domain/entity"
)

// AlertDispatcher renders a fired reminder to the user. Notify may be slow
// (speech synthesis, push delivery); the caller bounds it with the context
// deadline and must never invoke it from the timing loop itself.
type AlertDispatcher interface {
	Notify(ctx context.Context, reminder *entity.Reminder) error
}
