package dispatch

import (
	"context"
	"fmt"
	"io"
	"os"

	"agenda/internal/domain/entity"
	"agenda/internal/pkg/logger"
)

// ConsoleDispatcher prints fired reminders to a writer, stdout by default.
type ConsoleDispatcher struct {
	out io.Writer
}

// NewConsoleDispatcher creates a dispatcher writing to stdout.
func NewConsoleDispatcher() *ConsoleDispatcher {
	return &ConsoleDispatcher{out: os.Stdout}
}

// NewConsoleDispatcherTo creates a dispatcher writing to w.
func NewConsoleDispatcherTo(w io.Writer) *ConsoleDispatcher {
	return &ConsoleDispatcher{out: w}
}

// Notify prints the alert.
func (d *ConsoleDispatcher) Notify(_ context.Context, reminder *entity.Reminder) error {
	if _, err := fmt.Fprintf(d.out, "\n🔔 REMINDER: %s\n", reminder.Title); err != nil {
		return err
	}
	if reminder.Description != "" {
		if _, err := fmt.Fprintf(d.out, "   %s\n", reminder.Description); err != nil {
			return err
		}
	}
	return nil
}

// LogDispatcher records fired reminders on the application logger. Useful
// as a fallback when no interactive surface is attached.
type LogDispatcher struct {
	log logger.Logger
}

// NewLogDispatcher creates a dispatcher backed by the given logger.
func NewLogDispatcher(log logger.Logger) *LogDispatcher {
	return &LogDispatcher{log: log}
}

// Notify logs the alert.
func (d *LogDispatcher) Notify(_ context.Context, reminder *entity.Reminder) error {
	d.log.Info(fmt.Sprintf("REMINDER: %s - %s", reminder.Title, reminder.Description))
	return nil
}
