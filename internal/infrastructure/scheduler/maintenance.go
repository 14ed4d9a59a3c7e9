package scheduler

import (
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	"agenda/internal/pkg/logger"
)

// Maintenance runs recurring housekeeping jobs (e.g. the retention sweep)
// on a cron schedule. One-shot reminder firing deliberately does not go
// through cron; that is the Engine's job.
type Maintenance struct {
	cron *cron.Cron
	log  logger.Logger
	mu   sync.Mutex
}

// NewMaintenance creates a cron runner. It does not start until Start is called.
func NewMaintenance(log logger.Logger) *Maintenance {
	return &Maintenance{
		cron: cron.New(),
		log:  log,
	}
}

// AddJob registers a recurring job. spec follows the standard five-field
// cron format (e.g. "0 4 * * *" for daily at 04:00).
func (m *Maintenance) AddJob(name, spec string, cmd func()) (cron.EntryID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, err := m.cron.AddFunc(spec, cmd)
	if err != nil {
		m.log.Error(fmt.Sprintf("Failed to add maintenance job %q", name), err)
		return 0, fmt.Errorf("failed to add maintenance job %q: %w", name, err)
	}
	m.log.Info(fmt.Sprintf("Added maintenance job %q (ID %d, spec %q)", name, id, spec))
	return id, nil
}

// Start begins running registered jobs.
func (m *Maintenance) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cron.Start()
	m.log.Info("Maintenance cron started.")
}

// Stop stops the cron runner and waits for running jobs to complete.
func (m *Maintenance) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cron != nil {
		ctx := m.cron.Stop()
		<-ctx.Done()
		m.log.Info("Maintenance cron stopped.")
	}
}
