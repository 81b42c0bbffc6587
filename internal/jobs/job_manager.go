package jobs

import (
	"fmt"
)

// JobManager starts and stops the background jobs of the yard as one unit.
type JobManager struct {
	overdueOrderJob *OverdueOrderJob
}

func NewJobManager(overdueOrderJob *OverdueOrderJob) *JobManager {
	return &JobManager{overdueOrderJob: overdueOrderJob}
}

// StartAll returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.overdueOrderJob.Start(); err != nil {
		return fmt.Errorf("failed to start overdue order job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.overdueOrderJob.Stop()
}
