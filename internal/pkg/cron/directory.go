package cron

import (
	"context"
	"time"

	"github.com/elmallah-hr/attendance-backend-go/internal/domain/attendance"
)

const RefreshDirectoryJob = "refresh_employee_directory"

type DirectoryJobs struct {
	directory attendance.DirectoryRefresher
	interval  time.Duration
}

func NewDirectoryJobs(directory attendance.DirectoryRefresher, interval time.Duration) *DirectoryJobs {
	return &DirectoryJobs{
		directory: directory,
		interval:  interval,
	}
}

func (j *DirectoryJobs) RegisterJobs(scheduler *Scheduler) error {
	return scheduler.AddJob(RefreshDirectoryJob, j.interval, j.RefreshDirectory)
}

// RefreshDirectory reloads employee names so new hires show up without a restart.
func (j *DirectoryJobs) RefreshDirectory(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	return j.directory.Refresh(ctx)
}
