package generator

import (
	"context"
	"time"
)

// refreshTimeout bounds one whole refresh cycle (at most two upstream
// fetches plus persistence).
const refreshTimeout = 30 * time.Second

// RefreshJob periodically tops up the draw archive and recalibrates
// the engine.
type RefreshJob struct {
	svc *Service
}

// NewRefreshJob creates the scheduled refresh job.
func NewRefreshJob(svc *Service) *RefreshJob {
	return &RefreshJob{svc: svc}
}

// Name returns the job name
func (j *RefreshJob) Name() string { return "history:refresh" }

// Run executes one refresh cycle
func (j *RefreshJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	j.svc.Refresh(ctx)
	return nil
}
