package market

import (
	"context"
	"time"
)

// RefreshJob adapts Service.Refresh to the scheduler's job contract.
type RefreshJob struct {
	svc *Service
}

func NewRefreshJob(svc *Service) *RefreshJob {
	return &RefreshJob{svc: svc}
}

func (j *RefreshJob) Name() string { return "market-refresh" }

func (j *RefreshJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	return j.svc.Refresh(ctx)
}
