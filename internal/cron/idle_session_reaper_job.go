package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/bcf-portal/pkg/logger"
)

const IdleSessionReaperJobName = "idle-session-reaper"

type idleReaper interface {
	ReapIdle(ctx context.Context, ttl time.Duration) (int, error)
}

// IdleSessionReaperJobParams configure the idle session reaper.
type IdleSessionReaperJobParams struct {
	Logger   *logger.Logger
	Registry idleReaper
	IdleTTL  time.Duration
}

type idleSessionReaperJob struct {
	logg     *logger.Logger
	registry idleReaper
	ttl      time.Duration
}

// NewIdleSessionReaperJob builds the job that abandons configuration sessions
// idle for longer than IdleTTL. Batches and history are left alone.
func NewIdleSessionReaperJob(params IdleSessionReaperJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Registry == nil {
		return nil, fmt.Errorf("workspace registry required")
	}
	if params.IdleTTL <= 0 {
		return nil, fmt.Errorf("idle ttl must be positive")
	}
	return &idleSessionReaperJob{
		logg:     params.Logger,
		registry: params.Registry,
		ttl:      params.IdleTTL,
	}, nil
}

func (j *idleSessionReaperJob) Name() string { return IdleSessionReaperJobName }

func (j *idleSessionReaperJob) Run(ctx context.Context) (int, error) {
	reaped, err := j.registry.ReapIdle(ctx, j.ttl)
	if err != nil {
		return reaped, fmt.Errorf("reap idle sessions: %w", err)
	}
	if reaped > 0 {
		j.logg.Info(j.logg.WithField(ctx, "reaped", reaped), "idle sessions abandoned")
	}
	return reaped, nil
}
