package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/lanovatechnologie-a11y/Lotato/internal/services"
	"github.com/lanovatechnologie-a11y/Lotato/pkg/logger"
)

// Scheduler runs the periodic maintenance jobs. Currently one: the nightly
// sweep that deactivates tenants whose subscription has expired. Counter
// resets need no job; today counters reset lazily on the next write.
type Scheduler struct {
	cron    *cron.Cron
	tenants *services.TenantService
}

func New(tenants *services.TenantService) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		tenants: tenants,
	}
}

// Start registers the jobs and launches the cron loop.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc("@daily", s.sweepExpiredSubscriptions)
	if err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts the cron loop, waiting for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) sweepExpiredSubscriptions() {
	count, err := s.tenants.DeactivateExpired(time.Now())
	if err != nil {
		logger.Log.Error("subscription sweep failed", zap.Error(err))
		return
	}
	if count > 0 {
		logger.Log.Info("deactivated expired subsystems", zap.Int64("count", count))
	}
}
