// Package task runs the periodic maintenance jobs: sweeping abandoned
// staging directories and expiring old notifications. There is
// deliberately no job that resets notes stuck in the processing state;
// surfacing those is left to the client until a proper watchdog design
// exists.
package task

import (
	"os"
	"path/filepath"
	"time"

	"github.com/micbed86/FancyNote-sub000/internal/domain"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Config drives the scheduler.
type Config struct {
	Enabled       bool
	TempSweepSpec string
	TempPath      string
	TempMaxAge    time.Duration

	CleanupSpec        string
	NotificationMaxAge time.Duration
}

// Scheduler owns the cron instance.
type Scheduler struct {
	config Config
	cron   *cron.Cron
	logger *zap.Logger

	notificationRepo domain.NotificationRepository
}

// NewScheduler registers the maintenance jobs; nothing runs until
// Start.
func NewScheduler(cfg Config, notificationRepo domain.NotificationRepository, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Scheduler{
		config:           cfg,
		cron:             cron.New(cron.WithSeconds()),
		logger:           logger,
		notificationRepo: notificationRepo,
	}

	if cfg.TempSweepSpec != "" {
		if _, err := s.cron.AddFunc(cfg.TempSweepSpec, s.sweepTemp); err != nil {
			logger.Error("task: bad temp-sweep spec", zap.String("spec", cfg.TempSweepSpec), zap.Error(err))
		}
	}
	if cfg.CleanupSpec != "" {
		if _, err := s.cron.AddFunc(cfg.CleanupSpec, s.cleanupNotifications); err != nil {
			logger.Error("task: bad notification-cleanup spec", zap.String("spec", cfg.CleanupSpec), zap.Error(err))
		}
	}
	return s
}

func (s *Scheduler) Start() {
	if !s.config.Enabled {
		return
	}
	s.cron.Start()
	s.logger.Info("maintenance scheduler started")
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// sweepTemp removes staging directories older than the configured age.
// Normally the pipeline cleans up after itself; this catches leftovers
// from crashed processes.
func (s *Scheduler) sweepTemp() {
	s.SweepTempOnce(time.Now())
}

// SweepTempOnce is the sweep body, split out for tests.
func (s *Scheduler) SweepTempOnce(now time.Time) {
	if s.config.TempPath == "" {
		return
	}
	maxAge := s.config.TempMaxAge
	if maxAge <= 0 {
		maxAge = 24 * time.Hour
	}

	entries, err := os.ReadDir(s.config.TempPath)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("task: temp sweep read err", zap.Error(err))
		}
		return
	}

	removed := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if now.Sub(info.ModTime()) < maxAge {
			continue
		}
		full := filepath.Join(s.config.TempPath, entry.Name())
		if err := os.RemoveAll(full); err != nil {
			s.logger.Warn("task: temp sweep remove err", zap.String("dir", full), zap.Error(err))
			continue
		}
		removed++
	}
	if removed > 0 {
		s.logger.Info("task: temp sweep done", zap.Int("removed", removed))
	}
}

// cleanupNotifications expires notifications past their retention age.
func (s *Scheduler) cleanupNotifications() {
	maxAge := s.config.NotificationMaxAge
	if maxAge <= 0 {
		maxAge = 30 * 24 * time.Hour
	}
	cutoff := time.Now().Add(-maxAge).Unix()

	removed, err := s.notificationRepo.DeleteOlderThan(cutoff)
	if err != nil {
		s.logger.Warn("task: notification cleanup err", zap.Error(err))
		return
	}
	if removed > 0 {
		s.logger.Info("task: notification cleanup done", zap.Int64("removed", removed))
	}
}
