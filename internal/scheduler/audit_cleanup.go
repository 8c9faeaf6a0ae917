// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/libsysapp/libsys-server/internal/audit"
	"github.com/libsysapp/libsys-server/internal/config"
)

// AuditCleanupScheduler prunes audit files older than the retention window.
type AuditCleanupScheduler struct {
	auditor *audit.Auditor
	cfg     config.Audit

	cron      *cron.Cron
	mu        sync.Mutex
	isRunning bool
}

// NewAuditCleanupScheduler creates a new scheduler instance.
func NewAuditCleanupScheduler(auditor *audit.Auditor, cfg config.Audit) *AuditCleanupScheduler {
	return &AuditCleanupScheduler{
		auditor: auditor,
		cfg:     cfg,
		cron:    cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if audit retention is configured.
func (s *AuditCleanupScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	if s.cfg.RetentionDays <= 0 {
		log.Printf("Audit cleanup scheduler: retention disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.cfg.CleanupSchedule, s.runCleanup); err != nil {
		return fmt.Errorf("failed to schedule audit cleanup: %w", err)
	}

	s.cron.Start()
	s.isRunning = true

	log.Printf("Audit cleanup scheduler: started with schedule '%s', retention %d days",
		s.cfg.CleanupSchedule, s.cfg.RetentionDays)
	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job to finish.
func (s *AuditCleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	log.Printf("Audit cleanup scheduler: stopped")
}

func (s *AuditCleanupScheduler) runCleanup() {
	cutoff := time.Now().AddDate(0, 0, -s.cfg.RetentionDays)
	removed, err := s.auditor.RemoveOlderThan(cutoff)
	if err != nil {
		log.Printf("Audit cleanup failed: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("Audit cleanup: removed %d events older than %s", removed, cutoff.Format("2006-01-02"))
	}
}
