// internal/scheduler/backup_scheduler.go
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vendordesk/backend/internal/services"
)

// BackupCreator is the slice of the backup gateway the scheduler needs.
type BackupCreator interface {
	CreateBackup(ctx context.Context) (*services.BackupResult, error)
}

// BackupScheduler fires automatic backup creation on a fixed interval
// (every 15 days in production). It shares no state with request handlers
// beyond the gateway's external calls; failures are logged and never fatal.
type BackupScheduler struct {
	backups  BackupCreator
	interval time.Duration

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

func NewBackupScheduler(backups BackupCreator, interval time.Duration) *BackupScheduler {
	return &BackupScheduler{
		backups:  backups,
		interval: interval,
	}
}

func (s *BackupScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return
	}
	s.isRunning = true

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(1)
	go s.run(ctx)

	logrus.WithField("interval", s.interval.String()).Info("Backup scheduler started")
}

func (s *BackupScheduler) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()

	logrus.Info("Backup scheduler stopped")
}

func (s *BackupScheduler) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *BackupScheduler) runOnce(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	result, err := s.backups.CreateBackup(runCtx)
	if err != nil {
		logrus.WithError(err).Error("Automatic backup failed")
		return
	}

	logrus.WithFields(logrus.Fields{
		"backup_id": result.BackupID,
		"timestamp": result.Timestamp,
	}).Info("Automatic backup completed successfully")
}
