package jobs

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Suraj8267/Event-Aggregator-for-College-Students/services"
)

// NotificationCleanupJob periodically prunes read notifications past the
// retention window. It is maintenance-only; no request path depends on it.
type NotificationCleanupJob struct {
	notifications *services.NotificationService
	retention     time.Duration
	ticker        *time.Ticker
	done          chan bool
}

func NewNotificationCleanupJob(db *gorm.DB, interval, retention time.Duration) *NotificationCleanupJob {
	return &NotificationCleanupJob{
		notifications: services.NewNotificationService(db),
		retention:     retention,
		ticker:        time.NewTicker(interval),
		done:          make(chan bool),
	}
}

func (j *NotificationCleanupJob) Start() {
	zap.L().Info("notification cleanup job started", zap.Duration("retention", j.retention))

	go func() {
		j.cleanup()

		for {
			select {
			case <-j.ticker.C:
				j.cleanup()
			case <-j.done:
				return
			}
		}
	}()
}

func (j *NotificationCleanupJob) Stop() {
	j.ticker.Stop()
	j.done <- true
	zap.L().Info("notification cleanup job stopped")
}

func (j *NotificationCleanupJob) cleanup() {
	pruned, err := j.notifications.PruneRead(j.retention)
	if err != nil {
		zap.L().Error("notification cleanup failed", zap.Error(err))
		return
	}

	if pruned > 0 {
		zap.L().Info("pruned read notifications", zap.Int64("count", pruned))
	}
}
