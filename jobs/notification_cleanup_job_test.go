package jobs

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Suraj8267/Event-Aggregator-for-College-Students/database"
	"github.com/Suraj8267/Event-Aggregator-for-College-Students/models"
)

var dbSeq int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:cleanupdb%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	user := models.User{
		Username:   "frank",
		Email:      "frank@college.edu",
		Password:   "hashed",
		Department: "CS",
		Year:       "2",
	}
	require.NoError(t, db.Create(&user).Error)

	return db
}

func seedNotification(t *testing.T, db *gorm.DB, read bool, age time.Duration) uint {
	t.Helper()

	notification := models.Notification{
		UserID:  1,
		Title:   "Event Reminder",
		Message: "Starts soon.",
		IsRead:  read,
		Type:    models.NotificationTypeInfo,
	}
	require.NoError(t, db.Create(&notification).Error)
	require.NoError(t, db.Model(&notification).
		UpdateColumn("created_at", time.Now().UTC().Add(-age)).Error)

	return notification.ID
}

func TestCleanupPrunesOldReadNotifications(t *testing.T) {
	db := newTestDB(t)

	oldRead := seedNotification(t, db, true, 48*time.Hour)
	oldUnread := seedNotification(t, db, false, 48*time.Hour)
	freshRead := seedNotification(t, db, true, time.Hour)

	job := NewNotificationCleanupJob(db, time.Hour, 24*time.Hour)
	job.cleanup()

	var remaining []models.Notification
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 2)

	ids := []uint{remaining[0].ID, remaining[1].ID}
	assert.NotContains(t, ids, oldRead)
	assert.Contains(t, ids, oldUnread)
	assert.Contains(t, ids, freshRead)
}

func TestStartAndStop(t *testing.T) {
	db := newTestDB(t)
	seedNotification(t, db, true, 48*time.Hour)

	job := NewNotificationCleanupJob(db, 10*time.Millisecond, 24*time.Hour)
	job.Start()

	assert.Eventually(t, func() bool {
		var count int64
		db.Model(&models.Notification{}).Count(&count)
		return count == 0
	}, time.Second, 10*time.Millisecond)

	job.Stop()
}
