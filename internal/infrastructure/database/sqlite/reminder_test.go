package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"agenda/internal/domain/entity"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "agenda_test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	return db
}

func TestReminderRepositoryCreateAndFindPending(t *testing.T) {
	repo := NewReminderRepository(openTestDB(t))
	ctx := context.Background()

	base := time.Now().Add(time.Hour).Truncate(time.Second)
	// Insert out of order to verify the pending query sorts ascending.
	for _, offset := range []time.Duration{30 * time.Minute, 5 * time.Minute, 90 * time.Minute} {
		id, err := repo.Create(ctx, &entity.Reminder{
			Title:       "call mom",
			TriggerTime: base.Add(offset),
		})
		require.NoError(t, err)
		assert.NotZero(t, id)
	}

	pending, err := repo.FindPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 3)
	for i := 1; i < len(pending); i++ {
		assert.False(t, pending[i].TriggerTime.Before(pending[i-1].TriggerTime),
			"pending reminders must be sorted ascending by trigger time")
	}
	for _, r := range pending {
		assert.False(t, r.Completed)
	}
}

func TestReminderRepositoryMarkCompleted(t *testing.T) {
	repo := NewReminderRepository(openTestDB(t))
	ctx := context.Background()

	id, err := repo.Create(ctx, &entity.Reminder{
		Title:       "take medicine",
		TriggerTime: time.Now().Add(time.Minute),
	})
	require.NoError(t, err)

	transitioned, err := repo.MarkCompleted(ctx, id)
	require.NoError(t, err)
	assert.True(t, transitioned, "first mark performs the transition")

	transitioned, err = repo.MarkCompleted(ctx, id)
	require.NoError(t, err)
	assert.False(t, transitioned, "second mark is a no-op")

	// Unknown id is a no-op as well, not an error.
	transitioned, err = repo.MarkCompleted(ctx, 9999)
	require.NoError(t, err)
	assert.False(t, transitioned)

	pending, err := repo.FindPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending, "completed reminders leave the pending set")

	reminder, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, reminder.Completed, "the row itself is retained")
}

func TestReminderRepositoryCountPending(t *testing.T) {
	repo := NewReminderRepository(openTestDB(t))
	ctx := context.Background()

	id, err := repo.Create(ctx, &entity.Reminder{Title: "a", TriggerTime: time.Now().Add(time.Minute)})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &entity.Reminder{Title: "b", TriggerTime: time.Now().Add(2 * time.Minute)})
	require.NoError(t, err)

	count, err := repo.CountPending(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	_, err = repo.MarkCompleted(ctx, id)
	require.NoError(t, err)

	count, err = repo.CountPending(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestReminderRepositoryDeleteCompletedBefore(t *testing.T) {
	repo := NewReminderRepository(openTestDB(t))
	ctx := context.Background()

	old := time.Now().Add(-48 * time.Hour)
	oldID, err := repo.Create(ctx, &entity.Reminder{Title: "old fired", TriggerTime: old})
	require.NoError(t, err)
	_, err = repo.MarkCompleted(ctx, oldID)
	require.NoError(t, err)

	// Still pending, equally old. The sweep must leave it alone.
	staleID, err := repo.Create(ctx, &entity.Reminder{Title: "old pending", TriggerTime: old})
	require.NoError(t, err)

	recentID, err := repo.Create(ctx, &entity.Reminder{Title: "recent fired", TriggerTime: time.Now()})
	require.NoError(t, err)
	_, err = repo.MarkCompleted(ctx, recentID)
	require.NoError(t, err)

	deleted, err := repo.DeleteCompletedBefore(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	_, err = repo.FindByID(ctx, oldID)
	assert.Error(t, err)
	_, err = repo.FindByID(ctx, staleID)
	assert.NoError(t, err)
	_, err = repo.FindByID(ctx, recentID)
	assert.NoError(t, err)
}
