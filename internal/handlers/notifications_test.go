package handlers

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ponder/ponder-api/internal/database"
	"github.com/ponder/ponder-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backdateDecision(t *testing.T, id uuid.UUID, age time.Duration) {
	t.Helper()
	require.NoError(t, database.DB.Model(&models.Decision{}).
		Where("id = ?", id).
		UpdateColumn("updated_at", time.Now().Add(-age)).Error)
}

func TestSendReflectionReminders(t *testing.T) {
	userID := uuid.New()
	setupTestDB(t)

	stale := models.Decision{
		UserID: userID,
		Title:  "Take the night course",
		Type:   models.DecisionTypeDeep,
		Status: models.DecisionStatusDecided,
		Options: []models.Option{
			{Text: "Enroll", Selected: true},
			{Text: "Wait a semester"},
		},
	}
	require.NoError(t, database.DB.Create(&stale).Error)
	backdateDecision(t, stale.ID, 5*24*time.Hour)

	fresh := models.Decision{
		UserID: userID,
		Title:  "Order takeout",
		Type:   models.DecisionTypeQuick,
		Status: models.DecisionStatusDecided,
		Options: []models.Option{
			{Text: "Thai", Selected: true},
			{Text: "Pizza"},
		},
	}
	require.NoError(t, database.DB.Create(&fresh).Error)

	reflected := models.Decision{
		UserID: userID,
		Title:  "Sell the bike",
		Type:   models.DecisionTypeQuick,
		Status: models.DecisionStatusDecided,
		Options: []models.Option{
			{Text: "Sell", Selected: true},
			{Text: "Keep"},
		},
	}
	require.NoError(t, database.DB.Create(&reflected).Error)
	backdateDecision(t, reflected.ID, 5*24*time.Hour)
	require.NoError(t, database.DB.Create(&models.Reflection{
		UserID:     userID,
		DecisionID: reflected.ID,
		Outcome:    models.OutcomeSatisfied,
	}).Error)

	sendReflectionReminders(userID)

	var reminders []models.Notification
	database.DB.Where("user_id = ? AND type = ?", userID, "reflection_reminder").Find(&reminders)
	require.Len(t, reminders, 1, "only the stale unreflected decision gets a nudge")
	require.NotNil(t, reminders[0].Metadata)
	assert.Contains(t, *reminders[0].Metadata, stale.ID.String())

	// The sweep runs on every dashboard visit; it must not pile up.
	sendReflectionReminders(userID)

	var count int64
	database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", userID, "reflection_reminder").Count(&count)
	assert.EqualValues(t, 1, count)
}
