package handlers

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/ponder/ponder-api/internal/database"
	"github.com/ponder/ponder-api/internal/middleware"
	"github.com/ponder/ponder-api/internal/models"
	"github.com/ponder/ponder-api/internal/services"
)

// GetNotifications returns paginated notifications for the current user
func GetNotifications(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}
	offset := (page - 1) * limit

	var notifications []models.Notification
	database.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&notifications)

	var total int64
	database.DB.Model(&models.Notification{}).Where("user_id = ?", userID).Count(&total)

	var unread int64
	database.DB.Model(&models.Notification{}).Where("user_id = ? AND read = ?", userID, false).Count(&unread)

	return c.JSON(fiber.Map{
		"notifications": notifications,
		"total":         total,
		"unread":        unread,
		"page":          page,
		"limit":         limit,
	})
}

// MarkNotificationRead marks a single notification as read
func MarkNotificationRead(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	notifID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid notification ID",
		})
	}

	result := database.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notifID, userID).
		Update("read", true)

	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Notification not found",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}

// MarkAllRead marks all notifications as read for the current user
func MarkAllRead(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true)

	return c.JSON(fiber.Map{"success": true})
}

// RegisterDeviceToken saves the FCM token for push notifications
func RegisterDeviceToken(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req struct {
		Token string `json:"token"`
	}
	if err := c.BodyParser(&req); err != nil || req.Token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Token is required",
		})
	}

	database.DB.Model(&models.User{}).Where("id = ?", userID).Update("fcm_token", req.Token)

	return c.JSON(fiber.Map{"success": true})
}

// CreateNotification is a helper to create notifications from other handlers.
// The stored row is also pushed to the user's device.
func CreateNotification(userID uuid.UUID, notifType, title, body string, metadata map[string]interface{}) {
	notif := models.Notification{
		UserID: userID,
		Type:   notifType,
		Title:  title,
		Body:   body,
	}

	if metadata != nil {
		if data, err := json.Marshal(metadata); err == nil {
			s := string(data)
			notif.Metadata = &s
		}
	}

	database.DB.Create(&notif)

	if services.Push != nil {
		go services.Push.SendNotification(&notif)
	}
}

// reflectionReminderAfter is how long a decided decision can sit without a
// reflection before the user gets nudged.
const reflectionReminderAfter = 3 * 24 * time.Hour

// sendReflectionReminders emits one reflection_reminder per decided decision
// that has gone stale without a reflection. Already-reminded decisions are
// skipped, so repeated sweeps are idempotent.
func sendReflectionReminders(userID uuid.UUID) {
	cutoff := time.Now().Add(-reflectionReminderAfter)

	var decisions []models.Decision
	database.DB.Where("user_id = ? AND status = ? AND updated_at < ?",
		userID, models.DecisionStatusDecided, cutoff).Find(&decisions)

	for _, d := range decisions {
		var reflected int64
		database.DB.Model(&models.Reflection{}).Where("decision_id = ?", d.ID).Count(&reflected)
		if reflected > 0 {
			continue
		}

		var reminded int64
		database.DB.Model(&models.Notification{}).
			Where("user_id = ? AND type = ? AND metadata LIKE ?",
				userID, "reflection_reminder", "%"+d.ID.String()+"%").
			Count(&reminded)
		if reminded > 0 {
			continue
		}

		CreateNotification(userID, "reflection_reminder",
			"How did it go?",
			"You decided \""+d.Title+"\" a few days ago. Take a minute to reflect",
			map[string]interface{}{"decisionId": d.ID.String()},
		)
	}
}
