package handlers

import (
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/ponder/ponder-api/internal/analytics"
	"github.com/ponder/ponder-api/internal/database"
	"github.com/ponder/ponder-api/internal/middleware"
	"github.com/ponder/ponder-api/internal/models"
)

// TimelineEntry represents a single item in the dashboard journal.
type TimelineEntry struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"` // decision_created, decision_decided, reflection_added
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// GetDashboard returns the user's streak, the last 7 days of activity
// bucketed by decision type, the cached reflection stats, and a recent
// timeline. Streak and buckets are recomputed on every call; only the
// reflection stats come from the persisted cache.
func GetDashboard(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	now := time.Now()

	// Dashboard visits double as the reminder sweep: nudge about decided
	// decisions that never got a reflection.
	sendReflectionReminders(userID)

	var decisions []models.Decision
	database.DB.Where("user_id = ?", userID).Find(&decisions)

	var reflections []models.Reflection
	database.DB.Where("user_id = ?", userID).Order("created_at DESC").Limit(30).Find(&reflections)

	var stats models.ReflectionStats
	if err := database.DB.First(&stats, "user_id = ?", userID).Error; err != nil {
		stats = recomputeReflectionStats(userID)
	}

	streak := analytics.ComputeStreak(decisions, now)
	week := analytics.BucketByDay(decisions, now, 7)

	// Build the recent timeline.
	var entries []TimelineEntry
	for _, d := range decisions {
		entryType := "decision_created"
		if d.Status != models.DecisionStatusDraft {
			entryType = "decision_decided"
		}
		content := ""
		if d.Recommendation != nil {
			content = *d.Recommendation
		}
		entries = append(entries, TimelineEntry{
			ID:        "decision_" + d.ID.String(),
			Type:      entryType,
			Title:     d.Title,
			Category:  d.Category,
			Content:   content,
			Timestamp: d.CreatedAt,
		})
	}

	decisionTitle := map[string]string{}
	decisionCategory := map[string]string{}
	for _, d := range decisions {
		decisionTitle[d.ID.String()] = d.Title
		decisionCategory[d.ID.String()] = d.Category
	}
	for _, r := range reflections {
		content := ""
		if len(r.Learnings) > 0 {
			content = r.Learnings[0].Description
		}
		entries = append(entries, TimelineEntry{
			ID:        "reflection_" + r.ID.String(),
			Type:      "reflection_added",
			Title:     decisionTitle[r.DecisionID.String()],
			Category:  decisionCategory[r.DecisionID.String()],
			Content:   content,
			Timestamp: r.CreatedAt,
		})
	}

	// Sort newest first.
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
	if len(entries) > 20 {
		entries = entries[:20]
	}
	if entries == nil {
		entries = []TimelineEntry{}
	}

	return c.JSON(fiber.Map{
		"streak": streak,
		"week":   week,
		"stats":  stats,
		"recent": entries,
	})
}
