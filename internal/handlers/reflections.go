package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/ponder/ponder-api/internal/analytics"
	"github.com/ponder/ponder-api/internal/database"
	"github.com/ponder/ponder-api/internal/middleware"
	"github.com/ponder/ponder-api/internal/models"
	"gorm.io/gorm/clause"
)

func GetReflection(c *fiber.Ctx) error {
	decision, fiberErr := findDecision(c)
	if decision == nil {
		return fiberErr
	}

	var reflection models.Reflection
	if err := database.DB.Where("decision_id = ?", decision.ID).First(&reflection).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No reflection found for this decision",
		})
	}

	return c.JSON(reflection)
}

func UpsertReflection(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	decision, fiberErr := findDecision(c)
	if decision == nil {
		return fiberErr
	}

	var req models.UpsertReflectionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if !models.ValidOutcome(req.Outcome) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Outcome must be one of: very_satisfied, satisfied, neutral, unsatisfied, very_unsatisfied",
		})
	}

	var reflection models.Reflection
	err := database.DB.Where("decision_id = ?", decision.ID).First(&reflection).Error
	if err != nil {
		reflection = models.Reflection{
			UserID:           userID,
			DecisionID:       decision.ID,
			DecisionCategory: decision.Category,
		}
	}

	reflection.Outcome = req.Outcome
	if req.WouldRepeat != nil {
		reflection.WouldRepeat = *req.WouldRepeat
	}
	if req.Learnings != nil {
		reflection.Learnings = req.Learnings
	}

	if err := database.DB.Save(&reflection).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save reflection",
		})
	}

	if decision.Status != models.DecisionStatusReflected {
		database.DB.Model(decision).Update("status", models.DecisionStatusReflected)
	}

	recomputeReflectionStats(userID)

	return c.JSON(reflection)
}

func DeleteReflection(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	decision, fiberErr := findDecision(c)
	if decision == nil {
		return fiberErr
	}

	var reflection models.Reflection
	if err := database.DB.Where("decision_id = ?", decision.ID).First(&reflection).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No reflection found for this decision",
		})
	}

	if err := database.DB.Delete(&reflection).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete reflection",
		})
	}

	if decision.Status == models.DecisionStatusReflected {
		database.DB.Model(decision).Update("status", models.DecisionStatusDecided)
	}

	recomputeReflectionStats(userID)

	return c.JSON(fiber.Map{"success": true})
}

// GetReflectionStats returns the cached per-user stats, computing and
// persisting them if the cache row doesn't exist yet.
func GetReflectionStats(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var stats models.ReflectionStats
	if err := database.DB.First(&stats, "user_id = ?", userID).Error; err != nil {
		stats = recomputeReflectionStats(userID)
	}

	return c.JSON(stats)
}

// recomputeReflectionStats rebuilds the user's ReflectionStats cache from the
// full reflection history and overwrites the row wholesale. Concurrent writers
// race with last-write-wins semantics; there is no incremental update path.
func recomputeReflectionStats(userID uuid.UUID) models.ReflectionStats {
	var reflections []models.Reflection
	database.DB.Where("user_id = ?", userID).Find(&reflections)

	stats := analytics.ComputeStats(reflections)
	stats.UserID = userID

	database.DB.Clauses(clause.OnConflict{UpdateAll: true}).Create(&stats)

	return stats
}
