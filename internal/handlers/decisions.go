package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/ponder/ponder-api/internal/analytics"
	"github.com/ponder/ponder-api/internal/database"
	"github.com/ponder/ponder-api/internal/middleware"
	"github.com/ponder/ponder-api/internal/models"
	"github.com/ponder/ponder-api/internal/services"
	"gorm.io/gorm"
)

// findDecision loads a decision by the :id param and verifies ownership.
func findDecision(c *fiber.Ctx) (*models.Decision, error) {
	userID := middleware.GetUserID(c)
	decisionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid decision ID",
		})
	}

	var decision models.Decision
	if err := database.DB.Preload("Options").Preload("Reflection").
		Where("id = ? AND user_id = ?", decisionID, userID).
		First(&decision).Error; err != nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Decision not found",
		})
	}

	return &decision, nil
}

// GetDecisions returns the user's decisions, newest first, with optional
// category/type/status filters
func GetDecisions(c *fiber.Ctx) error {
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

	query := database.DB.Model(&models.Decision{}).Where("user_id = ?", userID)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if decisionType := c.Query("type"); decisionType != "" {
		query = query.Where("type = ?", decisionType)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	// Total honors the same filters as the page itself.
	var total int64
	query.Session(&gorm.Session{}).Count(&total)

	var decisions []models.Decision
	query.Session(&gorm.Session{}).Preload("Options").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&decisions)

	return c.JSON(fiber.Map{
		"decisions": decisions,
		"total":     total,
		"page":      page,
		"limit":     limit,
	})
}

func CreateDecision(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.CreateDecisionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title is required",
		})
	}

	decisionType := req.Type
	if decisionType != models.DecisionTypeDeep {
		decisionType = models.DecisionTypeQuick
	}
	status := req.Status
	if status != models.DecisionStatusDecided {
		status = models.DecisionStatusDraft
	}

	// Drafts may hold fewer, but a decided decision needs a real choice.
	if status == models.DecisionStatusDecided && len(req.Options) < 2 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "A decision needs at least two options",
		})
	}

	decision := models.Decision{
		UserID:   userID,
		Title:    req.Title,
		Category: req.Category,
		Type:     decisionType,
		Status:   status,
	}
	for _, opt := range req.Options {
		decision.Options = append(decision.Options, models.Option{
			Text: opt.Text,
			Pros: opt.Pros,
			Cons: opt.Cons,
		})
	}

	if err := database.DB.Create(&decision).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create decision",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(decision)
}

func GetDecision(c *fiber.Ctx) error {
	decision, fiberErr := findDecision(c)
	if decision == nil {
		return fiberErr
	}
	return c.JSON(decision)
}

func UpdateDecision(c *fiber.Ctx) error {
	decision, fiberErr := findDecision(c)
	if decision == nil {
		return fiberErr
	}

	var req models.UpdateDecisionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	// Saved decisions are history: only status moves after that.
	if decision.Status != models.DecisionStatusDraft {
		if req.Title != nil || req.Category != nil || len(req.Options) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Only the status of a saved decision can change",
			})
		}
	}

	if req.Title != nil {
		decision.Title = *req.Title
	}
	if req.Category != nil {
		decision.Category = *req.Category
	}
	if len(req.Options) > 0 {
		if err := database.DB.Where("decision_id = ?", decision.ID).Delete(&models.Option{}).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to update options",
			})
		}
		decision.Options = nil
		for _, opt := range req.Options {
			decision.Options = append(decision.Options, models.Option{
				DecisionID: decision.ID,
				Text:       opt.Text,
				Pros:       opt.Pros,
				Cons:       opt.Cons,
			})
		}
	}
	if req.Status != nil {
		if *req.Status == models.DecisionStatusDecided && len(decision.Options) < 2 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "A decision needs at least two options",
			})
		}
		decision.Status = *req.Status
	}

	if err := database.DB.Save(decision).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update decision",
		})
	}

	return c.JSON(decision)
}

func DeleteDecision(c *fiber.Ctx) error {
	decision, fiberErr := findDecision(c)
	if decision == nil {
		return fiberErr
	}

	database.DB.Where("decision_id = ?", decision.ID).Delete(&models.Option{})
	if err := database.DB.Delete(decision).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete decision",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}

// SelectOption marks one option as the user's choice. Selection is mutually
// exclusive within the decision.
func SelectOption(c *fiber.Ctx) error {
	decision, fiberErr := findDecision(c)
	if decision == nil {
		return fiberErr
	}

	optionID, err := uuid.Parse(c.Params("optionId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid option ID",
		})
	}

	found := false
	for i := range decision.Options {
		decision.Options[i].Selected = decision.Options[i].ID == optionID
		if decision.Options[i].Selected {
			found = true
		}
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Option not found",
		})
	}

	for i := range decision.Options {
		if err := database.DB.Model(&decision.Options[i]).
			Update("selected", decision.Options[i].Selected).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to select option",
			})
		}
	}

	// A choice only finalizes a draft when there were real alternatives,
	// same bar as creating or updating a decided decision.
	if decision.Status == models.DecisionStatusDraft && len(decision.Options) >= 2 {
		decision.Status = models.DecisionStatusDecided
		database.DB.Model(decision).Update("status", decision.Status)
	}

	return c.JSON(decision)
}

// RecommendDecision runs the AI pipeline: ask Gemini for a recommendation,
// resolve the free text back to one of the options, score it, and persist the
// outcome. A mismatch (the model named something that isn't an option) comes
// back as a soft flag so the client can ask the user to rephrase.
func RecommendDecision(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	decision, fiberErr := findDecision(c)
	if decision == nil {
		return fiberErr
	}

	if len(decision.Options) < 2 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "A recommendation needs at least two options",
		})
	}

	if !services.AI.Enabled() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "AI recommendations are not configured",
		})
	}

	var aiOut analytics.RecommendationOutput
	out, err := services.AI.GenerateRecommendation(c.Context(), decision)
	if err != nil {
		var parseErr *services.ParseError
		if errors.As(err, &parseErr) {
			// Unvalidated model output: match the raw text instead of failing.
			aiOut = analytics.RecommendationOutput{RecommendationText: parseErr.Raw}
		} else {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "AI provider request failed",
			})
		}
	} else {
		aiOut = *out
	}

	result := analytics.BuildResult(aiOut, decision.Options, decision.Type)

	decision.Recommendation = &aiOut.RecommendationText
	if result.Reasoning != "" {
		decision.Reasoning = &result.Reasoning
	}
	if !result.Mismatch {
		optionID := result.OptionID
		decision.RecommendedOptionID = &optionID
	}
	if err := database.DB.Save(decision).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save recommendation",
		})
	}
	for i := range decision.Options {
		database.DB.Model(&decision.Options[i]).Update("selected", decision.Options[i].Selected)
	}

	CreateNotification(userID, "recommendation_ready",
		"Recommendation ready",
		"We looked at \""+decision.Title+"\" and have a suggestion for you",
		map[string]interface{}{"decisionId": decision.ID.String()},
	)

	return c.JSON(fiber.Map{
		"decision": decision,
		"result":   result,
	})
}

// ExtractDecision turns a free-text (typed or dictated) description into a
// draft decision via the AI collaborator.
func ExtractDecision(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.ExtractDecisionRequest
	if err := c.BodyParser(&req); err != nil || req.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Text is required",
		})
	}

	if !services.AI.Enabled() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "AI extraction is not configured",
		})
	}

	extracted, err := services.AI.ExtractDecision(c.Context(), req.Text)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Could not extract a decision from that text",
		})
	}

	decision := models.Decision{
		UserID:   userID,
		Title:    extracted.Title,
		Category: extracted.Category,
		Type:     models.DecisionTypeQuick,
		Status:   models.DecisionStatusDraft,
	}
	for _, opt := range extracted.Options {
		decision.Options = append(decision.Options, models.Option{
			Text: opt.Text,
			Pros: opt.Pros,
			Cons: opt.Cons,
		})
	}

	if err := database.DB.Create(&decision).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create decision",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(decision)
}
