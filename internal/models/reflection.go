package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reflection outcomes, most to least satisfied
const (
	OutcomeVerySatisfied   = "very_satisfied"
	OutcomeSatisfied       = "satisfied"
	OutcomeNeutral         = "neutral"
	OutcomeUnsatisfied     = "unsatisfied"
	OutcomeVeryUnsatisfied = "very_unsatisfied"
)

type Learning struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

type Reflection struct {
	ID               uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID      `json:"userId" gorm:"type:uuid;index;not null"`
	DecisionID       uuid.UUID      `json:"decisionId" gorm:"type:uuid;uniqueIndex;not null"`
	DecisionCategory string         `json:"decisionCategory"` // denormalized from the decision at create time
	Outcome          string         `json:"outcome" gorm:"not null"`
	WouldRepeat      bool           `json:"wouldRepeat"`
	Learnings        []Learning     `json:"learnings" gorm:"serializer:json"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
	DeletedAt        gorm.DeletedAt `json:"-" gorm:"index"`
}

func (r *Reflection) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// ValidOutcome reports whether s is one of the five reflection outcomes.
func ValidOutcome(s string) bool {
	switch s {
	case OutcomeVerySatisfied, OutcomeSatisfied, OutcomeNeutral, OutcomeUnsatisfied, OutcomeVeryUnsatisfied:
		return true
	}
	return false
}

// Reflection DTOs
type UpsertReflectionRequest struct {
	Outcome     string     `json:"outcome" validate:"required"`
	WouldRepeat *bool      `json:"wouldRepeat"`
	Learnings   []Learning `json:"learnings"`
}
