package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Decision types
const (
	DecisionTypeQuick = "quick"
	DecisionTypeDeep  = "deep"
)

// Decision statuses
const (
	DecisionStatusDraft     = "draft"
	DecisionStatusDecided   = "decided"
	DecisionStatusReflected = "reflected"
)

type Decision struct {
	ID                  uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID              uuid.UUID      `json:"userId" gorm:"type:uuid;index;not null"`
	Title               string         `json:"title" gorm:"not null"`
	Category            string         `json:"category" gorm:"index"`
	Type                string         `json:"type" gorm:"not null;default:'quick'"` // quick, deep
	Status              string         `json:"status" gorm:"not null;default:'draft'"` // draft, decided, reflected
	Recommendation      *string        `json:"recommendation"`
	Reasoning           *string        `json:"reasoning"`
	RecommendedOptionID *uuid.UUID     `json:"recommendedOptionId" gorm:"type:uuid"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
	DeletedAt           gorm.DeletedAt `json:"-" gorm:"index"`
	Options             []Option       `json:"options,omitempty" gorm:"foreignKey:DecisionID"`
	Reflection          *Reflection    `json:"reflection,omitempty" gorm:"foreignKey:DecisionID"`
}

func (d *Decision) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

type Option struct {
	ID         uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	DecisionID uuid.UUID      `json:"decisionId" gorm:"type:uuid;index;not null"`
	Text       string         `json:"text" gorm:"not null"`
	Selected   bool           `json:"selected" gorm:"default:false"`
	Pros       []string       `json:"pros" gorm:"serializer:json"`
	Cons       []string       `json:"cons" gorm:"serializer:json"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

func (o *Option) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// Decision DTOs
type OptionInput struct {
	Text string   `json:"text" validate:"required"`
	Pros []string `json:"pros"`
	Cons []string `json:"cons"`
}

type CreateDecisionRequest struct {
	Title    string        `json:"title" validate:"required"`
	Category string        `json:"category"`
	Type     string        `json:"type"`
	Status   string        `json:"status"`
	Options  []OptionInput `json:"options"`
}

type UpdateDecisionRequest struct {
	Title    *string       `json:"title"`
	Category *string       `json:"category"`
	Status   *string       `json:"status"`
	Options  []OptionInput `json:"options"`
}

type ExtractDecisionRequest struct {
	Text string `json:"text" validate:"required"`
}
