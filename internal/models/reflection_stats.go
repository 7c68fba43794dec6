package models

import (
	"time"

	"github.com/google/uuid"
)

// ReflectionStats is a persisted per-user cache of reflection analytics.
// It is recomputed from scratch and overwritten whenever a reflection is
// created, updated, or deleted for the user. Last write wins.
type ReflectionStats struct {
	UserID                 uuid.UUID          `json:"userId" gorm:"type:uuid;primaryKey"`
	SatisfactionCounts     map[string]int     `json:"satisfactionCounts" gorm:"serializer:json"`
	AverageSatisfaction    float64            `json:"averageSatisfaction"`
	WouldRepeatPercentage  float64            `json:"wouldRepeatPercentage"`
	SatisfactionByCategory map[string]float64 `json:"satisfactionByCategory" gorm:"serializer:json"`
	ReflectionTrend        string             `json:"reflectionTrend" gorm:"default:stable"` // improving, stable, declining
	LearningsByType        map[string]int     `json:"learningsByType" gorm:"serializer:json"`
	LastUpdated            time.Time          `json:"lastUpdated"`
}
