package models

import "github.com/google/uuid"

// Подсказки совместимости по уровню подготовки
const (
	CompatibilitySameLevel     = "same_level"
	CompatibilityAdjacentLevel = "adjacent_level"
)

// MatchCandidate - строка выборки кандидата: геопозиция вместе с полями анкеты,
// которые участвуют в фильтрации
type MatchCandidate struct {
	UserID            uuid.UUID
	Latitude          *float64
	Longitude         *float64
	City              string
	PrivacyMode       string
	TravelRadiusMiles int
	ExperienceLevel   string
}

// CandidateResult - кандидат в напарники, прошедший все фильтры
type CandidateResult struct {
	UserID            uuid.UUID `json:"user_id"`
	DistanceMiles     float64   `json:"distance_miles"`
	CompatibilityHint string    `json:"compatibility_hint"`
}
