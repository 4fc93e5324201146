package models

import (
	"time"

	"github.com/google/uuid"
)

// Уровни подготовки, порядковая шкала
const (
	ExperienceBeginner     = "beginner"
	ExperienceIntermediate = "intermediate"
	ExperienceAdvanced     = "advanced"
)

// UserProfile - анкета пользователя
type UserProfile struct {
	UserID            uuid.UUID `json:"user_id"`
	Bio               string    `json:"bio"`
	TravelRadiusMiles int       `json:"travel_radius_miles"`
	ExperienceLevel   string    `json:"experience_level"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ExperienceRank возвращает порядковый номер уровня подготовки,
// -1 для неизвестного уровня
func ExperienceRank(level string) int {
	switch level {
	case ExperienceBeginner:
		return 0
	case ExperienceIntermediate:
		return 1
	case ExperienceAdvanced:
		return 2
	}
	return -1
}
