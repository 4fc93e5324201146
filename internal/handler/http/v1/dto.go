package v1

import (
	"time"

	"github.com/google/uuid"
)

// UpsertProfileRequest DTO для создания/обновления анкеты напарника
// @Description DTO для создания/обновления анкеты напарника
type UpsertProfileRequest struct {
	Bio               string   `json:"bio" validate:"required,min=10,max=400"`
	ExperienceLevel   string   `json:"experience_level" validate:"required,oneof=beginner intermediate advanced"`
	TravelRadiusMiles int      `json:"travel_radius_miles" validate:"required,min=1,max=50"`
	Latitude          *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude         *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
	City              string   `json:"city,omitempty" validate:"omitempty,max=120"`
	PrivacyMode       string   `json:"privacy_mode" validate:"required,oneof=precise city_only"`
}

// ProfileResponse DTO для ответа с сохраненной анкетой.
// Координаты намеренно не возвращаются, наружу уходит только город.
// @Description DTO для ответа с сохраненной анкетой
type ProfileResponse struct {
	UserID            uuid.UUID `json:"user_id"`
	Bio               string    `json:"bio"`
	ExperienceLevel   string    `json:"experience_level"`
	TravelRadiusMiles int       `json:"travel_radius_miles"`
	City              string    `json:"city,omitempty"`
	PrivacyMode       string    `json:"privacy_mode"`
}

// CandidateResponse DTO для кандидата в напарники
// @Description DTO для кандидата в напарники
type CandidateResponse struct {
	UserID            uuid.UUID `json:"user_id"`
	DistanceMiles     float64   `json:"distance_miles"`
	CompatibilityHint string    `json:"compatibility_hint"`
}

// AutoMatchResponse DTO для результата автоподбора
// @Description DTO для результата автоподбора
type AutoMatchResponse struct {
	Created   bool               `json:"created"`
	MatchID   *uuid.UUID         `json:"match_id,omitempty"`
	Status    string             `json:"status,omitempty"`
	Candidate *CandidateResponse `json:"candidate,omitempty"`
}

// RespondRequest DTO для ответа на предложение матча
// @Description DTO для ответа на предложение матча
type RespondRequest struct {
	MatchID uuid.UUID `json:"match_id" validate:"required"`
	UserID  uuid.UUID `json:"user_id" validate:"required"`
	Action  string    `json:"action" validate:"required,oneof=accept decline"`
}

// RespondResponse DTO для результата ответа на матч
// @Description DTO для результата ответа на матч
type RespondResponse struct {
	Success     bool   `json:"success"`
	MatchStatus string `json:"match_status"`
}

// MatchResponse DTO для матча
// @Description DTO для матча
type MatchResponse struct {
	ID        uuid.UUID `json:"id"`
	User1ID   uuid.UUID `json:"user1_id"`
	User2ID   uuid.UUID `json:"user2_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MatchStatsResponse DTO для статистики матчей
// @Description DTO для статистики матчей
type MatchStatsResponse struct {
	Pending  int `json:"pending"`
	Accepted int `json:"accepted"`
	Declined int `json:"declined"`
	Total    int `json:"total"`
}
