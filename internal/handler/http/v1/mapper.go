package v1

import (
	"github.com/google/uuid"
	"github.com/shenikar/wingman_matching_system/internal/models"
)

// DTOToProfileModels преобразует DTO анкеты в доменные модели анкеты и геопозиции
func DTOToProfileModels(userID uuid.UUID, dto UpsertProfileRequest) (*models.UserProfile, *models.UserLocation) {
	profile := &models.UserProfile{
		UserID:            userID,
		Bio:               dto.Bio,
		TravelRadiusMiles: dto.TravelRadiusMiles,
		ExperienceLevel:   dto.ExperienceLevel,
	}

	loc := &models.UserLocation{
		UserID:      userID,
		Latitude:    dto.Latitude,
		Longitude:   dto.Longitude,
		City:        dto.City,
		PrivacyMode: dto.PrivacyMode,
	}

	return profile, loc
}

// ModelsToProfileResponse преобразует доменные модели в DTO для ответа
func ModelsToProfileResponse(profile *models.UserProfile, loc *models.UserLocation) *ProfileResponse {
	return &ProfileResponse{
		UserID:            profile.UserID,
		Bio:               profile.Bio,
		ExperienceLevel:   profile.ExperienceLevel,
		TravelRadiusMiles: profile.TravelRadiusMiles,
		City:              loc.City,
		PrivacyMode:       loc.PrivacyMode,
	}
}

// CandidateToResponse преобразует результат подбора в DTO
func CandidateToResponse(candidate *models.CandidateResult) *CandidateResponse {
	return &CandidateResponse{
		UserID:            candidate.UserID,
		DistanceMiles:     candidate.DistanceMiles,
		CompatibilityHint: candidate.CompatibilityHint,
	}
}

// CandidatesToResponses преобразует слайс результатов подбора в слайс DTO
func CandidatesToResponses(candidates []*models.CandidateResult) []*CandidateResponse {
	responses := make([]*CandidateResponse, len(candidates))
	for i, candidate := range candidates {
		responses[i] = CandidateToResponse(candidate)
	}
	return responses
}

// ProposalToResponse преобразует результат автоподбора в DTO
func ProposalToResponse(proposal *models.MatchProposal) *AutoMatchResponse {
	resp := &AutoMatchResponse{Created: proposal.Created}
	if proposal.Match != nil {
		resp.MatchID = &proposal.Match.ID
		resp.Status = proposal.Match.Status
	}
	if proposal.Candidate != nil {
		resp.Candidate = CandidateToResponse(proposal.Candidate)
	}
	return resp
}

// ModelToMatchResponse преобразует доменную модель матча в DTO
func ModelToMatchResponse(model *models.WingmanMatch) *MatchResponse {
	return &MatchResponse{
		ID:        model.ID,
		User1ID:   model.User1ID,
		User2ID:   model.User2ID,
		Status:    model.Status,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// ModelsToMatchResponses преобразует слайс матчей в слайс DTO
func ModelsToMatchResponses(models []*models.WingmanMatch) []*MatchResponse {
	responses := make([]*MatchResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToMatchResponse(model)
	}
	return responses
}

// StatsToResponse преобразует статистику матчей в DTO
func StatsToResponse(stats *models.MatchStats) *MatchStatsResponse {
	return &MatchStatsResponse{
		Pending:  stats.Pending,
		Accepted: stats.Accepted,
		Declined: stats.Declined,
		Total:    stats.Total,
	}
}
