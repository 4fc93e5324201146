package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shenikar/wingman_matching_system/internal/config"
	"github.com/shenikar/wingman_matching_system/internal/geo"
	"github.com/shenikar/wingman_matching_system/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	matchingService service.MatchingService
	logger          *logrus.Logger
	validate        *validator.Validate
	cfg             *config.Config
}

func NewHandler(matchingService service.MatchingService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		matchingService: matchingService,
		logger:          logger,
		validate:        validator.New(),
		cfg:             cfg,
	}
}

// @Summary Create or update a buddy profile
// @Description Create or update the matching profile and location of a user. Requires API key.
// @Tags Profile
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param user_id path string true "User ID"
// @Param profile body UpsertProfileRequest true "Profile upsert request"
// @Success 200 {object} ProfileResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /profile/{user_id} [put]
func (h *Handler) upsertProfile(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return
	}
	log := h.logger.WithField("method", "upsertProfile").WithField("user_id", userID)

	var input UpsertProfileRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, loc := DTOToProfileModels(userID, input)
	if err := h.matchingService.UpsertProfile(c.Request.Context(), profile, loc); err != nil {
		h.mapServiceError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, ModelsToProfileResponse(profile, loc))
}

// @Summary Find buddy candidates
// @Description Find compatible buddy candidates within mutual travel radius, nearest first. Requires API key.
// @Tags Matching
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param user_id path string true "User ID"
// @Param radius_miles query number false "Search radius override in miles (1-50), profile radius by default"
// @Success 200 {array} CandidateResponse
// @Failure 400 {object} map[string]string "Invalid user ID or radius"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Profile or location not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /matches/candidates/{user_id} [get]
func (h *Handler) findCandidates(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return
	}
	log := h.logger.WithField("method", "findCandidates").WithField("user_id", userID)

	var radius float64
	if raw := c.Query("radius_miles"); raw != "" {
		radius, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid radius_miles"})
			return
		}
	}

	candidates, err := h.matchingService.FindCandidates(c.Request.Context(), userID, radius)
	if err != nil {
		h.mapServiceError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, CandidatesToResponses(candidates))
}

// @Summary Propose an automatic match
// @Description Create a pending match with the nearest compatible candidate. Requires API key.
// @Tags Matching
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param user_id path string true "User ID"
// @Success 201 {object} AutoMatchResponse "Pending match created"
// @Success 200 {object} AutoMatchResponse "No suitable candidate at the moment"
// @Failure 400 {object} map[string]string "Invalid user ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Profile or location not found"
// @Failure 409 {object} map[string]string "User already has a pending match"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /matches/auto/{user_id} [post]
func (h *Handler) autoMatch(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return
	}
	log := h.logger.WithField("method", "autoMatch").WithField("user_id", userID)

	proposal, err := h.matchingService.ProposeMatch(c.Request.Context(), userID)
	if err != nil {
		h.mapServiceError(c, log, err)
		return
	}

	statusCode := http.StatusOK
	if proposal.Created {
		statusCode = http.StatusCreated
	}
	c.JSON(statusCode, ProposalToResponse(proposal))
}

// @Summary Respond to a match proposal
// @Description Accept or decline a pending match as one of its participants. Requires API key.
// @Tags Matching
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param response body RespondRequest true "Match response request"
// @Success 200 {object} RespondResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "User is not a participant"
// @Failure 404 {object} map[string]string "Match not found"
// @Failure 409 {object} map[string]string "Match is not awaiting response"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /buddy/respond [post]
func (h *Handler) respond(c *gin.Context) {
	var input RespondRequest
	log := h.logger.WithField("method", "respond")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, err := h.matchingService.Respond(c.Request.Context(), input.MatchID, input.UserID, input.Action)
	if err != nil {
		h.mapServiceError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, RespondResponse{Success: true, MatchStatus: status})
}

// @Summary Get matches of a user
// @Description Get a paginated list of matches the user participates in, newest first. Requires API key.
// @Tags Matching
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param user_id path string true "User ID"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Number of items per page" default(20)
// @Success 200 {array} MatchResponse
// @Failure 400 {object} map[string]string "Invalid user ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /matches/user/{user_id} [get]
func (h *Handler) getUserMatches(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return
	}
	log := h.logger.WithField("method", "getUserMatches").WithField("user_id", userID)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	matches, err := h.matchingService.GetUserMatches(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		h.mapServiceError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, ModelsToMatchResponses(matches))
}

// @Summary Get match statistics
// @Description Get pending/accepted/declined match counters for the observation window. Requires API key.
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} MatchStatsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /matches/stats [get]
func (h *Handler) getMatchStats(c *gin.Context) {
	log := h.logger.WithField("method", "getMatchStats")

	stats, err := h.matchingService.GetMatchStats(c.Request.Context())
	if err != nil {
		h.mapServiceError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, StatsToResponse(stats))
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// mapServiceError переводит ошибки сервиса в HTTP-статусы
func (h *Handler) mapServiceError(c *gin.Context, log *logrus.Entry, err error) {
	switch {
	case errors.Is(err, service.ErrProfileNotFound):
		log.WithError(err).Warn("Profile not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
	case errors.Is(err, service.ErrMatchNotFound):
		log.WithError(err).Warn("Match not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
	case errors.Is(err, service.ErrNoLocation):
		log.WithError(err).Warn("User location is not set")
		c.JSON(http.StatusNotFound, gin.H{"error": "user location is not set"})
	case errors.Is(err, service.ErrNotParticipant):
		log.WithError(err).Warn("User is not a participant of the match")
		c.JSON(http.StatusForbidden, gin.H{"error": "user is not a participant of the match"})
	case errors.Is(err, service.ErrAlreadyPending):
		log.WithError(err).Warn("User already has a pending match")
		c.JSON(http.StatusConflict, gin.H{"error": "user already has a pending match"})
	case errors.Is(err, service.ErrInvalidTransition):
		log.WithError(err).Warn("Match is not awaiting response")
		c.JSON(http.StatusConflict, gin.H{"error": "match is not awaiting response"})
	case errors.Is(err, service.ErrRadiusOutOfRange):
		log.WithError(err).Warn("Radius out of range")
		c.JSON(http.StatusBadRequest, gin.H{"error": "radius must be between 1 and 50 miles"})
	case errors.Is(err, service.ErrInvalidAction):
		log.WithError(err).Warn("Invalid response action")
		c.JSON(http.StatusBadRequest, gin.H{"error": "action must be accept or decline"})
	case errors.Is(err, service.ErrBioContainsPII):
		log.WithError(err).Warn("Bio contains contact information")
		c.JSON(http.StatusBadRequest, gin.H{"error": "bio must not contain contact information"})
	case errors.Is(err, service.ErrLocationRequired):
		log.WithError(err).Warn("Location payload is incomplete")
		c.JSON(http.StatusBadRequest, gin.H{"error": "location requires coordinates or a city"})
	case errors.Is(err, geo.ErrInvalidCoordinates):
		log.WithError(err).Warn("Coordinates out of range")
		c.JSON(http.StatusBadRequest, gin.H{"error": "coordinates out of range"})
	default:
		log.WithError(err).Error("Unhandled service error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
