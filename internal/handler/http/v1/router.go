package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Маршрут Health-check остается открытым
	api.GET("/system/health", h.healthCheck)

	secured := api.Group("")
	if len(h.cfg.APIKeys) > 0 {
		secured.Use(APIKeyAuthMiddleware(h.cfg, h.logger))
	}

	// Маршруты анкет
	secured.PUT("/profile/:user_id", h.upsertProfile)

	// Маршруты подбора и матчей
	matches := secured.Group("/matches")
	{
		matches.GET("/candidates/:user_id", h.findCandidates)
		matches.POST("/auto/:user_id", h.autoMatch)
		matches.GET("/user/:user_id", h.getUserMatches)
		matches.GET("/stats", h.getMatchStats)
	}

	// Маршрут ответа на предложение матча
	secured.POST("/buddy/respond", h.respond)
}
