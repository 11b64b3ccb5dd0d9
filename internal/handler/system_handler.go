package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"partytale/backend/internal/models"
)

// region --- DTOs ---

// HealthResponse reports liveness and the number of parties in memory.
type HealthResponse struct {
	Status        string    `json:"status" example:"ok"`
	ActiveParties int       `json:"activeParties" example:"3"`
	Timestamp     time.Time `json:"timestamp"`
}

// DebugPartiesResponse lists every party in memory.
type DebugPartiesResponse struct {
	Parties []models.PartySummary `json:"parties"`
}

// endregion

// Health godoc
// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:        "ok",
		ActiveParties: h.sessions.PartyCount(),
		Timestamp:     h.now().UTC(),
	})
}

// DebugParties godoc
// @Summary      List parties
// @Description  Lists every party with its player names. Only served when DEBUG_ENDPOINTS is enabled.
// @Tags         system
// @Produce      json
// @Success      200  {object}  DebugPartiesResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /debug/parties [get]
func (h *Handler) DebugParties(c *gin.Context) {
	parties := h.sessions.ListParties()
	if parties == nil {
		parties = []models.PartySummary{}
	}
	c.JSON(http.StatusOK, DebugPartiesResponse{Parties: parties})
}
