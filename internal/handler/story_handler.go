package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"partytale/backend/internal/database"
	"partytale/backend/internal/models"
)

// region --- DTOs ---

type StoryEntryResponse struct {
	Round   int      `json:"round"`
	Story   string   `json:"story"`
	Choices []string `json:"choices"`
	Winner  string   `json:"winner" example:"B"`
}

type StoryResponse struct {
	ID          uint                 `json:"id"`
	PartyCode   string               `json:"partyCode" example:"AB12CD"`
	Theme       string               `json:"theme" example:"mystery"`
	Rounds      int                  `json:"rounds" example:"5"`
	PlayerCount int                  `json:"playerCount" example:"4"`
	FinalStory  string               `json:"finalStory"`
	CreatedAt   time.Time            `json:"createdAt"`
	Entries     []StoryEntryResponse `json:"entries,omitempty"`
}

func newStoryResponse(s models.StoryLog) StoryResponse {
	var entries []StoryEntryResponse
	for _, e := range s.Entries {
		entries = append(entries, StoryEntryResponse{
			Round:   e.Round,
			Story:   e.Story,
			Choices: []string{e.ChoiceA, e.ChoiceB, e.ChoiceC},
			Winner:  e.Winner,
		})
	}
	return StoryResponse{
		ID:          s.ID,
		PartyCode:   s.PartyCode,
		Theme:       s.Theme,
		Rounds:      s.Rounds,
		PlayerCount: s.PlayerCount,
		FinalStory:  s.FinalStory,
		CreatedAt:   s.CreatedAt,
		Entries:     entries,
	}
}

// endregion

// ListStories godoc
// @Summary      List finished stories
// @Description  Gets a paginated list of archived games, newest first. Requires DATABASE_URL.
// @Tags         stories
// @Produce      json
// @Param        theme query string false "Filter by theme"
// @Param        page  query int    false "Page number" default(1)
// @Param        limit query int    false "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[StoryResponse]
// @Failure      404  {object}  ErrorResponse "Story archive is disabled"
// @Router       /stories [get]
func (h *Handler) ListStories(c *gin.Context) {
	if h.archive == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Story archive is disabled"})
		return
	}
	query := h.archive.Stories(c.Request.Context(), c.Query("theme"))

	result, err := paginate(query, pageQuery(c), newStoryResponse)
	if err != nil {
		h.logger.Error("failed to list stories", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list stories"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetStory godoc
// @Summary      Get a finished story
// @Description  Gets one archived game with every round. Requires DATABASE_URL.
// @Tags         stories
// @Produce      json
// @Param        id path int true "Story ID"
// @Success      200  {object}  StoryResponse
// @Failure      400  {object}  ErrorResponse "Invalid story ID"
// @Failure      404  {object}  ErrorResponse "Story not found"
// @Router       /stories/{id} [get]
func (h *Handler) GetStory(c *gin.Context) {
	if h.archive == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Story archive is disabled"})
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid story ID"})
		return
	}

	s, err := h.archive.Story(c.Request.Context(), uint(id))
	if errors.Is(err, database.ErrStoryNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Story not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed to load story", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load story"})
		return
	}
	c.JSON(http.StatusOK, newStoryResponse(s))
}
