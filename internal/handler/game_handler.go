package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"partytale/backend/internal/models"
	"partytale/backend/internal/story"
)

// region --- DTOs ---

type StartGameInput struct {
	PartyCode string `json:"partyCode" binding:"required" example:"AB12CD"`
	Theme     string `json:"theme" example:"mystery" enums:"scifi,romance,mystery,adventure"`
}

type VoteInput struct {
	PartyCode string `json:"partyCode" binding:"required" example:"AB12CD"`
	PlayerID  string `json:"playerId" binding:"required"`
	Choice    string `json:"choice" binding:"required" example:"A"`
}

type NextRoundInput struct {
	PartyCode string `json:"partyCode" binding:"required" example:"AB12CD"`
}

type ImageInput struct {
	PartyCode string `json:"partyCode" binding:"required" example:"AB12CD"`
	// Choice is a label ("A") or the full choice text.
	Choice string `json:"choice" example:"A"`
}

// GameStateResponse wraps a round state snapshot.
type GameStateResponse struct {
	Success   bool              `json:"success" example:"true"`
	GameState models.RoundState `json:"gameState"`
}

// VoteResponse carries the live tally after a vote.
type VoteResponse struct {
	Success    bool           `json:"success" example:"true"`
	VoteCounts map[string]int `json:"voteCounts"`
}

// NextRoundResponse reports the winning label and the new round.
type NextRoundResponse struct {
	Success   bool              `json:"success" example:"true"`
	Winner    string            `json:"winner" example:"A"`
	Finished  bool              `json:"finished"`
	GameState models.RoundState `json:"gameState"`
}

// ImageResponse holds an illustration; both fields are null when none was produced.
type ImageResponse struct {
	ImageDataURL *string `json:"imageDataUrl"`
	Error        *string `json:"error"`
}

// endregion

// StartGame godoc
// @Summary      Start the game
// @Description  Generates round 0 for the chosen theme and starts the party's game. Unknown themes fall back to scifi.
// @Tags         game
// @Accept       json
// @Produce      json
// @Param        input body StartGameInput true "Party code and theme"
// @Success      200  {object}  GameStateResponse
// @Failure      400  {object}  ErrorResponse "Game already started"
// @Failure      404  {object}  ErrorResponse "Party not found"
// @Router       /game/start [post]
func (h *Handler) StartGame(c *gin.Context) {
	var input StartGameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	state, err := h.sessions.StartGame(c.Request.Context(), input.PartyCode, input.Theme)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, GameStateResponse{Success: true, GameState: state})
}

// Vote godoc
// @Summary      Cast a vote
// @Description  Records or replaces the player's vote for a choice label in the current round.
// @Tags         game
// @Accept       json
// @Produce      json
// @Param        input body VoteInput true "Vote"
// @Success      200  {object}  VoteResponse
// @Failure      400  {object}  ErrorResponse "Unknown label, or no round in progress"
// @Failure      404  {object}  ErrorResponse "Party or player not found"
// @Router       /game/vote [post]
func (h *Handler) Vote(c *gin.Context) {
	var input VoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	counts, err := h.sessions.Vote(input.PartyCode, input.PlayerID, input.Choice)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, VoteResponse{Success: true, VoteCounts: counts})
}

// NextRound godoc
// @Summary      Advance to the next round
// @Description  Tallies the votes, generates the next scene from the winning choice and clears the votes. Ties go to the earliest label.
// @Tags         game
// @Accept       json
// @Produce      json
// @Param        input body NextRoundInput true "Party code"
// @Success      200  {object}  NextRoundResponse
// @Failure      400  {object}  ErrorResponse "Game not started or already finished"
// @Failure      404  {object}  ErrorResponse "Party not found"
// @Router       /game/next [post]
func (h *Handler) NextRound(c *gin.Context) {
	var input NextRoundInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.sessions.AdvanceRound(c.Request.Context(), input.PartyCode)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, NextRoundResponse{
		Success:   true,
		Winner:    res.Winner,
		Finished:  res.State.Finished(),
		GameState: res.State,
	})
}

// GenerateImage godoc
// @Summary      Illustrate the current scene
// @Description  Returns a data URL for an illustration of the current story and choice. A missing API key or a failed generation yields null fields, never an error status.
// @Tags         game
// @Accept       json
// @Produce      json
// @Param        input body ImageInput true "Party code and choice"
// @Success      200  {object}  ImageResponse
// @Failure      404  {object}  ErrorResponse "Party not found"
// @Router       /game/image [post]
func (h *Handler) GenerateImage(c *gin.Context) {
	var input ImageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	party, err := h.sessions.GetParty(input.PartyCode)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var response ImageResponse
	if h.images != nil && party.GameState.Started {
		result := h.images.GenerateImage(c.Request.Context(), story.ImageRequest{
			Story:  party.GameState.CurrentStory,
			Choice: resolveChoice(party.GameState.CurrentChoices, input.Choice),
			Theme:  party.GameState.Theme,
		})
		if result.DataURL != "" {
			response.ImageDataURL = &result.DataURL
		}
	}
	c.JSON(http.StatusOK, response)
}

// resolveChoice expands a bare label to its choice text.
func resolveChoice(choices []string, choice string) string {
	label := strings.ToUpper(strings.TrimSpace(choice))
	for _, c := range choices {
		if strings.HasPrefix(c, label+")") {
			return c
		}
	}
	return choice
}
