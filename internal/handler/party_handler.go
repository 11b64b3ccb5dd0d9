package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"partytale/backend/internal/models"
	"partytale/backend/internal/session"
)

// region --- DTOs ---

type CreatePartyInput struct {
	PlayerName string `json:"playerName" binding:"required" example:"Ava"`
}

type JoinPartyInput struct {
	PartyCode  string `json:"partyCode" binding:"required" example:"AB12CD"`
	PlayerName string `json:"playerName" binding:"required" example:"Ben"`
}

type LeavePartyInput struct {
	PartyCode string `json:"partyCode" binding:"required" example:"AB12CD"`
	PlayerID  string `json:"playerId" binding:"required"`
}

// MembershipResponse is returned when a player enters a party.
type MembershipResponse struct {
	Success    bool   `json:"success" example:"true"`
	PartyCode  string `json:"partyCode" example:"AB12CD"`
	PlayerID   string `json:"playerId" example:"5f0c6f7e-3b1e-4c55-9a43-2f1d3c1e9b10"`
	PlayerName string `json:"playerName" example:"Ava"`
	IsHost     bool   `json:"isHost"`
}

// PartyResponse is a full party snapshot.
type PartyResponse struct {
	Success bool `json:"success" example:"true"`
	models.Party
}

// LeaveResponse reports the outcome of leaving a party.
type LeaveResponse struct {
	Success    bool   `json:"success" example:"true"`
	Message    string `json:"message" example:"Left party successfully"`
	PlayerName string `json:"playerName" example:"Ava"`
	// Deleted is true when the last player left and the party is gone.
	Deleted bool `json:"deleted"`
	// NewHost names the promoted player when the host left.
	NewHost string `json:"newHost,omitempty" example:"Ben"`
}

// endregion

// CreateParty godoc
// @Summary      Create a party
// @Description  Creates a party with a fresh 6-character code and makes the caller its host.
// @Tags         party
// @Accept       json
// @Produce      json
// @Param        input body CreatePartyInput true "Host name"
// @Success      200  {object}  MembershipResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /party/create [post]
func (h *Handler) CreateParty(c *gin.Context) {
	var input CreatePartyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	code, playerID, err := h.sessions.CreateParty(input.PlayerName)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MembershipResponse{
		Success:    true,
		PartyCode:  code,
		PlayerID:   playerID,
		PlayerName: input.PlayerName,
		IsHost:     true,
	})
}

// JoinParty godoc
// @Summary      Join a party
// @Description  Adds a player to a party that has not started its game. Names must be unique within the party.
// @Tags         party
// @Accept       json
// @Produce      json
// @Param        input body JoinPartyInput true "Party code and player name"
// @Success      200  {object}  MembershipResponse
// @Failure      400  {object}  ErrorResponse "Game already started or name taken"
// @Failure      404  {object}  ErrorResponse "Party not found"
// @Router       /party/join [post]
func (h *Handler) JoinParty(c *gin.Context) {
	var input JoinPartyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	playerID, err := h.sessions.JoinParty(input.PartyCode, input.PlayerName)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MembershipResponse{
		Success:    true,
		PartyCode:  session.NormalizeCode(input.PartyCode),
		PlayerID:   playerID,
		PlayerName: input.PlayerName,
		IsHost:     false,
	})
}

// GetParty godoc
// @Summary      Get a party
// @Description  Returns the players and game state of a party. Clients poll this endpoint.
// @Tags         party
// @Produce      json
// @Param        partyCode path string true "Party code"
// @Success      200  {object}  PartyResponse
// @Failure      404  {object}  ErrorResponse "Party not found"
// @Router       /party/{partyCode} [get]
func (h *Handler) GetParty(c *gin.Context) {
	party, err := h.sessions.GetParty(c.Param("partyCode"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, PartyResponse{Success: true, Party: party})
}

// LeaveParty godoc
// @Summary      Leave a party
// @Description  Removes a player. The next player becomes host if the host leaves; the party is deleted when empty.
// @Tags         party
// @Accept       json
// @Produce      json
// @Param        input body LeavePartyInput true "Party code and player id"
// @Success      200  {object}  LeaveResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Party or player not found"
// @Router       /party/leave [post]
func (h *Handler) LeaveParty(c *gin.Context) {
	var input LeavePartyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.sessions.LeaveParty(input.PartyCode, input.PlayerID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	message := "Left party successfully"
	if res.Deleted {
		message = "Left party successfully, party deleted"
	}
	c.JSON(http.StatusOK, LeaveResponse{
		Success:    true,
		Message:    message,
		PlayerName: res.PlayerName,
		Deleted:    res.Deleted,
		NewHost:    res.NewHost,
	})
}
