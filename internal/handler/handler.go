package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"partytale/backend/internal/database"
	"partytale/backend/internal/middleware"
	"partytale/backend/internal/session"
	"partytale/backend/internal/story"
)

// region --- DTOs ---

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"Party not found"`
}

// endregion

// ImageGenerator renders scene illustrations.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, req story.ImageRequest) story.ImageResult
}

// Handler serves the HTTP API on top of a session manager.
type Handler struct {
	sessions *session.Manager
	images   ImageGenerator
	archive  *database.Archive
	logger   *slog.Logger
	now      func() time.Time
}

// Options carries the optional collaborators of a Handler.
type Options struct {
	Images ImageGenerator
	// Archive is nil when no database is configured.
	Archive *database.Archive
	Logger  *slog.Logger
}

// New builds a Handler.
func New(sessions *session.Manager, opts Options) *Handler {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Handler{
		sessions: sessions,
		images:   opts.Images,
		archive:  opts.Archive,
		logger:   opts.Logger,
		now:      time.Now,
	}
}

// Register mounts every route under /api.
func (h *Handler) Register(router gin.IRouter, debugEndpoints bool) {
	api := router.Group("/api")
	{
		partyRoutes := api.Group("/party")
		{
			partyRoutes.POST("/create", h.CreateParty)
			partyRoutes.POST("/join", h.JoinParty)
			partyRoutes.POST("/leave", h.LeaveParty)
			partyRoutes.GET("/:partyCode", h.GetParty)
		}

		gameRoutes := api.Group("/game")
		{
			gameRoutes.POST("/start", h.StartGame)
			gameRoutes.POST("/vote", h.Vote)
			gameRoutes.POST("/next", h.NextRound)
			gameRoutes.POST("/image", h.GenerateImage)
		}

		storyRoutes := api.Group("/stories")
		{
			storyRoutes.GET("", h.ListStories)
			storyRoutes.GET("/:id", h.GetStory)
		}

		api.GET("/health", h.Health)
		api.GET("/debug/parties", middleware.DebugOnly(debugEndpoints), h.DebugParties)
	}
}

// respondError maps session errors to status codes. Anything else is an
// internal error and its text is not sent to the client.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, session.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
}
