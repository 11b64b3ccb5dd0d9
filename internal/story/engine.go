// Package story produces round content and illustrations, calling the Gemini
// API when a key is configured and falling back to a scripted library
// otherwise.
package story

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"partytale/backend/internal/models"
	"partytale/backend/internal/session"
)

// DefaultModels is the fallback chain tried after the configured model.
var DefaultModels = []string{
	"gemini-2.0-flash",
	"gemini-2.0-flash-lite",
	"gemini-2.0-pro",
	"gemini-1.5-flash",
	"gemini-1.5-pro",
}

var errNoModels = errors.New("no model available")

// Engine implements session.ContentProvider. It never fails: every error
// from the generation service ends in offline content.
type Engine struct {
	gen       TextGenerator
	models    []string
	wordLimit int
	logger    *slog.Logger
}

// EngineConfig configures an Engine.
type EngineConfig struct {
	// Model is tried first, ahead of DefaultModels.
	Model     string
	WordLimit int
	Logger    *slog.Logger
}

// NewEngine builds an Engine. A nil gen, or a GeminiClient without
// credentials, puts the engine in offline mode.
func NewEngine(gen TextGenerator, cfg EngineConfig) *Engine {
	if c, ok := gen.(*GeminiClient); ok && !c.HasCredentials() {
		gen = nil
	}
	if cfg.WordLimit <= 0 {
		cfg.WordLimit = DefaultWordLimit
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Engine{
		gen:       gen,
		models:    modelChain(cfg.Model),
		wordLimit: cfg.WordLimit,
		logger:    cfg.Logger,
	}
}

// Online reports whether the engine will call the generation service.
func (e *Engine) Online() bool {
	return e.gen != nil
}

// GenerateRound implements session.ContentProvider.
func (e *Engine) GenerateRound(ctx context.Context, req session.RoundRequest) models.RoundContent {
	theme := models.NormalizeTheme(req.Theme)
	if e.gen == nil {
		e.logger.Debug("using offline story", "theme", theme, "round", req.Round, "reason", "no_api_key")
		return offlineRound(theme, req.Round, req.PreviousLabel, e.wordLimit)
	}

	content, model, err := e.generateOnline(ctx, req)
	if err != nil {
		e.logger.Warn("story generation failed, using offline story",
			"theme", theme, "round", req.Round, "error", err)
		return offlineRound(theme, req.Round, req.PreviousLabel, e.wordLimit)
	}
	e.logger.Info("story generated", "theme", theme, "round", req.Round, "model", model)
	return content
}

// generateOnline walks the model chain. Models reported unavailable are
// skipped; any other failure ends the attempt.
func (e *Engine) generateOnline(ctx context.Context, req session.RoundRequest) (models.RoundContent, string, error) {
	prompt := buildPrompt(req, e.wordLimit)
	lastErr := errNoModels
	for _, model := range e.models {
		if err := ctx.Err(); err != nil {
			return models.RoundContent{}, "", err
		}
		reply, err := e.gen.GenerateText(ctx, model, prompt)
		if err != nil {
			if errors.Is(err, ErrModelUnavailable) {
				e.logger.Debug("model unavailable, trying next", "model", model, "error", err)
				lastErr = err
				continue
			}
			return models.RoundContent{}, "", err
		}

		content, err := parseRoundReply(reply)
		if err != nil {
			return models.RoundContent{}, "", fmt.Errorf("model %s: %w", model, err)
		}
		if req.PreviousStory != "" {
			content.Story = EnsureChoiceLeadIn(content.Story, req.PreviousChoice)
		}
		content.Story = EnforceWordLimit(content.Story, e.wordLimit)
		return content, model, nil
	}
	return models.RoundContent{}, "", lastErr
}

func modelChain(preferred string) []string {
	chain := make([]string, 0, len(DefaultModels)+1)
	if preferred = strings.TrimSpace(preferred); preferred != "" {
		chain = append(chain, preferred)
	}
	for _, m := range DefaultModels {
		if !slices.Contains(chain, m) {
			chain = append(chain, m)
		}
	}
	return chain
}
