package story

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"partytale/backend/internal/models"
)

// DefaultImageModel is used when ImageConfig.Model is empty.
const DefaultImageModel = "gemini-2.5-flash-image"

// DefaultImageTimeout bounds one illustration request.
const DefaultImageTimeout = 15 * time.Second

var errNoImage = errors.New("response has no image data")

// ImageRequest describes the scene to illustrate.
type ImageRequest struct {
	Story  string
	Choice string
	Theme  string
}

// ImageResult holds an illustration as a data URL. An empty DataURL means
// no image; Err records why, for diagnostics only.
type ImageResult struct {
	DataURL string
	Err     error
}

// ImageConfig configures an ImageEngine.
type ImageConfig struct {
	Model   string
	Timeout time.Duration
	Logger  *slog.Logger
}

// ImageEngine renders scene illustrations. Missing credentials and service
// failures both yield an empty result.
type ImageEngine struct {
	client  *GeminiClient
	model   string
	timeout time.Duration
	logger  *slog.Logger
}

// NewImageEngine builds an ImageEngine on top of client.
func NewImageEngine(client *GeminiClient, cfg ImageConfig) *ImageEngine {
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = DefaultImageModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultImageTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &ImageEngine{client: client, model: cfg.Model, timeout: cfg.Timeout, logger: cfg.Logger}
}

// GenerateImage returns an illustration for req, or an empty result.
func (e *ImageEngine) GenerateImage(ctx context.Context, req ImageRequest) ImageResult {
	if !e.client.HasCredentials() {
		e.logger.Debug("image generation skipped", "reason", "no_api_key")
		return ImageResult{Err: ErrNoCredentials}
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	body, err := e.client.post(ctx, e.model, map[string]any{
		"contents": []map[string]any{{
			"role":  "user",
			"parts": []map[string]any{{"text": buildImagePrompt(req)}},
		}},
		"generationConfig": map[string]any{
			"responseModalities": []string{"TEXT", "IMAGE"},
		},
	})
	if err != nil {
		e.logger.Warn("image generation failed", "model", e.model, "error", err)
		return ImageResult{Err: err}
	}

	dataURL, err := extractImage(body)
	if err != nil {
		e.logger.Warn("image generation failed", "model", e.model, "error", err)
		return ImageResult{Err: err}
	}
	return ImageResult{DataURL: dataURL}
}

func buildImagePrompt(req ImageRequest) string {
	return strings.Join([]string{
		"Create a single cinematic illustration that matches the story context.",
		"Keep character designs consistent with the profile below.",
		"",
		"CHARACTER PROFILE: " + VisualProfile(req.Theme),
		"",
		"STORY CONTEXT: " + req.Story,
		"SELECTED CHOICE: " + req.Choice,
		"",
		"STYLE: cinematic, " + models.NormalizeTheme(req.Theme) + " mood, soft lighting, high detail, consistent character faces.",
	}, "\n")
}

// extractImage finds base64 image bytes in any of the reply shapes the
// image endpoints use and returns them as a data URL.
func extractImage(body []byte) (string, error) {
	for _, path := range []string{
		"generatedImages.0.bytesBase64Encoded",
		"predictions.0.bytesBase64Encoded",
	} {
		if data := gjson.GetBytes(body, path).String(); data != "" {
			return "data:image/png;base64," + data, nil
		}
	}

	var dataURL string
	gjson.GetBytes(body, "candidates.0.content.parts").ForEach(func(_, part gjson.Result) bool {
		data := part.Get("inlineData.data").String()
		if data == "" {
			return true
		}
		mime := part.Get("inlineData.mimeType").String()
		if mime == "" {
			mime = "image/png"
		}
		dataURL = "data:" + mime + ";base64," + data
		return false
	})
	if dataURL == "" {
		return "", errNoImage
	}
	return dataURL, nil
}
