package story

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
)

// DefaultGeminiBaseURL is the public Generative Language API root.
const DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

const maxResponseBytes = 8 << 20

// ErrModelUnavailable marks provider errors that mean "try the next model".
var ErrModelUnavailable = errors.New("model not available")

// ErrNoCredentials is returned when no API key is configured.
var ErrNoCredentials = errors.New("no API key configured")

// ProviderError is a failed call to the generation service.
type ProviderError struct {
	Model       string
	StatusCode  int
	Message     string
	Unavailable bool
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("model %s: %s", e.Model, e.Message)
	}
	return fmt.Sprintf("model %s: status %d: %s", e.Model, e.StatusCode, e.Message)
}

// Is lets errors.Is(err, ErrModelUnavailable) select skippable failures.
func (e *ProviderError) Is(target error) bool {
	return target == ErrModelUnavailable && e.Unavailable
}

// TextGenerator sends one prompt to one model and returns the raw reply text.
type TextGenerator interface {
	GenerateText(ctx context.Context, model, prompt string) (string, error)
}

// GeminiConfig configures GeminiClient.
type GeminiConfig struct {
	APIKey          string
	BaseURL         string
	HTTPClient      *http.Client
	Temperature     float64
	MaxOutputTokens int
}

// GeminiClient calls the generateContent endpoint of the Gemini REST API.
type GeminiClient struct {
	cfg GeminiConfig
}

// NewGeminiClient builds a GeminiClient, filling in defaults.
func NewGeminiClient(cfg GeminiConfig) *GeminiClient {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = DefaultGeminiBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.7
	}
	if cfg.MaxOutputTokens == 0 {
		cfg.MaxOutputTokens = 1024
	}
	return &GeminiClient{cfg: cfg}
}

// HasCredentials reports whether an API key is configured.
func (c *GeminiClient) HasCredentials() bool {
	return c != nil && strings.TrimSpace(c.cfg.APIKey) != ""
}

// GenerateText implements TextGenerator.
func (c *GeminiClient) GenerateText(ctx context.Context, model, prompt string) (string, error) {
	body, err := c.post(ctx, model, map[string]any{
		"contents": []map[string]any{{
			"role":  "user",
			"parts": []map[string]any{{"text": prompt}},
		}},
		"generationConfig": map[string]any{
			"temperature":     c.cfg.Temperature,
			"maxOutputTokens": c.cfg.MaxOutputTokens,
		},
	})
	if err != nil {
		return "", err
	}

	text := gjson.GetBytes(body, "candidates.0.content.parts.0.text")
	if !text.Exists() || strings.TrimSpace(text.String()) == "" {
		return "", &ProviderError{Model: model, Message: "response has no candidate text"}
	}
	return text.String(), nil
}

// post sends a generateContent request and returns the raw success body.
func (c *GeminiClient) post(ctx context.Context, model string, payload any) ([]byte, error) {
	if !c.HasCredentials() {
		return nil, ErrNoCredentials
	}
	requestBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal generate request: %w", err)
	}
	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.cfg.BaseURL, url.PathEscape(model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(requestBody))
	if err != nil {
		return nil, fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	res, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, &ProviderError{Model: model, Message: err.Error()}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return nil, &ProviderError{Model: model, StatusCode: res.StatusCode, Message: "read response: " + err.Error()}
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 || gjson.GetBytes(body, "error").Exists() {
		return nil, classifyFailure(model, res.StatusCode, body)
	}
	return body, nil
}

// classifyFailure turns an error reply into a ProviderError. Unknown or
// unsupported models are marked Unavailable; everything else is fatal for
// the attempt.
func classifyFailure(model string, statusCode int, body []byte) *ProviderError {
	apiErr := gjson.GetBytes(body, "error")
	message := strings.TrimSpace(apiErr.Get("message").String())
	if message == "" {
		message = http.StatusText(statusCode)
	}
	status := apiErr.Get("status").String()
	return &ProviderError{
		Model:       model,
		StatusCode:  statusCode,
		Message:     message,
		Unavailable: statusCode == http.StatusNotFound || status == "NOT_FOUND",
	}
}
