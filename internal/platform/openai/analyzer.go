// Package openai implements the recognition.Analyzer interface against the
// OpenAI chat-completions API using a vision-capable model. It is the default
// recognition backend.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/nutrisnap/internal/domain"
	"github.com/phrazzld/nutrisnap/internal/recognition"
)

const defaultBaseURL = "https://api.openai.com/v1"

// Config holds the settings for the OpenAI recognition backend.
type Config struct {
	// APIKey authenticates against the OpenAI API. Required.
	APIKey string

	// Model is the vision-capable model name, e.g. "gpt-4o". Required.
	Model string

	// BaseURL overrides the API endpoint. Empty means the public API.
	BaseURL string

	// Timeout bounds each outbound call. Zero means 60 seconds.
	Timeout time.Duration

	// HTTPClient overrides the HTTP client, primarily for tests.
	// Nil means a default client with the configured timeout.
	HTTPClient *http.Client
}

// Analyzer calls the OpenAI chat-completions endpoint with the embedded
// instruction set, the strict JSON output contract, and the image reference
// flagged for high-detail inspection.
type Analyzer struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
}

var _ recognition.Analyzer = (*Analyzer)(nil)

// NewAnalyzer creates an OpenAI-backed analyzer.
// Returns recognition.ErrInvalidConfig if the API key or model is missing.
func NewAnalyzer(cfg Config, logger *slog.Logger) (*Analyzer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: openai API key cannot be empty", recognition.ErrInvalidConfig)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", recognition.ErrInvalidConfig)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	if logger == nil {
		return nil, fmt.Errorf("%w: logger cannot be nil", recognition.ErrInvalidConfig)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Analyzer{
		cfg:        cfg,
		httpClient: httpClient,
		logger:     logger.With("component", "openai_analyzer", "model", cfg.Model),
	}, nil
}

// Request/response wire types for the chat-completions endpoint. Only the
// fields this client uses are modeled.

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL    string `json:"url"`
	Detail string `json:"detail"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Analyze sends the image reference to the chat-completions endpoint and
// parses the JSON payload from the model's reply into an analysis result.
func (a *Analyzer) Analyze(ctx context.Context, imageRef string) (*domain.AnalysisResult, error) {
	if imageRef == "" {
		return nil, fmt.Errorf("%w: image reference cannot be empty", domain.ErrInvalidInput)
	}

	reqBody := chatRequest{
		Model: a.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: recognition.SystemInstruction},
			{Role: "user", Content: []contentPart{
				{Type: "text", Text: recognition.AnalysisPrompt},
				{Type: "image_url", ImageURL: &imageURL{URL: imageRef, Detail: "high"}},
			}},
		},
		// The itemized analyses run long; low temperature keeps the
		// estimates stable across calls.
		MaxTokens:   3000,
		Temperature: 0.1,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		a.cfg.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.cfg.APIKey)

	a.logger.DebugContext(ctx, "calling recognition service")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", recognition.ErrTransportFailure, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: status=%d body=%s",
			recognition.ErrTransportFailure, resp.StatusCode, string(body))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response envelope: %v",
			recognition.ErrInvalidResponse, err)
	}

	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("%w: empty completion", recognition.ErrInvalidResponse)
	}

	result, err := recognition.ParsePayload(parsed.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	a.logger.DebugContext(ctx, "recognition call succeeded", "foods", len(result.Foods))
	return result, nil
}
