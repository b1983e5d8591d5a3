// Package gemini implements the recognition.Analyzer interface using Google's
// Gemini API as an alternate vision backend, selected via the
// recognition.provider configuration setting.
package gemini

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/phrazzld/nutrisnap/internal/domain"
	"github.com/phrazzld/nutrisnap/internal/recognition"
)

// Config holds the settings for the Gemini recognition backend.
type Config struct {
	// APIKey authenticates against the Gemini API. Required.
	APIKey string

	// Model is the vision-capable model name, e.g. "gemini-2.0-flash". Required.
	Model string
}

// Analyzer sends meal images to the Gemini API with the shared instruction
// set and output contract, then normalizes the reply through
// recognition.ParsePayload.
type Analyzer struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

var _ recognition.Analyzer = (*Analyzer)(nil)

// NewAnalyzer creates a Gemini-backed analyzer.
// Returns recognition.ErrInvalidConfig if the API key or model is missing.
func NewAnalyzer(ctx context.Context, cfg Config, logger *slog.Logger) (*Analyzer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", recognition.ErrInvalidConfig)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", recognition.ErrInvalidConfig)
	}
	if logger == nil {
		return nil, fmt.Errorf("%w: logger cannot be nil", recognition.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create gemini client: %v",
			recognition.ErrInvalidConfig, err)
	}

	return &Analyzer{
		client: client,
		model:  cfg.Model,
		logger: logger.With("component", "gemini_analyzer", "model", cfg.Model),
	}, nil
}

// Analyze sends the image reference and the analysis prompt to Gemini and
// parses the textual reply into an analysis result.
func (a *Analyzer) Analyze(ctx context.Context, imageRef string) (*domain.AnalysisResult, error) {
	if imageRef == "" {
		return nil, fmt.Errorf("%w: image reference cannot be empty", domain.ErrInvalidInput)
	}

	imagePart, err := imagePartFromRef(imageRef)
	if err != nil {
		return nil, err
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(recognition.AnalysisPrompt),
			imagePart,
		}, genai.RoleUser),
	}

	genCfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(recognition.SystemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.1),
		MaxOutputTokens:   3000,
	}

	a.logger.DebugContext(ctx, "calling recognition service")

	resp, err := a.client.Models.GenerateContent(ctx, a.model, contents, genCfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", recognition.ErrTransportFailure, err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("%w: no content generated", recognition.ErrInvalidResponse)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("%w: empty completion", recognition.ErrInvalidResponse)
	}

	result, err := recognition.ParsePayload(text)
	if err != nil {
		return nil, err
	}

	a.logger.DebugContext(ctx, "recognition call succeeded", "foods", len(result.Foods))
	return result, nil
}

// imagePartFromRef turns an opaque image reference into a genai part. Data
// URIs are decoded into inline bytes; anything else is passed through as a
// file URI.
func imagePartFromRef(imageRef string) (*genai.Part, error) {
	if !strings.HasPrefix(imageRef, "data:") {
		return genai.NewPartFromURI(imageRef, "image/jpeg"), nil
	}

	meta, data, ok := strings.Cut(strings.TrimPrefix(imageRef, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("%w: malformed data URI", domain.ErrInvalidInput)
	}

	mime := strings.TrimSuffix(meta, ";base64")
	if mime == "" {
		mime = "image/jpeg"
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("%w: undecodable data URI: %v", domain.ErrInvalidInput, err)
	}

	return genai.NewPartFromBytes(raw, mime), nil
}
