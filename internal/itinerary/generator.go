package itinerary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"mex/internal/config"
	"mex/internal/middleware"
	"mex/internal/models"

	"github.com/google/uuid"
)

const (
	generationMaxAttempts = 3
	generationTimeout     = 60 * time.Second
)

// Proposal is one generated itinerary option before persistence.
type Proposal struct {
	Title     string           `json:"title"`
	Summary   string           `json:"summary"`
	Itinerary models.Itinerary `json:"itinerary"`
}

// Generator produces itinerary proposals through a Gemini-style REST API.
type Generator struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	backoff    time.Duration
}

// NewGenerator builds a Generator from configuration.
func NewGenerator(cfg *config.Config) *Generator {
	return &Generator{
		httpClient: &http.Client{Timeout: generationTimeout},
		baseURL:    strings.TrimSuffix(cfg.GenerationBaseURL, "/"),
		apiKey:     cfg.GenerationAPIKey,
		model:      cfg.GenerationModel,
		backoff:    2 * time.Second,
	}
}

// NewGeneratorWithClient is used by tests to point at a stub server.
func NewGeneratorWithClient(client *http.Client, baseURL, apiKey, model string) *Generator {
	return &Generator{
		httpClient: client,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		backoff:    2 * time.Second,
	}
}

type promptPart struct {
	Text string `json:"text"`
}

type promptContent struct {
	Parts []promptPart `json:"parts"`
}

type generateRequest struct {
	Contents []promptContent `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content promptContent `json:"content"`
	} `json:"candidates"`
}

// GenerateProposals asks the generation service for itinerary proposals.
//
// Transient overload (HTTP 503) is retried up to three attempts with a
// linear backoff of attempt*2s. Any other failure is returned immediately.
func (g *Generator) GenerateProposals(ctx context.Context, prompt string) ([]Proposal, error) {
	correlationID := uuid.NewString()
	logger := middleware.Logger.With(
		slog.String("correlation_id", correlationID),
		slog.String("model", g.model),
	)

	body := generateRequest{
		Contents: []promptContent{{Parts: []promptPart{{Text: prompt}}}},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)

	var lastErr error
	for attempt := 1; attempt <= generationMaxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := g.httpClient.Do(req)
		if err != nil {
			middleware.GenerationRequests.WithLabelValues("failure").Inc()
			return nil, models.NewUpstreamError("generation", err)
		}

		if resp.StatusCode == http.StatusServiceUnavailable {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			lastErr = fmt.Errorf("generation service overloaded (attempt %d)", attempt)
			logger.WarnContext(ctx, "Generation service overloaded, retrying",
				slog.Int("attempt", attempt))
			middleware.GenerationRequests.WithLabelValues("retry").Inc()
			if attempt < generationMaxAttempts {
				select {
				case <-time.After(time.Duration(attempt) * g.backoff):
				case <-ctx.Done():
					return nil, models.NewUpstreamError("generation", ctx.Err())
				}
			}
			continue
		}

		proposals, err := g.decodeResponse(resp)
		if err != nil {
			middleware.GenerationRequests.WithLabelValues("failure").Inc()
			logger.ErrorContext(ctx, "Generation request failed", slog.String("error", err.Error()))
			return nil, err
		}

		middleware.GenerationRequests.WithLabelValues("success").Inc()
		logger.InfoContext(ctx, "Generation request succeeded",
			slog.Int("attempt", attempt),
			slog.Int("proposals", len(proposals)))
		return proposals, nil
	}

	middleware.GenerationRequests.WithLabelValues("failure").Inc()
	return nil, models.NewUpstreamError("generation", lastErr)
}

func (g *Generator) decodeResponse(resp *http.Response) ([]Proposal, error) {
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, models.NewUpstreamError("generation",
			fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw))))
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, models.NewUpstreamError("generation", fmt.Errorf("invalid response body: %w", err))
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return nil, models.NewUpstreamError("generation", fmt.Errorf("response contained no candidates"))
	}

	text := StripJSONFences(decoded.Candidates[0].Content.Parts[0].Text)

	var payload struct {
		Proposals []Proposal `json:"proposals"`
	}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, models.NewUpstreamError("generation", fmt.Errorf("model returned malformed JSON: %w", err))
	}
	if len(payload.Proposals) == 0 {
		return nil, models.NewUpstreamError("generation", fmt.Errorf("model returned no proposals"))
	}
	return payload.Proposals, nil
}

// StripJSONFences removes a markdown code fence wrapper that generation
// models sometimes emit around JSON payloads.
func StripJSONFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}
	return strings.TrimSpace(text)
}
