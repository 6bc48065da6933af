package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sethvargo/go-retry"

	"github.com/avenk/careerpath-be/internal/models"
)

// GeminiConfig holds the connection settings for the Gemini REST API.
type GeminiConfig struct {
	BaseURL    string
	APIKey     string
	Model      string
	Timeout    time.Duration
	MaxRetries int
}

// GeminiClient implements Gateway against the Gemini generateContent REST
// endpoint. Every call carries a bounded timeout, and transient failures are
// retried with exponential backoff before giving up.
type GeminiClient struct {
	cfg    GeminiConfig
	client *http.Client
}

// NewGeminiClient creates a gateway client.
func NewGeminiClient(cfg GeminiConfig) *GeminiClient {
	return &GeminiClient{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// GenerateQuestions asks the gateway for five survey questions.
func (c *GeminiClient) GenerateQuestions(ctx context.Context, previous []models.QuestionResponse) ([]models.Question, error) {
	raw, err := c.generate(ctx, questionsPrompt(previous))
	if err != nil {
		return nil, err
	}

	var questions []models.Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		log.Warn().Err(err).Msg("Gateway returned malformed question JSON")
		return nil, fmt.Errorf("%w: malformed questions payload", models.ErrGatewayUnavailable)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: empty question set", models.ErrGatewayUnavailable)
	}
	return questions, nil
}

// AnalyzeResponses asks the gateway for the career analysis of a response set.
func (c *GeminiClient) AnalyzeResponses(ctx context.Context, responses []models.QuestionResponse) (json.RawMessage, error) {
	raw, err := c.generate(ctx, analysisPrompt(responses))
	if err != nil {
		return nil, err
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("%w: malformed analysis payload", models.ErrGatewayUnavailable)
	}
	return raw, nil
}

// GenerateRoadmap asks the gateway for a roadmap toward the given career.
func (c *GeminiClient) GenerateRoadmap(ctx context.Context, careerTitle string, profile json.RawMessage) (json.RawMessage, error) {
	raw, err := c.generate(ctx, roadmapPrompt(careerTitle, profile))
	if err != nil {
		return nil, err
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("%w: malformed roadmap payload", models.ErrGatewayUnavailable)
	}
	return raw, nil
}

// generate issues one prompt and returns the model's JSON text. Server-side
// errors are retried up to MaxRetries with exponential backoff; client-side
// rejections are terminal.
func (c *GeminiClient) generate(ctx context.Context, prompt string) ([]byte, error) {
	body, err := json.Marshal(generateRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{ResponseMimeType: "application/json"},
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.cfg.BaseURL, c.cfg.Model, c.cfg.APIKey)

	var out []byte
	backoff := retry.WithMaxRetries(uint64(c.cfg.MaxRetries), retry.NewExponential(500*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		out, err = c.doRequest(ctx, url, body)
		if err != nil {
			var terminal *terminalError
			if errors.As(err, &terminal) {
				return terminal.err
			}
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, models.ErrGatewayTimeout
		}
		if errors.Is(err, models.ErrGatewayTimeout) || errors.Is(err, models.ErrGatewayUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", models.ErrGatewayUnavailable, err)
	}
	return out, nil
}

// terminalError marks failures that a retry cannot fix.
type terminalError struct {
	err error
}

func (e *terminalError) Error() string { return e.err.Error() }
func (e *terminalError) Unwrap() error { return e.err }

func (c *GeminiClient) doRequest(ctx context.Context, url string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &terminalError{err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &terminalError{err: models.ErrGatewayTimeout}
		}
		// Covers the client-level timeout as well as connection failures.
		var netErr interface{ Timeout() bool }
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, &terminalError{err: models.ErrGatewayTimeout}
		}
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("gateway status %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, &terminalError{err: fmt.Errorf("%w: gateway status %d", models.ErrGatewayUnavailable, resp.StatusCode)}
	}

	var gr generateResponse
	if err := json.Unmarshal(payload, &gr); err != nil {
		return nil, &terminalError{err: fmt.Errorf("%w: %v", models.ErrGatewayUnavailable, err)}
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return nil, &terminalError{err: fmt.Errorf("%w: empty response", models.ErrGatewayUnavailable)}
	}
	return []byte(gr.Candidates[0].Content.Parts[0].Text), nil
}
