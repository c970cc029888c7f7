// Package openai is the description generator: one blocking chat-completions
// call per composed prompt, no retries, failures surface to the caller.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const apiURL = "https://api.openai.com/v1/chat/completions"

// systemRole biases the model toward the sales-enablement register every
// strategy shares.
const systemRole = "You are a sales enablement expert who helps salespeople understand prospect intent and behavior."

const maxOutputTokens = 220

// Low temperature: descriptions should read consistent across a batch, not
// creative.
const temperature = 0.2

// ErrUnauthorized marks credential failures. One bad key fails every record
// the same way; the orchestrator surfaces it through aggregated error counts.
var ErrUnauthorized = errors.New("openai: invalid or missing credentials")

// Client calls the OpenAI chat-completions API.
type Client struct {
	apiKey     string
	model      string
	charBudget int
	baseURL    string // overrides apiURL when set; used by tests
	client     *http.Client
	logger     zerolog.Logger
}

// NewClient builds a generator for the given model. charBudget is the
// combined length the three bullet lines are expected to stay under; longer
// responses are accepted but logged.
func NewClient(apiKey, model string, charBudget int, logger zerolog.Logger) *Client {
	return &Client{
		apiKey:     apiKey,
		model:      model,
		charBudget: charBudget,
		client:     &http.Client{Timeout: 60 * time.Second},
		logger:     logger,
	}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type request struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

type response struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Generate sends one prompt and returns the generated description. The
// response is accepted as-is: an over-budget description is a logged quality
// signal, not an error.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := request{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: systemRole},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   maxOutputTokens,
		Temperature: temperature,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("api call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", fmt.Errorf("%w (status %d)", ErrUnauthorized, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error.Message != "" {
			return "", fmt.Errorf("api error %d: %s: %s", resp.StatusCode, errResp.Error.Type, errResp.Error.Message)
		}
		return "", fmt.Errorf("api error %d: %s", resp.StatusCode, string(respBody))
	}

	var apiResp response
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(apiResp.Choices) == 0 {
		return "", fmt.Errorf("empty response choices")
	}

	text := strings.TrimSpace(apiResp.Choices[0].Message.Content)
	if c.charBudget > 0 && len(text) > c.charBudget {
		c.logger.Warn().
			Int("length", len(text)).
			Int("budget", c.charBudget).
			Msg("generated description over character budget")
	}
	return text, nil
}

// endpoint exists so tests can point the client at a local server.
func (c *Client) endpoint() string {
	if c.baseURL != "" {
		return c.baseURL
	}
	return apiURL
}
