package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/sandeepkv93/doable/internal/model"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"
	// DefaultModel is used when no model is configured.
	DefaultModel = "gemini-2.0-flash"
)

// HTTPClient abstracts HTTP requests for testing
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client wraps the generative model API behind three task-list intents.
// Every public method absorbs its own failures and returns a documented
// default, so callers never receive an error from this package. A client
// without an API key degrades the same way: every call falls back.
type Client struct {
	httpClient HTTPClient
	logger     *slog.Logger
	apiKey     string
	model      string
	baseURL    string
}

func NewClient(httpClient HTTPClient, logger *slog.Logger, apiKey, modelName string) *Client {
	if modelName == "" {
		modelName = DefaultModel
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		httpClient: httpClient,
		logger:     logger,
		apiKey:     apiKey,
		model:      modelName,
		baseURL:    defaultBaseURL,
	}
}

// generateRequest represents a generateContent request
type generateRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   *responseSchema `json:"responseSchema,omitempty"`
}

type responseSchema struct {
	Type  string          `json:"type"`
	Items *responseSchema `json:"items,omitempty"`
}

// generateResponse represents a generateContent response
type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// generate makes a request to the model API and returns the first text part.
func (c *Client) generate(ctx context.Context, system, prompt string, cfg *generationConfig) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("api key not set")
	}

	reqBody := generateRequest{
		Contents:         []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: cfg,
	}
	if system != "" {
		reqBody.SystemInstruction = &content{Parts: []part{{Text: system}}}
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var apiResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(apiResp.Candidates) == 0 || len(apiResp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("empty response from model")
	}

	return apiResp.Candidates[0].Content.Parts[0].Text, nil
}

// parseJSONResponse extracts and parses JSON from a model response
func parseJSONResponse(text string, target any) error {
	jsonStr := strings.TrimSpace(text)

	// Strip ```json ... ``` fences when the model wraps its output anyway
	jsonRegex := regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)```")
	if matches := jsonRegex.FindStringSubmatch(jsonStr); len(matches) > 1 {
		jsonStr = strings.TrimSpace(matches[1])
	}

	if err := json.Unmarshal([]byte(jsonStr), target); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	return nil
}

// Decompose asks the model to split the task into a handful of subtasks.
// Any transport or parse failure yields an empty slice, which callers read
// as "no breakdown available", never as an error.
func (c *Client) Decompose(ctx context.Context, taskText string) []string {
	cfg := &generationConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &responseSchema{
			Type:  "ARRAY",
			Items: &responseSchema{Type: "STRING"},
		},
	}

	response, err := c.generate(ctx, decomposeSystem, decomposePrompt+taskText, cfg)
	if err != nil {
		c.logger.Warn("decompose failed", "error", err)
		return nil
	}

	var raw []string
	if err := parseJSONResponse(response, &raw); err != nil {
		c.logger.Warn("decompose returned unparseable data", "error", err)
		return nil
	}

	subtasks := make([]string, 0, len(raw))
	for _, sub := range raw {
		if trimmed := strings.TrimSpace(sub); trimmed != "" {
			subtasks = append(subtasks, trimmed)
		}
	}
	return subtasks
}

// SuggestPriority maps the model's one-word answer onto a priority. The
// exact answers High and Medium are honored and anything else counts as
// Low, while a failed call defaults to Medium. The two defaults differ on
// purpose; do not unify them.
func (c *Client) SuggestPriority(ctx context.Context, taskText string) model.Priority {
	response, err := c.generate(ctx, prioritySystem, priorityPrompt+taskText, nil)
	if err != nil {
		c.logger.Warn("priority suggestion failed", "error", err)
		return model.PriorityMedium
	}

	switch strings.TrimSpace(response) {
	case "High":
		return model.PriorityHigh
	case "Medium":
		return model.PriorityMedium
	default:
		return model.PriorityLow
	}
}

// Motivate returns one short line of encouragement sized to the number of
// pending tasks. The model's text comes back verbatim; a failed call or an
// empty reply yields one of the canned lines instead.
func (c *Client) Motivate(ctx context.Context, pendingCount int) string {
	response, err := c.generate(ctx, motivateSystem, fmt.Sprintf(motivatePrompt, pendingCount), nil)
	if err != nil {
		c.logger.Warn("motivation fetch failed", "error", err)
		return fallbackMotivation
	}
	if strings.TrimSpace(response) == "" {
		return emptyMotivation
	}
	return response
}
