package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rupeecalc/rupee-calculator/internal/domain"
)

const (
	DefaultModel   = "gpt-4o"
	DefaultBaseURL = "https://api.openai.com/v1"

	defaultTimeout = 30 * time.Second
	temperature    = 0.7
	maxTokens      = 1000
)

// OpenAIConfig configures an OpenAIClient. Empty fields take the defaults.
type OpenAIConfig struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// OpenAIClient asks an OpenAI-compatible chat completions endpoint for advice.
type OpenAIClient struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
	Temperature    float64        `json:"temperature"`
	MaxTokens      int            `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// NewOpenAIClient creates a client from cfg.
func NewOpenAIClient(cfg OpenAIConfig) *OpenAIClient {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: defaultTimeout}
	}
	return &OpenAIClient{
		apiKey:     cfg.APIKey,
		model:      model,
		endpoint:   strings.TrimRight(base, "/") + "/chat/completions",
		httpClient: hc,
	}
}

// Model returns the model name sent with every request.
func (c *OpenAIClient) Model() string { return c.model }

// Advise sends the system prompt and the assembled user prompt and decodes
// the JSON reply. Every failure wraps domain.ErrAdvisorUnavailable.
func (c *OpenAIClient) Advise(ctx context.Context, req AdviceRequest) (domain.Advice, error) {
	prompt, err := BuildPrompt(req)
	if err != nil {
		return domain.Advice{}, err
	}
	content, err := c.complete(ctx, prompt)
	if err != nil {
		return domain.Advice{}, err
	}
	var advice domain.Advice
	if strings.TrimSpace(content) == "" {
		content = "{}"
	}
	if err := json.Unmarshal([]byte(content), &advice); err != nil {
		return domain.Advice{}, unavailable("decode advice: %v", err)
	}
	return withDefaults(advice), nil
}

func (c *OpenAIClient) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: SystemPrompt},
			{Role: "user", Content: prompt},
		},
		ResponseFormat: responseFormat{Type: "json_object"},
		Temperature:    temperature,
		MaxTokens:      maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("encode completion request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", unavailable("build request: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", unavailable("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", unavailable("API error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", unavailable("decode response: %v", err)
	}
	if len(out.Choices) == 0 {
		return "", unavailable("no choices in response")
	}
	return out.Choices[0].Message.Content, nil
}
