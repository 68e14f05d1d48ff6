package question

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/models"
)

const (
	openRouterURL = "https://openrouter.ai/api/v1/chat/completions"
	deepSeekURL   = "https://api.deepseek.com/v1/chat/completions"
)

// chatClient talks to any chat-completions compatible endpoint. OpenRouter
// and DeepSeek share the wire format.
type chatClient struct {
	name     string
	endpoint string
	apiKey   string
	model    string
	client   *http.Client
}

// NewOpenRouter returns the OpenRouter-backed provider.
func NewOpenRouter(apiKey, model string, client *http.Client) Provider {
	if model == "" {
		model = "mistralai/mistral-7b-instruct"
	}
	return &chatClient{name: "openrouter", endpoint: openRouterURL, apiKey: apiKey, model: model, client: client}
}

// NewDeepSeek returns the DeepSeek-backed provider.
func NewDeepSeek(apiKey string, client *http.Client) Provider {
	return &chatClient{name: "deepseek", endpoint: deepSeekURL, apiKey: apiKey, model: "deepseek-chat", client: client}
}

func (c *chatClient) Name() string { return c.name }

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *chatClient) Generate(ctx context.Context, req Request) ([]models.Question, error) {
	if c.apiKey == "" {
		return nil, failf(c.name, Unavailable, fmt.Errorf("api key not configured"))
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You generate structured interview questions as JSON."},
			{Role: "user", Content: buildPrompt(req)},
		},
	})
	if err != nil {
		return nil, failf(c.name, Malformed, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, failf(c.name, Unavailable, err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, failf(c.name, Unavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, failf(c.name, RateLimited, fmt.Errorf("status %d", resp.StatusCode))
	case resp.StatusCode != http.StatusOK:
		return nil, failf(c.name, Unavailable, fmt.Errorf("status %d", resp.StatusCode))
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, failf(c.name, Unavailable, err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, failf(c.name, Malformed, err)
	}
	if len(parsed.Choices) == 0 {
		return nil, failf(c.name, Malformed, fmt.Errorf("empty choices"))
	}

	return parseQuestions(c.name, parsed.Choices[0].Message.Content)
}
