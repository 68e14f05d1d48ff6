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

const hfInferenceURL = "https://api-inference.huggingface.co/models"

// HuggingFace calls the hosted inference API with a text-generation model.
type HuggingFace struct {
	apiKey string
	model  string
	client *http.Client
}

func NewHuggingFace(apiKey, model string, client *http.Client) *HuggingFace {
	if model == "" {
		model = "mistralai/Mistral-7B-Instruct-v0.2"
	}
	return &HuggingFace{apiKey: apiKey, model: model, client: client}
}

func (h *HuggingFace) Name() string { return "huggingface" }

func (h *HuggingFace) Generate(ctx context.Context, req Request) ([]models.Question, error) {
	if h.apiKey == "" {
		return nil, failf(h.Name(), Unavailable, fmt.Errorf("api key not configured"))
	}

	payload, err := json.Marshal(map[string]any{
		"inputs": buildPrompt(req),
		"parameters": map[string]any{
			"max_new_tokens":   768,
			"return_full_text": false,
		},
	})
	if err != nil {
		return nil, failf(h.Name(), Malformed, err)
	}

	url := fmt.Sprintf("%s/%s", hfInferenceURL, h.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, failf(h.Name(), Unavailable, err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+h.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(httpReq)
	if err != nil {
		return nil, failf(h.Name(), Unavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, failf(h.Name(), RateLimited, fmt.Errorf("status %d", resp.StatusCode))
	case resp.StatusCode != http.StatusOK:
		// 503 here usually means the model is cold-loading
		return nil, failf(h.Name(), Unavailable, fmt.Errorf("status %d", resp.StatusCode))
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, failf(h.Name(), Unavailable, err)
	}

	var gen []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(raw, &gen); err != nil || len(gen) == 0 {
		return nil, failf(h.Name(), Malformed, fmt.Errorf("unexpected inference payload"))
	}

	return parseQuestions(h.Name(), gen[0].GeneratedText)
}
