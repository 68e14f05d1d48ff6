package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/models"
)

const hfInferenceURL = "https://api-inference.huggingface.co/models"

// HuggingFace scores answers with a zero-shot classification model: the
// answer is classified against quality labels and the label weights map onto
// the 0-10 scale.
type HuggingFace struct {
	apiKey string
	model  string
	client *http.Client
}

func NewHuggingFace(apiKey, model string, client *http.Client) *HuggingFace {
	if model == "" {
		model = "facebook/bart-large-mnli"
	}
	return &HuggingFace{apiKey: apiKey, model: model, client: client}
}

func (h *HuggingFace) Name() string { return "huggingface" }

var qualityLabels = []string{
	"a strong, detailed, relevant answer",
	"an adequate answer",
	"a weak or off-topic answer",
}

// label index -> band anchor on the 0-10 scale
var labelAnchors = []float64{9.0, 6.0, 3.0}

func (h *HuggingFace) Score(ctx context.Context, role models.RoleContext, questionText, answer string) (float64, string, error) {
	if h.apiKey == "" {
		return 0, "", failf(h.Name(), Unavailable, fmt.Errorf("api key not configured"))
	}

	input := fmt.Sprintf("Question: %s\nAnswer: %s", questionText, answer)
	payload, err := json.Marshal(map[string]any{
		"inputs": input,
		"parameters": map[string]any{
			"candidate_labels": strings.Join(qualityLabels, ","),
		},
	})
	if err != nil {
		return 0, "", failf(h.Name(), Malformed, err)
	}

	url := fmt.Sprintf("%s/%s", hfInferenceURL, h.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return 0, "", failf(h.Name(), Unavailable, err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+h.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(httpReq)
	if err != nil {
		return 0, "", failf(h.Name(), Unavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return 0, "", failf(h.Name(), RateLimited, fmt.Errorf("status %d", resp.StatusCode))
	case resp.StatusCode != http.StatusOK:
		return 0, "", failf(h.Name(), Unavailable, fmt.Errorf("status %d", resp.StatusCode))
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, "", failf(h.Name(), Unavailable, err)
	}

	var parsed struct {
		Labels []string  `json:"labels"`
		Scores []float64 `json:"scores"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return 0, "", failf(h.Name(), Malformed, err)
	}
	if len(parsed.Labels) == 0 || len(parsed.Labels) != len(parsed.Scores) {
		return 0, "", failf(h.Name(), Malformed, fmt.Errorf("label/score mismatch"))
	}

	// Weighted blend of band anchors by classifier confidence.
	var score, total float64
	for i, label := range parsed.Labels {
		for j, known := range qualityLabels {
			if label == known {
				score += labelAnchors[j] * parsed.Scores[i]
				total += parsed.Scores[i]
			}
		}
	}
	if total == 0 {
		return 0, "", failf(h.Name(), Malformed, fmt.Errorf("no known labels in response"))
	}

	score = score / total
	remark := fmt.Sprintf("Classified as %s.", parsed.Labels[0])
	return score, remark, nil
}
