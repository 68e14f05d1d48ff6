package question

import (
	"context"
	"strings"

	vertexgenai "cloud.google.com/go/vertexai/genai"
	"google.golang.org/api/iterator"

	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/models"
)

// VertexGemini generates questions through the Vertex AI Gemini models.
type VertexGemini struct {
	client *vertexgenai.Client
	model  *vertexgenai.GenerativeModel
}

func NewVertexGemini(ctx context.Context, projectID, location, modelName string) (*VertexGemini, error) {
	c, err := vertexgenai.NewClient(ctx, projectID, location)
	if err != nil {
		return nil, err
	}

	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}

	m := c.GenerativeModel(modelName)
	return &VertexGemini{client: c, model: m}, nil
}

func (v *VertexGemini) Close() error { return v.client.Close() }

func (v *VertexGemini) Name() string { return "vertex-gemini" }

func (v *VertexGemini) Generate(ctx context.Context, req Request) ([]models.Question, error) {
	var text strings.Builder

	it := v.model.GenerateContentStream(ctx, vertexgenai.Text(buildPrompt(req)))
	for {
		resp, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, failf(v.Name(), Unavailable, err)
		}

		for _, cand := range resp.Candidates {
			if cand.Content == nil {
				continue
			}
			for _, part := range cand.Content.Parts {
				if t, ok := part.(vertexgenai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}

	return parseQuestions(v.Name(), text.String())
}
