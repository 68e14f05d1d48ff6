package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Interview settings. The target length band mirrors the question bank
// management defaults; weights must sum to 1.
type InterviewConfig struct {
	MinQuestions     int
	MaxQuestions     int
	DefaultQuestions int

	ConfidenceWeight   float64
	VoiceWeight        float64
	BodyLanguageWeight float64

	// Answer score vs physical score blend at commit.
	AnswerWeight   float64
	PhysicalWeight float64

	ProviderTimeout time.Duration
	ScorePrecision  int // decimal places for rounded scores
}

func Interview() InterviewConfig {
	c := InterviewConfig{
		MinQuestions:     envInt("MIN_QUESTIONS", 10),
		MaxQuestions:     envInt("MAX_QUESTIONS", 15),
		DefaultQuestions: envInt("DEFAULT_QUESTIONS", 12),

		ConfidenceWeight:   envFloat("CONFIDENCE_WEIGHT", 0.4),
		VoiceWeight:        envFloat("VOICE_WEIGHT", 0.35),
		BodyLanguageWeight: envFloat("BODY_LANGUAGE_WEIGHT", 0.25),

		AnswerWeight:   0.7,
		PhysicalWeight: 0.3,

		ProviderTimeout: envDuration("PROVIDER_TIMEOUT", 15*time.Second),
		ScorePrecision:  2,
	}
	if c.DefaultQuestions < c.MinQuestions {
		c.DefaultQuestions = c.MinQuestions
	}
	if c.DefaultQuestions > c.MaxQuestions {
		c.DefaultQuestions = c.MaxQuestions
	}
	return c
}

// Provider credentials and ordering.
type ProviderConfig struct {
	Order []string // e.g. ["openrouter","deepseek","huggingface","vertex"]

	OpenRouterKey  string
	DeepSeekKey    string
	HuggingFaceKey string

	VertexProject  string
	VertexLocation string
	VertexModel    string
}

func Providers() ProviderConfig {
	order := []string{"openrouter", "deepseek", "huggingface", "vertex"}
	if raw := strings.TrimSpace(os.Getenv("PROVIDER_ORDER")); raw != "" {
		order = order[:0]
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(strings.ToLower(p)); p != "" {
				order = append(order, p)
			}
		}
	}
	return ProviderConfig{
		Order:          order,
		OpenRouterKey:  os.Getenv("ROUTER_API_KEY"),
		DeepSeekKey:    os.Getenv("DEEPSEEK_API_KEY"),
		HuggingFaceKey: os.Getenv("HUGGINGFACE_API_KEY"),
		VertexProject:  os.Getenv("VERTEX_PROJECT_ID"),
		VertexLocation: os.Getenv("VERTEX_LOCATION"),
		VertexModel:    os.Getenv("VERTEX_MODEL"),
	}
}

// QuestionBankPath returns the static bank file location.
func QuestionBankPath() string {
	if p := os.Getenv("QUESTION_BANK_PATH"); p != "" {
		return p
	}
	return "data/questions/interview_questions.json"
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
