package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultEmotionModel   = "trpakov/vit-face-expression"
	defaultDetectionModel = "facebook/detr-resnet-50"
	defaultVoiceModel     = "j-hartmann/emotion-english-distilroberta-base"

	hfInferenceBase = "https://api-inference.huggingface.co/models/"
)

// emotionScores maps facial expressions onto interview confidence. Calm and
// positive expressions read as confident; fear and sadness do not.
var emotionScores = map[string]float64{
	"happy":    8.5,
	"neutral":  7.5,
	"surprise": 6.0,
	"disgust":  4.5,
	"angry":    4.0,
	"sad":      3.5,
	"fear":     3.0,
}

// voiceScores maps vocal emotion onto delivery quality.
var voiceScores = map[string]float64{
	"joy":      8.0,
	"neutral":  7.5,
	"surprise": 6.0,
	"anger":    4.0,
	"disgust":  4.0,
	"sadness":  3.5,
	"fear":     3.0,
}

// HuggingFace analyzes frames and audio segments through hosted inference
// models.
type HuggingFace struct {
	apiKey string
	client *http.Client

	EmotionModel   string
	DetectionModel string
	VoiceModel     string
}

func NewHuggingFace(apiKey string, client *http.Client) *HuggingFace {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &HuggingFace{
		apiKey:         apiKey,
		client:         client,
		EmotionModel:   defaultEmotionModel,
		DetectionModel: defaultDetectionModel,
		VoiceModel:     defaultVoiceModel,
	}
}

type classification struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type detection struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
	Box   struct {
		XMin int `json:"xmin"`
		YMin int `json:"ymin"`
		XMax int `json:"xmax"`
		YMax int `json:"ymax"`
	} `json:"box"`
}

func (h *HuggingFace) AnalyzeFrame(ctx context.Context, image []byte) (FrameResult, error) {
	var res FrameResult

	var emotions []classification
	if err := h.post(ctx, h.EmotionModel, image, &emotions); err != nil {
		return res, err
	}
	res.Confidence = blendScores(emotions, emotionScores)

	var detections []detection
	if err := h.post(ctx, h.DetectionModel, image, &detections); err != nil {
		return res, err
	}

	for _, d := range detections {
		if d.Score < 0.5 {
			continue
		}
		switch strings.ToLower(d.Label) {
		case "person":
			res.PersonCount++
		case "cell phone":
			res.PhoneDetected = true
		}
	}
	res.Posture = postureScore(detections)
	return res, nil
}

func (h *HuggingFace) AnalyzeAudio(ctx context.Context, audio []byte) (AudioResult, error) {
	var emotions []classification
	if err := h.post(ctx, h.VoiceModel, audio, &emotions); err != nil {
		return AudioResult{}, err
	}
	return AudioResult{Voice: blendScores(emotions, voiceScores)}, nil
}

// blendScores weighs each label's anchor score by the model's confidence in
// that label.
func blendScores(cls []classification, anchors map[string]float64) float64 {
	var weighted, total float64
	for _, c := range cls {
		anchor, ok := anchors[strings.ToLower(c.Label)]
		if !ok {
			continue
		}
		weighted += anchor * c.Score
		total += c.Score
	}
	if total == 0 {
		return 5.0
	}
	return weighted / total
}

// postureScore rates how centered and upright the primary person sits in the
// frame. A person box hugging the frame edges means leaning or drifting out
// of view.
func postureScore(detections []detection) float64 {
	var best *detection
	for i := range detections {
		d := &detections[i]
		if strings.ToLower(d.Label) != "person" || d.Score < 0.5 {
			continue
		}
		if best == nil || d.Score > best.Score {
			best = d
		}
	}
	if best == nil {
		return 2.0
	}

	width := best.Box.XMax - best.Box.XMin
	height := best.Box.YMax - best.Box.YMin
	if width <= 0 || height <= 0 {
		return 5.0
	}

	score := 7.0
	if height > width {
		score += 1.5
	}
	if best.Box.YMin < 20 {
		score += 0.5
	}
	if score > 10 {
		score = 10
	}
	return score
}

func (h *HuggingFace) post(ctx context.Context, model string, body []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, hfInferenceBase+model, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+h.apiKey)

	resp, err := h.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("vision: %s returned status %d", model, resp.StatusCode)
	}
	return json.Unmarshal(raw, out)
}
