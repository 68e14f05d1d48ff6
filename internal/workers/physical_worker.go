package workers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/interview"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/models"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/providers/vision"
	mongorepo "github.com/rishi6824/AIinterview-and-resume-analyser/internal/repositories/mongo"
)

// PhysicalWorkerPool drains raw proctoring media off the Redis stream, scores
// it through the vision analyzer, and feeds the resulting samples into the
// live session. Each accepted sample's running snapshot is published on the
// session's physical channel so clients can render it immediately.
//
// Stream entries carry: session_id, question_index, kind (frame|audio) and a
// base64 payload.
type PhysicalWorkerPool struct {
	Redis      *redis.Client
	Manager    *interview.Manager
	Analyzer   vision.Analyzer
	Samples    mongorepo.SampleRepository // optional audit trail
	NumWorkers int

	Logger *logrus.Logger

	Stream         string
	Group          string
	ConsumerPrefix string
}

func (p *PhysicalWorkerPool) Start(ctx context.Context) error {
	if p.Redis == nil || p.Manager == nil || p.Analyzer == nil {
		return errors.New("PhysicalWorkerPool missing dependency: Redis/Manager/Analyzer must be set")
	}
	if p.Stream == "" {
		p.Stream = "physical:stream"
	}
	if p.Group == "" {
		p.Group = "physical-workers"
	}
	if p.ConsumerPrefix == "" {
		p.ConsumerPrefix = "c"
	}
	if p.NumWorkers <= 0 {
		p.NumWorkers = 5
	}
	if p.Logger == nil {
		p.Logger = logrus.New()
	}

	_ = p.Redis.XGroupCreateMkStream(ctx, p.Stream, p.Group, "0").Err() // ignore BUSYGROUP

	for i := 0; i < p.NumWorkers; i++ {
		consumer := p.ConsumerPrefix + "-" + strconv.Itoa(i+1)
		go p.runConsumer(ctx, consumer)
	}
	return nil
}

func (p *PhysicalWorkerPool) runConsumer(ctx context.Context, consumer string) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res, err := p.Redis.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    p.Group,
			Consumer: consumer,
			Streams:  []string{p.Stream, ">"},
			Count:    10,
			Block:    5 * time.Second,
		}).Result()

		if err != nil {
			if err == redis.Nil {
				continue
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}

		for _, stream := range res {
			for _, msg := range stream.Messages {
				p.handleMsg(ctx, msg)
				_ = p.Redis.XAck(ctx, p.Stream, p.Group, msg.ID).Err()
			}
		}
	}
}

func (p *PhysicalWorkerPool) handleMsg(ctx context.Context, msg redis.XMessage) {
	getStr := func(k string) string {
		v, ok := msg.Values[k]
		if !ok || v == nil {
			return ""
		}
		s, _ := v.(string)
		return s
	}

	sessionID := getStr("session_id")
	kind := getStr("kind")
	questionIndex, err := strconv.Atoi(getStr("question_index"))
	if sessionID == "" || err != nil || (kind != "frame" && kind != "audio") {
		return
	}

	log := p.Logger.WithFields(logrus.Fields{
		"redis_id":       msg.ID,
		"session_id":     sessionID,
		"question_index": questionIndex,
		"kind":           kind,
	})

	payload, err := decodePayload(getStr("payload"))
	if err != nil || len(payload) == 0 {
		log.Warn("unusable media payload")
		return
	}

	sample := models.PhysicalSample{QuestionIndex: questionIndex}
	record := models.SampleRecord{
		SessionID:     sessionID,
		QuestionIndex: questionIndex,
		Kind:          kind,
	}

	switch kind {
	case "frame":
		res, err := p.Analyzer.AnalyzeFrame(ctx, payload)
		if err != nil {
			log.WithError(err).Warn("frame analysis failed")
			return
		}
		sample.Confidence = &res.Confidence
		sample.Posture = &res.Posture
		sample.PersonCount = &res.PersonCount
		sample.PhoneDetected = &res.PhoneDetected
		record.Confidence = res.Confidence
		record.Posture = res.Posture
	case "audio":
		res, err := p.Analyzer.AnalyzeAudio(ctx, payload)
		if err != nil {
			log.WithError(err).Warn("audio analysis failed")
			return
		}
		sample.Voice = &res.Voice
		record.Voice = res.Voice
	}

	snap, accepted, err := p.Manager.PushSample(sessionID, sample)
	if err != nil {
		log.WithError(err).Warn("sample rejected")
		return
	}
	record.Accepted = accepted

	if p.Samples != nil {
		if err := p.Samples.Insert(ctx, &record); err != nil {
			log.WithError(err).Warn("sample audit write failed")
		}
	}

	if !accepted {
		// stale index or finished session
		return
	}

	payloadJSON, _ := json.Marshal(map[string]any{
		"type":           "physical_update",
		"question_index": questionIndex,
		"snapshot":       snap,
	})
	_ = p.Redis.Publish(ctx, "session:"+sessionID+":physical", string(payloadJSON)).Err()
}

func decodePayload(b64 string) ([]byte, error) {
	raw := b64
	if i := strings.Index(raw, ","); i >= 0 {
		raw = raw[i+1:] // strip data:...;base64,
	}
	return base64.StdEncoding.DecodeString(raw)
}
