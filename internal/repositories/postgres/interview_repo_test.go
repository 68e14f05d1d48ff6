package postgres

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/models"
)

func TestFromReport(t *testing.T) {
	rep := &models.FinalReport{
		SessionID:      "id-1",
		CandidateName:  "Sam",
		JobRole:        "product_manager",
		TargetLength:   3,
		Responses:      []models.Response{{Question: "q1", MergedScore: 7}, {Question: "q2", MergedScore: 5}},
		AggregateScore: 6,
		Feedback:       "ok",
		StartTime:      time.Now().UTC(),
		EndTime:        time.Now().UTC(),
		Physical:       models.PhysicalSummary{AvgConfidence: 7.5},
	}

	rec, err := FromReport(rep)
	if err != nil {
		t.Fatal(err)
	}
	if rec.ID != "id-1" || rec.Status != "completed" || rec.CompletedQuestions != 2 {
		t.Fatalf("got %+v", rec)
	}

	var responses []models.Response
	if err := json.Unmarshal(rec.Responses, &responses); err != nil {
		t.Fatal(err)
	}
	if len(responses) != 2 || responses[0].Question != "q1" {
		t.Fatalf("responses round-trip: %+v", responses)
	}

	var phys models.PhysicalSummary
	if err := json.Unmarshal(rec.PhysicalSummary, &phys); err != nil {
		t.Fatal(err)
	}
	if phys.AvgConfidence != 7.5 {
		t.Fatalf("physical round-trip: %+v", phys)
	}
}
