package questionbank

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/models"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	b, err := Load("does-not-exist.json")
	if err == nil {
		t.Fatal("expected load error for missing file")
	}
	if len(b.Questions("software_engineer")) == 0 {
		t.Fatal("built-in defaults missing")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.json")
	data := `{"qa_engineer":[{"question":"How do you design a regression suite?","type":"technical","difficulty":"medium"}]}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	b, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	qs := b.Questions("QA Engineer")
	if len(qs) != 1 || qs[0].Provenance != models.ProvenanceBank {
		t.Fatalf("got %+v", qs)
	}
}

func TestUnknownRoleFallsBackToDefault(t *testing.T) {
	b, _ := Load("does-not-exist.json")
	if len(b.Questions("underwater_basket_weaver")) == 0 {
		t.Fatal("unknown role returned no questions")
	}
}

func TestDrawCyclesWithRepeats(t *testing.T) {
	b, _ := Load("does-not-exist.json")
	size := len(b.Questions("software_engineer"))
	if size == 0 {
		t.Fatal("empty default bank")
	}

	// drawing more than the bank holds must still return the full count
	got := b.Draw("software_engineer", size+3)
	if len(got) != size+3 {
		t.Fatalf("drew %d, want %d", len(got), size+3)
	}
	if got[0].Text != got[size].Text {
		t.Fatalf("cycling broken: %q vs %q", got[0].Text, got[size].Text)
	}
}

func TestDrawAdvancesCursor(t *testing.T) {
	b, _ := Load("does-not-exist.json")
	a := b.Draw("software_engineer", 1)
	c := b.Draw("software_engineer", 1)
	if a[0].Text == c[0].Text {
		t.Fatal("cursor did not advance between draws")
	}
}
