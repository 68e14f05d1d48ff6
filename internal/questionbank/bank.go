package questionbank

import (
	"encoding/json"
	"os"
	"strings"
	"sync"

	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/models"
)

// DefaultRole is used when a role has no entries of its own.
const DefaultRole = "software_engineer"

// Bank is the read-only role-keyed table of pre-authored questions. It is the
// resolver's final fallback tier, so an interview is never blocked by
// provider outages. Loaded once at process start.
type Bank struct {
	mu    sync.Mutex
	items map[string][]models.Question
	// next cycling offset per role, so repeated draws walk the list
	cursor map[string]int
}

// Load reads the bank file. A missing or unreadable file falls back to the
// built-in defaults rather than failing startup.
func Load(path string) (*Bank, error) {
	b := &Bank{items: defaultBank(), cursor: map[string]int{}}

	raw, err := os.ReadFile(path)
	if err != nil {
		return b, err
	}

	var parsed map[string][]models.Question
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return b, err
	}

	for role, qs := range parsed {
		kept := qs[:0]
		for _, q := range qs {
			q.Text = strings.TrimSpace(q.Text)
			if q.Text == "" {
				continue
			}
			q.Provenance = models.ProvenanceBank
			kept = append(kept, q)
		}
		if len(kept) > 0 {
			b.items[normalizeRole(role)] = kept
		}
	}
	return b, nil
}

// Roles lists the roles with dedicated entries.
func (b *Bank) Roles() []string {
	out := make([]string, 0, len(b.items))
	for role := range b.items {
		out = append(out, role)
	}
	return out
}

// Questions returns the raw entries for a role (default role when unknown).
func (b *Bank) Questions(role string) []models.Question {
	qs, ok := b.items[normalizeRole(role)]
	if !ok {
		qs = b.items[DefaultRole]
	}
	return qs
}

// Draw returns count role-appropriate questions, cycling (and repeating when
// the bank is smaller than count) so the caller always gets a full batch.
func (b *Bank) Draw(role string, count int) []models.Question {
	qs := b.Questions(role)
	if len(qs) == 0 || count <= 0 {
		return nil
	}

	key := normalizeRole(role)
	if _, ok := b.items[key]; !ok {
		key = DefaultRole
	}

	b.mu.Lock()
	start := b.cursor[key]
	b.cursor[key] = (start + count) % len(qs)
	b.mu.Unlock()

	out := make([]models.Question, 0, count)
	for i := 0; i < count; i++ {
		q := qs[(start+i)%len(qs)]
		q.Provenance = models.ProvenanceBank
		out = append(out, q)
	}
	return out
}

func normalizeRole(role string) string {
	role = strings.ToLower(strings.TrimSpace(role))
	role = strings.ReplaceAll(role, " ", "_")
	if role == "" {
		return DefaultRole
	}
	return role
}
