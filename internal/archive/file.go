package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/models"
)

type fileSink struct {
	dir string
}

// NewFile archives each report as one pretty-printed JSON file under dir,
// named <candidate>_<session id>.json.
func NewFile(dir string) Sink {
	return &fileSink{dir: dir}
}

func (s *fileSink) Save(_ context.Context, rep *models.FinalReport) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}

	name := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(rep.CandidateName), " ", "_"))
	if name == "" {
		name = "candidate"
	}
	path := filepath.Join(s.dir, fmt.Sprintf("%s_%s.json", name, rep.SessionID))

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
