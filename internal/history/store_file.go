package history

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/studykit/mockexam/internal/scoring"
)

// FileStore keeps the whole history as one JSON document under a base
// directory. Writes go through a temp file and rename so a crash cannot
// leave a half-written history behind.
type FileStore struct {
	path string
}

func NewFileStore(base string) (*FileStore, error) {
	if base == "" {
		base = "./data"
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{path: filepath.Join(base, "results.json")}, nil
}

func (s *FileStore) Name() string { return "file" }

func (s *FileStore) Load(_ context.Context) ([]scoring.Result, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	// Decode entry by entry so one malformed record doesn't drop the rest.
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	out := make([]scoring.Result, 0, len(raw))
	for _, msg := range raw {
		var r scoring.Result
		if err := json.Unmarshal(msg, &r); err != nil {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *FileStore) Save(_ context.Context, results []scoring.Result) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStore) Clear(_ context.Context) error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
