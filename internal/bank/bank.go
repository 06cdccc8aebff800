package bank

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
)

// Kind distinguishes how many options a question accepts.
type Kind string

const (
	KindSingle Kind = "single"
	KindMulti  Kind = "multi"
)

// MaxModuleID bounds the fixed topic groupings a question can belong to.
const MaxModuleID = 9

// Question is one immutable record from the bank. Prompt may embed fenced
// code; Correct holds indices into Options.
type Question struct {
	ID          int      `json:"id"`
	Kind        Kind     `json:"kind"`
	ModuleID    int      `json:"module_id"`
	Prompt      string   `json:"prompt"`
	Options     []string `json:"options"`
	Correct     []int    `json:"correct"`
	Explanation string   `json:"explanation,omitempty"`
}

//go:embed questions.json
var embeddedBank []byte

// Embedded decodes and validates the bank compiled into the binary.
func Embedded() ([]Question, error) {
	return decode(embeddedBank)
}

// LoadFile reads a bank from an external JSON file, for swapping question
// sets without rebuilding.
func LoadFile(path string) ([]Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return decode(data)
}

func decode(data []byte) ([]Question, error) {
	var qs []Question
	if err := json.Unmarshal(data, &qs); err != nil {
		return nil, fmt.Errorf("decode bank: %w", err)
	}
	if err := Validate(qs); err != nil {
		return nil, err
	}
	return qs, nil
}

// Validate checks the bank invariants: unique ids, module ids in range,
// in-range correct indices, and exactly one correct index for single-select.
func Validate(qs []Question) error {
	if len(qs) == 0 {
		return fmt.Errorf("bank is empty")
	}
	seen := make(map[int]struct{}, len(qs))
	for _, q := range qs {
		if _, dup := seen[q.ID]; dup {
			return fmt.Errorf("question %d: duplicate id", q.ID)
		}
		seen[q.ID] = struct{}{}
		if q.ModuleID < 1 || q.ModuleID > MaxModuleID {
			return fmt.Errorf("question %d: module_id %d out of range", q.ID, q.ModuleID)
		}
		if len(q.Options) < 2 {
			return fmt.Errorf("question %d: needs at least two options", q.ID)
		}
		if len(q.Correct) == 0 {
			return fmt.Errorf("question %d: no correct options", q.ID)
		}
		switch q.Kind {
		case KindSingle:
			if len(q.Correct) != 1 {
				return fmt.Errorf("question %d: single-select with %d correct options", q.ID, len(q.Correct))
			}
		case KindMulti:
		default:
			return fmt.Errorf("question %d: unknown kind %q", q.ID, q.Kind)
		}
		for _, idx := range q.Correct {
			if idx < 0 || idx >= len(q.Options) {
				return fmt.Errorf("question %d: correct index %d out of range", q.ID, idx)
			}
		}
	}
	return nil
}
