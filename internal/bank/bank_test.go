package bank_test

import (
	"strings"
	"testing"

	"github.com/studykit/mockexam/internal/bank"
)

func TestEmbeddedBankIsValid(t *testing.T) {
	qs, err := bank.Embedded()
	if err != nil {
		t.Fatalf("embedded bank: %v", err)
	}
	if len(qs) == 0 {
		t.Fatal("embedded bank is empty")
	}
	covered := map[int]bool{}
	for _, q := range qs {
		covered[q.ModuleID] = true
	}
	for m := 1; m <= bank.MaxModuleID; m++ {
		if !covered[m] {
			t.Errorf("module %d has no questions", m)
		}
	}
}

func TestValidateRejectsBrokenBanks(t *testing.T) {
	valid := bank.Question{
		ID: 1, Kind: bank.KindSingle, ModuleID: 1,
		Prompt: "p", Options: []string{"a", "b"}, Correct: []int{0},
	}

	tests := []struct {
		name    string
		mutate  func(q bank.Question) bank.Question
		wantErr string
	}{
		{
			name:    "module id out of range",
			mutate:  func(q bank.Question) bank.Question { q.ModuleID = 10; return q },
			wantErr: "out of range",
		},
		{
			name:    "single select with two correct",
			mutate:  func(q bank.Question) bank.Question { q.Correct = []int{0, 1}; return q },
			wantErr: "single-select",
		},
		{
			name:    "correct index out of range",
			mutate:  func(q bank.Question) bank.Question { q.Correct = []int{5}; return q },
			wantErr: "out of range",
		},
		{
			name:    "no correct options",
			mutate:  func(q bank.Question) bank.Question { q.Correct = nil; return q },
			wantErr: "no correct",
		},
		{
			name:    "unknown kind",
			mutate:  func(q bank.Question) bank.Question { q.Kind = "essay"; return q },
			wantErr: "unknown kind",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := bank.Validate([]bank.Question{tc.mutate(valid)})
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestValidateRejectsDuplicateIDs(t *testing.T) {
	q := bank.Question{
		ID: 7, Kind: bank.KindSingle, ModuleID: 1,
		Prompt: "p", Options: []string{"a", "b"}, Correct: []int{0},
	}
	err := bank.Validate([]bank.Question{q, q})
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate id error, got %v", err)
	}
}
