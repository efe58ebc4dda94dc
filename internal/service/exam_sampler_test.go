package service

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/Ravshan88/online-lesson/internal/model"
	"github.com/Ravshan88/online-lesson/internal/util"
)

func samplerBank(n int) []model.Question {
	bank := make([]model.Question, n)
	for i := range bank {
		bank[i] = model.Question{
			BaseModel:     model.BaseModel{ID: uint(i + 1)},
			MaterialID:    1,
			Content:       "savol",
			Options:       model.StringList{"A", "B", "C", "D"},
			CorrectAnswer: "A",
		}
	}
	return bank
}

func TestDrawEmptyBank(t *testing.T) {
	s := NewExamSampler(rand.NewSource(1))
	_, _, _, err := s.Draw(nil, 30)
	if err != util.ErrNoQuestionsAvailable {
		t.Fatalf("err = %v, want ErrNoQuestionsAvailable", err)
	}
}

func TestDrawSelectsWithoutReplacement(t *testing.T) {
	tests := []struct {
		name     string
		bankSize int
		max      int
		want     int
	}{
		{"large bank capped at max", 50, 30, 30},
		{"small bank takes everything", 5, 30, 5},
		{"exact fit", 30, 30, 30},
		{"single question", 1, 30, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewExamSampler(rand.NewSource(42))
			sessionID, issued, payload, err := s.Draw(samplerBank(tt.bankSize), tt.max)
			if err != nil {
				t.Fatalf("Draw: %v", err)
			}
			if sessionID == "" {
				t.Error("empty session id")
			}
			if len(issued) != tt.want || len(payload) != tt.want {
				t.Fatalf("got %d issued, %d payload, want %d", len(issued), len(payload), tt.want)
			}

			seen := map[uint]bool{}
			for i, id := range issued {
				if seen[id] {
					t.Errorf("question %d issued twice", id)
				}
				seen[id] = true
				if id == 0 || id > uint(tt.bankSize) {
					t.Errorf("issued id %d outside bank", id)
				}
				if payload[i].ID != id {
					t.Errorf("payload[%d].ID = %d, issued[%d] = %d; orders must match", i, payload[i].ID, i, id)
				}
			}
		})
	}
}

func TestDrawShufflesOptionsNotContent(t *testing.T) {
	s := NewExamSampler(rand.NewSource(7))
	_, _, payload, err := s.Draw(samplerBank(10), 10)
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}

	for _, q := range payload {
		got := append([]string(nil), q.Options...)
		sort.Strings(got)
		want := []string{"A", "B", "C", "D"}
		if len(got) != len(want) {
			t.Fatalf("question %d: %d options, want %d", q.ID, len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("question %d: option set changed: %v", q.ID, q.Options)
				break
			}
		}
	}
}

func TestDrawDoesNotMutateBankOptions(t *testing.T) {
	bank := samplerBank(3)
	s := NewExamSampler(rand.NewSource(3))
	if _, _, _, err := s.Draw(bank, 3); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	for _, q := range bank {
		for i, opt := range []string{"A", "B", "C", "D"} {
			if q.Options[i] != opt {
				t.Fatalf("bank question %d options mutated: %v", q.ID, q.Options)
			}
		}
	}
}

func TestDrawDeterministicForSeed(t *testing.T) {
	bank := samplerBank(40)
	_, first, _, err := NewExamSampler(rand.NewSource(99)).Draw(bank, 30)
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}
	_, second, _, err := NewExamSampler(rand.NewSource(99)).Draw(bank, 30)
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("same seed produced different draws at %d: %d vs %d", i, first[i], second[i])
		}
	}
}

func TestDrawSessionIDsUnique(t *testing.T) {
	s := NewExamSampler(rand.NewSource(5))
	bank := samplerBank(5)
	ids := map[string]bool{}
	for i := 0; i < 100; i++ {
		id, _, _, err := s.Draw(bank, 5)
		if err != nil {
			t.Fatalf("Draw: %v", err)
		}
		if ids[id] {
			t.Fatalf("duplicate session id %q", id)
		}
		ids[id] = true
	}
}
