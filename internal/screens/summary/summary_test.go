package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wordfill/internal/ledger"
	"github.com/abhisek/wordfill/internal/router"
)

func testRound() Round {
	return Round{
		Duration: 3*time.Minute + 20*time.Second,
		Asked:    8,
		Correct:  6,
		Promotions: []Promotion{
			{Word: "lantern", Level: ledger.LevelLearnt},
			{Word: "river", Level: ledger.LevelMastered},
		},
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testRound())
	if s.Title() != "Round Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Round Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testRound())
	view := s.View(80, 24)

	for _, want := range []string{"Round complete!", "3:20", "Accuracy: 75%", "LANTERN", "MASTERED"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_NoPromotions(t *testing.T) {
	s := New(Round{Asked: 2})
	view := s.View(80, 24)
	if strings.Contains(view, "Level ups") {
		t.Error("expected no level-up section")
	}
}

func TestRound_Accuracy(t *testing.T) {
	if got := (Round{}).Accuracy(); got != 0 {
		t.Errorf("empty accuracy = %v, want 0", got)
	}
	if got := testRound().Accuracy(); got != 0.75 {
		t.Errorf("accuracy = %v, want 0.75", got)
	}
}

func TestSummaryScreen_Navigation(t *testing.T) {
	for _, key := range []tea.KeyPressMsg{{Code: tea.KeyEnter}, {Code: tea.KeyEscape}} {
		s := New(testRound())
		_, cmd := s.Update(key)
		if cmd == nil {
			t.Fatalf("expected command for %q", key.String())
		}
		if _, ok := cmd().(router.PopScreenMsg); !ok {
			t.Errorf("expected PopScreenMsg for %q", key.String())
		}
	}
}
