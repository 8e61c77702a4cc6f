package home

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wordfill/internal/ledger"
	"github.com/abhisek/wordfill/internal/router"
	"github.com/abhisek/wordfill/internal/screens/quiz"
	"github.com/abhisek/wordfill/internal/screens/words"
	"github.com/abhisek/wordfill/internal/sentences"
	"github.com/abhisek/wordfill/internal/store"
)

func testHome(t *testing.T, withSource bool) (*HomeScreen, *ledger.Ledger) {
	t.Helper()
	lg := ledger.New(context.Background(), store.NewMemoryRepo(), nil)
	opts := Options{Ledger: lg, SourceName: "sentences: bank"}
	if withSource {
		opts.Source = sentences.DefaultBank()
	}
	return New(opts), lg
}

func press(h *HomeScreen, code rune) tea.Cmd {
	_, cmd := h.Update(tea.KeyPressMsg{Code: code})
	return cmd
}

func TestHomeScreen_MenuLabels(t *testing.T) {
	h, _ := testHome(t, true)
	want := []string{"PLAY", "MY WORDS", "EXIT"}
	got := h.menu.Labels()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("labels = %v, want %v", got, want)
	}
}

func TestHomeScreen_PlayPushesQuiz(t *testing.T) {
	h, _ := testHome(t, true)
	cmd := press(h, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := msg.Screen.(*quiz.QuizScreen); !ok {
		t.Errorf("screen = %T, want *quiz.QuizScreen", msg.Screen)
	}
}

func TestHomeScreen_MyWordsPushesWords(t *testing.T) {
	h, _ := testHome(t, true)
	press(h, tea.KeyDown)
	msg, ok := press(h, tea.KeyEnter)().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := msg.Screen.(*words.WordsScreen); !ok {
		t.Errorf("screen = %T, want *words.WordsScreen", msg.Screen)
	}
}

func TestHomeScreen_PlayDisabledWithoutSource(t *testing.T) {
	h, _ := testHome(t, false)
	if h.menu.Selected != 1 {
		t.Errorf("selected = %d, want MY WORDS (1)", h.menu.Selected)
	}
	press(h, tea.KeyUp)
	if h.menu.Selected != 1 {
		t.Error("expected disabled PLAY to be skipped")
	}
}

func TestHomeScreen_StatsRefreshOnInit(t *testing.T) {
	h, lg := testHome(t, true)
	ctx := context.Background()
	if err := lg.MarkSeen(ctx, "owl"); err != nil {
		t.Fatal(err)
	}
	if h.summary.Known != 0 {
		t.Fatal("summary should be stale before Init")
	}

	h.Init()
	if h.summary.Known != 1 {
		t.Errorf("known = %d, want 1", h.summary.Known)
	}
	if !strings.Contains(h.View(120, 40), "1 KNOWN") {
		t.Error("expected known count in view")
	}
}

func TestHomeScreen_View(t *testing.T) {
	h, _ := testHome(t, true)
	for _, size := range [][2]int{{120, 40}, {80, 18}} {
		view := h.View(size[0], size[1])
		if !strings.Contains(view, "PLAY") {
			t.Errorf("view %dx%d missing menu", size[0], size[1])
		}
	}
	if !strings.Contains(h.View(80, 18), "W · O · R · D") {
		t.Error("expected compact title on a small terminal")
	}
}
