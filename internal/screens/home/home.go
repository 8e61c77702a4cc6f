package home

import (
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wordfill/internal/ledger"
	"github.com/abhisek/wordfill/internal/router"
	"github.com/abhisek/wordfill/internal/screen"
	"github.com/abhisek/wordfill/internal/screens/quiz"
	"github.com/abhisek/wordfill/internal/screens/words"
	"github.com/abhisek/wordfill/internal/sentences"
	"github.com/abhisek/wordfill/internal/ui/components"
	"github.com/abhisek/wordfill/internal/ui/layout"
)

// Options wires the home screen to the rest of the app.
type Options struct {
	Ledger *ledger.Ledger
	Source sentences.Source
	// SourceName is shown under the menu, e.g. "sentences: bank".
	SourceName string
	Logger     *slog.Logger
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	opts    Options
	menu    components.Menu
	summary ledger.Summary
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(opts Options) *HomeScreen {
	h := &HomeScreen{opts: opts}

	items := []components.MenuItem{
		{Label: "PLAY", Disabled: opts.Source == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: quiz.New(opts.Ledger, opts.Source, opts.Logger)}
			}
		}},
		{Label: "MY WORDS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: words.New(opts.Ledger)}
			}
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	h.summary = opts.Ledger.Summary()
	return h
}

// Init refreshes the stats; it runs again whenever a screen above is popped.
func (h *HomeScreen) Init() tea.Cmd {
	h.summary = h.opts.Ledger.Summary()
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header and footer
	termHeight := height + layout.HeaderHeight + layout.FooterHeight
	compact := layout.IsCompactHeight(termHeight) || layout.IsCompactWidth(width)
	cw := components.ContentWidth(width)

	sections := []string{
		renderTitle(cw, compact),
		renderStatsBar(h.summary, cw, compact),
	}

	labels, disabled := h.menu.Labels(), h.menu.DisabledSet()
	if compact {
		sections = append(sections, renderArcadeMenuCompact(labels, h.menu.Selected, cw, disabled))
	} else {
		sections = append(sections, renderArcadeMenu(labels, h.menu.Selected, cw, disabled))
	}

	if h.opts.SourceName != "" {
		sections = append(sections, renderSourceNote(h.opts.SourceName, cw))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
