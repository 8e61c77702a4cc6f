// Package words lists every known word with its mastery level.
package words

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordfill/internal/ledger"
	"github.com/abhisek/wordfill/internal/screen"
	"github.com/abhisek/wordfill/internal/ui/components"
	"github.com/abhisek/wordfill/internal/ui/layout"
	"github.com/abhisek/wordfill/internal/ui/theme"
)

// WordsScreen shows known words, uppercased, each with a coloured mastery tag.
type WordsScreen struct {
	ledger *ledger.Ledger
	words  []string
	filter components.FilterInput
	offset int
}

var _ screen.Screen = (*WordsScreen)(nil)
var _ screen.KeyHintProvider = (*WordsScreen)(nil)

// New creates a WordsScreen over lg.
func New(lg *ledger.Ledger) *WordsScreen {
	return &WordsScreen{
		ledger: lg,
		filter: components.NewFilterInput("filter words", 32),
	}
}

func (s *WordsScreen) Init() tea.Cmd {
	s.words = s.ledger.AllKnownWords()
	return s.filter.Init()
}

func (s *WordsScreen) Title() string {
	return "My Words"
}

func (s *WordsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "type", Description: "Filter"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *WordsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "up":
			if s.offset > 0 {
				s.offset--
			}
			return s, nil
		case "down":
			if s.offset < len(s.visible())-1 {
				s.offset++
			}
			return s, nil
		}
	}

	var cmd tea.Cmd
	before := s.filter.Value()
	s.filter, cmd = s.filter.Update(msg)
	if s.filter.Value() != before {
		s.offset = 0
	}
	return s, cmd
}

func (s *WordsScreen) visible() []string {
	return s.filter.Filter(s.words)
}

func (s *WordsScreen) View(width, height int) string {
	var b strings.Builder

	sum := s.ledger.Summary()
	counts := fmt.Sprintf("%d words   %s %d   %s %d   %s %d",
		sum.Known,
		components.MasteryTag(ledger.LevelNew), sum.Counts[ledger.LevelNew],
		components.MasteryTag(ledger.LevelLearnt), sum.Counts[ledger.LevelLearnt],
		components.MasteryTag(ledger.LevelMastered), sum.Counts[ledger.LevelMastered],
	)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, counts))
	b.WriteString("\n\n")
	b.WriteString("  " + s.filter.View())
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n")

	if len(s.words) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\nNo words yet. Play a round to start your list."))
		return b.String()
	}

	visible := s.visible()
	if len(visible) == 0 {
		b.WriteString(theme.Hint.Render("  No words match."))
		return b.String()
	}

	rows := max(height-lipgloss.Height(b.String())-1, 1)
	start := min(s.offset, max(len(visible)-rows, 0))
	end := min(start+rows, len(visible))

	wordStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(24)
	for _, w := range visible[start:end] {
		rec, _ := s.ledger.Record(w)
		lvl := ledger.Classify(rec.TimesCorrect)
		progress := components.NewProgressBar("", masteryProgress(rec.TimesCorrect), false, 16)
		progress.Fill = components.LevelColor(lvl)

		b.WriteString("  ")
		b.WriteString(wordStyle.Render(strings.ToUpper(w)))
		b.WriteString(components.MasteryTag(lvl))
		b.WriteString("  ")
		b.WriteString(progress.View())
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d/%d", rec.TimesCorrect, rec.TimesSeen)))
		b.WriteString("\n")
	}

	if len(visible) > rows {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d-%d of %d", start+1, end, len(visible))))
	}
	return b.String()
}

// masteryProgress maps a correct count onto [0,1] against the mastered threshold.
func masteryProgress(correct int) float64 {
	return min(float64(correct)/float64(ledger.MasteredThreshold), 1)
}
