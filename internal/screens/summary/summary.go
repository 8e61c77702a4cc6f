package summary

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordfill/internal/ledger"
	"github.com/abhisek/wordfill/internal/router"
	"github.com/abhisek/wordfill/internal/screen"
	"github.com/abhisek/wordfill/internal/ui/components"
	"github.com/abhisek/wordfill/internal/ui/layout"
	"github.com/abhisek/wordfill/internal/ui/theme"
)

// Promotion records a word that reached a higher mastery level during a round.
type Promotion struct {
	Word  string
	Level ledger.Level
}

// Round is the outcome of one quiz round.
type Round struct {
	Duration   time.Duration
	Asked      int
	Correct    int
	Promotions []Promotion
}

// Accuracy returns Correct/Asked, or 0 for an empty round.
func (r Round) Accuracy() float64 {
	if r.Asked == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Asked)
}

// SummaryScreen displays the end-of-round summary.
type SummaryScreen struct {
	round Round
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(round Round) *SummaryScreen {
	return &SummaryScreen{round: round}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Round Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	r := s.round
	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder

	b.WriteString(center(theme.Title, "Round complete!"))
	b.WriteString("\n\n")

	mins := int(r.Duration.Minutes())
	secs := int(r.Duration.Seconds()) % 60
	b.WriteString(center(theme.Subtitle,
		fmt.Sprintf("Time: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	b.WriteString(center(theme.Body,
		fmt.Sprintf("Questions: %d        Correct: %d        Accuracy: %.0f%%",
			r.Asked, r.Correct, r.Accuracy()*100)))
	b.WriteString("\n\n")

	bar := components.NewProgressBar("", r.Accuracy(), true, min(width-8, 40))
	bar.Fill = theme.Success
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	if len(r.Promotions) == 0 {
		return b.String()
	}

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Level ups")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	for _, p := range r.Promotions {
		line := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
			Render(strings.ToUpper(p.Word)) + "  " + components.MasteryTag(p.Level)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}

	return b.String()
}
