package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordfill/internal/ui/components"
	"github.com/abhisek/wordfill/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return renderError(width, s.errMsg)
	case s.question == nil:
		return renderLoading(width)
	}

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  Fill in the blank")
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d  %s %d",
			s.round.Asked,
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			s.round.Correct,
		))

	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	sentence := s.question.Sentence
	if s.showingFeedback {
		sentence = s.question.Filled(strings.ToUpper(s.question.Word))
	}
	card := components.ArcadeCard(lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render(sentence), components.ContentWidth(width))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choice.View()))
	b.WriteString("\n")

	if s.showingFeedback {
		b.WriteString(s.renderFeedback(width))
	}

	if s.storageErr != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("Progress not saved: " + s.storageErr))
	}

	return b.String()
}

// renderFeedback shows the verdict, the correct answer and the word's level.
func (s *QuizScreen) renderFeedback(width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	if s.lastCorrect {
		b.WriteString(center.Inherit(theme.Correct).Render("Correct!"))
	} else {
		b.WriteString(center.Inherit(theme.Incorrect).Render("Not quite"))
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.TextDim).
			Render(fmt.Sprintf("The missing word was %q", s.question.Word)))
	}
	b.WriteString("\n\n")

	level := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render(strings.ToUpper(s.question.Word)) + "  " + components.MasteryTag(s.lastLevel)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, level))
	b.WriteString("\n\n")

	b.WriteString(center.Inherit(theme.Hint).Render("Press any key for the next sentence..."))
	return b.String()
}

func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Finding a sentence...")
}

func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}
