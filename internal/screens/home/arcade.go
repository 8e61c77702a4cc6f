package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordfill/internal/ledger"
	"github.com/abhisek/wordfill/internal/ui/components"
	"github.com/abhisek/wordfill/internal/ui/theme"
)

const arcadeTitleFull = `██╗    ██╗ ██████╗ ██████╗ ██████╗ ███████╗██╗██╗     ██╗
██║    ██║██╔═══██╗██╔══██╗██╔══██╗██╔════╝██║██║     ██║
██║ █╗ ██║██║   ██║██████╔╝██║  ██║█████╗  ██║██║     ██║
██║███╗██║██║   ██║██╔══██╗██║  ██║██╔══╝  ██║██║     ██║
╚███╔███╔╝╚██████╔╝██║  ██║██████╔╝██║     ██║███████╗███████╗
 ╚══╝╚══╝  ╚═════╝ ╚═╝  ╚═╝╚═════╝ ╚═╝     ╚═╝╚══════╝╚══════╝`

const arcadeTitleCompact = "W · O · R · D · F · I · L · L"

// renderTitle returns the block title, or the compact one when the block
// art does not fit.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	title := arcadeTitleFull
	if compact || lipgloss.Width(arcadeTitleFull) > cw {
		title = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// renderStatsBar renders the ledger counts in a double-bordered box.
func renderStatsBar(sum ledger.Summary, cw int, compact bool) string {
	knownStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	levelStyle := func(l ledger.Level) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(components.LevelColor(l)).Bold(true)
	}

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			knownStyle.Render(fmt.Sprintf("●%d", sum.Known)),
			levelStyle(ledger.LevelLearnt).Render(fmt.Sprintf("◆%d", sum.Counts[ledger.LevelLearnt])),
			levelStyle(ledger.LevelMastered).Render(fmt.Sprintf("★%d", sum.Counts[ledger.LevelMastered])),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			knownStyle.Render(fmt.Sprintf("● %d KNOWN", sum.Known)),
			levelStyle(ledger.LevelLearnt).Render(fmt.Sprintf("◆ %d LEARNT", sum.Counts[ledger.LevelLearnt])),
			levelStyle(ledger.LevelMastered).Render(fmt.Sprintf("★ %d MASTERED", sum.Counts[ledger.LevelMastered])),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderArcadeMenu renders each menu item as a fixed-width button.
func renderArcadeMenu(items []string, selected int, cw int, disabled map[int]bool) string {
	base := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	selectedBtn := base.
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.ArcadeYellow).
		BorderForeground(theme.ArcadeYellow)
	normalBtn := base.Foreground(theme.Text).BorderForeground(theme.Border)
	disabledBtn := base.Foreground(theme.TextDim).BorderForeground(theme.Border)

	var buttons []string
	for i, label := range items {
		switch {
		case disabled[i]:
			buttons = append(buttons, disabledBtn.Render(label))
		case i == selected:
			buttons = append(buttons, selectedBtn.Render("▸ "+label))
		default:
			buttons = append(buttons, normalBtn.Render(label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderArcadeMenuCompact renders menu items as plain lines for terminals
// where bordered buttons would overflow.
func renderArcadeMenuCompact(items []string, selected int, cw int, disabled map[int]bool) string {
	var lines []string
	for i, label := range items {
		var line string
		switch {
		case disabled[i]:
			line = lipgloss.NewStyle().Foreground(theme.TextDim).Render("   " + label)
		case i == selected:
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(" ▸ " + label + " ")
		default:
			line = lipgloss.NewStyle().Foreground(theme.Text).Render("   " + label)
		}
		lines = append(lines, line)
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderSourceNote names where questions come from.
func renderSourceNote(source string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render(source)
}
