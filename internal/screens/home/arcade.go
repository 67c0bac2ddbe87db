package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/lyngdoh/curiouskids/internal/ui/components"
	"github.com/lyngdoh/curiouskids/internal/ui/theme"
)

const arcadeTitleFull = ` ██████╗██╗   ██╗██████╗ ██╗ ██████╗ ██╗   ██╗███████╗
██╔════╝██║   ██║██╔══██╗██║██╔═══██╗██║   ██║██╔════╝
██║     ██║   ██║██████╔╝██║██║   ██║██║   ██║███████╗
██║     ██║   ██║██╔══██╗██║██║   ██║██║   ██║╚════██║
╚██████╗╚██████╔╝██║  ██║██║╚██████╔╝╚██████╔╝███████║
 ╚═════╝ ╚═════╝ ╚═╝  ╚═╝╚═╝ ╚═════╝  ╚═════╝ ╚══════╝`

const arcadeSubtitle = "★  K · I · D · S  ★"

const arcadeTitleCompact = "C U R I O U S   K I D S"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)
	center := lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center)

	if compact {
		return center.Render(style.Render(arcadeTitleCompact))
	}
	sub := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	return center.Render(style.Render(arcadeTitleFull)) + "\n" +
		center.Render(sub.Render(arcadeSubtitle))
}

// renderScoreBar shows the saved totals for math and spelling.
func renderScoreBar(s scores, cw int, compact bool) string {
	if compact {
		return components.ScoreBar(fmt.Sprintf("+-×÷ %d   abc %d", s.math, s.spelling), cw)
	}
	return components.ScoreBar(fmt.Sprintf("★ %d MATH   ★ %d SPELLING", s.math, s.spelling), cw)
}

// renderLLMBanner renders a warning banner when no LLM API key is configured.
func renderLLMBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ Set an LLM API key to start playing (see curiouskids --help)")
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
