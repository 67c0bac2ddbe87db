package mathgame

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/lyngdoh/curiouskids/internal/games"
	"github.com/lyngdoh/curiouskids/internal/ui/components"
	"github.com/lyngdoh/curiouskids/internal/ui/theme"
)

func centered(width int) lipgloss.Style {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
}

// renderQuestion renders the score, the question card and the answer box.
func (s *GameScreen) renderQuestion(width int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centered(width).
		Foreground(theme.ArcadeYellow).
		Bold(true).
		Render(fmt.Sprintf("★ Score: %d", s.view.Score)))
	b.WriteString("\n\n")

	card := components.ArcadeCard(
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(s.view.Question), cw)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))
	b.WriteString("\n\n")

	b.WriteString(centered(width).Render(s.input.View()))
	return b.String()
}

// renderFeedback renders the result dialog shown after an answer.
func renderFeedback(width int, v games.MathView) string {
	style := theme.Incorrect
	if v.Correct {
		style = theme.Correct
	}

	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(centered(width).Inherit(style).Render(v.Title))
	b.WriteString("\n\n")
	b.WriteString(centered(width).Foreground(theme.Text).Render(v.Message))
	b.WriteString("\n\n")
	b.WriteString(centered(width).
		Foreground(theme.ArcadeYellow).
		Render(fmt.Sprintf("★ Score: %d", v.Score)))
	b.WriteString("\n\n")
	b.WriteString(centered(width).Foreground(theme.TextDim).Render("Press Enter to continue..."))
	return b.String()
}

// renderLoading renders the loading state.
func renderLoading(width int, sp components.Spinner) string {
	return "\n\n\n" + centered(width).Render(sp.View("Thinking of a question..."))
}

// renderFailed is shown once the game has stopped asking for questions.
func renderFailed(width int, msg string) string {
	return centered(width).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Could not get a question.\n\n  %s\n\n  Press R to try again.", msg))
}

// renderError renders an error message.
func renderError(width int, errMsg string) string {
	return centered(width).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press Esc to go back.", errMsg))
}
