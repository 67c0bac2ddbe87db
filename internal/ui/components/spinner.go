package components

import (
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lyngdoh/curiouskids/internal/ui/theme"
)

// SpinnerTickMsg advances the spinner whose id it carries.
type SpinnerTickMsg = spinner.TickMsg

// Spinner is a small animated loading indicator with a label.
type Spinner struct {
	model spinner.Model
}

// NewSpinner creates a spinner with its own tick identity, so ticks left
// over from a closed screen do not drive a new one.
func NewSpinner() Spinner {
	return Spinner{model: spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Secondary)),
	)}
}

// Tick starts the animation.
func (s Spinner) Tick() tea.Cmd {
	return s.model.Tick
}

// Update advances the frame on this spinner's ticks and ignores anything else.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	var cmd tea.Cmd
	s.model, cmd = s.model.Update(msg)
	return s, cmd
}

// View renders the current frame followed by label.
func (s Spinner) View(label string) string {
	return s.model.View() + " " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(label)
}
