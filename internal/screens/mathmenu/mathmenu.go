// Package mathmenu lets the player pick an arithmetic operation.
package mathmenu

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/lyngdoh/curiouskids/internal/games"
	"github.com/lyngdoh/curiouskids/internal/router"
	"github.com/lyngdoh/curiouskids/internal/screen"
	"github.com/lyngdoh/curiouskids/internal/screens/mathgame"
	"github.com/lyngdoh/curiouskids/internal/ui/components"
	"github.com/lyngdoh/curiouskids/internal/ui/layout"
	"github.com/lyngdoh/curiouskids/internal/ui/theme"
)

type scoresMsg map[games.Operation]int

// MenuScreen lists the math operations and their saved scores.
type MenuScreen struct {
	deps   screen.Deps
	menu   components.Menu
	scores map[games.Operation]int
}

var _ screen.Screen = (*MenuScreen)(nil)
var _ screen.Resumer = (*MenuScreen)(nil)
var _ screen.KeyHintProvider = (*MenuScreen)(nil)

// New creates the operation picker.
func New(deps screen.Deps) *MenuScreen {
	items := make([]components.MenuItem, 0, len(games.Operations))
	for _, op := range games.Operations {
		items = append(items, components.MenuItem{
			Label: strings.ToUpper(op.Title()),
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: mathgame.New(deps, op)}
				}
			},
		})
	}
	return &MenuScreen{
		deps:   deps,
		menu:   components.NewMenu(items),
		scores: map[games.Operation]int{},
	}
}

func (m *MenuScreen) Init() tea.Cmd {
	return m.loadScores()
}

// Resume reloads scores after a game is closed.
func (m *MenuScreen) Resume() tea.Cmd {
	return m.loadScores()
}

func (m *MenuScreen) loadScores() tea.Cmd {
	keeper := m.deps.Scores
	if keeper == nil {
		return nil
	}
	log := m.deps.Log
	return func() tea.Msg {
		out := make(scoresMsg, len(games.Operations))
		for _, op := range games.Operations {
			v, err := keeper.Load(context.Background(), op.ScoreKey())
			if err != nil {
				if log != nil {
					log.Warn("loading score", zap.String("operation", string(op)), zap.Error(err))
				}
				continue
			}
			out[op] = v
		}
		return out
	}
}

func (m *MenuScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(scoresMsg); ok {
		m.scores = msg
		return m, nil
	}

	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m *MenuScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	compact := layout.IsCompact(width, height)

	heading := lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.ArcadeYellow).
		Bold(true).
		Render("MATH FUN")

	var parts []string
	for _, op := range games.Operations {
		parts = append(parts, fmt.Sprintf("%s %d", symbol(op), m.scores[op]))
	}
	bar := components.ScoreBar(strings.Join(parts, "   "), cw)

	content := strings.Join([]string{heading, bar, components.ArcadeMenu(m.menu, cw, compact)}, "\n\n")
	return components.CabinetFrame(content, width, height)
}

func (m *MenuScreen) Title() string {
	return "Math Fun"
}

func (m *MenuScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "1-4", Description: "Pick"},
		{Key: "Enter", Description: "Play"},
		{Key: "Esc", Description: "Back"},
	}
}

func symbol(op games.Operation) string {
	switch op {
	case games.Addition:
		return "+"
	case games.Subtraction:
		return "-"
	case games.Multiplication:
		return "×"
	case games.Division:
		return "÷"
	}
	return "?"
}
