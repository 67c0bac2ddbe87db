// Package spelling is the spelling bee screen. The word is spoken, never shown.
package spelling

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/lyngdoh/curiouskids/internal/games"
	"github.com/lyngdoh/curiouskids/internal/screen"
	"github.com/lyngdoh/curiouskids/internal/ui/components"
	"github.com/lyngdoh/curiouskids/internal/ui/layout"
	"github.com/lyngdoh/curiouskids/internal/ui/theme"
)

type startedMsg struct{ err error }

type checkedMsg struct {
	correct bool
	err     error
}

type definitionMsg struct{}

// BeeScreen runs a spelling bee.
type BeeScreen struct {
	bee     *games.SpellingBee
	feed    *screen.Feed[games.SpellingView]
	view    games.SpellingView
	input   components.TextInput
	spinner components.Spinner
	log     *zap.Logger
	errMsg  string

	checking bool
	defining bool
}

var _ screen.Screen = (*BeeScreen)(nil)
var _ screen.Closer = (*BeeScreen)(nil)
var _ screen.KeyHintProvider = (*BeeScreen)(nil)

// New creates a spelling bee screen.
func New(deps screen.Deps) *BeeScreen {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	bee := games.NewSpellingBee(deps.Provider, deps.Scores, deps.GameOptions()...)
	feed := screen.NewFeed[games.SpellingView]()
	bee.Subscribe(feed.Push)

	return &BeeScreen{
		bee:     bee,
		feed:    feed,
		view:    bee.View(),
		input:   components.NewTextInput("Spell the word...", false, 40),
		spinner: components.NewSpinner(),
		log:     log,
	}
}

func (s *BeeScreen) Init() tea.Cmd {
	bee := s.bee
	return tea.Batch(
		func() tea.Msg { return startedMsg{err: bee.Start(context.Background())} },
		s.feed.Next(),
		s.input.Init(),
		s.spinner.Tick(),
	)
}

func (s *BeeScreen) Title() string {
	return "Spelling Bee"
}

// Close stops the bee and releases the feed.
func (s *BeeScreen) Close() {
	s.bee.Close()
	s.feed.Close()
}

func (s *BeeScreen) KeyHints() []layout.KeyHint {
	if s.view.Phase == games.PhaseFailed {
		return []layout.KeyHint{
			{Key: "R", Description: "New word"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Check"},
		{Key: "Tab", Description: "Hear word"},
		{Key: "Ctrl+D", Description: "Definition"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *BeeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.FeedMsg[games.SpellingView]:
		if msg.Feed != s.feed {
			return s, nil
		}
		if msg.Value.Phase == games.PhaseReady && msg.Value.Word != s.view.Word {
			s.input.Reset()
		}
		s.view = msg.Value
		return s, s.feed.Next()

	case startedMsg:
		if msg.err != nil {
			s.log.Error("starting spelling bee", zap.Error(msg.err))
			s.errMsg = msg.err.Error()
		}
		return s, nil

	case checkedMsg:
		s.checking = false
		if msg.err != nil {
			s.log.Error("saving score", zap.Error(msg.err))
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.input.Submit(msg.correct)
		return s, nil

	case definitionMsg:
		s.defining = false
		return s, nil

	case components.SpinnerTickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *BeeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	bee := s.bee
	switch s.view.Phase {
	case games.PhaseFailed:
		if msg.String() == "r" {
			bee.Retry()
		}
		return s, nil
	case games.PhaseReady, games.PhaseFeedback:
	default:
		return s, nil
	}

	switch msg.String() {
	case "enter":
		input := strings.TrimSpace(s.input.Value())
		if input == "" || s.checking {
			return s, nil
		}
		s.checking = true
		return s, func() tea.Msg {
			correct, err := bee.Check(context.Background(), input)
			return checkedMsg{correct: correct, err: err}
		}
	case "tab":
		return s, func() tea.Msg {
			bee.HearWord(context.Background())
			return nil
		}
	case "ctrl+d":
		if s.defining {
			return s, nil
		}
		s.defining = true
		return s, func() tea.Msg {
			bee.Definition(context.Background())
			return definitionMsg{}
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *BeeScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	if s.errMsg != "" {
		return center.Foreground(theme.Error).
			Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press Esc to go back.", s.errMsg))
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.ArcadeYellow).Bold(true).
		Render(fmt.Sprintf("★ Score: %d", s.view.Score)))
	b.WriteString("\n\n")

	switch s.view.Phase {
	case games.PhaseReady, games.PhaseFeedback:
		b.WriteString(center.Foreground(theme.Text).Bold(true).
			Render("Listen to the word and spell it!"))
		b.WriteString("\n\n")
		b.WriteString(center.Render(s.input.View()))
		b.WriteString("\n\n")
		if s.view.Feedback != "" {
			b.WriteString(center.Inherit(feedbackStyle(s.view.Correct)).Render(s.view.Feedback))
			b.WriteString("\n\n")
		}
		switch {
		case s.defining:
			b.WriteString(center.Render(s.spinner.View("Looking up the definition...")))
		case s.view.Definition != "":
			cw := components.ContentWidth(width)
			def := lipgloss.NewStyle().Width(cw - 8).Foreground(theme.Text).Render(s.view.Definition)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.ArcadeCard(def, cw)))
		}
	case games.PhaseFailed:
		b.WriteString(center.Foreground(theme.Error).
			Render(fmt.Sprintf("Could not get a word.\n\n%s\n\nPress R to try again.", s.view.Message)))
	default:
		if s.view.Feedback != "" {
			b.WriteString(center.Inherit(feedbackStyle(s.view.Correct)).Render(s.view.Feedback))
			b.WriteString("\n\n")
		}
		b.WriteString(center.Render(s.spinner.View("Finding a word...")))
	}
	return b.String()
}

func feedbackStyle(correct bool) lipgloss.Style {
	if correct {
		return theme.Correct
	}
	return theme.Incorrect
}
