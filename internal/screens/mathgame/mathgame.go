// Package mathgame is the question and answer screen for one operation.
package mathgame

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/lyngdoh/curiouskids/internal/games"
	"github.com/lyngdoh/curiouskids/internal/screen"
	"github.com/lyngdoh/curiouskids/internal/ui/components"
	"github.com/lyngdoh/curiouskids/internal/ui/layout"
)

// GameScreen shows generated questions and checks typed answers.
type GameScreen struct {
	op      games.Operation
	game    *games.MathGame
	feed    *screen.Feed[games.MathView]
	view    games.MathView
	input   components.TextInput
	spinner components.Spinner
	log     *zap.Logger
	errMsg  string

	// submitting is set while an answer is being checked.
	submitting bool
}

var _ screen.Screen = (*GameScreen)(nil)
var _ screen.Closer = (*GameScreen)(nil)
var _ screen.KeyHintProvider = (*GameScreen)(nil)

// New creates a game screen for op.
func New(deps screen.Deps, op games.Operation) *GameScreen {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	g := games.NewMathGame(deps.Provider, deps.Scores, op, deps.GameOptions()...)
	feed := screen.NewFeed[games.MathView]()
	g.Subscribe(feed.Push)

	return &GameScreen{
		op:      op,
		game:    g,
		feed:    feed,
		view:    g.View(),
		input:   components.NewTextInput("Type your answer...", true, 12),
		spinner: components.NewSpinner(),
		log:     log,
	}
}

func (s *GameScreen) Init() tea.Cmd {
	g := s.game
	return tea.Batch(
		func() tea.Msg {
			return startedMsg{err: g.Start(context.Background())}
		},
		s.feed.Next(),
		s.input.Init(),
		s.spinner.Tick(),
	)
}

func (s *GameScreen) Title() string {
	return s.op.Title()
}

// Close stops the game and releases the feed.
func (s *GameScreen) Close() {
	s.game.Close()
	s.feed.Close()
}

func (s *GameScreen) KeyHints() []layout.KeyHint {
	switch s.view.Phase {
	case games.PhaseReady:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Back"},
		}
	case games.PhaseFeedback:
		return []layout.KeyHint{
			{Key: "Enter", Description: "OK"},
			{Key: "Esc", Description: "Back"},
		}
	case games.PhaseFailed:
		return []layout.KeyHint{
			{Key: "R", Description: "Try again"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (s *GameScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.FeedMsg[games.MathView]:
		if msg.Feed != s.feed {
			return s, nil
		}
		if msg.Value.Phase == games.PhaseReady && s.view.Phase != games.PhaseReady {
			s.input.Reset()
		}
		s.view = msg.Value
		return s, s.feed.Next()

	case startedMsg:
		if msg.err != nil {
			s.log.Error("starting math game", zap.Error(msg.err))
			s.errMsg = msg.err.Error()
		}
		return s, nil

	case submittedMsg:
		s.submitting = false
		if msg.err != nil {
			s.log.Error("saving score", zap.Error(msg.err))
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.input.Submit(msg.correct)
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

func (s *GameScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch s.view.Phase {
	case games.PhaseReady:
		if msg.String() == "enter" {
			answer := strings.TrimSpace(s.input.Value())
			if answer == "" || s.submitting {
				return s, nil
			}
			s.submitting = true
			g := s.game
			return s, func() tea.Msg {
				correct, err := g.Submit(context.Background(), answer)
				return submittedMsg{correct: correct, err: err}
			}
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd

	case games.PhaseFeedback:
		switch msg.String() {
		case "enter", "space", " ":
			s.game.Dismiss()
		}

	case games.PhaseFailed:
		if msg.String() == "r" {
			s.game.Next()
		}
	}
	return s, nil
}

func (s *GameScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	switch s.view.Phase {
	case games.PhaseReady:
		return s.renderQuestion(width)
	case games.PhaseFeedback:
		return renderFeedback(width, s.view)
	case games.PhaseFailed:
		return renderFailed(width, s.view.Message)
	}
	return renderLoading(width, s.spinner)
}
