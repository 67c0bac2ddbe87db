// Package stories lets the player pick a story title, type one, or say one.
package stories

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/lyngdoh/curiouskids/internal/games"
	"github.com/lyngdoh/curiouskids/internal/media"
	"github.com/lyngdoh/curiouskids/internal/router"
	"github.com/lyngdoh/curiouskids/internal/screen"
	"github.com/lyngdoh/curiouskids/internal/screens/story"
	"github.com/lyngdoh/curiouskids/internal/ui/components"
	"github.com/lyngdoh/curiouskids/internal/ui/layout"
	"github.com/lyngdoh/curiouskids/internal/ui/theme"
)

type mode int

const (
	modeList mode = iota
	modeTitle
	modeVoice
)

// transcribedMsg carries the result of transcribing a voice recording.
type transcribedMsg struct {
	text string
	err  error
}

// ListScreen offers the preset titles plus typed and spoken titles.
type ListScreen struct {
	deps    screen.Deps
	menu    components.Menu
	mode    mode
	input   components.TextInput
	spinner components.Spinner
	busy    bool
	notice  string
}

var _ screen.Screen = (*ListScreen)(nil)
var _ screen.KeyHintProvider = (*ListScreen)(nil)

// New creates the story list.
func New(deps screen.Deps) *ListScreen {
	s := &ListScreen{
		deps:    deps,
		spinner: components.NewSpinner(),
	}

	items := make([]components.MenuItem, 0, len(games.Titles)+2)
	for _, title := range games.Titles {
		items = append(items, components.MenuItem{
			Label:  strings.ToUpper(title),
			Action: func() tea.Cmd { return openStory(deps, title) },
		})
	}
	items = append(items,
		components.MenuItem{Label: "TYPE A TITLE", Action: func() tea.Cmd {
			return s.enter(modeTitle, "Type a story title...")
		}},
		components.MenuItem{Label: "SAY A TITLE", Disabled: deps.Transcriber == nil, Action: func() tea.Cmd {
			return s.enter(modeVoice, "Path to a voice recording...")
		}},
	)
	s.menu = components.NewMenu(items)
	return s
}

func openStory(deps screen.Deps, title string) tea.Cmd {
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: story.New(deps, title)}
	}
}

func (s *ListScreen) enter(m mode, placeholder string) tea.Cmd {
	s.mode = m
	s.notice = ""
	s.input = components.NewTextInput(placeholder, false, 200)
	return s.input.Init()
}

func (s *ListScreen) Init() tea.Cmd {
	return s.spinner.Tick()
}

func (s *ListScreen) Title() string {
	return "Stories"
}

func (s *ListScreen) KeyHints() []layout.KeyHint {
	if s.mode != modeList {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Tell story"},
			{Key: "Tab", Description: "Titles"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ListScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case transcribedMsg:
		s.busy = false
		if msg.err != nil {
			if s.deps.Log != nil {
				s.deps.Log.Warn("transcribing title", zap.Error(msg.err))
			}
			s.notice = "Could not understand the recording: " + msg.err.Error()
			return s, nil
		}
		if strings.TrimSpace(msg.text) == "" {
			s.notice = "Didn't catch that. Please try again."
			return s, nil
		}
		s.mode = modeList
		return s, openStory(s.deps, msg.text)

	case components.SpinnerTickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		if s.mode == modeList {
			var cmd tea.Cmd
			s.menu, cmd = s.menu.Update(msg)
			return s, cmd
		}
		return s.handleInputKey(msg)
	}
	return s, nil
}

func (s *ListScreen) handleInputKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.busy {
		return s, nil
	}
	switch msg.String() {
	case "tab":
		s.mode = modeList
		s.notice = ""
		return s, nil
	case "enter":
		value := strings.TrimSpace(s.input.Value())
		if value == "" {
			return s, nil
		}
		if s.mode == modeTitle {
			s.mode = modeList
			return s, openStory(s.deps, value)
		}
		s.busy = true
		s.notice = ""
		return s, transcribe(s.deps.Transcriber, value)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func transcribe(t media.Transcriber, path string) tea.Cmd {
	return func() tea.Msg {
		text, err := media.TranscribeFile(context.Background(), t, path)
		return transcribedMsg{text: text, err: err}
	}
}

func (s *ListScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)

	sections := []string{
		center.Foreground(theme.ArcadeYellow).Bold(true).Render("STORY TIME"),
	}

	switch s.mode {
	case modeList:
		sections = append(sections, components.ArcadeMenu(s.menu, cw, layout.IsCompact(width, height)))
	default:
		label := "What should the story be about?"
		if s.mode == modeVoice {
			label = "Which recording holds the title?"
		}
		sections = append(sections,
			center.Foreground(theme.Text).Render(label),
			center.Render(s.input.View()))
		if s.busy {
			sections = append(sections, center.Render(s.spinner.View("Listening...")))
		}
	}

	if s.notice != "" {
		sections = append(sections, center.Foreground(theme.Accent).Render(s.notice))
	}
	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}
