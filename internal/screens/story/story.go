// Package story shows one generated story and reads it aloud.
package story

import (
	"context"
	"image/color"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lyngdoh/curiouskids/internal/games"
	"github.com/lyngdoh/curiouskids/internal/prompt"
	"github.com/lyngdoh/curiouskids/internal/screen"
	"github.com/lyngdoh/curiouskids/internal/ui/components"
	"github.com/lyngdoh/curiouskids/internal/ui/layout"
	"github.com/lyngdoh/curiouskids/internal/ui/theme"
)

// DetailScreen generates a story for a title and lets the player scroll
// through it and hear it.
type DetailScreen struct {
	title    string
	teller   *games.StoryTeller
	feed     *screen.Feed[prompt.State]
	state    prompt.State
	spinner  components.Spinner
	viewport viewport.Model
	// stale is set when a new state arrives and the viewport still holds
	// the previous text.
	stale bool
}

var _ screen.Screen = (*DetailScreen)(nil)
var _ screen.Closer = (*DetailScreen)(nil)
var _ screen.KeyHintProvider = (*DetailScreen)(nil)

// New creates a story screen for title.
func New(deps screen.Deps, title string) *DetailScreen {
	teller := games.NewStoryTeller(deps.Provider, deps.GameOptions()...)
	feed := screen.NewFeed[prompt.State]()
	teller.Subscribe(feed.Push)

	return &DetailScreen{
		title:    strings.TrimSpace(title),
		teller:   teller,
		feed:     feed,
		state:    teller.State(),
		spinner:  components.NewSpinner(),
		viewport: viewport.New(),
		stale:    true,
	}
}

func (s *DetailScreen) Init() tea.Cmd {
	s.teller.Tell(s.title)
	return tea.Batch(s.feed.Next(), s.spinner.Tick())
}

func (s *DetailScreen) Title() string {
	return s.title
}

// Close stops the story teller and releases the feed.
func (s *DetailScreen) Close() {
	s.teller.Close()
	s.feed.Close()
}

func (s *DetailScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "R", Description: "Read aloud"},
		{Key: "N", Description: "New story"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *DetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.FeedMsg[prompt.State]:
		if msg.Feed != s.feed {
			return s, nil
		}
		s.state = msg.Value
		s.stale = true
		return s, s.feed.Next()

	case components.SpinnerTickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.MouseWheelMsg:
		var cmd tea.Cmd
		s.viewport, cmd = s.viewport.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			teller := s.teller
			return s, func() tea.Msg {
				teller.ReadAloud(context.Background())
				return nil
			}
		case "n":
			if s.state.Kind() != prompt.KindLoading {
				s.teller.Tell(s.title)
			}
		default:
			var cmd tea.Cmd
			s.viewport, cmd = s.viewport.Update(msg)
			return s, cmd
		}
	}
	return s, nil
}

func (s *DetailScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	heading := center.Foreground(theme.ArcadeYellow).Bold(true).Render(s.title)

	var body string
	switch st := s.state.(type) {
	case prompt.Success:
		body = s.renderText(st.OutputText, theme.Text, width, height-3)
	case prompt.Error:
		body = s.renderText(st.Message, theme.Error, width, height-3)
	default:
		body = "\n" + center.Render(s.spinner.View("Writing your story..."))
	}
	return heading + "\n\n" + body
}

// renderText wraps text to a readable width and shows it through the
// viewport. The scroll position survives redraws and resets to the top
// when a new story arrives.
func (s *DetailScreen) renderText(text string, fg color.Color, width, height int) string {
	tw := min(max(width-8, 20), 76)
	s.viewport.SetHeight(max(height, 1))

	if s.stale || s.viewport.Width() != tw {
		s.viewport.SetWidth(tw)
		s.viewport.SetContent(lipgloss.NewStyle().Width(tw).Foreground(fg).Render(text))
		if s.stale {
			s.viewport.GotoTop()
			s.stale = false
		}
	}
	if s.viewport.PastBottom() {
		s.viewport.GotoBottom()
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s.viewport.View())
}
