// Package identify names the main object in a picture chosen from disk.
package identify

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/lyngdoh/curiouskids/internal/games"
	"github.com/lyngdoh/curiouskids/internal/llm"
	"github.com/lyngdoh/curiouskids/internal/media"
	"github.com/lyngdoh/curiouskids/internal/prompt"
	"github.com/lyngdoh/curiouskids/internal/screen"
	"github.com/lyngdoh/curiouskids/internal/ui/components"
	"github.com/lyngdoh/curiouskids/internal/ui/layout"
	"github.com/lyngdoh/curiouskids/internal/ui/theme"
)

// imageLoadedMsg carries a picture read from disk and prepared for upload.
type imageLoadedMsg struct {
	path string
	img  *llm.Image
	err  error
}

// IdentifyScreen asks for an image path and shows what is in the picture.
type IdentifyScreen struct {
	ident   *games.Identifier
	feed    *screen.Feed[prompt.State]
	state   prompt.State
	input   components.TextInput
	spinner components.Spinner
	speaker games.Speaker
	maxDim  int
	log     *zap.Logger

	loading bool
	picture string
	errMsg  string
}

var _ screen.Screen = (*IdentifyScreen)(nil)
var _ screen.Closer = (*IdentifyScreen)(nil)
var _ screen.KeyHintProvider = (*IdentifyScreen)(nil)

// New creates the identify screen.
func New(deps screen.Deps) *IdentifyScreen {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	maxDim := deps.ImageMaxDim
	if maxDim <= 0 {
		maxDim = media.DefaultMaxDimension
	}

	ident := games.NewIdentifier(deps.Provider, deps.GameOptions()...)
	feed := screen.NewFeed[prompt.State]()
	ident.Subscribe(feed.Push)

	return &IdentifyScreen{
		ident:   ident,
		feed:    feed,
		state:   ident.State(),
		input:   components.NewTextInput("Path to a picture...", false, 400),
		spinner: components.NewSpinner(),
		speaker: deps.Speaker,
		maxDim:  maxDim,
		log:     log,
	}
}

func (s *IdentifyScreen) Init() tea.Cmd {
	return tea.Batch(s.feed.Next(), s.input.Init(), s.spinner.Tick())
}

func (s *IdentifyScreen) Title() string {
	return "Identify Image"
}

// Close stops the identifier and releases the feed.
func (s *IdentifyScreen) Close() {
	s.ident.Close()
	s.feed.Close()
}

func (s *IdentifyScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: "Identify"}}
	if _, ok := s.state.(prompt.Success); ok && s.speaker != nil {
		hints = append(hints, layout.KeyHint{Key: "Tab", Description: "Say it"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *IdentifyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.FeedMsg[prompt.State]:
		if msg.Feed != s.feed {
			return s, nil
		}
		s.state = msg.Value
		return s, s.feed.Next()

	case imageLoadedMsg:
		s.loading = false
		if msg.err != nil {
			s.log.Warn("loading picture", zap.String("path", msg.path), zap.Error(msg.err))
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.picture = msg.path
		s.ident.Identify(msg.img)
		return s, nil

	case components.SpinnerTickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			path := strings.TrimSpace(s.input.Value())
			if path == "" || s.loading || s.state.Kind() == prompt.KindLoading {
				return s, nil
			}
			s.loading = true
			s.errMsg = ""
			maxDim := s.maxDim
			return s, func() tea.Msg {
				img, err := media.LoadImage(path, maxDim)
				return imageLoadedMsg{path: path, img: img, err: err}
			}
		case "tab":
			st, ok := s.state.(prompt.Success)
			if !ok || s.speaker == nil {
				return s, nil
			}
			sp, log := s.speaker, s.log
			return s, func() tea.Msg {
				if err := sp.Speak(context.Background(), st.OutputText, true); err != nil {
					log.Warn("speech failed", zap.Error(err))
				}
				return nil
			}
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *IdentifyScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)

	sections := []string{
		center.Foreground(theme.ArcadeYellow).Bold(true).Render("WHAT IS IN THE PICTURE?"),
		center.Render(s.input.View()),
	}

	switch {
	case s.errMsg != "":
		sections = append(sections, center.Foreground(theme.Error).Render("Could not open the picture: "+s.errMsg))
	case s.loading:
		sections = append(sections, center.Render(s.spinner.View("Opening the picture...")))
	default:
		sections = append(sections, s.renderResult(cw))
	}
	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (s *IdentifyScreen) renderResult(cw int) string {
	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)
	switch st := s.state.(type) {
	case prompt.Loading:
		return center.Render(s.spinner.View("Looking closely..."))
	case prompt.Success:
		name := lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(st.OutputText)
		return components.ArcadeCard(name, cw) + "\n" +
			center.Foreground(theme.TextDim).Render(s.picture)
	case prompt.Error:
		return center.Foreground(theme.Error).Render(st.Message)
	}
	return center.Foreground(theme.TextDim).Render("Type the path of a photo and press Enter.")
}
