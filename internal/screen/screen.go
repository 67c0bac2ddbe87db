package screen

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/lyngdoh/curiouskids/internal/games"
	"github.com/lyngdoh/curiouskids/internal/llm"
	"github.com/lyngdoh/curiouskids/internal/media"
	"github.com/lyngdoh/curiouskids/internal/score"
	"github.com/lyngdoh/curiouskids/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Closer is implemented by screens that own a running game or request.
// The router calls Close when the screen is popped.
type Closer interface {
	Close()
}

// Resumer is implemented by screens that refresh themselves when they
// become active again after the screen above them is popped.
type Resumer interface {
	Resume() tea.Cmd
}

// Deps are the collaborators shared by every screen.
// Provider is nil when no LLM is configured. Transcriber may be nil.
type Deps struct {
	Provider     llm.Provider
	Scores       *score.Keeper
	Speaker      games.Speaker
	Transcriber  media.Transcriber
	Log          *zap.Logger
	MaxRefetches int
	Timeout      time.Duration
	ImageMaxDim  int
}

// GameOptions returns the options every game is created with.
func (d Deps) GameOptions() []games.Option {
	return []games.Option{
		games.WithLogger(d.Log),
		games.WithSpeaker(d.Speaker),
		games.WithMaxRefetches(d.MaxRefetches),
		games.WithTimeout(d.Timeout),
	}
}
