package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/lyngdoh/curiouskids/internal/games"
	"github.com/lyngdoh/curiouskids/internal/router"
	"github.com/lyngdoh/curiouskids/internal/score"
	"github.com/lyngdoh/curiouskids/internal/screen"
	"github.com/lyngdoh/curiouskids/internal/screens/identify"
	"github.com/lyngdoh/curiouskids/internal/screens/mathmenu"
	"github.com/lyngdoh/curiouskids/internal/screens/spelling"
	"github.com/lyngdoh/curiouskids/internal/screens/stories"
	"github.com/lyngdoh/curiouskids/internal/ui/components"
	"github.com/lyngdoh/curiouskids/internal/ui/layout"
)

// scores are the saved totals shown on the home screen.
type scores struct {
	math     int
	spelling int
}

// scoresMsg is sent when saved scores have been read.
type scoresMsg struct {
	scores scores
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	deps   screen.Deps
	menu   components.Menu
	scores scores
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen. Features that need the model are
// disabled when deps.Provider is nil.
func New(deps screen.Deps) *HomeScreen {
	noLLM := deps.Provider == nil
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: build()}
			}
		}
	}

	items := []components.MenuItem{
		{Label: "MATH FUN", Disabled: noLLM, Action: push(func() screen.Screen { return mathmenu.New(deps) })},
		{Label: "SPELLING BEE", Disabled: noLLM, Action: push(func() screen.Screen { return spelling.New(deps) })},
		{Label: "STORIES", Disabled: noLLM, Action: push(func() screen.Screen { return stories.New(deps) })},
		{Label: "IDENTIFY IMAGE", Disabled: noLLM, Action: push(func() screen.Screen { return identify.New(deps) })},
		{Label: "EXIT", Action: func() tea.Cmd { return tea.Quit }},
	}

	return &HomeScreen{
		deps: deps,
		menu: components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadScores()
}

// Resume reloads scores after a game screen is closed.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadScores()
}

func (h *HomeScreen) loadScores() tea.Cmd {
	keeper := h.deps.Scores
	if keeper == nil {
		return nil
	}
	log := h.deps.Log
	return func() tea.Msg {
		s, err := readScores(context.Background(), keeper)
		if err != nil && log != nil {
			log.Warn("loading scores", zap.Error(err))
		}
		return scoresMsg{scores: s}
	}
}

func readScores(ctx context.Context, keeper *score.Keeper) (scores, error) {
	all, err := keeper.All(ctx)
	if err != nil {
		return scores{}, err
	}
	mathKeys := make(map[string]bool, len(games.Operations))
	for _, op := range games.Operations {
		mathKeys[op.ScoreKey()] = true
	}

	var s scores
	for _, sc := range all {
		switch {
		case mathKeys[sc.Feature]:
			s.math += sc.Value
		case sc.Feature == score.SpellingKey:
			s.spelling = sc.Value
		}
	}
	return s, nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(scoresMsg); ok {
		h.scores = msg.scores
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompact(width, height)
	cw := components.ContentWidth(width)
	llmReady := h.deps.Provider != nil

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(mascotFor(h.scores, llmReady), cw))
	}
	if !llmReady {
		sections = append(sections, renderLLMBanner(cw))
	}
	sections = append(sections, renderScoreBar(h.scores, cw, compact))
	sections = append(sections, components.ArcadeMenu(h.menu, cw, compact))

	sep := "\n\n"
	if compact {
		sep = "\n"
	}
	return components.CabinetFrame(strings.Join(sections, sep), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
