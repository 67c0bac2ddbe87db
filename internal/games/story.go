package games

import (
	"context"
	"strings"

	"github.com/lyngdoh/curiouskids/internal/llm"
	"github.com/lyngdoh/curiouskids/internal/prompt"
)

// Titles are the preset story themes offered on the stories screen.
var Titles = []string{
	"Animals Stories",
	"Family Stories",
	"Superhero Stories",
	"Friendship Story",
}

// StoryPrompt asks for a short moral story about title.
func StoryPrompt(title string) string {
	return "Using simple words only, generate a story with a lesson at the end for kids about " + title
}

// StoryTeller generates a story for a title and can read it aloud.
type StoryTeller struct {
	ctrl  *prompt.Controller
	opts  options
	title string
}

// NewStoryTeller creates a StoryTeller. Call Tell to generate a story.
func NewStoryTeller(provider llm.Provider, opts ...Option) *StoryTeller {
	o := buildOptions(opts)
	return &StoryTeller{
		ctrl: prompt.New(provider,
			prompt.WithLogger(o.log),
			prompt.WithPurpose("story"),
			prompt.WithTimeout(o.timeout),
		),
		opts: o,
	}
}

// Tell requests a story about title. Blank titles are ignored.
func (s *StoryTeller) Tell(title string) {
	title = strings.TrimSpace(title)
	if title == "" {
		return
	}
	s.title = title
	s.ctrl.SendPrompt(nil, StoryPrompt(title))
}

// Title returns the last requested title.
func (s *StoryTeller) Title() string {
	return s.title
}

// State returns the story's view state.
func (s *StoryTeller) State() prompt.State {
	return s.ctrl.State()
}

// Subscribe registers fn to receive every state change.
func (s *StoryTeller) Subscribe(fn func(prompt.State)) (unsubscribe func()) {
	return s.ctrl.Subscribe(fn)
}

// ReadAloud speaks the story if one has been generated.
// It reports whether anything was spoken.
func (s *StoryTeller) ReadAloud(ctx context.Context) bool {
	st, ok := s.ctrl.State().(prompt.Success)
	if !ok {
		return false
	}
	s.opts.speak(ctx, st.OutputText, true)
	return true
}

// Wait blocks until no request is in flight.
func (s *StoryTeller) Wait() {
	s.ctrl.Wait()
}

// Close stops the story teller.
func (s *StoryTeller) Close() {
	s.ctrl.Close()
}
