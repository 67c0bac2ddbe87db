package games

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lyngdoh/curiouskids/internal/llm"
	"github.com/lyngdoh/curiouskids/internal/prompt"
	"github.com/lyngdoh/curiouskids/internal/score"
)

// Spelling bee prompts and spoken feedback.
const (
	FirstWordPrompt = "For kids, generate a word for a spelling bee without definition"
	NextWordPrompt  = "For kids, generate a new word for a spelling bee without definition"

	SpellingCorrect   = "Correct!"
	SpellingIncorrect = "Incorrect. Try again!"

	spokenIncorrect = "Incorrect. Try again."
	noDefinition    = "No definition found"
)

// DefinitionPrompt asks the model to define word.
func DefinitionPrompt(word string) string {
	return "Provide a simple definition for the word: " + word
}

// CleanWord strips whitespace and markdown bold markers from a generated word.
func CleanWord(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "**", "")
}

// SpellingView is everything a screen needs to draw the spelling bee.
// Word is the word to spell; screens must not show it.
type SpellingView struct {
	Phase      Phase
	Word       string
	Feedback   string
	Correct    bool
	Definition string
	Message    string
	Score      int
}

// SpellingBee asks the model for words and checks the player's spelling.
type SpellingBee struct {
	provider llm.Provider
	ctrl     *prompt.Controller
	keeper   *score.Keeper
	opts     options
	log      *zap.Logger

	mu   sync.Mutex
	view SpellingView
	subs []func(SpellingView)
}

// NewSpellingBee creates a spelling bee. Call Start to fetch the first word.
func NewSpellingBee(provider llm.Provider, keeper *score.Keeper, opts ...Option) *SpellingBee {
	o := buildOptions(opts)
	b := &SpellingBee{
		provider: provider,
		keeper:   keeper,
		opts:     o,
		log:      o.log.Named("spelling"),
	}
	b.ctrl = prompt.New(provider,
		prompt.WithLogger(o.log),
		prompt.WithPurpose("spelling"),
		prompt.WithTimeout(o.timeout),
	)
	b.ctrl.Subscribe(b.onState)
	return b
}

// Subscribe registers fn to receive every view change.
func (b *SpellingBee) Subscribe(fn func(SpellingView)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, fn)
}

// View returns the current view.
func (b *SpellingBee) View() SpellingView {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.view
}

// Start loads the saved score and requests the first word.
func (b *SpellingBee) Start(ctx context.Context) error {
	v, err := b.keeper.Load(ctx, score.SpellingKey)
	if err != nil {
		return err
	}
	b.update(func(view *SpellingView) { view.Score = v })
	b.ctrl.SendPrompt(nil, FirstWordPrompt)
	return nil
}

// Retry requests a new word after a failure.
func (b *SpellingBee) Retry() {
	b.ctrl.SendPrompt(nil, NextWordPrompt)
}

// Check compares input to the current word, ignoring case. A correct
// spelling adds one to the score and fetches the next word. The word is
// retired as soon as it matches, so it can only score once.
func (b *SpellingBee) Check(ctx context.Context, input string) (bool, error) {
	b.mu.Lock()
	if b.view.Phase != PhaseReady && b.view.Phase != PhaseFeedback {
		b.mu.Unlock()
		return false, nil
	}
	word := b.view.Word
	correct := strings.EqualFold(strings.TrimSpace(input), word)
	if correct {
		b.view.Phase = PhaseLoading
		b.view.Word = ""
	}
	b.mu.Unlock()

	if !correct {
		b.update(func(view *SpellingView) {
			view.Phase = PhaseFeedback
			view.Feedback = SpellingIncorrect
			view.Correct = false
		})
		b.opts.speak(ctx, spokenIncorrect, true)
		return false, nil
	}

	newScore, err := b.keeper.Increment(ctx, score.SpellingKey)
	if err != nil {
		b.update(func(view *SpellingView) {
			view.Phase = PhaseReady
			view.Word = word
		})
		return false, err
	}
	b.update(func(view *SpellingView) {
		view.Feedback = SpellingCorrect
		view.Correct = true
		view.Score = newScore
	})
	b.opts.speak(ctx, SpellingCorrect, true)
	b.ctrl.SendPrompt(nil, NextWordPrompt)
	return true, nil
}

// HearWord speaks the current word.
func (b *SpellingBee) HearWord(ctx context.Context) {
	word := b.View().Word
	if word == "" {
		return
	}
	b.opts.speak(ctx, word, true)
}

// Definition asks the model to define the current word, speaks the
// result and returns it. Failures are reported in the returned text.
func (b *SpellingBee) Definition(ctx context.Context) string {
	word := b.View().Word
	if word == "" {
		return ""
	}

	def := Define(ctx, b.provider, word, b.opts.timeout)
	b.update(func(view *SpellingView) { view.Definition = def })
	b.opts.speak(ctx, def, true)
	return def
}

// Wait blocks until no request is in flight.
func (b *SpellingBee) Wait() {
	b.ctrl.Wait()
}

// Close stops the game.
func (b *SpellingBee) Close() {
	b.ctrl.Close()
}

func (b *SpellingBee) onState(s prompt.State) {
	switch s := s.(type) {
	case prompt.Loading:
		b.update(func(view *SpellingView) {
			view.Phase = PhaseLoading
			view.Word, view.Definition, view.Message = "", "", ""
		})
	case prompt.Success:
		word := CleanWord(s.OutputText)
		b.log.Debug("generated word", zap.String("word", word))
		b.update(func(view *SpellingView) {
			view.Phase = PhaseReady
			view.Word = word
		})
	case prompt.Error:
		b.update(func(view *SpellingView) {
			view.Phase = PhaseFailed
			view.Message = s.Message
		})
	}
}

func (b *SpellingBee) update(fn func(*SpellingView)) {
	b.mu.Lock()
	fn(&b.view)
	view := b.view
	subs := append([]func(SpellingView){}, b.subs...)
	b.mu.Unlock()

	for _, sub := range subs {
		sub(view)
	}
}

// Define makes a single blocking definition request for word.
func Define(ctx context.Context, provider llm.Provider, word string, timeout time.Duration) string {
	ctx = llm.WithPurpose(ctx, "definition")
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	resp, err := provider.Generate(ctx, llm.UserPrompt(nil, DefinitionPrompt(word)))
	if err != nil {
		return "Error fetching definition: " + err.Error()
	}
	if resp == nil || strings.TrimSpace(resp.Text) == "" {
		return noDefinition
	}
	return resp.Text
}
