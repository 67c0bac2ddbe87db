package games

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/lyngdoh/curiouskids/internal/llm"
	"github.com/lyngdoh/curiouskids/internal/prompt"
	"github.com/lyngdoh/curiouskids/internal/score"
)

var (
	// ErrMalformed means a response lacks a usable Question or Answer.
	ErrMalformed = errors.New("response does not follow the Question/Answer pattern")

	// ErrAnswerLeaked means the answer text appears inside the question.
	ErrAnswerLeaked = errors.New("answer appears in the question")

	// ErrGaveUp means the refetch budget ran out without a usable question.
	ErrGaveUp = errors.New("could not get a usable question")
)

// Operation is one of the four arithmetic activities.
type Operation string

const (
	Addition       Operation = "addition"
	Subtraction    Operation = "subtraction"
	Multiplication Operation = "multiplication"
	Division       Operation = "division"
)

// Operations lists every operation in menu order.
var Operations = []Operation{Addition, Subtraction, Multiplication, Division}

// ParseOperation accepts an operation name in any case.
func ParseOperation(s string) (Operation, error) {
	op := Operation(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Operations {
		if op == known {
			return op, nil
		}
	}
	return "", fmt.Errorf("unknown operation %q", s)
}

// Title is the operation name as shown on screen.
func (o Operation) Title() string {
	if o == "" {
		return ""
	}
	return strings.ToUpper(string(o[:1])) + string(o[1:])
}

// Prompt is the request sent to the model for a new question.
func (o Operation) Prompt() string {
	return "Generate a simple " + string(o) + " question for kids and provide the correct answer. " +
		"Response follows the pattern 'Question: ... Answer: ...'. " +
		"Ensure the answer is not included in the question."
}

// ScoreKey is the persisted score key for the operation.
func (o Operation) ScoreKey() string {
	return string(o) + "_score"
}

// Question is a parsed math question.
type Question struct {
	Text   string
	Answer string
}

var (
	questionPattern = regexp.MustCompile(`(?m)Question: (.*?)(?:Answer:|$)`)
	answerPattern   = regexp.MustCompile(`(?m)Answer: (.*)$`)
)

// ParseQuestion extracts the question and answer from a model response.
// The question runs from "Question: " up to the "Answer:" marker or the
// end of its line. The answer runs from "Answer: " to the end of its line.
func ParseQuestion(text string) (Question, error) {
	qm := questionPattern.FindStringSubmatch(text)
	am := answerPattern.FindStringSubmatch(text)
	if qm == nil || am == nil {
		return Question{}, ErrMalformed
	}

	q := Question{
		Text:   strings.TrimSpace(qm[1]),
		Answer: strings.TrimSpace(am[1]),
	}
	if q.Text == "" || q.Answer == "" {
		return Question{}, ErrMalformed
	}
	if strings.Contains(q.Text, q.Answer) {
		return Question{}, ErrAnswerLeaked
	}
	return q, nil
}

// Phase is where a game currently is.
type Phase int

const (
	PhaseIdle     Phase = iota // Not started
	PhaseLoading               // Waiting for the model
	PhaseReady                 // Waiting for the player
	PhaseFeedback              // Showing the result of an answer
	PhaseFailed                // Stopped after an unrecoverable error
)

// Feedback shown after an answer.
const (
	CorrectTitle     = "Correct!"
	CorrectMessage   = "Well done! You got it right."
	IncorrectTitle   = "Incorrect"
	IncorrectMessage = "Oops! That's not correct. Please try again."
)

// MathView is everything a screen needs to draw a math game.
type MathView struct {
	Operation Operation
	Phase     Phase
	Question  string
	Title     string
	Message   string
	Correct   bool
	Score     int
}

// MathGame serves questions for one operation and keeps its score.
type MathGame struct {
	op     Operation
	ctrl   *prompt.Controller
	keeper *score.Keeper
	opts   options
	log    *zap.Logger

	mu        sync.Mutex
	view      MathView
	question  Question
	refetches int
	subs      []func(MathView)
}

// NewMathGame creates a game for op. Call Start to fetch the first question.
func NewMathGame(provider llm.Provider, keeper *score.Keeper, op Operation, opts ...Option) *MathGame {
	o := buildOptions(opts)
	g := &MathGame{
		op:     op,
		keeper: keeper,
		opts:   o,
		log:    o.log.Named("math").With(zap.String("operation", string(op))),
		view:   MathView{Operation: op},
	}
	g.ctrl = prompt.New(provider,
		prompt.WithLogger(o.log),
		prompt.WithPurpose("math-"+string(op)),
		prompt.WithTimeout(o.timeout),
	)
	g.ctrl.Subscribe(g.onState)
	return g
}

// Subscribe registers fn to receive every view change.
func (g *MathGame) Subscribe(fn func(MathView)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.subs = append(g.subs, fn)
}

// View returns the current view.
func (g *MathGame) View() MathView {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.view
}

// Start loads the saved score and requests the first question.
func (g *MathGame) Start(ctx context.Context) error {
	v, err := g.keeper.Load(ctx, g.op.ScoreKey())
	if err != nil {
		return err
	}
	g.update(func(view *MathView) { view.Score = v })
	g.Next()
	return nil
}

// Next discards the current question and requests a fresh one.
func (g *MathGame) Next() {
	g.mu.Lock()
	g.refetches = 0
	g.question = Question{}
	g.mu.Unlock()
	g.ctrl.SendPrompt(nil, g.op.Prompt())
}

// Submit checks answer against the current question. A correct answer
// adds one to the saved score. It returns false if no question is showing.
func (g *MathGame) Submit(ctx context.Context, answer string) (bool, error) {
	g.mu.Lock()
	if g.view.Phase != PhaseReady {
		g.mu.Unlock()
		return false, nil
	}
	correct := strings.TrimSpace(answer) == g.question.Answer
	g.mu.Unlock()

	var newScore int
	if correct {
		var err error
		newScore, err = g.keeper.Increment(ctx, g.op.ScoreKey())
		if err != nil {
			return false, err
		}
	}

	g.update(func(view *MathView) {
		view.Phase = PhaseFeedback
		view.Correct = correct
		if correct {
			view.Score = newScore
			view.Title, view.Message = CorrectTitle, CorrectMessage
		} else {
			view.Title, view.Message = IncorrectTitle, IncorrectMessage
		}
	})
	return correct, nil
}

// Dismiss closes the feedback shown after Submit. After a correct answer
// a new question is requested; otherwise the same question is asked again.
func (g *MathGame) Dismiss() {
	g.mu.Lock()
	if g.view.Phase != PhaseFeedback {
		g.mu.Unlock()
		return
	}
	correct := g.view.Correct
	g.mu.Unlock()

	if correct {
		g.Next()
		return
	}
	g.update(func(view *MathView) {
		view.Phase = PhaseReady
		view.Title, view.Message = "", ""
	})
}

// Wait blocks until no request is in flight. Intended for tests and the CLI.
func (g *MathGame) Wait() {
	g.ctrl.Wait()
}

// Close stops the game. Late responses are ignored.
func (g *MathGame) Close() {
	g.ctrl.Close()
}

func (g *MathGame) onState(s prompt.State) {
	switch s := s.(type) {
	case prompt.Loading:
		g.update(func(view *MathView) {
			view.Phase = PhaseLoading
			view.Question, view.Title, view.Message = "", "", ""
			view.Correct = false
		})
	case prompt.Success:
		q, err := ParseQuestion(s.OutputText)
		if err != nil {
			g.refetch(err)
			return
		}
		g.mu.Lock()
		g.question = q
		g.mu.Unlock()
		g.update(func(view *MathView) {
			view.Phase = PhaseReady
			view.Question = q.Text
		})
	case prompt.Error:
		g.refetch(errors.New(s.Message))
	}
}

// refetch silently asks again, up to the configured limit.
func (g *MathGame) refetch(reason error) {
	g.mu.Lock()
	if g.refetches >= g.opts.maxRefetches {
		g.mu.Unlock()
		g.log.Warn("giving up on question", zap.Error(reason))
		g.update(func(view *MathView) {
			view.Phase = PhaseFailed
			view.Message = fmt.Sprintf("%v: %v", ErrGaveUp, reason)
		})
		return
	}
	g.refetches++
	n := g.refetches
	g.mu.Unlock()

	g.log.Debug("re-requesting question", zap.Int("attempt", n), zap.Error(reason))
	g.ctrl.SendPrompt(nil, g.op.Prompt())
}

func (g *MathGame) update(fn func(*MathView)) {
	g.mu.Lock()
	fn(&g.view)
	view := g.view
	subs := append([]func(MathView){}, g.subs...)
	g.mu.Unlock()

	for _, sub := range subs {
		sub(view)
	}
}
