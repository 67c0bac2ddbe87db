package prompt

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lyngdoh/curiouskids/internal/llm"
)

// Image is the optional picture sent along with a prompt.
type Image = llm.Image

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// WithPurpose labels the controller's requests in the LLM event log.
func WithPurpose(purpose string) Option {
	return func(c *Controller) { c.purpose = purpose }
}

// WithTransform post-processes non-empty output text before it becomes a Success.
func WithTransform(fn func(string) string) Option {
	return func(c *Controller) { c.transform = fn }
}

// WithTimeout bounds each request. Zero leaves timing to the provider.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) { c.timeout = d }
}

// WithSystem sets a system prompt sent with every request.
func WithSystem(system string) Option {
	return func(c *Controller) { c.system = system }
}

type subscriber struct {
	id uint64
	fn func(State)
}

// Controller owns a single view state and moves it through
// Loading to Success or Error for every prompt it sends.
//
// The newest SendPrompt always wins: a result belonging to a superseded
// request is dropped, as is any result that arrives after Close.
// Observers are called one transition at a time, in order, from a
// dispatch goroutine. They may call SendPrompt but must not call Wait.
type Controller struct {
	provider  llm.Provider
	log       *zap.Logger
	purpose   string
	system    string
	transform func(string) string
	timeout   time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	cond       *sync.Cond
	state      State
	gen        uint64
	inflight   int
	pending    []State
	delivering bool
	closed     bool
	subs       []subscriber
	nextSub    uint64
}

// New creates a Controller in the Initial state.
func New(provider llm.Provider, opts ...Option) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		provider: provider,
		log:      zap.NewNop(),
		purpose:  "prompt",
		ctx:      ctx,
		cancel:   cancel,
		state:    Initial{},
	}
	c.cond = sync.NewCond(&c.mu)
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.Named("prompt").With(zap.String("purpose", c.purpose))
	return c
}

// State returns the current view state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers fn to receive every subsequent transition.
// The returned function removes the registration.
func (c *Controller) Subscribe(fn func(State)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextSub++
	id := c.nextSub
	c.subs = append(c.subs, subscriber{id: id, fn: fn})

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, s := range c.subs {
			if s.id == id {
				c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
				return
			}
		}
	}
}

// SendPrompt moves the state to Loading and asks the provider for a
// response in the background. It never blocks on the network.
// After Close it does nothing.
func (c *Controller) SendPrompt(img *Image, prompt string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.gen++
	gen := c.gen
	c.inflight++
	c.setLocked(Loading{})
	c.mu.Unlock()

	go c.run(gen, img, prompt)
}

// Wait blocks until no request is in flight and every queued transition
// has been delivered to observers.
func (c *Controller) Wait() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.inflight > 0 || len(c.pending) > 0 || c.delivering {
		c.cond.Wait()
	}
}

// Close cancels in-flight requests and stops notifying observers.
// Results that arrive later are discarded. Close is idempotent.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.pending = nil
	c.cancel()
	c.cond.Broadcast()
}

func (c *Controller) run(gen uint64, img *Image, prompt string) {
	next := c.generate(img, prompt)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight--
	switch {
	case c.closed:
		c.log.Debug("discarding result after close", zap.Stringer("kind", next.Kind()))
	case gen != c.gen:
		c.log.Debug("discarding superseded result",
			zap.Uint64("gen", gen), zap.Uint64("current", c.gen))
	default:
		c.setLocked(next)
	}
	c.cond.Broadcast()
}

// generate performs one request and maps its outcome to Success or Error.
func (c *Controller) generate(img *Image, prompt string) (next State) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("provider panicked", zap.Any("panic", r))
			next = Error{Message: fmt.Sprintf("internal error: %v", r)}
		}
	}()

	reqID := uuid.NewString()
	ctx := llm.WithRequestID(llm.WithPurpose(c.ctx, c.purpose), reqID)
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req := llm.UserPrompt(img, prompt)
	req.System = c.system

	resp, err := c.provider.Generate(ctx, req)
	if err == nil && (resp == nil || resp.Text == "") {
		err = llm.ErrEmptyResponse
	}
	if err != nil {
		c.log.Info("prompt failed", zap.String("request_id", reqID), zap.Error(err))
		return Error{Message: errorMessage(err)}
	}

	text := resp.Text
	if c.transform != nil {
		text = c.transform(text)
	}
	return Success{OutputText: text}
}

// setLocked records s as current and queues it for observers.
// c.mu must be held.
func (c *Controller) setLocked(s State) {
	c.state = s
	c.pending = append(c.pending, s)
	if !c.delivering {
		c.delivering = true
		go c.deliver()
	}
}

func (c *Controller) deliver() {
	c.mu.Lock()
	for len(c.pending) > 0 && !c.closed {
		s := c.pending[0]
		c.pending = c.pending[1:]
		subs := append([]subscriber(nil), c.subs...)
		c.mu.Unlock()

		for _, sub := range subs {
			c.notify(sub.fn, s)
		}

		c.mu.Lock()
	}
	c.pending = nil
	c.delivering = false
	c.cond.Broadcast()
	c.mu.Unlock()
}

func (c *Controller) notify(fn func(State), s State) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("observer panicked", zap.Any("panic", r))
		}
	}()
	fn(s)
}

func errorMessage(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "unknown error"
}
