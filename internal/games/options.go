// Package games implements the activities kids pick from the home menu.
// Every game talks to the model through a prompt.Controller and reports
// its own view to whoever subscribes.
package games

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// DefaultMaxRefetches bounds how many times a game silently re-requests
// after an unusable response before giving up.
const DefaultMaxRefetches = 5

// Speaker reads text aloud. When interrupt is true any speech already
// playing is cut off first.
type Speaker interface {
	Speak(ctx context.Context, text string, interrupt bool) error
}

// Option configures a game.
type Option func(*options)

type options struct {
	log          *zap.Logger
	maxRefetches int
	timeout      time.Duration
	speaker      Speaker
}

func defaultOptions() options {
	return options{
		log:          zap.NewNop(),
		maxRefetches: DefaultMaxRefetches,
		speaker:      silent{},
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger used by the game and its controller.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithMaxRefetches overrides DefaultMaxRefetches. Negative values are treated as zero.
func WithMaxRefetches(n int) Option {
	return func(o *options) {
		if n < 0 {
			n = 0
		}
		o.maxRefetches = n
	}
}

// WithTimeout bounds every model request made by the game.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithSpeaker sets the text-to-speech collaborator. The default is silent.
func WithSpeaker(s Speaker) Option {
	return func(o *options) {
		if s != nil {
			o.speaker = s
		}
	}
}

type silent struct{}

func (silent) Speak(context.Context, string, bool) error { return nil }

// speak plays text and logs, rather than returns, any failure.
func (o options) speak(ctx context.Context, text string, interrupt bool) {
	if err := o.speaker.Speak(ctx, text, interrupt); err != nil {
		o.log.Warn("speech failed", zap.Error(err))
	}
}
