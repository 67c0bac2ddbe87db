package media

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// ErrNoSpeechEngine means no text-to-speech command could be found.
var ErrNoSpeechEngine = errors.New("no text-to-speech command found")

// CommandSpeaker reads text aloud by running a local TTS command such
// as say or espeak with the text as its last argument.
type CommandSpeaker struct {
	path string
	args []string
	log  *zap.Logger

	mu      sync.Mutex
	current *exec.Cmd
	done    chan struct{}
}

// NewSpeaker returns a CommandSpeaker for command ("name arg1 arg2"),
// or for the platform default when command is empty.
func NewSpeaker(command string, log *zap.Logger) (*CommandSpeaker, error) {
	if log == nil {
		log = zap.NewNop()
	}

	fields := strings.Fields(command)
	if len(fields) == 0 {
		fields = defaultSpeechCommand()
	}
	if len(fields) == 0 {
		return nil, ErrNoSpeechEngine
	}

	path, err := exec.LookPath(fields[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoSpeechEngine, err)
	}
	return &CommandSpeaker{path: path, args: fields[1:], log: log.Named("tts")}, nil
}

func defaultSpeechCommand() []string {
	if runtime.GOOS == "darwin" {
		return []string{"say"}
	}
	for _, name := range []string{"espeak-ng", "espeak", "spd-say"} {
		if _, err := exec.LookPath(name); err == nil {
			return []string{name}
		}
	}
	return nil
}

// Speak starts reading text and returns without waiting for it to finish.
// With interrupt, anything still playing is stopped first; otherwise
// Speak waits for it to end.
func (s *CommandSpeaker) Speak(ctx context.Context, text string, interrupt bool) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		if interrupt {
			_ = s.current.Process.Kill()
		}
		select {
		case <-s.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	args := append(append([]string(nil), s.args...), text)
	cmd := exec.Command(s.path, args...)
	if err := cmd.Start(); err != nil {
		s.current = nil
		return fmt.Errorf("start speech: %w", err)
	}

	done := make(chan struct{})
	s.current, s.done = cmd, done
	go func() {
		if err := cmd.Wait(); err != nil {
			s.log.Debug("speech ended", zap.Error(err))
		}
		close(done)
	}()
	return nil
}

// Wait blocks until the current utterance ends.
func (s *CommandSpeaker) Wait() {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done != nil {
		<-done
	}
}

// Stop cuts off anything currently playing.
func (s *CommandSpeaker) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		_ = s.current.Process.Kill()
	}
}

// NopSpeaker discards everything. It is used when no TTS engine exists.
type NopSpeaker struct{}

// Speak implements games.Speaker.
func (NopSpeaker) Speak(context.Context, string, bool) error { return nil }
