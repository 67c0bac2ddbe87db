package games

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lyngdoh/curiouskids/internal/score"
	"github.com/lyngdoh/curiouskids/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "games.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newKeeper(t *testing.T) *score.Keeper {
	t.Helper()
	return score.NewKeeper(openStore(t).ScoreRepo())
}

// fakeSpeaker records everything it is asked to say.
type fakeSpeaker struct {
	mu     sync.Mutex
	said   []string
	interr []bool
	err    error
}

func (f *fakeSpeaker) Speak(_ context.Context, text string, interrupt bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.said = append(f.said, text)
	f.interr = append(f.interr, interrupt)
	return f.err
}

func (f *fakeSpeaker) lines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.said...)
}
