package games

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyngdoh/curiouskids/internal/llm"
	"github.com/lyngdoh/curiouskids/internal/score"
)

func TestCleanWord(t *testing.T) {
	tests := map[string]string{
		"**Butterfly**":   "Butterfly",
		"  Elephant \n":   "Elephant",
		" **Giraffe** \n": "Giraffe",
		"Rainbow":         "Rainbow",
	}
	for in, want := range tests {
		assert.Equal(t, want, CleanWord(in), "CleanWord(%q)", in)
	}
}

func startSpelling(t *testing.T, mock *llm.MockProvider, keeper *score.Keeper, sp Speaker) *SpellingBee {
	t.Helper()
	b := NewSpellingBee(mock, keeper, WithSpeaker(sp))
	t.Cleanup(b.Close)
	require.NoError(t, b.Start(context.Background()))
	b.Wait()
	return b
}

func TestSpellingFirstWord(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "**Butterfly**\n"})
	b := startSpelling(t, mock, newKeeper(t), &fakeSpeaker{})

	v := b.View()
	assert.Equal(t, PhaseReady, v.Phase)
	assert.Equal(t, "Butterfly", v.Word)
	assert.Equal(t, FirstWordPrompt, mock.LastPrompt())
}

func TestSpellingSubscribersSeeEveryChange(t *testing.T) {
	b := NewSpellingBee(llm.NewMockProvider(llm.MockResponse{Text: "Rainbow"}), newKeeper(t))
	t.Cleanup(b.Close)

	var (
		mu           sync.Mutex
		first, other []Phase
	)
	b.Subscribe(func(v SpellingView) {
		mu.Lock()
		defer mu.Unlock()
		first = append(first, v.Phase)
	})
	b.Subscribe(func(v SpellingView) {
		mu.Lock()
		defer mu.Unlock()
		other = append(other, v.Phase)
	})

	require.NoError(t, b.Start(context.Background()))
	b.Wait()

	mu.Lock()
	defer mu.Unlock()
	// Score load, Loading, Ready.
	assert.Equal(t, []Phase{PhaseIdle, PhaseLoading, PhaseReady}, first)
	assert.Equal(t, first, other)
}

func TestSpellingCorrectAdvances(t *testing.T) {
	sp := &fakeSpeaker{}
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: "**Butterfly**"},
		llm.MockResponse{Text: "Rainbow"},
	)
	b := startSpelling(t, mock, newKeeper(t), sp)

	ok, err := b.Check(context.Background(), "  butterFLY ")
	require.NoError(t, err)
	assert.True(t, ok)
	b.Wait()

	v := b.View()
	assert.Equal(t, 1, v.Score)
	assert.Equal(t, SpellingCorrect, v.Feedback)
	assert.Equal(t, "Rainbow", v.Word)
	assert.Equal(t, NextWordPrompt, mock.LastPrompt())
	assert.Equal(t, []string{"Correct!"}, sp.lines())
	assert.Equal(t, []bool{true}, sp.interr)
}

func TestSpellingIncorrectStays(t *testing.T) {
	sp := &fakeSpeaker{}
	mock := llm.NewMockProvider(llm.MockResponse{Text: "Rainbow"})
	b := startSpelling(t, mock, newKeeper(t), sp)

	ok, err := b.Check(context.Background(), "rainbo")
	require.NoError(t, err)
	assert.False(t, ok)

	v := b.View()
	assert.Equal(t, PhaseFeedback, v.Phase)
	assert.Equal(t, SpellingIncorrect, v.Feedback)
	assert.Equal(t, "Rainbow", v.Word)
	assert.Zero(t, v.Score)
	assert.Equal(t, 1, mock.CallCount())
	assert.Equal(t, []string{"Incorrect. Try again."}, sp.lines())

	// The same word can be tried again.
	mock.AddResponse(llm.MockResponse{Text: "Sunflower"})
	ok, err = b.Check(context.Background(), "Rainbow")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSpellingCorrectWordScoresOnce(t *testing.T) {
	s := openStore(t)
	next := make(chan struct{})
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: "**Butterfly**"},
		llm.MockResponse{Text: "Rainbow", Hold: next},
	)
	b := startSpelling(t, mock, score.NewKeeper(s.ScoreRepo()), &fakeSpeaker{})

	ok, err := b.Check(context.Background(), "butterfly")
	require.NoError(t, err)
	assert.True(t, ok)

	// The next word has not arrived; pressing Enter again must not score.
	ok, err = b.Check(context.Background(), "butterfly")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, b.View().Score)

	close(next)
	b.Wait()

	v := b.View()
	assert.Equal(t, "Rainbow", v.Word)
	assert.Equal(t, 1, v.Score)

	persisted, err := score.NewKeeper(s.ScoreRepo()).Load(context.Background(), score.SpellingKey)
	require.NoError(t, err)
	assert.Equal(t, 1, persisted)
}

func TestSpellingScorePersists(t *testing.T) {
	s := openStore(t)
	mock := llm.NewMockProvider(llm.MockResponse{Text: "Cat"}, llm.MockResponse{Text: "Dog"})
	b := startSpelling(t, mock, score.NewKeeper(s.ScoreRepo()), &fakeSpeaker{})

	_, err := b.Check(context.Background(), "cat")
	require.NoError(t, err)
	b.Wait()

	v, err := score.NewKeeper(s.ScoreRepo()).Load(context.Background(), score.SpellingKey)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestSpellingHearWord(t *testing.T) {
	sp := &fakeSpeaker{}
	mock := llm.NewMockProvider(llm.MockResponse{Text: "**Octopus**"})
	b := startSpelling(t, mock, newKeeper(t), sp)

	b.HearWord(context.Background())
	assert.Equal(t, []string{"Octopus"}, sp.lines())
	assert.Equal(t, []bool{true}, sp.interr)
}

func TestSpellingSpeakerErrorsAreIgnored(t *testing.T) {
	sp := &fakeSpeaker{err: errors.New("no audio device")}
	mock := llm.NewMockProvider(llm.MockResponse{Text: "Cat"}, llm.MockResponse{Text: "Dog"})
	b := startSpelling(t, mock, newKeeper(t), sp)

	ok, err := b.Check(context.Background(), "cat")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSpellingDefinition(t *testing.T) {
	tests := []struct {
		name string
		resp llm.MockResponse
		want string
	}{
		{"found", llm.MockResponse{Text: "An insect with big, colorful wings."}, "An insect with big, colorful wings."},
		{"empty", llm.MockResponse{Text: "  "}, "No definition found"},
		{"failure", llm.MockResponse{Err: errors.New("quota exceeded")}, "Error fetching definition: quota exceeded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sp := &fakeSpeaker{}
			mock := llm.NewMockProvider(llm.MockResponse{Text: "**Butterfly**"}, tt.resp)
			b := startSpelling(t, mock, newKeeper(t), sp)

			got := b.Definition(context.Background())
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, b.View().Definition)
			assert.Equal(t, DefinitionPrompt("Butterfly"), mock.LastPrompt())
			assert.Equal(t, []string{tt.want}, sp.lines())
		})
	}
}

func TestSpellingErrorThenRetry(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: errors.New("offline")},
		llm.MockResponse{Text: "Moon"},
	)
	b := startSpelling(t, mock, newKeeper(t), &fakeSpeaker{})

	v := b.View()
	assert.Equal(t, PhaseFailed, v.Phase)
	assert.Equal(t, "offline", v.Message)

	ok, err := b.Check(context.Background(), "anything")
	require.NoError(t, err)
	assert.False(t, ok)

	b.Retry()
	b.Wait()
	assert.Equal(t, "Moon", b.View().Word)
}
