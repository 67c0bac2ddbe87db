package games

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyngdoh/curiouskids/internal/llm"
	"github.com/lyngdoh/curiouskids/internal/prompt"
)

func TestStoryPrompt(t *testing.T) {
	assert.Equal(t,
		"Using simple words only, generate a story with a lesson at the end for kids about Family Stories",
		StoryPrompt("Family Stories"))
	assert.Len(t, Titles, 4)
}

func TestStoryTellAndReadAloud(t *testing.T) {
	sp := &fakeSpeaker{}
	story := "Once upon a time a fox shared its berries.\n\nThe lesson: sharing is kind."
	mock := llm.NewMockProvider(llm.MockResponse{Text: story})
	st := NewStoryTeller(mock, WithSpeaker(sp))
	defer st.Close()

	assert.False(t, st.ReadAloud(context.Background()), "nothing to read yet")

	st.Tell("  Animals Stories ")
	assert.Equal(t, prompt.Loading{}, st.State())
	st.Wait()

	assert.Equal(t, "Animals Stories", st.Title())
	assert.Equal(t, prompt.Success{OutputText: story}, st.State())
	assert.Equal(t, StoryPrompt("Animals Stories"), mock.LastPrompt())

	assert.True(t, st.ReadAloud(context.Background()))
	assert.Equal(t, []string{story}, sp.lines())
}

func TestStoryBlankTitleIgnored(t *testing.T) {
	mock := llm.NewMockProvider()
	st := NewStoryTeller(mock)
	defer st.Close()

	st.Tell("   ")
	st.Wait()
	assert.Equal(t, prompt.Initial{}, st.State())
	assert.Zero(t, mock.CallCount())
}

func TestStoryFailureIsError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("blocked")})
	st := NewStoryTeller(mock)
	defer st.Close()

	st.Tell("Superhero Stories")
	st.Wait()

	e, ok := st.State().(prompt.Error)
	require.True(t, ok)
	assert.Equal(t, "blocked", e.Message)
	assert.False(t, st.ReadAloud(context.Background()))
}
