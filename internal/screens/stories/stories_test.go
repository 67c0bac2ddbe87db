package stories

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyngdoh/curiouskids/internal/llm"
	"github.com/lyngdoh/curiouskids/internal/router"
	"github.com/lyngdoh/curiouskids/internal/screen"
	"github.com/lyngdoh/curiouskids/internal/screens/story"
)

type fakeTranscriber struct {
	text     string
	gotAudio []byte
	gotMIME  string
}

func (f *fakeTranscriber) Transcribe(_ context.Context, audio []byte, mimeType string) (string, error) {
	f.gotAudio, f.gotMIME = audio, mimeType
	return f.text, nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func pushed(t *testing.T, cmd tea.Cmd) *story.DetailScreen {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok, "expected a push")
	d, ok := msg.Screen.(*story.DetailScreen)
	require.True(t, ok)
	t.Cleanup(d.Close)
	return d
}

func TestListScreen_PresetTitle(t *testing.T) {
	s := New(screen.Deps{Provider: llm.NewMockProvider()})
	view := s.View(100, 40)
	assert.Contains(t, view, "ANIMALS STORIES")
	assert.Contains(t, view, "FRIENDSHIP STORY")

	_, cmd := s.Update(keyPress('3'))
	d := pushed(t, cmd)
	assert.Equal(t, "Superhero Stories", d.Title())
}

func TestListScreen_TypedTitle(t *testing.T) {
	s := New(screen.Deps{Provider: llm.NewMockProvider()})

	s.Update(keyPress('5'))
	require.Equal(t, modeTitle, s.mode)
	assert.Contains(t, s.View(100, 40), "What should the story be about?")

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	assert.Nil(t, cmd, "blank title is ignored")

	s.input.Model.SetValue("A brave little turtle")
	_, cmd = s.Update(specialKey(tea.KeyEnter))
	d := pushed(t, cmd)
	assert.Equal(t, "A brave little turtle", d.Title())
	assert.Equal(t, modeList, s.mode)
}

func TestListScreen_TabReturnsToList(t *testing.T) {
	s := New(screen.Deps{Provider: llm.NewMockProvider()})
	s.Update(keyPress('5'))
	s.Update(specialKey(tea.KeyTab))
	assert.Equal(t, modeList, s.mode)
}

func TestListScreen_VoiceDisabledWithoutTranscriber(t *testing.T) {
	s := New(screen.Deps{Provider: llm.NewMockProvider()})
	s.Update(keyPress('6'))
	assert.Equal(t, modeList, s.mode)
}

func TestListScreen_VoiceTitle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "title.flac")
	require.NoError(t, os.WriteFile(path, []byte("audio"), 0o644))

	tr := &fakeTranscriber{text: "Dragons"}
	s := New(screen.Deps{Provider: llm.NewMockProvider(), Transcriber: tr})

	s.Update(keyPress('6'))
	require.Equal(t, modeVoice, s.mode)
	s.input.Model.SetValue(path)

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.True(t, s.busy)
	assert.Contains(t, s.View(100, 40), "Listening")

	_, cmd = s.Update(cmd())
	d := pushed(t, cmd)
	assert.Equal(t, "Dragons", d.Title())
	assert.Equal(t, []byte("audio"), tr.gotAudio)
	assert.Equal(t, "audio/flac", tr.gotMIME)
}

func TestListScreen_VoiceNothingHeard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "title.wav")
	require.NoError(t, os.WriteFile(path, []byte("audio"), 0o644))

	s := New(screen.Deps{Provider: llm.NewMockProvider(), Transcriber: &fakeTranscriber{}})
	s.Update(keyPress('6'))
	s.input.Model.SetValue(path)

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	require.NotNil(t, cmd)
	_, cmd = s.Update(cmd())
	assert.Nil(t, cmd)
	assert.Contains(t, s.View(100, 40), "Didn't catch that")
}

func TestListScreen_VoiceMissingFile(t *testing.T) {
	s := New(screen.Deps{Provider: llm.NewMockProvider(), Transcriber: &fakeTranscriber{text: "x"}})
	s.Update(keyPress('6'))
	s.input.Model.SetValue(filepath.Join(t.TempDir(), "missing.wav"))

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	require.NotNil(t, cmd)
	_, cmd = s.Update(cmd())
	assert.Nil(t, cmd)
	assert.Contains(t, s.View(100, 40), "Could not understand the recording")
}
