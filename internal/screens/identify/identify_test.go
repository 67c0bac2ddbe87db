package identify

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyngdoh/curiouskids/internal/llm"
	"github.com/lyngdoh/curiouskids/internal/prompt"
	"github.com/lyngdoh/curiouskids/internal/screen"
)

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func writePNG(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	path := filepath.Join(t.TempDir(), "ball.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func testScreen(t *testing.T, mock *llm.MockProvider) *IdentifyScreen {
	t.Helper()
	s := New(screen.Deps{Provider: mock})
	t.Cleanup(s.Close)
	return s
}

func deliver(s *IdentifyScreen) {
	s.Update(screen.FeedMsg[prompt.State]{Feed: s.feed, Value: s.ident.State()})
}

func TestIdentifyScreen_Idle(t *testing.T) {
	s := testScreen(t, llm.NewMockProvider())
	assert.Equal(t, "Identify Image", s.Title())
	assert.Contains(t, s.View(100, 30), "Type the path of a photo")
}

func TestIdentifyScreen_IdentifiesPicture(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "  Red ball \nIt is round."})
	s := testScreen(t, mock)
	path := writePNG(t)

	s.input.Model.SetValue(path)
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.Contains(t, s.View(100, 30), "Opening the picture")

	s.Update(cmd())
	s.ident.Wait()
	deliver(s)

	view := s.View(100, 30)
	assert.Contains(t, view, "Red ball")
	assert.NotContains(t, view, "It is round.")

	require.Len(t, mock.Calls, 1)
	msgs := mock.Calls[0].Messages
	require.NotEmpty(t, msgs)
	require.NotNil(t, msgs[0].Image)
	assert.Equal(t, "image/png", msgs[0].Image.MIMEType)
}

func TestIdentifyScreen_BadPath(t *testing.T) {
	mock := llm.NewMockProvider()
	s := testScreen(t, mock)

	s.input.Model.SetValue(filepath.Join(t.TempDir(), "nope.png"))
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	require.NotNil(t, cmd)
	s.Update(cmd())

	assert.Contains(t, s.View(100, 30), "Could not open the picture")
	assert.Zero(t, mock.CallCount())
}

func TestIdentifyScreen_EmptyPathIgnored(t *testing.T) {
	s := testScreen(t, llm.NewMockProvider())
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	assert.Nil(t, cmd)
}
