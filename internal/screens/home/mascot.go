package home

import (
	"charm.land/lipgloss/v2"

	"github.com/lyngdoh/curiouskids/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Default purple
	MascotCelebrating                      // Gold, star eyes: a high score
	MascotAlert                            // Orange, exclamation: no LLM configured
)

// celebrateAt is the combined score that earns the celebrating mascot.
const celebrateAt = 10

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ a+? │
└─────┘`

const mascotCelebrating = `┌─────┐
│ ★ ★ │
│  ▿  │
│ a+? │
└─╥═╥─┘
  ╚═╝`

const mascotAlert = `┌─────┐
│ ◉ ◉ │ !
│  ▽  │
│ a+? │
└─────┘`

// RenderMascot returns the mascot ASCII art for the given variant.
func RenderMascot(variant ...MascotVariant) string {
	v := MascotIdle
	if len(variant) > 0 {
		v = variant[0]
	}

	var art string
	var fg = theme.Primary

	switch v {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.ArcadeYellow
	case MascotAlert:
		art = mascotAlert
		fg = theme.Accent
	default:
		art = mascotIdle
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}

func mascotFor(s scores, llmReady bool) MascotVariant {
	switch {
	case !llmReady:
		return MascotAlert
	case s.math+s.spelling >= celebrateAt:
		return MascotCelebrating
	default:
		return MascotIdle
	}
}
