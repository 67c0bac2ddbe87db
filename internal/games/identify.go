package games

import (
	"strings"

	"github.com/lyngdoh/curiouskids/internal/llm"
	"github.com/lyngdoh/curiouskids/internal/prompt"
)

// IdentifyPrompt is sent along with the picture to identify.
const IdentifyPrompt = "Identify and return the name of the main object in this image."

const unknownObject = "Unknown object"

// FirstLine keeps the first line of a description, which names the object.
func FirstLine(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	if line = strings.TrimSpace(line); line == "" {
		return unknownObject
	}
	return line
}

// Identifier names the main object in a picture.
type Identifier struct {
	ctrl *prompt.Controller
}

// NewIdentifier creates an Identifier whose successful results are
// reduced to the object's name.
func NewIdentifier(provider llm.Provider, opts ...Option) *Identifier {
	o := buildOptions(opts)
	return &Identifier{
		ctrl: prompt.New(provider,
			prompt.WithLogger(o.log),
			prompt.WithPurpose("identify"),
			prompt.WithTimeout(o.timeout),
			prompt.WithTransform(FirstLine),
		),
	}
}

// Identify sends img for identification.
func (i *Identifier) Identify(img *llm.Image) {
	i.ctrl.SendPrompt(img, IdentifyPrompt)
}

// State returns the identification view state.
func (i *Identifier) State() prompt.State {
	return i.ctrl.State()
}

// Subscribe registers fn to receive every state change.
func (i *Identifier) Subscribe(fn func(prompt.State)) (unsubscribe func()) {
	return i.ctrl.Subscribe(fn)
}

// Wait blocks until no request is in flight.
func (i *Identifier) Wait() {
	i.ctrl.Wait()
}

// Close stops the identifier.
func (i *Identifier) Close() {
	i.ctrl.Close()
}
