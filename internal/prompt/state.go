package prompt

// Kind identifies which State variant is active.
type Kind int

const (
	KindInitial Kind = iota // Nothing requested yet
	KindLoading             // A request is in flight
	KindSuccess             // The latest request produced text
	KindError               // The latest request failed
)

func (k Kind) String() string {
	switch k {
	case KindInitial:
		return "initial"
	case KindLoading:
		return "loading"
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	}
	return "unknown"
}

// State is the view state a presentation layer renders from.
// It is one of Initial, Loading, Success or Error.
type State interface {
	Kind() Kind
	isState()
}

// Initial is the state before any prompt has been sent.
type Initial struct{}

// Loading means a request is in flight.
type Loading struct{}

// Success carries the generated text.
type Success struct {
	OutputText string
}

// Error carries a human-readable failure message. It is never empty.
type Error struct {
	Message string
}

func (Initial) Kind() Kind { return KindInitial }
func (Loading) Kind() Kind { return KindLoading }
func (Success) Kind() Kind { return KindSuccess }
func (Error) Kind() Kind   { return KindError }

func (Initial) isState() {}
func (Loading) isState() {}
func (Success) isState() {}
func (Error) isState()   {}
