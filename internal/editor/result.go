package editor

// Result tells the input surface whether the core consumed an event.
type Result uint8

const (
	NotHandled Result = iota
	Handled
)

func (r Result) String() string {
	if r == Handled {
		return "handled"
	}
	return "not-handled"
}
