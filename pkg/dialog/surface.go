// ABOUTME: Surface is the set of collaborator capabilities the core depends on
// ABOUTME: Sinks are append-only text destinations for reasoning and answer output

package dialog

// Sink identifies one of the two append-only output destinations.
type Sink int

const (
	SinkReason Sink = iota
	SinkAnswer
)

func (s Sink) String() string {
	switch s {
	case SinkReason:
		return "reason"
	case SinkAnswer:
		return "answer"
	default:
		return "unknown"
	}
}

// Surface is everything the protocol core needs from a front end. The core
// calls these from its stream goroutine; implementations marshal onto their
// own loop as needed.
type Surface interface {
	// Append adds text to a sink. Sinks are never cleared implicitly.
	Append(sink Sink, text string)
	// Clear empties a sink. Called exactly once per stream start.
	Clear(sink Sink)
	// SetStatus reflects a short status string.
	SetStatus(text string)
	// SetControls enables or disables the send and stop affordances.
	SetControls(sendEnabled, stopEnabled bool)
}
