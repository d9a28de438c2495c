// ABOUTME: Pure mapping from stream event kind to surface action
// ABOUTME: Unescapes embedded newline sequences before appending to sinks

package dialog

import "strings"

// StatusComplete is the status string shown when a stream finishes normally.
const StatusComplete = "complete"

// Router dispatches parsed stream events to the surface. It holds no state
// of its own.
type Router struct {
	surface Surface
}

// NewRouter creates a Router writing to the given surface.
func NewRouter(surface Surface) *Router {
	return &Router{surface: surface}
}

// Route dispatches one event and reports whether it was the terminal done
// event. Unknown kinds, including the framing default "message", are ignored
// for forward compatibility.
func (r *Router) Route(ev Event) bool {
	switch ev.Kind {
	case KindMeta:
		r.surface.SetStatus(ev.Payload)
	case KindReason:
		r.surface.Append(SinkReason, unescapeNewlines(ev.Payload))
	case KindAnswer:
		r.surface.Append(SinkAnswer, unescapeNewlines(ev.Payload))
	case KindError:
		r.surface.SetStatus(ev.Payload)
	case KindDone:
		r.surface.SetStatus(StatusComplete)
		return true
	}
	return false
}

// unescapeNewlines turns escaped newline sequences in payload text into
// literal newlines.
func unescapeNewlines(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}
