// ABOUTME: Incremental server-sent-event parser fed with arbitrary byte chunks
// ABOUTME: Emits complete events at blank-line boundaries; retains partial segments

package sse

import (
	"bytes"
	"strings"
)

// DefaultKind is the event kind used when a segment carries no "event:" line.
const DefaultKind = "message"

// Event is one complete unit parsed from the stream.
type Event struct {
	Kind string
	Data string
}

// Parser converts a byte stream arriving in arbitrarily sized chunks into an
// ordered sequence of Events. Chunks need not align with line, segment, or
// rune boundaries: the retained remainder is kept as raw bytes, so a
// multi-byte character split across chunks is reassembled before any text
// processing happens.
//
// The parser knows framing only; it attaches no meaning to event kinds.
type Parser struct {
	buf []byte

	kind      string
	dataLines []string
	pending   bool
}

// New creates an empty Parser.
func New() *Parser {
	return &Parser{}
}

// Feed appends a chunk and returns every event whose framing completed with
// it, in arrival order. An incomplete trailing segment stays buffered for the
// next call.
func (p *Parser) Feed(chunk []byte) []Event {
	p.buf = append(p.buf, chunk...)

	var events []Event
	for {
		idx := bytes.IndexByte(p.buf, '\n')
		if idx < 0 {
			return events
		}

		line := string(p.buf[:idx])
		p.buf = p.buf[idx+1:]

		if ev, ok := p.consumeLine(line); ok {
			events = append(events, ev)
		}
	}
}

// Finish flushes the trailing segment at end of stream, if one was pending.
// The parser is reusable afterwards.
func (p *Parser) Finish() []Event {
	// A buffered partial line still counts toward the pending segment.
	if len(p.buf) > 0 {
		line := string(p.buf)
		p.buf = nil
		if ev, ok := p.consumeLine(line); ok {
			return []Event{ev}
		}
	}

	if !p.pending {
		return nil
	}
	ev := p.emit()
	return []Event{ev}
}

// consumeLine folds one complete line into the current segment. It returns
// the finished event when the line is a segment-terminating blank line.
func (p *Parser) consumeLine(line string) (Event, bool) {
	line = strings.TrimSuffix(line, "\r")

	if line == "" {
		if !p.pending {
			return Event{}, false
		}
		return p.emit(), true
	}

	if strings.HasPrefix(line, ":") {
		return Event{}, false
	}

	field, value := splitField(line)
	switch field {
	case "event":
		p.kind = value
		p.pending = true
	case "data":
		p.dataLines = append(p.dataLines, value)
		p.pending = true
	}
	return Event{}, false
}

// emit builds the pending event and resets segment state.
// A segment without data lines yields an empty payload rather than an error.
func (p *Parser) emit() Event {
	kind := p.kind
	if kind == "" {
		kind = DefaultKind
	}

	ev := Event{Kind: kind, Data: strings.Join(p.dataLines, "\n")}

	p.kind = ""
	p.dataLines = nil
	p.pending = false

	return ev
}

// splitField splits an SSE line into field name and value, stripping the
// optional single space after the colon.
func splitField(line string) (string, string) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return line, ""
	}

	field := line[:idx]
	value := line[idx+1:]
	if len(value) > 0 && value[0] == ' ' {
		value = value[1:]
	}

	return field, value
}
