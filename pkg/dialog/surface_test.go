// ABOUTME: recordingSurface captures surface calls for assertions in tests
// ABOUTME: Goroutine-safe; shared by router and controller test suites

package dialog

import (
	"strings"
	"sync"
)

// recordingSurface implements Surface and records every call.
type recordingSurface struct {
	mu       sync.Mutex
	reason   strings.Builder
	answer   strings.Builder
	statuses []string
	controls [][2]bool
	clears   []Sink
}

func newRecordingSurface() *recordingSurface {
	return &recordingSurface{}
}

func (r *recordingSurface) Append(sink Sink, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch sink {
	case SinkReason:
		r.reason.WriteString(text)
	case SinkAnswer:
		r.answer.WriteString(text)
	}
}

func (r *recordingSurface) Clear(sink Sink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clears = append(r.clears, sink)
	switch sink {
	case SinkReason:
		r.reason.Reset()
	case SinkAnswer:
		r.answer.Reset()
	}
}

func (r *recordingSurface) SetStatus(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, text)
}

func (r *recordingSurface) SetControls(sendEnabled, stopEnabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.controls = append(r.controls, [2]bool{sendEnabled, stopEnabled})
}

func (r *recordingSurface) reasonText() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reason.String()
}

func (r *recordingSurface) answerText() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.answer.String()
}

func (r *recordingSurface) statusHistory() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.statuses...)
}

func (r *recordingSurface) lastStatus() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.statuses) == 0 {
		return ""
	}
	return r.statuses[len(r.statuses)-1]
}

func (r *recordingSurface) clearCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clears)
}

func (r *recordingSurface) controlHistory() [][2]bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][2]bool(nil), r.controls...)
}
