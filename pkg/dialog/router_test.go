// ABOUTME: Tests for the event-kind to surface-action mapping
// ABOUTME: Covers unescaping, status updates, done signaling, unknown kinds

package dialog

import "testing"

func TestRouterRoute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		ev         Event
		wantDone   bool
		wantReason string
		wantAnswer string
		wantStatus []string
	}{
		{
			name:       "meta updates status only",
			ev:         Event{Kind: KindMeta, Payload: "thinking"},
			wantStatus: []string{"thinking"},
		},
		{
			name:       "reason appends unescaped text",
			ev:         Event{Kind: KindReason, Payload: `hello\nworld`},
			wantReason: "hello\nworld",
		},
		{
			name:       "answer appends unescaped text",
			ev:         Event{Kind: KindAnswer, Payload: `a\nb`},
			wantAnswer: "a\nb",
		},
		{
			name:       "error updates status with payload",
			ev:         Event{Kind: KindError, Payload: "backend exploded"},
			wantStatus: []string{"backend exploded"},
		},
		{
			name:       "done sets complete status and signals terminal",
			ev:         Event{Kind: KindDone},
			wantDone:   true,
			wantStatus: []string{StatusComplete},
		},
		{
			name: "default message kind is ignored",
			ev:   Event{Kind: "message", Payload: "noise"},
		},
		{
			name: "unknown kind is ignored for forward compatibility",
			ev:   Event{Kind: "telemetry", Payload: "x"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			surface := newRecordingSurface()
			router := NewRouter(surface)

			if got := router.Route(tt.ev); got != tt.wantDone {
				t.Errorf("Route returned %v, want %v", got, tt.wantDone)
			}

			if got := surface.reasonText(); got != tt.wantReason {
				t.Errorf("reason sink = %q, want %q", got, tt.wantReason)
			}
			if got := surface.answerText(); got != tt.wantAnswer {
				t.Errorf("answer sink = %q, want %q", got, tt.wantAnswer)
			}

			statuses := surface.statusHistory()
			if len(statuses) != len(tt.wantStatus) {
				t.Fatalf("statuses = %v, want %v", statuses, tt.wantStatus)
			}
			for i, want := range tt.wantStatus {
				if statuses[i] != want {
					t.Errorf("status[%d] = %q, want %q", i, statuses[i], want)
				}
			}
		})
	}
}

func TestRouterDoesNotClearSinks(t *testing.T) {
	t.Parallel()

	surface := newRecordingSurface()
	router := NewRouter(surface)

	router.Route(Event{Kind: KindAnswer, Payload: "text"})
	router.Route(Event{Kind: KindDone})

	if got := surface.answerText(); got != "text" {
		t.Errorf("done cleared the answer sink: %q", got)
	}
	if n := surface.clearCount(); n != 0 {
		t.Errorf("router cleared sinks %d times, want 0", n)
	}
}
