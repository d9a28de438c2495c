// ABOUTME: All custom tea.Msg types for the dialog TUI
// ABOUTME: Surface updates, stream lifecycle, warmup results

package main

import (
	"github.com/mauromedda/dialogstream-go/pkg/dialog"
)

// --- Surface updates (sent by the controller goroutine via Program.Send) ---

// sinkAppendMsg carries streamed text for one output sink.
type sinkAppendMsg struct {
	Sink dialog.Sink
	Text string
}

// sinkClearMsg resets one output sink.
type sinkClearMsg struct{ Sink dialog.Sink }

// statusMsg updates the status line.
type statusMsg struct{ Text string }

// controlsMsg toggles the send/stop affordances.
type controlsMsg struct {
	SendEnabled bool
	StopEnabled bool
}

// --- Stream lifecycle ---

// streamDoneMsg signals that a Start call returned.
type streamDoneMsg struct{ Err error }

// stateChangeMsg mirrors controller lifecycle transitions for the footer.
type stateChangeMsg struct{ State dialog.State }

// --- Warmup and history ---

// warmupMsg carries the initial card and history fetch results.
type warmupMsg struct {
	Cards   []dialog.Card
	History []dialog.HistoryEntry
}

// historyMsg carries a post-stream history refresh.
type historyMsg struct{ Entries []dialog.HistoryEntry }
