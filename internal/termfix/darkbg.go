// ABOUTME: Pre-sets lipgloss dark background before BubbleTea's init() sends OSC queries
// ABOUTME: Must be imported (with _) before any package that imports bubbletea

package termfix

import "github.com/charmbracelet/lipgloss"

func init() {
	// Telling lipgloss the background is dark keeps it from sending
	// OSC 10/11 terminal queries: BubbleTea's init() calls
	// lipgloss.HasDarkBackground(), and with explicitBackgroundColor
	// already set the sync.Once that fires the query is skipped. The
	// async query responses otherwise leak garbage into the input line.
	//
	// This package must NOT import bubbletea (directly or transitively)
	// so that Go's init order guarantees this runs first.
	lipgloss.SetHasDarkBackground(true)
}
