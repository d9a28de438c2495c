// ABOUTME: Controller-to-Bubble Tea bridge converting surface calls to tea.Msg
// ABOUTME: Sends typed messages via ProgramSender so Update owns all mutation

package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mauromedda/dialogstream-go/pkg/dialog"
)

// ProgramSender is the interface for sending messages to Bubble Tea.
// Matches *tea.Program's Send method.
type ProgramSender interface {
	Send(msg tea.Msg)
}

// programSurface implements dialog.Surface by forwarding every call as a
// tea.Msg. The controller goroutine never touches model state directly.
type programSurface struct {
	sh *shared
}

func (s *programSurface) Append(sink dialog.Sink, text string) {
	s.sh.send(sinkAppendMsg{Sink: sink, Text: text})
}

func (s *programSurface) Clear(sink dialog.Sink) {
	s.sh.send(sinkClearMsg{Sink: sink})
}

func (s *programSurface) SetStatus(text string) {
	s.sh.send(statusMsg{Text: text})
}

func (s *programSurface) SetControls(sendEnabled, stopEnabled bool) {
	s.sh.send(controlsMsg{SendEnabled: sendEnabled, StopEnabled: stopEnabled})
}

// shared holds the program reference injected after tea.NewProgram. The model
// value is copied by Bubble Tea but the pointer is shared.
type shared struct {
	program ProgramSender
}

func (sh *shared) send(msg tea.Msg) {
	if sh.program != nil {
		sh.program.Send(msg)
	}
}
