// ABOUTME: Tests for the Bubble Tea model's message handling and key input
// ABOUTME: Drives Update directly; no terminal required

package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mauromedda/dialogstream-go/pkg/dialog"
)

func testModel() appModel {
	client := dialog.NewClient(dialog.ClientOptions{BaseURL: "http://127.0.0.1:0"})
	session := dialog.NewSession(client)
	sh := &shared{}
	ctrl := dialog.NewController(client, session, &programSurface{sh: sh})
	return newAppModel(appDeps{Client: client, Session: session, Version: "test"}, ctrl, sh)
}

func TestAppSinkMessages(t *testing.T) {
	t.Parallel()

	m := testModel()

	next, _ := m.Update(sinkAppendMsg{Sink: dialog.SinkReason, Text: "thinking"})
	next, _ = next.Update(sinkAppendMsg{Sink: dialog.SinkAnswer, Text: "hello"})
	next, _ = next.Update(sinkAppendMsg{Sink: dialog.SinkAnswer, Text: " world"})
	am := next.(appModel)

	if am.reason != "thinking" {
		t.Errorf("reason = %q", am.reason)
	}
	if am.answer != "hello world" {
		t.Errorf("answer = %q", am.answer)
	}

	next, _ = next.Update(sinkClearMsg{Sink: dialog.SinkAnswer})
	am = next.(appModel)
	if am.answer != "" {
		t.Errorf("answer after clear = %q", am.answer)
	}
	if am.reason != "thinking" {
		t.Errorf("clearing one sink touched the other: %q", am.reason)
	}
}

func TestAppStatusAndControls(t *testing.T) {
	t.Parallel()

	m := testModel()

	next, _ := m.Update(statusMsg{Text: "streaming"})
	next, _ = next.Update(controlsMsg{SendEnabled: false, StopEnabled: true})
	am := next.(appModel)

	if am.status != "streaming" {
		t.Errorf("status = %q", am.status)
	}
	if am.sendEnabled || !am.stopEnabled {
		t.Errorf("controls = send:%v stop:%v, want send off / stop on", am.sendEnabled, am.stopEnabled)
	}
}

func TestAppKeyInput(t *testing.T) {
	t.Parallel()

	m := testModel()

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hi")})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeySpace})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("there")})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	am := next.(appModel)

	if am.input != "hi ther" {
		t.Errorf("input = %q", am.input)
	}
}

func TestAppSubmitEmptyInputIsNoop(t *testing.T) {
	t.Parallel()

	m := testModel()
	m.input = "   "

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	am := next.(appModel)

	if cmd != nil {
		t.Error("blank submit produced a command")
	}
	if am.input != "   " {
		t.Errorf("input = %q, blank submit must not consume it", am.input)
	}
}

func TestAppSubmitBlockedWhileStreaming(t *testing.T) {
	t.Parallel()

	m := testModel()
	m.sendEnabled = false
	m.input = "question"

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("submit produced a command while send is disabled")
	}
}

func TestAppSubmitConsumesInput(t *testing.T) {
	t.Parallel()

	m := testModel()
	m.input = "question"

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	am := next.(appModel)

	if cmd == nil {
		t.Fatal("submit did not produce a stream command")
	}
	if am.input != "" {
		t.Errorf("input = %q, want consumed", am.input)
	}
}

func TestAppViewShowsCardsOnWelcome(t *testing.T) {
	t.Parallel()

	m := testModel()
	m.cards = []dialog.Card{{Title: "Greeting", Text: "say hi"}}

	if view := m.View(); !strings.Contains(view, "Greeting") {
		t.Errorf("welcome view missing card title:\n%s", view)
	}

	// Once an answer arrives the cards give way to the conversation.
	m.answer = "text"
	if view := m.View(); strings.Contains(view, "Greeting") {
		t.Errorf("cards still shown after answer:\n%s", view)
	}
}

func TestAppViewShowsHistoryOnWelcome(t *testing.T) {
	t.Parallel()

	m := testModel()
	next, _ := m.Update(historyMsg{Entries: []dialog.HistoryEntry{
		{Role: "user", Text: "earlier question"},
	}})
	am := next.(appModel)

	if view := am.View(); !strings.Contains(view, "earlier question") {
		t.Errorf("welcome view missing history:\n%s", view)
	}
}
