// ABOUTME: Bubble Tea model for the dialog TUI: input, reason/answer panes, footer
// ABOUTME: Update owns all state; streams run on their own goroutine via the bridge

package main

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/unicode/norm"

	"github.com/mauromedda/dialogstream-go/pkg/dialog"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	reasonStyle = lipgloss.NewStyle().Faint(true)
	cardStyle   = lipgloss.NewStyle().Italic(true)
	statusStyle = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
)

const defaultWidth = 80

// appDeps provides all external dependencies for the TUI.
type appDeps struct {
	Client  *dialog.Client
	Session *dialog.Session
	Params  dialog.SamplingParams
	Version string
}

type appModel struct {
	deps appDeps
	ctrl *dialog.Controller
	sh   *shared

	input  string
	reason string
	answer string
	status string

	sendEnabled bool
	stopEnabled bool
	state       dialog.State

	cards   []dialog.Card
	history []dialog.HistoryEntry

	width    int
	renderer *markdownRenderer

	// rendered holds the glamour output of answer, refreshed on completion.
	rendered string

	lastErr error
}

func newAppModel(deps appDeps, ctrl *dialog.Controller, sh *shared) appModel {
	return appModel{
		deps:        deps,
		ctrl:        ctrl,
		sh:          sh,
		sendEnabled: true,
		width:       defaultWidth,
		renderer:    newMarkdownRenderer(),
	}
}

func (m appModel) Init() tea.Cmd {
	return m.warmupCmd()
}

// warmupCmd fetches cards and history for the welcome view.
func (m appModel) warmupCmd() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		cards, history := ctrl.Warmup(context.Background())
		return warmupMsg{Cards: cards, History: history}
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if m.answer != "" && m.state == dialog.StateIdle {
			m.rendered = m.renderer.Render(m.answer, m.width)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case sinkAppendMsg:
		switch msg.Sink {
		case dialog.SinkReason:
			m.reason += msg.Text
		case dialog.SinkAnswer:
			m.answer += msg.Text
		}
		return m, nil

	case sinkClearMsg:
		switch msg.Sink {
		case dialog.SinkReason:
			m.reason = ""
		case dialog.SinkAnswer:
			m.answer = ""
			m.rendered = ""
		}
		return m, nil

	case statusMsg:
		m.status = msg.Text
		return m, nil

	case controlsMsg:
		m.sendEnabled = msg.SendEnabled
		m.stopEnabled = msg.StopEnabled
		return m, nil

	case stateChangeMsg:
		m.state = msg.State
		return m, nil

	case streamDoneMsg:
		m.lastErr = msg.Err
		if msg.Err == nil && m.answer != "" {
			m.rendered = m.renderer.Render(m.answer, m.width)
		}
		return m, nil

	case warmupMsg:
		m.cards = msg.Cards
		if len(msg.History) > 0 {
			m.history = msg.History
		}
		return m, nil

	case historyMsg:
		m.history = msg.Entries
		return m, nil
	}

	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.ctrl.Cancel()
		return m, tea.Quit

	case tea.KeyEsc:
		if m.stopEnabled {
			m.ctrl.Cancel()
		}
		return m, nil

	case tea.KeyEnter:
		return m.submit()

	case tea.KeyBackspace:
		if len(m.input) > 0 {
			runes := []rune(m.input)
			m.input = string(runes[:len(runes)-1])
		}
		return m, nil

	case tea.KeySpace:
		m.input += " "
		return m, nil

	case tea.KeyRunes:
		m.input += string(msg.Runes)
		return m, nil
	}

	return m, nil
}

// submit starts a stream for the current input on its own goroutine. The
// controller pushes surface updates back through the bridge; the completion
// message closes the loop.
func (m appModel) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input)
	if text == "" || !m.sendEnabled {
		return m, nil
	}

	// Composed input from dead-key layouts arrives in mixed forms; the
	// backend expects NFC.
	text = norm.NFC.String(text)

	m.input = ""
	m.lastErr = nil
	m.rendered = ""

	ctrl := m.ctrl
	params := m.deps.Params
	return m, func() tea.Msg {
		err := ctrl.Start(context.Background(), text, params)
		return streamDoneMsg{Err: err}
	}
}

func (m appModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("dialog-chat " + m.deps.Version))
	b.WriteString("\n\n")

	if m.answer == "" && m.reason == "" {
		for _, c := range m.cards {
			b.WriteString(cardStyle.Render("• " + c.Title))
			b.WriteString("\n")
		}
		if len(m.cards) > 0 {
			b.WriteString("\n")
		}
		for _, h := range m.history {
			b.WriteString(statusStyle.Render(h.Role+": ") + h.Text)
			b.WriteString("\n")
		}
		if len(m.history) > 0 {
			b.WriteString("\n")
		}
	}

	if m.reason != "" {
		b.WriteString(reasonStyle.Render(m.reason))
		b.WriteString("\n\n")
	}

	switch {
	case m.rendered != "":
		b.WriteString(m.rendered)
		b.WriteString("\n")
	case m.answer != "":
		b.WriteString(m.answer)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.lastErr != nil {
		b.WriteString(errorStyle.Render(m.lastErr.Error()))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(promptStyle.Render("> "))
	b.WriteString(m.input)
	if m.stopEnabled {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render("esc to stop, ctrl+c to quit"))
	}
	b.WriteString("\n")

	return b.String()
}

// runApp starts the Bubble Tea app. Blocks until the user exits.
func runApp(deps appDeps) error {
	// The controller's surface and callbacks feed the program through the
	// shared bridge; the program pointer is injected before Run processes
	// any input.
	sh := &shared{}
	ctrl := dialog.NewController(deps.Client, deps.Session, &programSurface{sh: sh})
	ctrl.OnHistory = func(entries []dialog.HistoryEntry) {
		sh.send(historyMsg{Entries: entries})
	}
	unsubscribe := ctrl.OnStateChange(func(sc dialog.StateChange) {
		sh.send(stateChangeMsg{State: sc.State})
	})
	defer unsubscribe()

	m := newAppModel(deps, ctrl, sh)

	p := tea.NewProgram(m)
	sh.program = p

	_, err := p.Run()
	return err
}
