package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"roomwire/internal/client"
)

// Model projects the client state machine onto the terminal. It holds
// no protocol state of its own; every transition lives in client.State.
type Model struct {
	conn  *client.Conn
	state *client.State
	input textinput.Model
	mode  appMode
	err   error
	width int
}

type appMode int

const (
	modeIdentity appMode = iota
	modeChat
)

type (
	stateChangedMsg struct{}
	sendFailedMsg   struct{ err error }
)

// New builds the TUI model. If username is empty the identity prompt
// is shown first; otherwise the identity is submitted on start.
func New(conn *client.Conn, state *client.State, username string) Model {
	input := textinput.New()
	input.CharLimit = 0
	input.Focus()

	m := Model{conn: conn, state: state, input: input}
	if username == "" {
		m.mode = modeIdentity
		m.input.Placeholder = "Enter display name…"
		m.input.Prompt = "name> "
	} else {
		m.mode = modeChat
		m.input.Placeholder = "Type a message…"
		m.input.Prompt = "> "
	}
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.waitForUpdate(), textinput.Blink}
	if m.mode == modeChat {
		cmds = append(cmds, m.submitIdentity(m.state.Username()))
	}
	return tea.Batch(cmds...)
}

// waitForUpdate blocks until the connection signals a state change.
func (m Model) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		<-m.conn.Updates()
		return stateChangedMsg{}
	}
}
