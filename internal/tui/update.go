package tui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"roomwire/internal/client"
)

const submitTimeout = 5 * time.Second

func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := message.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case stateChangedMsg:
		if m.state.Phase() == client.PhaseDisconnected {
			return m, tea.Quit
		}
		if m.mode == modeIdentity && m.state.Phase() == client.PhaseAuthenticated {
			m.mode = modeChat
			m.input.SetValue("")
			m.input.Placeholder = "Type a message…"
			m.input.Prompt = "> "
			return m, tea.Batch(m.input.Focus(), m.waitForUpdate())
		}
		return m, m.waitForUpdate()

	case sendFailedMsg:
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		if msg.Type == tea.KeyEnter {
			return m.handleEnter()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())
	if value == "" {
		return m, nil
	}

	switch m.mode {
	case modeIdentity:
		// The input is disabled while the login confirmation is pending.
		m.input.Blur()
		return m, m.submitIdentity(value)
	default:
		m.input.SetValue("")
		return m, m.submitMessage(value)
	}
}

func (m Model) submitIdentity(username string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()
		if err := m.conn.SetIdentity(ctx, username, ""); err != nil {
			return sendFailedMsg{err: err}
		}
		return nil
	}
}

func (m Model) submitMessage(text string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()
		if err := m.conn.SendMessage(ctx, text); err != nil {
			return sendFailedMsg{err: err}
		}
		return nil
	}
}
