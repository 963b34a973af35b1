package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"roomwire/internal/client"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213")).Padding(0, 1)
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213")).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(lipgloss.Color("63")).Padding(0, 1)
	messageStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("253"))
	usernameStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	timestampStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	peersStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("109")).MarginTop(1)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true).MarginTop(1)
	inputBoxStyle  = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1).MarginTop(1)
)

func (m Model) View() string {
	if m.mode == modeIdentity {
		return m.renderIdentityView()
	}
	return m.renderChatView()
}

func (m Model) renderIdentityView() string {
	sections := []string{
		titleStyle.Render("roomwire"),
		statusStyle.Render(fmt.Sprintf("Joining room %q — pick a display name.", m.state.Room())),
		inputBoxStyle.Render(m.input.View()),
	}
	if m.state.Phase() == client.PhaseConnected && !m.input.Focused() {
		sections = append(sections, statusStyle.Render("Waiting for the server…"))
	}
	if m.err != nil {
		sections = append(sections, errorStyle.Render(m.err.Error()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderChatView() string {
	header := headerStyle.Render(fmt.Sprintf("roomwire — %s @ %s", m.state.Username(), m.state.Room()))

	var lines []string
	for _, msg := range m.state.History() {
		stamp := time.UnixMilli(msg.Timestamp).Format("15:04:05")
		lines = append(lines, fmt.Sprintf("%s %s %s",
			timestampStyle.Render(stamp),
			usernameStyle.Render(msg.Sender+":"),
			messageStyle.Render(msg.Text)))
	}
	if len(lines) == 0 {
		lines = append(lines, statusStyle.Render("No messages yet."))
	}

	peers := make([]string, 0)
	for _, u := range m.state.RoomPeers() {
		peers = append(peers, u.Username)
	}
	peerLine := peersStyle.Render("online: " + strings.Join(peers, ", "))

	sections := []string{
		header,
		strings.Join(lines, "\n"),
		peerLine,
		inputBoxStyle.Render(m.input.View()),
	}
	if m.err != nil {
		sections = append(sections, errorStyle.Render(m.err.Error()))
	} else if err := m.state.QueryError(); err != nil {
		sections = append(sections, errorStyle.Render("presence query failed; list may be stale"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
