package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const commandTimeout = 60 * time.Second

// checkHealth probes the backend.
func (m Model) checkHealth() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if _, err := m.client.Health(ctx); err != nil {
			return healthCheckMsg{healthy: false, err: err}
		}
		return healthCheckMsg{healthy: true}
	}
}

// submit dispatches the utterance through the controller.
func (m Model) submit(utterance string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		return submitDoneMsg{err: m.controller.Submit(ctx, utterance)}
	}
}

// analyzeEditor runs a forced analysis of the editor pane.
func (m Model) analyzeEditor() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		return submitDoneMsg{err: m.controller.AnalyzeCurrentCode(ctx)}
	}
}

// loadSessions refreshes the session list.
func (m Model) loadSessions() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return sessionsLoadedMsg{err: m.controller.RefreshSessions(ctx)}
	}
}

// createSession starts a fresh session.
func (m Model) createSession() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return sessionCreatedMsg{err: m.controller.NewSession(ctx)}
	}
}

// openSession loads an existing session's transcript.
func (m Model) openSession(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return sessionOpenedMsg{err: m.controller.OpenSession(ctx, id)}
	}
}

// deleteSession removes a session.
func (m Model) deleteSession(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return sessionDeletedMsg{err: m.controller.DeleteSession(ctx, id)}
	}
}

// fetchVisualization retrieves the rendered HTML for a message.
func (m Model) fetchVisualization(messageID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		html, err := m.controller.FetchVisualization(ctx, messageID)
		return visualizationMsg{html: html, err: err}
	}
}
