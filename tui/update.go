package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/spinner"

	"github.com/Leeevai/AHxAI/assistant"
)

const (
	sidebarWidth = 30
	editorHeight = 8
	promptHeight = 3
)

// Update handles all application messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		m.refreshPanes()
		return m, nil

	case healthCheckMsg:
		m.connected = msg.healthy
		if !msg.healthy {
			m.errText = "Backend unreachable. Start it, or run with --mock."
			return m, nil
		}
		m.errText = ""
		return m, m.loadSessions()

	case submitDoneMsg:
		if errors.Is(msg.err, assistant.ErrBusy) {
			m.errText = "A request is already in flight."
			return m, nil
		}
		m.errText = m.controller.LastError()
		m.refreshPanes()
		if !m.controller.View().IsZero() {
			m.tab = tabAnalysis
		}
		return m, nil

	case sessionsLoadedMsg:
		if msg.err != nil {
			m.errText = "Failed to load sessions."
			return m, nil
		}
		if n := len(m.controller.Sessions()); m.sessionCursor >= n && n > 0 {
			m.sessionCursor = n - 1
		}
		return m, nil

	case sessionCreatedMsg:
		if msg.err != nil {
			m.errText = "Failed to create session."
			return m, nil
		}
		m.errText = ""
		m.tab = tabChat
		m.vizHTML = ""
		m.sessionCursor = 0
		m.refreshPanes()
		return m, nil

	case sessionOpenedMsg:
		if msg.err != nil {
			m.errText = "Failed to open session."
			return m, nil
		}
		m.errText = ""
		m.tab = tabChat
		m.vizHTML = ""
		m.focus = focusPrompt
		m.refreshPanes()
		return m, m.prompt.Focus()

	case sessionDeletedMsg:
		if msg.err != nil {
			m.errText = "Failed to delete session."
			return m, nil
		}
		if n := len(m.controller.Sessions()); m.sessionCursor >= n && n > 0 {
			m.sessionCursor = n - 1
		}
		m.refreshPanes()
		return m, nil

	case visualizationMsg:
		if msg.err != nil {
			m.errText = "No visualization available for this message."
			return m, nil
		}
		m.vizHTML = msg.html
		m.tab = tabAnalysis
		m.refreshPanes()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		if m.controller.Loading() {
			// Show the provisional user turn while the request is in flight.
			m.refreshPanes()
		}
		return m, cmd

	case tea.KeyMsg:
		if model, cmd, handled := m.handleKey(msg); handled {
			return model, cmd
		}
	}

	// Route remaining input to the focused component.
	switch m.focus {
	case focusPrompt:
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		cmds = append(cmds, cmd)
	case focusEditor:
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		cmds = append(cmds, cmd)
		m.controller.SetEditorCode(m.editor.Value())
	}

	var cmd tea.Cmd
	if m.tab == tabChat {
		m.chat, cmd = m.chat.Update(msg)
	} else {
		m.analysis, cmd = m.analysis.Update(msg)
	}
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleKey processes global shortcuts. Returns handled=false to let the
// focused component consume the key instead.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit, true

	case "tab":
		m.focus = (m.focus + 1) % 3
		return m.applyFocus()

	case "shift+tab":
		m.focus = (m.focus + 2) % 3
		return m.applyFocus()

	case "ctrl+t":
		if m.tab == tabChat {
			m.tab = tabAnalysis
		} else {
			m.tab = tabChat
		}
		m.refreshPanes()
		return m, nil, true

	case "ctrl+n":
		return m, m.createSession(), true

	case "ctrl+r":
		return m, m.loadSessions(), true

	case "ctrl+a":
		return m, tea.Batch(m.analyzeEditor(), m.spin.Tick), true

	case "ctrl+v":
		if id := m.latestMetadataMessageID(); id != "" {
			return m, m.fetchVisualization(id), true
		}
		m.errText = "No analysis in this session yet."
		return m, nil, true

	case "enter":
		switch m.focus {
		case focusPrompt:
			utterance := m.prompt.Value()
			if utterance == "" {
				return m, nil, true
			}
			m.prompt.Reset()
			return m, tea.Batch(m.submit(utterance), m.spin.Tick), true
		case focusSessions:
			sessions := m.controller.Sessions()
			if m.sessionCursor < len(sessions) {
				return m, m.openSession(sessions[m.sessionCursor].ID), true
			}
			return m, nil, true
		}

	case "up", "k":
		if m.focus == focusSessions {
			if m.sessionCursor > 0 {
				m.sessionCursor--
			}
			return m, nil, true
		}

	case "down", "j":
		if m.focus == focusSessions {
			if m.sessionCursor < len(m.controller.Sessions())-1 {
				m.sessionCursor++
			}
			return m, nil, true
		}

	case "ctrl+d":
		if m.focus == focusSessions {
			sessions := m.controller.Sessions()
			if m.sessionCursor < len(sessions) {
				return m, m.deleteSession(sessions[m.sessionCursor].ID), true
			}
			return m, nil, true
		}

	case "esc":
		if m.focus != focusPrompt {
			m.focus = focusPrompt
			return m.applyFocus()
		}
		return m, tea.Quit, true
	}

	return m, nil, false
}

// applyFocus moves textarea focus to match the focused pane.
func (m Model) applyFocus() (tea.Model, tea.Cmd, bool) {
	m.prompt.Blur()
	m.editor.Blur()
	switch m.focus {
	case focusPrompt:
		return m, m.prompt.Focus(), true
	case focusEditor:
		return m, m.editor.Focus(), true
	}
	return m, nil, true
}

// latestMetadataMessageID finds the newest assistant message carrying
// analysis metadata.
func (m Model) latestMetadataMessageID() string {
	transcript := m.controller.Transcript()
	for i := len(transcript) - 1; i >= 0; i-- {
		msg := transcript[i]
		if !msg.IsUser && msg.HasMetadata() {
			return msg.ID
		}
	}
	return ""
}

// layout recomputes component sizes from the window size.
func (m *Model) layout() {
	mainWidth := m.width - sidebarWidth - 6
	if mainWidth < 20 {
		mainWidth = 20
	}
	vpHeight := m.height - editorHeight - promptHeight - 8
	if vpHeight < 5 {
		vpHeight = 5
	}

	m.chat.Width = mainWidth
	m.chat.Height = vpHeight
	m.analysis.Width = mainWidth
	m.analysis.Height = vpHeight
	m.prompt.SetWidth(m.width - 4)
	m.prompt.SetHeight(promptHeight)
	m.editor.SetWidth(m.width - 4)
	m.editor.SetHeight(editorHeight - 2)
}
