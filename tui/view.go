package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Leeevai/AHxAI/assistant"
)

// View renders the application.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	header := headerStyle.Render("AHxAI — coding assistant")

	main := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderSidebar(),
		m.renderMainPane(),
	)

	editorPane := paneStyle
	if m.focus == focusEditor {
		editorPane = paneFocused
	}
	editor := editorPane.Width(m.width - 4).Render(
		statusBar.Render(fmt.Sprintf("Editor (%s)", m.languageLabel())) + "\n" + m.editor.View())

	promptPane := paneStyle
	if m.focus == focusPrompt {
		promptPane = paneFocused
	}
	prompt := promptPane.Width(m.width - 4).Render(m.prompt.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		main,
		editor,
		prompt,
		m.renderStatusBar(),
	)
}

func (m Model) languageLabel() string {
	if lang := m.controller.Language(); lang != "" {
		return lang
	}
	return "auto-detect"
}

// renderSidebar renders the session list.
func (m Model) renderSidebar() string {
	style := sidebarStyle
	if m.focus == focusSessions {
		style = sidebarFocused
	}

	var b strings.Builder
	b.WriteString(assistantLabel.Render("Sessions"))
	b.WriteString("\n\n")

	sessions := m.controller.Sessions()
	if len(sessions) == 0 {
		b.WriteString(sessionItem.Render("(none yet)"))
	}
	activeID := m.controller.ActiveSessionID()
	for i, s := range sessions {
		cursor := "  "
		if m.focus == focusSessions && i == m.sessionCursor {
			cursor = sessionCursorStyle.Render("> ")
		}
		title := truncate(s.Title, sidebarWidth-6)
		line := sessionItem.Render(title)
		if s.ID == activeID {
			line = sessionActive.Render(title)
		}
		b.WriteString(cursor + line + "\n")
	}

	return style.Width(sidebarWidth).Height(m.chat.Height + 1).Render(b.String())
}

// truncate shortens s to max runes, appending an ellipsis. Slicing runes
// rather than bytes keeps multi-byte titles intact at the boundary.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "…"
}

// renderMainPane renders the tab bar plus the chat or analysis viewport.
func (m Model) renderMainPane() string {
	chatTab, analysisTab := tabInactive, tabInactive
	if m.tab == tabChat {
		chatTab = tabActive
	} else {
		analysisTab = tabActive
	}
	tabs := lipgloss.JoinHorizontal(lipgloss.Top,
		chatTab.Render("Chat"),
		analysisTab.Render("Analysis"),
	)

	var body string
	if m.tab == tabChat {
		body = m.chat.View()
	} else {
		body = m.analysis.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabs, body)
}

// refreshPanes rebuilds viewport content from the controller.
func (m *Model) refreshPanes() {
	m.chat.SetContent(renderTranscript(m.controller.Transcript(), m.chat.Width))
	m.chat.GotoBottom()
	m.analysis.SetContent(m.renderAnalysis())
}

// renderTranscript formats the conversation for the chat viewport.
func renderTranscript(transcript []assistant.Message, width int) string {
	var b strings.Builder
	for i, msg := range transcript {
		if i > 0 {
			b.WriteString("\n")
		}
		label := assistantLabel.Render("Assistant")
		if msg.IsUser {
			label = userLabel.Render("You")
		}
		b.WriteString(label + "\n")
		b.WriteString(messageBody.Width(width).Render(msg.Content) + "\n")
	}
	return b.String()
}

// renderAnalysis formats the current analysis view.
func (m Model) renderAnalysis() string {
	view := m.controller.View()
	if view.IsZero() {
		return statusBar.Render("No analysis yet. Paste code in the editor and press Ctrl+A.")
	}

	var sections []string
	if view.Code != "" {
		sections = append(sections,
			assistantLabel.Render("Corrected code")+"\n"+messageBody.Render(view.Code))
	}
	if view.Explanation != "" {
		sections = append(sections,
			assistantLabel.Render("Explanation")+"\n"+messageBody.Render(view.Explanation))
	}
	if len(view.Suggestions) > 0 {
		var b strings.Builder
		b.WriteString(assistantLabel.Render("Suggestions") + "\n")
		for _, s := range view.Suggestions {
			b.WriteString(suggestionStyle.Render("• "+s) + "\n")
		}
		sections = append(sections, strings.TrimRight(b.String(), "\n"))
	}
	if len(view.Warnings) > 0 {
		var b strings.Builder
		b.WriteString(assistantLabel.Render("Warnings") + "\n")
		for _, w := range view.Warnings {
			b.WriteString(warningStyle.Render("! "+w) + "\n")
		}
		sections = append(sections, strings.TrimRight(b.String(), "\n"))
	}
	if m.vizHTML != "" {
		sections = append(sections,
			assistantLabel.Render("Visualization (HTML)")+"\n"+messageBody.Render(m.vizHTML))
	}

	return strings.Join(sections, "\n\n")
}

// renderStatusBar renders the bottom status line.
func (m Model) renderStatusBar() string {
	var left string
	switch {
	case m.controller.Loading():
		left = statusBarBusy.Render(m.spin.View() + " Working...")
	case m.errText != "":
		left = statusBarError.Render(m.errText)
	case !m.connected:
		left = statusBarError.Render("Disconnected")
	default:
		left = statusBar.Render("Ready")
	}

	help := statusBar.Render("Tab: focus • Enter: send • Ctrl+A: analyze • Ctrl+T: tabs • Ctrl+N: new • Ctrl+C: quit")

	leftWidth := lipgloss.Width(left)
	helpWidth := lipgloss.Width(help)
	spacerWidth := m.width - leftWidth - helpWidth - 2
	if spacerWidth < 0 {
		spacerWidth = 0
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", spacerWidth), help)
}
