// Package tui is the terminal frontend. It renders the controller's
// transcript, session list, and analysis view; every mutation goes through
// the controller.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/Leeevai/AHxAI/assistant"
	"github.com/Leeevai/AHxAI/sdk/gateway"
)

// focus identifies which pane receives keyboard input.
type focus int

const (
	focusPrompt focus = iota
	focusEditor
	focusSessions
)

// outputTab selects what the main pane shows.
type outputTab int

const (
	tabChat outputTab = iota
	tabAnalysis
)

// Model is the main application model.
type Model struct {
	controller *assistant.Controller
	client     *gateway.Client

	prompt   textarea.Model
	editor   textarea.Model
	chat     viewport.Model
	analysis viewport.Model
	spin     spinner.Model

	focus         focus
	tab           outputTab
	sessionCursor int

	width  int
	height int
	ready  bool

	connected bool
	errText   string
	vizHTML   string
}

// New creates the application model.
func New(controller *assistant.Controller, client *gateway.Client) Model {
	prompt := textarea.New()
	prompt.Placeholder = "Ask a question, or mention \"analyze\" to analyze the editor code..."
	prompt.SetHeight(3)
	prompt.ShowLineNumbers = false
	prompt.Focus()

	editor := textarea.New()
	editor.Placeholder = "Paste code here..."
	editor.ShowLineNumbers = true

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = spin.Style.Foreground(primary)

	return Model{
		controller: controller,
		client:     client,
		prompt:     prompt,
		editor:     editor,
		chat:       viewport.New(80, 20),
		analysis:   viewport.New(80, 20),
		spin:       spin,
		focus:      focusPrompt,
		tab:        tabChat,
	}
}

// Init starts the health probe and cursor blink.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.checkHealth(),
		textarea.Blink,
		m.spin.Tick,
	)
}
