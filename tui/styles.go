package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	primary   = lipgloss.Color("#7C3AED")
	secondary = lipgloss.Color("#10B981")
	errColor  = lipgloss.Color("#EF4444")
	warnColor = lipgloss.Color("#F59E0B")
	muted     = lipgloss.Color("#6B7280")
	white     = lipgloss.Color("#FFFFFF")
	lightGray = lipgloss.Color("#E5E7EB")

	headerStyle = lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			Padding(0, 1)

	userLabel = lipgloss.NewStyle().
			Foreground(primary).
			Bold(true)

	assistantLabel = lipgloss.NewStyle().
			Foreground(secondary).
			Bold(true)

	messageBody = lipgloss.NewStyle().
			Foreground(lightGray).
			PaddingLeft(2)

	sidebarStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1)

	sidebarFocused = sidebarStyle.
			BorderForeground(primary)

	sessionActive = lipgloss.NewStyle().
			Foreground(white).
			Bold(true)

	sessionItem = lipgloss.NewStyle().
			Foreground(lightGray)

	sessionCursorStyle = lipgloss.NewStyle().
				Foreground(primary).
				Bold(true)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted)

	paneFocused = paneStyle.
			BorderForeground(primary)

	tabActive = lipgloss.NewStyle().
			Foreground(white).
			Background(primary).
			Padding(0, 1)

	tabInactive = lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 1)

	suggestionStyle = lipgloss.NewStyle().
			Foreground(secondary).
			PaddingLeft(2)

	warningStyle = lipgloss.NewStyle().
			Foreground(warnColor).
			PaddingLeft(2)

	statusBar = lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 1)

	statusBarError = lipgloss.NewStyle().
			Foreground(errColor).
			Padding(0, 1)

	statusBarBusy = lipgloss.NewStyle().
			Foreground(primary).
			Padding(0, 1)
)
