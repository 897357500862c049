package tui

// Internal message types for the app. Commands run controller operations
// off the UI goroutine and report back with one of these; Update re-reads
// the controller's accessors rather than carrying state in the message.

type healthCheckMsg struct {
	healthy bool
	err     error
}

type submitDoneMsg struct {
	err error
}

type sessionsLoadedMsg struct {
	err error
}

type sessionCreatedMsg struct {
	err error
}

type sessionOpenedMsg struct {
	err error
}

type sessionDeletedMsg struct {
	err error
}

type visualizationMsg struct {
	html string
	err  error
}
