package assistant

import "github.com/Leeevai/AHxAI/sdk/gateway"

// Store holds the in-memory session list and the active session's
// transcript. It is a local mirror of backend state: the Controller performs
// the gateway call first and applies the outcome here only on success, so a
// failed call leaves the store unchanged. Store methods are not safe for
// concurrent use; the Controller serializes access.
type Store struct {
	sessions   []gateway.Chat
	activeID   string
	transcript []Message
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Sessions returns the current session list, newest first.
func (s *Store) Sessions() []gateway.Chat {
	out := make([]gateway.Chat, len(s.sessions))
	copy(out, s.sessions)
	return out
}

// ActiveID returns the active session id, or "" when no session is active.
func (s *Store) ActiveID() string {
	return s.activeID
}

// Transcript returns a copy of the active transcript.
func (s *Store) Transcript() []Message {
	out := make([]Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// BeginSession inserts a freshly created session at the head of the session
// list, makes it active, and resets the transcript to the greeting.
func (s *Store) BeginSession(chat gateway.Chat) {
	s.sessions = append([]gateway.Chat{chat}, s.sessions...)
	s.activeID = chat.ID
	s.transcript = []Message{greetingMessage()}
}

// SetSessions replaces the session list wholesale with the backend's view.
// Stale local entries are discarded in favor of server truth.
func (s *Store) SetSessions(chats []gateway.Chat) {
	s.sessions = chats
}

// ReplaceTranscript makes id the active session and installs its loaded
// messages.
func (s *Store) ReplaceTranscript(id string, msgs []Message) {
	s.activeID = id
	s.transcript = msgs
}

// RemoveSession drops id from the session list. If id was active, the active
// session and transcript are cleared. Unknown ids are a no-op.
func (s *Store) RemoveSession(id string) {
	kept := s.sessions[:0]
	for _, c := range s.sessions {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.sessions = kept

	if s.activeID == id {
		s.activeID = ""
		s.transcript = nil
	}
}

// AppendMessage appends to the active transcript.
func (s *Store) AppendMessage(msg Message) {
	s.transcript = append(s.transcript, msg)
}

// ConfirmMessage marks the transcript entry with the given provisional id as
// acknowledged by the backend. Unknown ids are ignored.
func (s *Store) ConfirmMessage(provisionalID string) {
	for i := range s.transcript {
		if s.transcript[i].ID == provisionalID {
			s.transcript[i].Provisional = false
			return
		}
	}
}
