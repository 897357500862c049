// Package assistant implements the conversation core of the coding-assistant
// client: intent classification, session state, response projection, and the
// dispatch controller that ties them to the backend gateway.
package assistant

import (
	"encoding/json"
	"time"

	"github.com/Leeevai/AHxAI/sdk/gateway"
)

// Greeting opens every fresh transcript.
const Greeting = "Hello! I'm your AI coding assistant. What can I help you with today?"

// Message is one transcript entry as held by the client. Provisional entries
// carry a client-issued id until the backend acknowledges the write, at which
// point they are replaced with the server copy.
type Message struct {
	ID          string
	Content     string
	IsUser      bool
	Timestamp   time.Time
	Metadata    json.RawMessage
	Provisional bool
}

// HasMetadata reports whether the message carries a structured payload.
func (m Message) HasMetadata() bool {
	return len(m.Metadata) > 0 && string(m.Metadata) != "null"
}

func fromGateway(gm gateway.ChatMessage) Message {
	return Message{
		ID:        gm.ID,
		Content:   gm.Content,
		IsUser:    gm.IsUser,
		Timestamp: gm.Timestamp,
		Metadata:  gm.Metadata,
	}
}

func greetingMessage() Message {
	return Message{
		ID:        "greeting",
		Content:   Greeting,
		IsUser:    false,
		Timestamp: time.Now(),
	}
}
