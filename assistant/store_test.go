package assistant_test

import (
	"testing"

	"github.com/Leeevai/AHxAI/assistant"
	"github.com/Leeevai/AHxAI/sdk/gateway"
)

func TestStoreBeginSession(t *testing.T) {
	store := assistant.NewStore()

	store.BeginSession(gateway.Chat{ID: "c1", Title: "New Chat"})
	if store.ActiveID() != "c1" {
		t.Errorf("ActiveID() = %q, want %q", store.ActiveID(), "c1")
	}
	transcript := store.Transcript()
	if len(transcript) != 1 || transcript[0].Content != assistant.Greeting {
		t.Errorf("new transcript = %+v, want just the greeting", transcript)
	}

	store.AppendMessage(assistant.Message{ID: "m1", Content: "hi", IsUser: true})
	store.BeginSession(gateway.Chat{ID: "c2"})

	sessions := store.Sessions()
	if len(sessions) != 2 || sessions[0].ID != "c2" {
		t.Errorf("Sessions() = %+v, want newest first", sessions)
	}
	if got := store.Transcript(); len(got) != 1 {
		t.Errorf("BeginSession did not reset the transcript: %+v", got)
	}
}

func TestStoreSetSessions(t *testing.T) {
	store := assistant.NewStore()
	store.BeginSession(gateway.Chat{ID: "stale"})

	store.SetSessions([]gateway.Chat{{ID: "a"}, {ID: "b"}})
	sessions := store.Sessions()
	if len(sessions) != 2 || sessions[0].ID != "a" {
		t.Errorf("Sessions() = %+v, want the replacement list", sessions)
	}
}

func TestStoreReplaceTranscript(t *testing.T) {
	store := assistant.NewStore()

	msgs := []assistant.Message{
		{ID: "m1", Content: "first", IsUser: true},
		{ID: "m2", Content: "second"},
	}
	store.ReplaceTranscript("c1", msgs)

	if store.ActiveID() != "c1" {
		t.Errorf("ActiveID() = %q, want %q", store.ActiveID(), "c1")
	}
	transcript := store.Transcript()
	if len(transcript) != 2 || transcript[0].Content != "first" || transcript[1].Content != "second" {
		t.Errorf("Transcript() = %+v", transcript)
	}
}

func TestStoreRemoveSession(t *testing.T) {
	store := assistant.NewStore()
	store.BeginSession(gateway.Chat{ID: "c1"})
	store.BeginSession(gateway.Chat{ID: "c2"})

	store.RemoveSession("c1")
	if len(store.Sessions()) != 1 || store.ActiveID() != "c2" {
		t.Error("removing an inactive session must not touch the active one")
	}

	store.RemoveSession("c2")
	if store.ActiveID() != "" || len(store.Transcript()) != 0 || len(store.Sessions()) != 0 {
		t.Error("removing the active session must clear active state")
	}

	// Unknown ids are a no-op.
	store.RemoveSession("c2")
	if len(store.Sessions()) != 0 {
		t.Error("removing an unknown id changed the session list")
	}
}

func TestStoreConfirmMessage(t *testing.T) {
	store := assistant.NewStore()

	store.AppendMessage(assistant.Message{ID: "tmp-1", Content: "hi", IsUser: true, Provisional: true})
	store.ConfirmMessage("tmp-1")

	transcript := store.Transcript()
	if len(transcript) != 1 || transcript[0].Provisional {
		t.Errorf("Transcript() after confirm = %+v, want the entry marked confirmed", transcript)
	}

	// Unknown provisional ids are ignored.
	store.ConfirmMessage("tmp-2")
	if got := store.Transcript(); len(got) != 1 {
		t.Errorf("Transcript() after unknown confirm = %+v", got)
	}
}
