package assistant_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Leeevai/AHxAI/assistant"
	"github.com/Leeevai/AHxAI/internal/mock"
	"github.com/Leeevai/AHxAI/sdk/gateway"
)

// newMockClient runs a mock backend and returns a client pointed at it.
func newMockClient(t *testing.T) *gateway.Client {
	t.Helper()
	srv := httptest.NewServer(mock.NewServer().Handler())
	t.Cleanup(srv.Close)
	return gateway.NewClient(srv.URL)
}

// newFailingClient returns a client whose every request fails with the given
// status.
func newFailingClient(t *testing.T, status int) *gateway.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", status)
	}))
	t.Cleanup(srv.Close)
	return gateway.NewClient(srv.URL)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within deadline")
}

func TestSubmitQuery(t *testing.T) {
	c := assistant.NewController(newMockClient(t))
	ctx := context.Background()

	if err := c.Submit(ctx, "hello there"); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	transcript := c.Transcript()
	if len(transcript) != 3 {
		t.Fatalf("transcript has %d entries, want 3 (greeting, user, assistant)", len(transcript))
	}
	if transcript[0].Content != assistant.Greeting {
		t.Errorf("transcript[0] = %q, want greeting", transcript[0].Content)
	}
	if !transcript[1].IsUser || transcript[1].Content != "hello there" {
		t.Errorf("transcript[1] = %+v, want the user turn", transcript[1])
	}
	if transcript[2].IsUser || transcript[2].Content == "" {
		t.Errorf("transcript[2] = %+v, want the assistant reply", transcript[2])
	}
	if !transcript[2].HasMetadata() {
		t.Error("query reply is missing metadata")
	}

	if c.ActiveSessionID() == "" {
		t.Error("Submit() did not lazily create a session")
	}
	if c.LastError() != "" {
		t.Errorf("LastError() = %q, want empty", c.LastError())
	}
	if c.Loading() || c.State() != assistant.StateIdle {
		t.Error("controller did not return to idle")
	}
	if len(c.Sessions()) == 0 {
		t.Error("session list was not refreshed after submit")
	}
}

func TestSubmitAnalysis(t *testing.T) {
	c := assistant.NewController(newMockClient(t))
	ctx := context.Background()

	code := "function add(a, b) {\nreturn a + b\n}"
	c.SetEditorCode(code)
	if got := c.Language(); got != "javascript" {
		t.Fatalf("Language() = %q, want javascript", got)
	}

	if err := c.Submit(ctx, "please analyze my code"); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	transcript := c.Transcript()
	if len(transcript) != 3 {
		t.Fatalf("transcript has %d entries, want 3", len(transcript))
	}

	view := c.View()
	if view.IsZero() {
		t.Fatal("analysis view is empty after a successful analysis")
	}
	if view.Code != assistant.Reindent(code) {
		t.Errorf("view.Code = %q, want the re-indented editor code", view.Code)
	}
	if view.Explanation == "" {
		t.Error("view.Explanation is empty")
	}
}

func TestSubmitWithoutCodeRoutesToQuery(t *testing.T) {
	c := assistant.NewController(newMockClient(t))

	// Keyword present but the editor is empty, so this must not analyze.
	if err := c.Submit(context.Background(), "analyze the situation"); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if !c.View().IsZero() {
		t.Error("query-only submission produced an analysis view")
	}
}

func TestSubmitFailure(t *testing.T) {
	c := assistant.NewController(newFailingClient(t, http.StatusInternalServerError))
	ctx := context.Background()

	if err := c.Submit(ctx, "hello"); err != nil {
		t.Fatalf("Submit() error = %v, gateway failures must not propagate", err)
	}

	transcript := c.Transcript()
	if len(transcript) != 2 {
		t.Fatalf("transcript has %d entries, want 2 (user turn, error reply)", len(transcript))
	}
	if !transcript[0].IsUser {
		t.Errorf("transcript[0] = %+v, want the user turn", transcript[0])
	}
	if transcript[1].Content != assistant.ErrorReply {
		t.Errorf("transcript[1].Content = %q, want the error reply", transcript[1].Content)
	}
	if c.LastError() == "" {
		t.Error("LastError() is empty after a failed submission")
	}
	if !c.View().IsZero() {
		t.Error("failed submission changed the analysis view")
	}
	if c.Loading() {
		t.Error("controller stuck in loading state")
	}
}

func TestSubmitMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("{truncated"))
	}))
	t.Cleanup(srv.Close)
	c := assistant.NewController(gateway.NewClient(srv.URL))

	if err := c.Submit(context.Background(), "hello"); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if c.LastError() == "" {
		t.Error("malformed response did not surface as a user-visible error")
	}
	transcript := c.Transcript()
	if transcript[len(transcript)-1].Content != assistant.ErrorReply {
		t.Error("malformed response did not append the error reply")
	}
}

func TestSubmitBusy(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	c := assistant.NewController(gateway.NewClient(srv.URL))

	done := make(chan error, 1)
	go func() { done <- c.Submit(context.Background(), "first") }()

	waitFor(t, c.Loading)

	if err := c.Submit(context.Background(), "second"); !errors.Is(err, assistant.ErrBusy) {
		t.Errorf("concurrent Submit() error = %v, want ErrBusy", err)
	}
	if err := c.NewSession(context.Background()); !errors.Is(err, assistant.ErrBusy) {
		t.Errorf("concurrent NewSession() error = %v, want ErrBusy", err)
	}

	// The rejected submission must not have queued anything.
	release <- struct{}{}
	if err := <-done; err != nil {
		t.Fatalf("first Submit() error = %v", err)
	}
	for _, m := range c.Transcript() {
		if strings.Contains(m.Content, "second") {
			t.Error("rejected submission leaked into the transcript")
		}
	}
}

func TestTranscriptReadableDuringSubmit(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	c := assistant.NewController(gateway.NewClient(srv.URL))

	done := make(chan error, 1)
	go func() { done <- c.Submit(context.Background(), "first") }()
	waitFor(t, c.Loading)

	// The optimistic user turn must be observable while the gateway call is
	// parked; a reader must never wait out the request.
	read := make(chan []assistant.Message, 1)
	go func() { read <- c.Transcript() }()
	select {
	case transcript := <-read:
		if len(transcript) != 1 || !transcript[0].IsUser || transcript[0].Content != "first" {
			t.Errorf("Transcript() during submit = %+v, want the provisional user turn", transcript)
		}
		if !transcript[0].Provisional {
			t.Error("in-flight user turn must be marked provisional")
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("Transcript() blocked while a request was in flight")
	}

	if !c.View().IsZero() {
		t.Error("View() changed during an in-flight submit")
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
}

func TestSubmitPersistsUserTurnOnce(t *testing.T) {
	client := newMockClient(t)
	c := assistant.NewController(client)
	ctx := context.Background()

	if err := c.Submit(ctx, "what is a goroutine"); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	id := c.ActiveSessionID()

	msgs, err := client.ListMessages(ctx, id)
	if err != nil {
		t.Fatalf("ListMessages() error = %v", err)
	}
	stored := 0
	for _, m := range msgs {
		if m.IsUser && m.Content == "what is a goroutine" {
			stored++
		}
	}
	if stored != 1 {
		t.Errorf("user turn persisted %d times, want 1", stored)
	}

	// Reloading the session must show the turn once as well.
	if err := c.OpenSession(ctx, id); err != nil {
		t.Fatalf("OpenSession() error = %v", err)
	}
	shown := 0
	for _, m := range c.Transcript() {
		if m.IsUser && m.Content == "what is a goroutine" {
			shown++
		}
	}
	if shown != 1 {
		t.Errorf("reloaded transcript shows the user turn %d times, want 1", shown)
	}

	// The local provisional entry is confirmed, not left dangling.
	if err := c.Submit(ctx, "and a channel?"); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	for _, m := range c.Transcript() {
		if m.Provisional {
			t.Errorf("transcript entry %q still provisional after a successful submit", m.Content)
		}
	}
}

func TestDeleteSessionIdempotent(t *testing.T) {
	c := assistant.NewController(newMockClient(t))
	ctx := context.Background()

	if err := c.NewSession(ctx); err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	id := c.ActiveSessionID()

	if err := c.DeleteSession(ctx, id); err != nil {
		t.Fatalf("DeleteSession() error = %v", err)
	}
	if err := c.DeleteSession(ctx, id); err != nil {
		t.Errorf("repeated DeleteSession() error = %v, want nil", err)
	}
	if c.ActiveSessionID() != "" || len(c.Transcript()) != 0 || !c.View().IsZero() {
		t.Error("deleting the active session must clear transcript and view")
	}
}

func TestOpenSession(t *testing.T) {
	client := newMockClient(t)
	c := assistant.NewController(client)
	ctx := context.Background()

	resp, err := client.AnalyzeCode(ctx, &gateway.AnalyzeRequest{Code: "print('hi')"})
	if err != nil {
		t.Fatalf("AnalyzeCode() error = %v", err)
	}

	if err := c.OpenSession(ctx, resp.ChatID); err != nil {
		t.Fatalf("OpenSession() error = %v", err)
	}
	if c.ActiveSessionID() != resp.ChatID {
		t.Errorf("ActiveSessionID() = %q, want %q", c.ActiveSessionID(), resp.ChatID)
	}
	if c.View().IsZero() {
		t.Error("opening a session with an analysis did not rebuild the view")
	}
}

func TestOpenSessionMissing(t *testing.T) {
	c := assistant.NewController(newMockClient(t))

	err := c.OpenSession(context.Background(), "no-such-session")
	if !errors.Is(err, gateway.ErrNotFound) {
		t.Fatalf("OpenSession(missing) error = %v, want ErrNotFound", err)
	}
	if c.LastError() == "" {
		t.Error("missing session did not surface as a user-visible error")
	}
}

func TestAnalyzeCurrentCode(t *testing.T) {
	c := assistant.NewController(newMockClient(t))
	c.SetEditorCode("def f():\n    return 1")

	if err := c.AnalyzeCurrentCode(context.Background()); err != nil {
		t.Fatalf("AnalyzeCurrentCode() error = %v", err)
	}
	if c.View().IsZero() {
		t.Fatal("explicit analysis produced no view")
	}

	transcript := c.Transcript()
	user := transcript[1]
	if !user.IsUser || !strings.Contains(user.Content, "python") {
		t.Errorf("synthesized utterance = %q, want a python analysis request", user.Content)
	}
}
