package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/sjson"

	"github.com/Leeevai/AHxAI/sdk/gateway"
)

// ErrBusy is returned when a submission is attempted while another is in
// flight. The caller decides whether to retry; nothing is queued.
var ErrBusy = errors.New("assistant: a request is already in flight")

// ErrorReply is the synthetic assistant entry appended when a submission
// fails against the backend.
const ErrorReply = "Sorry, I encountered an error while processing your request. Please try again."

// State is the controller's dispatch state.
type State int

const (
	// StateIdle means no request is in flight.
	StateIdle State = iota
	// StateSubmitting means exactly one gateway call is outstanding.
	StateSubmitting
)

// Controller orchestrates the conversation: it owns the session store, the
// request state, and the analysis view, and routes every user input to the
// backend through the gateway client. At most one operation is in flight per
// controller; a second submission is rejected synchronously with ErrBusy.
//
// Controller methods may be called from multiple goroutines (the TUI runs
// operations in tea.Cmd goroutines). No accessor waits on the network:
// c.mu is held only across local store and view mutations, never across a
// gateway call, so Transcript, Sessions, and View stay responsive while a
// request is outstanding and the optimistic user turn is readable
// immediately.
type Controller struct {
	client *gateway.Client
	store  *Store
	logger *gateway.Logger

	// mu guards the store and the analysis view. Held for short local
	// mutations only; the single-flight slot is what serializes operations.
	mu   sync.Mutex
	view AnalysisView

	// stateMu guards the lightweight fields below so status polls and editor
	// edits never wait on an in-flight request.
	stateMu      sync.Mutex
	state        State
	loading      bool
	lastError    string
	editorCode   string
	language     string
	systemPrompt string
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller logger. Logging is off by default.
func WithLogger(l *gateway.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// WithSystemPrompt overrides the system prompt sent with generic queries.
func WithSystemPrompt(prompt string) Option {
	return func(c *Controller) {
		c.systemPrompt = prompt
	}
}

// NewController creates a controller backed by the given gateway client.
func NewController(client *gateway.Client, opts ...Option) *Controller {
	c := &Controller{
		client:       client,
		store:        NewStore(),
		logger:       gateway.NewLogger(gateway.LevelOff, nil),
		systemPrompt: gateway.DefaultSystemPrompt,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current dispatch state.
func (c *Controller) State() State {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return c.state
}

// Loading reports whether a gateway call is outstanding.
func (c *Controller) Loading() bool {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return c.loading
}

// LastError returns the last user-visible error message, cleared at the
// start of each operation.
func (c *Controller) LastError() string {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return c.lastError
}

// SetEditorCode replaces the controller's view of the editor contents.
func (c *Controller) SetEditorCode(code string) {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	c.editorCode = code
}

// EditorCode returns the controller's view of the editor contents.
func (c *Controller) EditorCode() string {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return c.editorCode
}

// SetLanguage pins the language sent with analyze requests. An empty value
// restores heuristic detection.
func (c *Controller) SetLanguage(lang string) {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	c.language = lang
}

// Language returns the language that would accompany an analyze request:
// the pinned value if set, otherwise the detected language of the editor.
func (c *Controller) Language() string {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return c.languageLocked()
}

func (c *Controller) languageLocked() string {
	if c.language != "" {
		return c.language
	}
	return DetectLanguage(c.editorCode)
}

// Transcript returns a copy of the active transcript.
func (c *Controller) Transcript() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Transcript()
}

// Sessions returns the current session list.
func (c *Controller) Sessions() []gateway.Chat {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Sessions()
}

// ActiveSessionID returns the active session id, or "" when none is active.
func (c *Controller) ActiveSessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.ActiveID()
}

// View returns the current analysis view.
func (c *Controller) View() AnalysisView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// begin claims the single-flight slot. It fails synchronously with ErrBusy
// when a request is already outstanding and never blocks on c.mu.
func (c *Controller) begin() error {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	if c.state == StateSubmitting {
		return ErrBusy
	}
	c.state = StateSubmitting
	c.loading = true
	c.lastError = ""
	return nil
}

func (c *Controller) end() {
	c.stateMu.Lock()
	c.state = StateIdle
	c.loading = false
	c.stateMu.Unlock()
}

func (c *Controller) setError(msg string) {
	c.stateMu.Lock()
	c.lastError = msg
	c.stateMu.Unlock()
}

// Submit routes a user utterance to the backend. The user's entry appears in
// the transcript immediately; the classified request (code analysis or
// generic query) then runs against the gateway and the assistant's reply is
// appended on completion. Gateway failures never propagate to the caller:
// they surface as a synthetic assistant entry plus LastError. The only error
// Submit returns is ErrBusy.
func (c *Controller) Submit(ctx context.Context, utterance string) error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	c.stateMu.Lock()
	code := c.editorCode
	c.stateMu.Unlock()

	intent := Classify(utterance, strings.TrimSpace(code) != "")
	c.logger.Debug("classified utterance", "intent", intent.String())

	c.dispatch(ctx, utterance, intent)
	return nil
}

// AnalyzeCurrentCode submits the editor contents for analysis directly,
// bypassing classification. Used when the user invokes an explicit Analyze
// action instead of typing a request.
func (c *Controller) AnalyzeCurrentCode(ctx context.Context) error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	utterance := fmt.Sprintf("Analyze this %s code", c.Language())
	c.dispatch(ctx, utterance, CodeAnalysis)
	return nil
}

// dispatch runs one submission end to end. Caller holds the single-flight
// slot. c.mu is taken per mutation, never across a gateway call, so the
// provisional user turn is readable the moment it is appended.
func (c *Controller) dispatch(ctx context.Context, utterance string, intent Intent) {
	// Optimistic append: the user sees their turn before any network wait.
	provisional := Message{
		ID:          uuid.NewString(),
		Content:     utterance,
		IsUser:      true,
		Timestamp:   time.Now(),
		Provisional: true,
	}
	c.mu.Lock()
	c.store.AppendMessage(provisional)
	chatID := c.store.ActiveID()
	c.mu.Unlock()

	if chatID == "" {
		chat, err := c.client.CreateChat(ctx)
		if err != nil {
			// The provisional turn stays; the main request is never issued.
			c.fail("create session", err)
			return
		}
		c.mu.Lock()
		// BeginSession resets the transcript to the greeting; restore the
		// user's turn behind it.
		c.store.BeginSession(*chat)
		c.store.AppendMessage(provisional)
		c.mu.Unlock()
		chatID = chat.ID
	}

	var reply Message
	var err error
	switch intent {
	case CodeAnalysis:
		reply, err = c.runAnalysis(ctx, chatID, utterance)
	default:
		reply, err = c.runQuery(ctx, chatID, utterance)
	}
	if err != nil {
		c.fail(intent.String(), err)
		return
	}

	c.mu.Lock()
	// The analyze and query endpoints persist the user turn server-side, so
	// the provisional entry is confirmed in place; writing it again through
	// the messages endpoint would store it twice.
	c.store.ConfirmMessage(provisional.ID)
	c.store.AppendMessage(reply)
	c.view = Project(c.store.Transcript())
	c.mu.Unlock()

	// Title and timestamp may have changed server-side; refresh is
	// best-effort and does not undo a successful submission.
	chats, err := c.client.ListChats(ctx)
	if err != nil {
		c.logger.Warn("session list refresh failed", "error", err)
		return
	}
	c.mu.Lock()
	c.store.SetSessions(chats)
	c.mu.Unlock()
}

func (c *Controller) runAnalysis(ctx context.Context, chatID, utterance string) (Message, error) {
	c.stateMu.Lock()
	code := c.editorCode
	language := c.languageLocked()
	c.stateMu.Unlock()

	resp, err := c.client.AnalyzeCode(ctx, &gateway.AnalyzeRequest{
		Code:     code,
		Language: language,
		Context:  utterance,
		ChatID:   chatID,
	})
	if err != nil {
		return Message{}, err
	}

	reply := fromGateway(resp.Message)
	if !reply.HasMetadata() {
		// Some backends return the analysis only at the top level; fold it
		// into the message so projection sees it.
		md, merr := json.Marshal(resp.AIResponse)
		if merr != nil {
			return Message{}, &gateway.DecodeError{Op: "analyze", Err: merr}
		}
		reply.Metadata = md
	}
	if reply.ID == "" {
		reply.ID = uuid.NewString()
	}
	if reply.Timestamp.IsZero() {
		reply.Timestamp = time.Now()
	}
	return reply, nil
}

func (c *Controller) runQuery(ctx context.Context, chatID, utterance string) (Message, error) {
	resp, err := c.client.Query(ctx, &gateway.QueryRequest{
		Query:        utterance,
		SystemPrompt: c.systemPrompt,
		ChatID:       chatID,
	})
	if err != nil {
		return Message{}, err
	}

	metadata, err := queryMetadata(c.systemPrompt, resp.ToolCalls)
	if err != nil {
		return Message{}, &gateway.DecodeError{Op: "query", Err: err}
	}

	return Message{
		ID:        uuid.NewString(),
		Content:   resp.Result.Content,
		IsUser:    false,
		Timestamp: time.Now(),
		Metadata:  metadata,
	}, nil
}

// queryMetadata assembles the metadata payload attached to a query reply.
func queryMetadata(systemPrompt string, toolCalls []gateway.ToolCall) (json.RawMessage, error) {
	md, err := sjson.Set("{}", "query_type", "general")
	if err != nil {
		return nil, err
	}
	md, err = sjson.Set(md, "system_prompt", systemPrompt)
	if err != nil {
		return nil, err
	}
	if len(toolCalls) > 0 {
		raw, merr := json.Marshal(toolCalls)
		if merr != nil {
			return nil, merr
		}
		md, err = sjson.SetRaw(md, "tool_calls", string(raw))
		if err != nil {
			return nil, err
		}
	}
	return json.RawMessage(md), nil
}

// fail converts a gateway failure into the user-visible shape: a synthetic
// assistant entry in the transcript plus LastError. The analysis view is
// left untouched.
func (c *Controller) fail(op string, err error) {
	var derr *gateway.DecodeError
	if errors.As(err, &derr) {
		// Malformed success bodies read as an unavailable gateway to the
		// user but are logged distinctly for diagnostics.
		c.logger.Error("malformed gateway response", "op", op, "error", err)
	} else {
		c.logger.Error("gateway call failed", "op", op, "error", err)
	}

	c.mu.Lock()
	c.store.AppendMessage(Message{
		ID:        uuid.NewString(),
		Content:   ErrorReply,
		IsUser:    false,
		Timestamp: time.Now(),
	})
	c.mu.Unlock()
	c.setError(describeError(err))
}

func describeError(err error) string {
	switch {
	case errors.Is(err, gateway.ErrNotFound):
		return "The requested session no longer exists."
	default:
		return "The assistant backend is unavailable. Please try again."
	}
}

// NewSession creates a fresh session and makes it active. The transcript is
// reset to the greeting and the analysis view cleared.
func (c *Controller) NewSession(ctx context.Context) error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	chat, err := c.client.CreateChat(ctx)
	if err != nil {
		c.setError(describeError(err))
		return err
	}

	c.mu.Lock()
	c.store.BeginSession(*chat)
	c.view = AnalysisView{}
	c.mu.Unlock()
	return nil
}

// OpenSession loads a session's transcript and makes it active, rebuilding
// the analysis view from the loaded messages. The active session is
// unchanged on failure; a missing session surfaces as gateway.ErrNotFound.
func (c *Controller) OpenSession(ctx context.Context, id string) error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	msgs, err := c.client.ListMessages(ctx, id)
	if err != nil {
		c.setError(describeError(err))
		return err
	}

	transcript := make([]Message, 0, len(msgs))
	for _, gm := range msgs {
		transcript = append(transcript, fromGateway(gm))
	}

	c.mu.Lock()
	c.store.ReplaceTranscript(id, transcript)
	c.view = Project(transcript)
	c.mu.Unlock()
	return nil
}

// DeleteSession deletes a session. Idempotent: deleting an already-absent id
// succeeds, since a backend 404 means the session is gone, which is the
// state the caller asked for. If the active session was deleted, the
// transcript and view are cleared.
func (c *Controller) DeleteSession(ctx context.Context, id string) error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	if err := c.client.DeleteChat(ctx, id); err != nil && !errors.Is(err, gateway.ErrNotFound) {
		c.setError(describeError(err))
		return err
	}

	c.mu.Lock()
	if c.store.ActiveID() == id {
		c.view = AnalysisView{}
	}
	c.store.RemoveSession(id)
	c.mu.Unlock()
	return nil
}

// RefreshSessions replaces the session list with the backend's view.
func (c *Controller) RefreshSessions(ctx context.Context) error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	chats, err := c.client.ListChats(ctx)
	if err != nil {
		c.setError(describeError(err))
		return err
	}

	c.mu.Lock()
	c.store.SetSessions(chats)
	c.mu.Unlock()
	return nil
}

// FetchVisualization retrieves the rendered visualization markup for a
// message. Read-only: it touches no controller state and is not subject to
// the single-flight guard.
func (c *Controller) FetchVisualization(ctx context.Context, messageID string) (string, error) {
	return c.client.Visualization(ctx, messageID)
}
