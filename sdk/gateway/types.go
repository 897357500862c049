package gateway

import (
	"encoding/json"
	"time"
)

// Chat is a conversation thread persisted by the backend.
// List responses omit Messages; GetChat fills them in.
type Chat struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	Messages  []ChatMessage `json:"messages,omitempty"`
}

// ChatMessage is a single transcript entry as stored by the backend.
// Metadata is kept raw: its shape depends on how the message was produced
// (code analysis vs. free-form query) and is interpreted by the caller.
type ChatMessage struct {
	ID        string          `json:"id"`
	ChatID    string          `json:"chat_id,omitempty"`
	Content   string          `json:"content"`
	IsUser    bool            `json:"is_user"`
	Timestamp time.Time       `json:"timestamp"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
}

// SendMessageRequest is the body for appending a raw message to a chat.
type SendMessageRequest struct {
	Content string `json:"content"`
	IsUser  bool   `json:"is_user"`
}

// RenameChatRequest is the body for updating a chat's title.
type RenameChatRequest struct {
	Title string `json:"title"`
}

// AnalyzeRequest asks the backend to analyze a piece of code.
type AnalyzeRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
	Context  string `json:"context"`
	ChatID   string `json:"chat_id,omitempty"`
}

// CodeAnalysis is the structured payload of a code-analysis response.
type CodeAnalysis struct {
	CorrectedCode     string   `json:"corrected_code"`
	Explanation       string   `json:"explanation"`
	VisualizationHTML string   `json:"visualization_html"`
	Suggestions       []string `json:"suggestions"`
	Warnings          []string `json:"warnings"`
}

// AnalyzeResponse is the backend's reply to an analyze request. Message is
// the assistant message the backend recorded for the analysis.
type AnalyzeResponse struct {
	ChatID     string        `json:"chat_id"`
	Message    ChatMessage   `json:"message"`
	AIResponse *CodeAnalysis `json:"ai_response"`
}

// QueryRequest asks the backend's model for a free-form answer.
type QueryRequest struct {
	Query        string `json:"query"`
	SystemPrompt string `json:"system_prompt,omitempty"`
	ChatID       string `json:"chat_id,omitempty"`
}

// ToolCall records one tool invocation made while answering a query.
type ToolCall struct {
	ID   string          `json:"id,omitempty"`
	Name string          `json:"name"`
	Args json.RawMessage `json:"args,omitempty"`
}

// QueryResult carries the answer text of a query.
type QueryResult struct {
	Content  string          `json:"content"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
}

// QueryResponse is the backend's reply to a query request.
type QueryResponse struct {
	Result       QueryResult     `json:"result"`
	ToolCalls    []ToolCall      `json:"tool_calls,omitempty"`
	FullMessages json.RawMessage `json:"full_messages,omitempty"`
}

// HealthResponse is the response from the health endpoint.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// StatsResponse is the response from the stats endpoint.
type StatsResponse struct {
	TotalChats    int    `json:"total_chats"`
	TotalMessages int    `json:"total_messages"`
	APIVersion    string `json:"api_version"`
	Status        string `json:"status"`
}
