// Package mock provides an in-memory backend implementing the gateway
// contract, for demos and for running the TUI without a real backend.
package mock

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Leeevai/AHxAI/assistant"
	"github.com/Leeevai/AHxAI/sdk/gateway"
)

// Server is an in-memory mock backend.
type Server struct {
	mu    sync.Mutex
	chats map[string]*gateway.Chat
	msgs  map[string][]gateway.ChatMessage // chat id -> messages
}

// NewServer creates an empty mock backend.
func NewServer() *Server {
	return &Server{
		chats: make(map[string]*gateway.Chat),
		msgs:  make(map[string][]gateway.ChatMessage),
	}
}

// Handler returns the HTTP handler implementing the gateway contract.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/api/chats", s.handleChats)
	mux.HandleFunc("/api/chats/", s.handleChat)
	mux.HandleFunc("/api/analyze", s.handleAnalyze)
	mux.HandleFunc("/api/query", s.handleQuery)
	mux.HandleFunc("/api/visualization/", s.handleVisualization)
	return mux
}

// ListenAndServe runs the mock backend on the given port.
func (s *Server) ListenAndServe(port int) error {
	addr := fmt.Sprintf(":%d", port)
	fmt.Printf("Mock backend listening on http://localhost%s\n", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, gateway.HealthResponse{Status: "healthy", Timestamp: time.Now()})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, m := range s.msgs {
		total += len(m)
	}
	writeJSON(w, gateway.StatsResponse{
		TotalChats:    len(s.chats),
		TotalMessages: total,
		APIVersion:    "1.0.0",
		Status:        "healthy",
	})
}

func (s *Server) handleChats(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.mu.Lock()
		chat := s.createChatLocked()
		s.mu.Unlock()
		writeJSON(w, chat)
	case http.MethodGet:
		s.mu.Lock()
		chats := make([]gateway.Chat, 0, len(s.chats))
		for _, c := range s.chats {
			chats = append(chats, *c)
		}
		s.mu.Unlock()
		writeJSON(w, chats)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// createChatLocked allocates a chat. Caller holds s.mu.
func (s *Server) createChatLocked() *gateway.Chat {
	now := time.Now()
	chat := &gateway.Chat{
		ID:        uuid.NewString(),
		Title:     "New Chat",
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.chats[chat.ID] = chat
	return chat
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/chats/")
	parts := strings.Split(rest, "/")
	if len(parts) == 0 || parts[0] == "" {
		http.Error(w, "invalid chat id", http.StatusBadRequest)
		return
	}
	chatID := parts[0]

	s.mu.Lock()
	defer s.mu.Unlock()

	chat, ok := s.chats[chatID]
	if !ok {
		http.Error(w, "Chat not found", http.StatusNotFound)
		return
	}

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			full := *chat
			full.Messages = s.msgs[chatID]
			writeJSON(w, full)
		case http.MethodDelete:
			delete(s.chats, chatID)
			delete(s.msgs, chatID)
			writeJSON(w, map[string]string{"message": "Chat deleted successfully"})
		case http.MethodPatch:
			var req gateway.RenameChatRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			if req.Title != "" {
				chat.Title = req.Title
			}
			chat.UpdatedAt = time.Now()
			writeJSON(w, chat)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	switch parts[1] {
	case "messages":
		s.handleMessagesLocked(w, r, chatID)
	case "clear":
		s.msgs[chatID] = nil
		chat.UpdatedAt = time.Now()
		writeJSON(w, map[string]string{"message": "Chat cleared successfully"})
	default:
		http.Error(w, "not found", http.StatusNotFound)
	}
}

// handleMessagesLocked serves a chat's message collection. Caller holds s.mu.
func (s *Server) handleMessagesLocked(w http.ResponseWriter, r *http.Request, chatID string) {
	switch r.Method {
	case http.MethodGet:
		msgs := s.msgs[chatID]
		if msgs == nil {
			msgs = []gateway.ChatMessage{}
		}
		writeJSON(w, msgs)
	case http.MethodPost:
		var req gateway.SendMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		msg := s.appendMessageLocked(chatID, req.Content, req.IsUser, nil)
		writeJSON(w, msg)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// appendMessageLocked stores a message. Caller holds s.mu.
func (s *Server) appendMessageLocked(chatID, content string, isUser bool, metadata json.RawMessage) gateway.ChatMessage {
	msg := gateway.ChatMessage{
		ID:        uuid.NewString(),
		ChatID:    chatID,
		Content:   content,
		IsUser:    isUser,
		Timestamp: time.Now(),
		Metadata:  metadata,
	}
	s.msgs[chatID] = append(s.msgs[chatID], msg)
	if chat, ok := s.chats[chatID]; ok {
		chat.UpdatedAt = msg.Timestamp
	}
	return msg
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req gateway.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	chatID := req.ChatID
	if chatID == "" {
		chatID = s.createChatLocked().ID
	} else if _, ok := s.chats[chatID]; !ok {
		http.Error(w, "Chat not found", http.StatusNotFound)
		return
	}

	language := req.Language
	if language == "" {
		language = assistant.DetectLanguage(req.Code)
	}

	preview := truncateRunes(req.Code, 100)
	s.appendMessageLocked(chatID, fmt.Sprintf("Analyze this %s code: %s...", language, preview), true, nil)

	analysis := fabricateAnalysis(req.Code, language)
	metadata, _ := json.Marshal(analysis)
	aiMsg := s.appendMessageLocked(chatID,
		"I've analyzed your code and provided improvements, explanations, and visualizations.",
		false, metadata)

	if chat, ok := s.chats[chatID]; ok {
		chat.Title = "Code Analysis - " + language
		chat.UpdatedAt = time.Now()
	}

	writeJSON(w, gateway.AnalyzeResponse{
		ChatID:     chatID,
		Message:    aiMsg,
		AIResponse: analysis,
	})
}

// fabricateAnalysis produces a deterministic stand-in analysis: the input
// re-indented, plus canned commentary.
func fabricateAnalysis(code, language string) *gateway.CodeAnalysis {
	corrected := assistant.Reindent(code)
	explanation := fmt.Sprintf(
		"This %s snippet was re-indented for consistency. In mock mode no semantic analysis is performed.",
		language)
	return &gateway.CodeAnalysis{
		CorrectedCode: corrected,
		Explanation:   explanation,
		VisualizationHTML: fmt.Sprintf(
			"<div class='code-visualization'>\n<h3>Code Visualization</h3>\n<pre><code class='%s'>\n%s\n</code></pre>\n<div class='explanation'>%s</div>\n</div>",
			language, corrected, explanation),
		Suggestions: []string{
			"Add input validation",
			"Consider extracting helper functions",
		},
		Warnings: []string{
			"Mock analysis: results are illustrative only",
		},
	}
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req gateway.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	chatID := req.ChatID
	if chatID == "" {
		chatID = s.createChatLocked().ID
	} else if _, ok := s.chats[chatID]; !ok {
		http.Error(w, "Chat not found", http.StatusNotFound)
		return
	}

	s.appendMessageLocked(chatID, req.Query, true, nil)

	content, toolCalls := fabricateAnswer(req.Query)
	s.appendMessageLocked(chatID, content, false, nil)

	if chat, ok := s.chats[chatID]; ok {
		chat.Title = "Query - " + truncateRunes(req.Query, 30) + "..."
		chat.UpdatedAt = time.Now()
	}

	writeJSON(w, gateway.QueryResponse{
		Result:    gateway.QueryResult{Content: content},
		ToolCalls: toolCalls,
	})
}

// fabricateAnswer generates a canned reply, simulating tool use for
// documentation-flavored questions.
func fabricateAnswer(query string) (string, []gateway.ToolCall) {
	lower := strings.ToLower(query)
	switch {
	case strings.Contains(lower, "docs") || strings.Contains(lower, "documentation"):
		return "I looked through the documentation for you. In mock mode the summary is canned.",
			[]gateway.ToolCall{{ID: uuid.NewString(), Name: "scrap_docs", Args: json.RawMessage(`{"query":"` + lower + `"}`)}}
	case strings.Contains(lower, "hello") || strings.Contains(lower, "hi"):
		return "Hello! Ask me about your code, or paste some into the editor and say \"analyze\".", nil
	default:
		return "Mock mode: a real backend would answer \"" + query + "\" here.", nil
	}
}

// truncateRunes shortens s to max runes. Byte slicing could cut a multi-byte
// rune in half and produce invalid UTF-8 in the stored message.
func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

func (s *Server) handleVisualization(w http.ResponseWriter, r *http.Request) {
	messageID := strings.TrimPrefix(r.URL.Path, "/api/visualization/")

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, msgs := range s.msgs {
		for _, m := range msgs {
			if m.ID != messageID {
				continue
			}
			var payload struct {
				VisualizationHTML string `json:"visualization_html"`
			}
			if len(m.Metadata) == 0 || json.Unmarshal(m.Metadata, &payload) != nil || payload.VisualizationHTML == "" {
				http.Error(w, "Visualization not found", http.StatusNotFound)
				return
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			fmt.Fprint(w, payload.VisualizationHTML)
			return
		}
	}
	http.Error(w, "Message not found", http.StatusNotFound)
}
