package gateway

import (
	"context"
	"fmt"
	"net/http"
)

// AnalyzeCode submits editor code for structured analysis. The backend
// records both sides of the exchange in the chat identified by req.ChatID
// (creating a chat if it is empty) and returns the assistant message along
// with the structured analysis payload.
func (c *Client) AnalyzeCode(ctx context.Context, req *AnalyzeRequest) (*AnalyzeResponse, error) {
	var result AnalyzeResponse
	if err := c.doRequest(ctx, "analyze", http.MethodPost, "/api/analyze", req, &result); err != nil {
		return nil, err
	}
	if result.AIResponse == nil {
		return nil, &DecodeError{Op: "analyze", Err: fmt.Errorf("missing ai_response field")}
	}
	return &result, nil
}

// Query submits a free-form question to the backend's model.
func (c *Client) Query(ctx context.Context, req *QueryRequest) (*QueryResponse, error) {
	if req.SystemPrompt == "" {
		req.SystemPrompt = DefaultSystemPrompt
	}
	var result QueryResponse
	if err := c.doRequest(ctx, "query", http.MethodPost, "/api/query", req, &result); err != nil {
		return nil, err
	}
	if result.Result.Content == "" {
		return nil, &DecodeError{Op: "query", Err: fmt.Errorf("missing result content")}
	}
	return &result, nil
}

// DefaultSystemPrompt is sent with queries that do not specify one.
const DefaultSystemPrompt = "you are a smart coding assistant"
