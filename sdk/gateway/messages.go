package gateway

import (
	"context"
	"fmt"
	"net/http"
)

// ListMessages returns a chat's messages in chronological order.
func (c *Client) ListMessages(ctx context.Context, chatID string) ([]ChatMessage, error) {
	var result []ChatMessage
	path := "/api/chats/" + chatID + "/messages"
	if err := c.doRequest(ctx, "list messages", http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// SendMessage appends a raw message to a chat and returns the stored copy
// with its server-issued id and timestamp.
func (c *Client) SendMessage(ctx context.Context, chatID string, req *SendMessageRequest) (*ChatMessage, error) {
	var result ChatMessage
	path := "/api/chats/" + chatID + "/messages"
	if err := c.doRequest(ctx, "send message", http.MethodPost, path, req, &result); err != nil {
		return nil, err
	}
	if result.ID == "" {
		return nil, &DecodeError{Op: "send message", Err: fmt.Errorf("missing message id")}
	}
	return &result, nil
}

// Visualization fetches the rendered visualization markup for a message.
func (c *Client) Visualization(ctx context.Context, messageID string) (string, error) {
	return c.doText(ctx, "visualization", http.MethodGet, "/api/visualization/"+messageID)
}
