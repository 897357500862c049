package gateway

import (
	"context"
	"fmt"
	"net/http"
)

// CreateChat allocates a new chat session on the backend.
func (c *Client) CreateChat(ctx context.Context) (*Chat, error) {
	var result Chat
	if err := c.doRequest(ctx, "create chat", http.MethodPost, "/api/chats", nil, &result); err != nil {
		return nil, err
	}
	if result.ID == "" {
		return nil, &DecodeError{Op: "create chat", Err: fmt.Errorf("missing chat id")}
	}
	return &result, nil
}

// ListChats returns all chat sessions, newest first per the backend ordering.
func (c *Client) ListChats(ctx context.Context) ([]Chat, error) {
	var result []Chat
	if err := c.doRequest(ctx, "list chats", http.MethodGet, "/api/chats", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetChat retrieves one chat with its messages embedded.
func (c *Client) GetChat(ctx context.Context, chatID string) (*Chat, error) {
	var result Chat
	if err := c.doRequest(ctx, "get chat", http.MethodGet, "/api/chats/"+chatID, nil, &result); err != nil {
		return nil, err
	}
	if result.ID == "" {
		return nil, &DecodeError{Op: "get chat", Err: fmt.Errorf("missing chat id")}
	}
	return &result, nil
}

// DeleteChat deletes a chat session and its messages.
func (c *Client) DeleteChat(ctx context.Context, chatID string) error {
	return c.doRequest(ctx, "delete chat", http.MethodDelete, "/api/chats/"+chatID, nil, nil)
}

// RenameChat updates a chat's title.
func (c *Client) RenameChat(ctx context.Context, chatID, title string) (*Chat, error) {
	var result Chat
	req := RenameChatRequest{Title: title}
	if err := c.doRequest(ctx, "rename chat", http.MethodPatch, "/api/chats/"+chatID, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ClearChat removes all messages from a chat, keeping the session itself.
func (c *Client) ClearChat(ctx context.Context, chatID string) error {
	return c.doRequest(ctx, "clear chat", http.MethodPost, "/api/chats/"+chatID+"/clear", nil, nil)
}
