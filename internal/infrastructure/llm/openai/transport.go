package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// chatCompletion posts one chat request and returns the first choice's
// content. jsonMode switches on the json_object response format for calls
// that must come back as a JSON document.
func (c *Client) chatCompletion(ctx context.Context, operation string, messages []chatMessage, jsonMode bool) (string, error) {
	call := func(ctx context.Context) (string, error) {
		return c.postChat(ctx, operation, messages, jsonMode)
	}

	if c.executor == nil {
		return call(ctx)
	}

	var content string
	err := c.executor.Execute(ctx, operation, func(ctx context.Context) error {
		var callErr error
		content, callErr = call(ctx)
		return callErr
	}, isModelFailure)
	return content, err
}

func (c *Client) postChat(ctx context.Context, operation string, messages []chatMessage, jsonMode bool) (string, error) {
	payload := chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: 0,
	}
	if jsonMode {
		payload.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai %s request: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", &HTTPStatusError{
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode %s response: %w", operation, err)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("%s response has no choices", operation)
	}
	return decoded.Choices[0].Message.Content, nil
}
