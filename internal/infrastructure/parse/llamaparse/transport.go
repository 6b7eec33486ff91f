package llamaparse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/antonkarev/doc-classifier/internal/core/domain"
)

func (c *Client) uploadFile(ctx context.Context, file *domain.UploadedFile) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", file.Filename)
	if err != nil {
		return "", fmt.Errorf("create multipart field: %w", err)
	}
	if _, err := part.Write(file.Data); err != nil {
		return "", fmt.Errorf("write file bytes: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/parsing/upload", &body)
	if err != nil {
		return "", fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var out struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := c.do(req, "upload", &out); err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", fmt.Errorf("upload response missing job id")
	}
	return out.ID, nil
}

func (c *Client) jobStatus(ctx context.Context, jobID string) (string, error) {
	var out struct {
		Status string `json:"status"`
	}
	path := "/api/parsing/job/" + url.PathEscape(jobID)
	if err := c.getJSON(ctx, path, "job_status", &out); err != nil {
		return "", err
	}
	return out.Status, nil
}

func (c *Client) fetchText(ctx context.Context, jobID string) (string, error) {
	var out struct {
		Text string `json:"text"`
	}
	path := "/api/parsing/job/" + url.PathEscape(jobID) + "/result/text"
	if err := c.getJSON(ctx, path, "fetch_result", &out); err != nil {
		return "", err
	}
	return out.Text, nil
}

func (c *Client) getJSON(ctx context.Context, path, operation string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create %s request: %w", operation, err)
	}
	return c.do(req, operation, out)
}

func (c *Client) do(req *http.Request, operation string, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("llamaparse %s request: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &HTTPStatusError{
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(body)),
		}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", operation, err)
	}
	return nil
}
