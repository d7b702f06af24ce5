package webhook

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// Client executes messages against one Discord webhook URL. The URL
// embeds its own authorization token, so no separate credentials are
// needed. A Client is safe for concurrent use.
type Client struct {
	url     string
	client  HTTPClient
	timeout time.Duration
}

// NewClient creates a client bound to the given webhook URL.
func NewClient(url string, opts ...Option) *Client {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Client{
		url:     url,
		client:  o.httpClient,
		timeout: o.timeout,
	}
}

// Execute delivers one message. Content beyond MaxContentLength is
// truncated; a message with more than MaxFiles attachments is rejected
// with ErrTooManyFiles before any bytes leave the process. A non-2xx
// response is returned as a *HTTPError.
func (c *Client) Execute(ctx context.Context, msg Message) error {
	if c.url == "" {
		return ErrNoURL
	}
	if len(msg.Files) > MaxFiles {
		return fmt.Errorf("%w: %d files, limit is %d", ErrTooManyFiles, len(msg.Files), MaxFiles)
	}

	// Build multipart request body: content field first, then the
	// attachments in order. Part name and filename are both the
	// attachment name.
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	contentPart, err := writer.CreateFormField("content")
	if err != nil {
		return fmt.Errorf("create content field: %w", err)
	}
	if _, err := contentPart.Write([]byte(truncateContent(msg.Content))); err != nil {
		return fmt.Errorf("write content: %w", err)
	}

	for _, f := range msg.Files {
		filePart, err := writer.CreateFormFile(f.Name, f.Name)
		if err != nil {
			return fmt.Errorf("create file field %s: %w", f.Name, err)
		}
		if _, err := filePart.Write(f.Data); err != nil {
			return fmt.Errorf("write file %s: %w", f.Name, err)
		}
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("finalize multipart: %w", err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, &body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		respBody, _ := io.ReadAll(resp.Body)
		return &HTTPError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return nil
}
