package api

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"
)

// Profile is the caller's registration record. HTTP 404 on fetch means
// "authenticated but not yet registered", not an error.
type Profile struct {
	LeaderName  string `json:"leaderName"`
	CollegeName string `json:"collegeName"`
	TeamName    string `json:"teamName"`
}

// Profile fetches the caller's registration profile
func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	resp, err := c.doRequest(ctx, "GET", "/profile", nil)
	if err != nil {
		return nil, err
	}

	var profile Profile
	if err := parseResponse(resp, &profile); err != nil {
		return nil, err
	}

	return &profile, nil
}

// UploadDocument sends a PDF as a multipart form body. A BLAKE3 digest
// of the content travels in X-Content-Digest so the backend can verify
// the bytes it stored; the backend stays authoritative for acceptance.
func (c *Client) UploadDocument(ctx context.Context, kind DocumentKind, filename string, content io.Reader) error {
	data, err := io.ReadAll(content)
	if err != nil {
		return fmt.Errorf("failed to read upload content: %w", err)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("failed to write form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/profile/upload/%s", c.BaseURL, kind), &body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	digest := blake3.Sum256(data)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-Content-Digest", "blake3:"+hex.EncodeToString(digest[:]))
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return wrapNetworkError(err)
	}

	return parseResponse(resp, nil)
}
