// Package remote talks to the hosted collaborators: the profile mirror, the
// transactional email API and the checkout provider. Every failure wraps
// engine.ErrTransientRemote, or engine.ErrNotFound for a missing profile.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"stressless/internal/engine"
)

const maxErrorBody = 512

// NewHTTPClient returns a client bounded by timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

// doJSON sends body as JSON and decodes a 2xx response into out when out is
// not nil.
func doJSON(ctx context.Context, client *http.Client, method, url string, header http.Header, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, url, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, url, err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", engine.ErrTransientRemote, method, url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read %s %s: %v", engine.ErrTransientRemote, method, url, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(data) > maxErrorBody {
			data = data[:maxErrorBody]
		}
		return fmt.Errorf("%w: %s %s returned %d: %s", engine.ErrTransientRemote, method, url, resp.StatusCode, bytes.TrimSpace(data))
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decode %s %s: %v", engine.ErrTransientRemote, method, url, err)
	}
	return nil
}
