package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Endpoint accepts submission payloads on behalf of the ledger.
type Endpoint interface {
	// Accept submits the payload. A non-nil error means the ledger was
	// unreachable or rejected the submission.
	Accept(ctx context.Context, payload *SubmissionPayload) error
}

// endpointRequestTimeout bounds a single submission attempt.
const endpointRequestTimeout = 30 * time.Second

// HTTPEndpoint posts submission payloads as JSON to the ledger network
// URL.
type HTTPEndpoint struct {
	url    string
	client *http.Client
}

// NewHTTPEndpoint builds an endpoint for a ledger network URL.
func NewHTTPEndpoint(url string) *HTTPEndpoint {
	return &HTTPEndpoint{
		url:    url,
		client: &http.Client{Timeout: endpointRequestTimeout},
	}
}

// Accept implements Endpoint.
func (e *HTTPEndpoint) Accept(ctx context.Context, payload *SubmissionPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("ledger endpoint returned status %d", resp.StatusCode)
	}

	return nil
}
