// Package dispatch submits finished invoice payloads to the hosted renderer
// endpoints. The two transports are intentionally asymmetric: they mirror
// what each remote execution environment tolerates, and neither gives real
// delivery confirmation, so callers must report "submitted", not "delivered".
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/elevatemedia/invoicer/internal/domain"
)

// Dispatcher sends invoice payloads to the external renderers.
type Dispatcher interface {
	SubmitHourly(ctx context.Context, endpointKey string, invoice *domain.HourlyInvoice) error
	SubmitRetainer(ctx context.Context, endpointKey string, invoice *domain.RetainerInvoice) error
}

// WebhookDispatcher posts to a fixed table of endpoint URLs, keyed by
// logical client grouping. The table is copied at construction and never
// mutated; there is no runtime registration.
type WebhookDispatcher struct {
	endpoints  map[string]string
	httpClient *http.Client
}

// NewWebhookDispatcher creates a dispatcher over the given endpoint table.
func NewWebhookDispatcher(endpoints map[string]string) *WebhookDispatcher {
	table := make(map[string]string, len(endpoints))
	for k, v := range endpoints {
		table[k] = v
	}
	return &WebhookDispatcher{
		endpoints:  table,
		httpClient: http.DefaultClient,
	}
}

// Endpoint returns the URL for a key, or an error before any network call
// when the key is not in the table.
func (d *WebhookDispatcher) Endpoint(key string) (string, error) {
	url, ok := d.endpoints[key]
	if !ok {
		return "", fmt.Errorf("unknown dispatch endpoint %q", key)
	}
	return url, nil
}

// SubmitHourly posts the hourly payload. The body is JSON but declared as
// plain text, which the remote script runtime requires. The response body is
// drained and the status code is NOT inspected: the renderer reports its
// outcome by email, so any completed HTTP exchange counts as submitted.
func (d *WebhookDispatcher) SubmitHourly(ctx context.Context, endpointKey string, invoice *domain.HourlyInvoice) error {
	url, err := d.Endpoint(endpointKey)
	if err != nil {
		return err
	}

	body, err := json.Marshal(invoice)
	if err != nil {
		return fmt.Errorf("failed to encode invoice: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("invoice submission failed: %w", err)
	}
	defer resp.Body.Close()

	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	return nil
}

// SubmitRetainer posts the retainer payload in opaque mode: the response is
// closed unread, so success means only that the request did not error in
// transit. Remote-side failures are invisible here.
func (d *WebhookDispatcher) SubmitRetainer(ctx context.Context, endpointKey string, invoice *domain.RetainerInvoice) error {
	url, err := d.Endpoint(endpointKey)
	if err != nil {
		return err
	}

	body, err := json.Marshal(invoice)
	if err != nil {
		return fmt.Errorf("failed to encode invoice: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("invoice submission failed: %w", err)
	}
	resp.Body.Close()

	return nil
}
