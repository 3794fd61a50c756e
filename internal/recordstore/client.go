package recordstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/elevatemedia/invoicer/internal/domain"
)

const clientsPath = "/rest/v1/clients"

// Client talks to the hosted store over its REST surface. The API key is
// sent both as the apikey header and as the bearer token; the store expects
// the same value in both places.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a store client for the given base URL and API key.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: http.DefaultClient,
	}
}

// request performs one call against the clients collection and returns the
// raw response body. An empty body is not an error: delete and some update
// responses legitimately carry no data.
func (c *Client) request(ctx context.Context, method string, query url.Values, body any) ([]byte, error) {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	endpoint := c.baseURL + clientsPath
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("record store request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		serverErr := &ServerError{StatusCode: resp.StatusCode}
		var detail struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &detail) == nil {
			serverErr.Message = detail.Message
		}
		return nil, serverErr
	}

	return data, nil
}

// decodeRows parses a representation response into client records.
func decodeRows(data []byte) ([]*domain.Client, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var rows []*domain.Client
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return rows, nil
}

// ListClients returns all clients ordered by name ascending, optionally
// filtered by invoice type.
func (c *Client) ListClients(ctx context.Context, filter ClientFilter) ([]*domain.Client, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("order", "name.asc")
	if filter.InvoiceType != "" {
		query.Set("invoice_type", "eq."+filter.InvoiceType)
	}

	data, err := c.request(ctx, http.MethodGet, query, nil)
	if err != nil {
		return nil, err
	}

	rows, err := decodeRows(data)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = make([]*domain.Client, 0)
	}
	return rows, nil
}

// GetClient retrieves a single client by ID
func (c *Client) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	query := url.Values{}
	query.Set("id", "eq."+id)
	query.Set("select", "*")

	data, err := c.request(ctx, http.MethodGet, query, nil)
	if err != nil {
		return nil, err
	}

	rows, err := decodeRows(data)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows[0], nil
}

// CreateClient inserts a new record. Both timestamps are stamped here;
// whatever the caller set on the struct is ignored.
func (c *Client) CreateClient(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	if err := client.Validate(); err != nil {
		return nil, fmt.Errorf("invalid client: %w", err)
	}

	body := clientBody(client)
	now := time.Now().UTC().Format(time.RFC3339)
	body["created_at"] = now
	body["updated_at"] = now

	data, err := c.request(ctx, http.MethodPost, nil, body)
	if err != nil {
		return nil, err
	}

	rows, err := decodeRows(data)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("create returned no rows")
	}
	return rows[0], nil
}

// UpdateClient patches the given fields on a record and refreshes
// updated_at. The id and created_at can never be written through here.
func (c *Client) UpdateClient(ctx context.Context, id string, fields map[string]any) (*domain.Client, error) {
	body := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		body[k] = v
	}
	delete(body, "id")
	delete(body, "created_at")
	body["updated_at"] = time.Now().UTC().Format(time.RFC3339)

	query := url.Values{}
	query.Set("id", "eq."+id)

	data, err := c.request(ctx, http.MethodPatch, query, body)
	if err != nil {
		return nil, err
	}

	rows, err := decodeRows(data)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows[0], nil
}

// DeleteClient removes a record. No response body is expected.
func (c *Client) DeleteClient(ctx context.Context, id string) error {
	query := url.Values{}
	query.Set("id", "eq."+id)

	if _, err := c.request(ctx, http.MethodDelete, query, nil); err != nil {
		return err
	}
	return nil
}

// clientBody builds the wire representation of a record. Every optional
// field is present so blanks persist as explicit nulls, letting downstream
// consumers tell "not set" from "unchanged".
func clientBody(client *domain.Client) map[string]any {
	return map[string]any{
		"name":                  client.Name,
		"invoice_type":          client.InvoiceType,
		"billing_contact_name":  client.BillingContactName,
		"billing_email":         client.BillingEmail,
		"billing_phone":         client.BillingPhone,
		"billing_address_line1": client.BillingAddressLine1,
		"billing_address_line2": client.BillingAddressLine2,
		"billing_city":          client.BillingCity,
		"billing_state":         client.BillingState,
		"billing_zip":           client.BillingZip,
		"send_to_name":          client.SendToName,
		"send_to_email":         client.SendToEmail,
		"default_rate":          client.DefaultRate,
		"payment_terms":         client.PaymentTerms,
		"notes":                 client.Notes,
	}
}
