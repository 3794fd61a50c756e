package recordstore

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elevatemedia/invoicer/internal/domain"
)

const testKey = "test-api-key"

func newTestStore(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, testKey)
}

func TestListClientsQueryAndHeaders(t *testing.T) {
	var gotReq *http.Request
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		gotReq = r.Clone(context.Background())
		w.Write([]byte(`[]`))
	})

	_, err := store.ListClients(context.Background(), ClientFilter{InvoiceType: "recurring"})
	require.NoError(t, err)

	require.NotNil(t, gotReq)
	assert.Equal(t, "/rest/v1/clients", gotReq.URL.Path)

	q := gotReq.URL.Query()
	assert.Equal(t, "*", q.Get("select"))
	assert.Equal(t, "name.asc", q.Get("order"))
	assert.Equal(t, "eq.recurring", q.Get("invoice_type"))

	assert.Equal(t, testKey, gotReq.Header.Get("apikey"))
	assert.Equal(t, "Bearer "+testKey, gotReq.Header.Get("Authorization"))
	assert.Equal(t, "application/json", gotReq.Header.Get("Content-Type"))
	assert.Equal(t, "return=representation", gotReq.Header.Get("Prefer"))
}

func TestListClientsNoFilterOmitsInvoiceType(t *testing.T) {
	var query string
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		w.Write([]byte(`[]`))
	})

	clients, err := store.ListClients(context.Background(), ClientFilter{})
	require.NoError(t, err)
	assert.Empty(t, clients)
	assert.NotContains(t, query, "invoice_type")
}

func TestGetClientIdempotent(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "eq.abc-123", r.URL.Query().Get("id"))
		w.Write([]byte(`[{"id":"abc-123","name":"Acme","invoice_type":"recurring","send_to_email":"ap@acme.example"}]`))
	})

	first, err := store.GetClient(context.Background(), "abc-123")
	require.NoError(t, err)
	second, err := store.GetClient(context.Background(), "abc-123")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "Acme", first.Name)
	require.NotNil(t, first.SendToEmail)
	assert.Equal(t, "ap@acme.example", *first.SendToEmail)
}

func TestGetClientEmptyResultIsNotFound(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	_, err := store.GetClient(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateClientStampsTimestampsAndNulls(t *testing.T) {
	var body map[string]json.RawMessage
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		data, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(data, &body))
		w.Write([]byte(`[{"id":"new-1","name":"Acme","invoice_type":"recurring"}]`))
	})

	created, err := store.CreateClient(context.Background(), domain.NewClient("Acme"))
	require.NoError(t, err)
	assert.Equal(t, "new-1", created.ID)

	assert.JSONEq(t, `"Acme"`, string(body["name"]))
	assert.NotEmpty(t, body["created_at"])
	assert.NotEmpty(t, body["updated_at"])

	// Unset optionals travel as explicit nulls, never empty strings.
	for _, field := range []string{
		"billing_contact_name", "billing_email", "billing_phone",
		"billing_address_line1", "billing_address_line2", "billing_city",
		"billing_state", "billing_zip", "send_to_name", "send_to_email",
		"default_rate", "payment_terms", "notes",
	} {
		raw, ok := body[field]
		require.True(t, ok, "field %s missing from insert body", field)
		assert.Equal(t, "null", string(raw), "field %s", field)
	}
}

func TestCreateClientServerMessageSurfacesVerbatim(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"duplicate name"}`))
	})

	_, err := store.CreateClient(context.Background(), domain.NewClient("Acme"))
	require.Error(t, err)
	assert.Equal(t, "duplicate name", err.Error())

	var serverErr *ServerError
	require.True(t, errors.As(err, &serverErr))
	assert.Equal(t, http.StatusConflict, serverErr.StatusCode)
}

func TestServerErrorWithoutMessageUsesStatusCode(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := store.GetClient(context.Background(), "abc")
	require.Error(t, err)
	assert.Equal(t, "request failed with status code 502", err.Error())
}

func TestUpdateClientRefreshesUpdatedAtOnly(t *testing.T) {
	var body map[string]json.RawMessage
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "eq.abc-123", r.URL.Query().Get("id"))
		data, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(data, &body))
		w.Write([]byte(`[{"id":"abc-123","name":"Acme Media","invoice_type":"recurring"}]`))
	})

	updated, err := store.UpdateClient(context.Background(), "abc-123", map[string]any{
		"name":       "Acme Media",
		"id":         "evil-overwrite",
		"created_at": "1999-01-01T00:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Media", updated.Name)

	assert.NotContains(t, body, "id")
	assert.NotContains(t, body, "created_at")
	assert.NotEmpty(t, body["updated_at"])
}

func TestDeleteClientToleratesEmptyBody(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})

	err := store.DeleteClient(context.Background(), "abc-123")
	assert.NoError(t, err)
}
