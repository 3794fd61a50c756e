package dispatch

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elevatemedia/invoicer/internal/domain"
)

func hourlyInvoice() *domain.HourlyInvoice {
	return &domain.HourlyInvoice{
		Week1Hours:         40,
		Week2Hours:         38.5,
		ProjectDescription: "Campaign edits",
		SendTo:             "ap@client.example",
		Expenses:           []domain.ExpenseItem{{Description: "Travel", Amount: 12.5}},
	}
}

func retainerInvoice() *domain.RetainerInvoice {
	return &domain.RetainerInvoice{
		InvoiceMonth: "June",
		InvoiceYear:  2026,
		BillingMonth: "May",
		BillingYear:  2026,
		SubmitDate:   "2026-05-20",
		Description:  domain.RetainerDescription("June", 2026),
		SendTo:       "robin@client.example",
	}
}

func TestSubmitHourlySendsPlainTextJSON(t *testing.T) {
	var contentType string
	var body []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		body, _ = io.ReadAll(r.Body)
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	d := NewWebhookDispatcher(map[string]string{"invisible-arts": srv.URL})
	err := d.SubmitHourly(context.Background(), "invisible-arts", hourlyInvoice())
	require.NoError(t, err)

	assert.Equal(t, "text/plain", contentType)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, 40.0, decoded["week1Hours"])
	assert.Equal(t, "ap@client.example", decoded["sendTo"])
	assert.Len(t, decoded["expenses"], 1)
}

// The hourly endpoint's status code is deliberately not inspected: the
// remote renderer reports success or failure by email. A 500 therefore
// still counts as a completed submission.
func TestSubmitHourlyTreatsServerErrorAsSubmitted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer srv.Close()

	d := NewWebhookDispatcher(map[string]string{"invisible-arts": srv.URL})
	err := d.SubmitHourly(context.Background(), "invisible-arts", hourlyInvoice())
	assert.NoError(t, err)
}

func TestSubmitHourlyUnknownEndpointFailsBeforeNetwork(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	d := NewWebhookDispatcher(map[string]string{"invisible-arts": srv.URL})
	err := d.SubmitHourly(context.Background(), "no-such-client", hourlyInvoice())
	require.Error(t, err)
	assert.False(t, called)
}

func TestSubmitRetainerSendsJSONAndIgnoresResponse(t *testing.T) {
	var contentType string
	var body []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"ignored"}`))
	}))
	defer srv.Close()

	d := NewWebhookDispatcher(map[string]string{"touch-a-heart": srv.URL})
	err := d.SubmitRetainer(context.Background(), "touch-a-heart", retainerInvoice())
	require.NoError(t, err)

	assert.Equal(t, "application/json", contentType)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, "June", decoded["invoiceMonth"])
	assert.Equal(t, "May", decoded["billingMonth"])
	assert.Equal(t, 2026.0, decoded["billingYear"])
	assert.Equal(t, "2026-05-20", decoded["submitDate"])
}

func TestSubmitRetainerTransportErrorFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	d := NewWebhookDispatcher(map[string]string{"touch-a-heart": srv.URL})
	err := d.SubmitRetainer(context.Background(), "touch-a-heart", retainerInvoice())
	assert.Error(t, err)
}
