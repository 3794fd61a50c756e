package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elevatemedia/invoicer/internal/domain"
	"github.com/elevatemedia/invoicer/internal/recordstore"
)

// mockStore is an in-memory stand-in for the hosted client store
type mockStore struct {
	clients     []*domain.Client
	created     *domain.Client
	listFilters []recordstore.ClientFilter
	err         error
}

func (m *mockStore) ListClients(ctx context.Context, filter recordstore.ClientFilter) ([]*domain.Client, error) {
	m.listFilters = append(m.listFilters, filter)
	if m.err != nil {
		return nil, m.err
	}
	if filter.InvoiceType == "" {
		return m.clients, nil
	}
	var out []*domain.Client
	for _, c := range m.clients {
		if c.InvoiceType == filter.InvoiceType {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockStore) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	for _, c := range m.clients {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, recordstore.ErrNotFound
}

func (m *mockStore) CreateClient(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.created = client
	client.ID = "generated-id"
	return client, nil
}

func (m *mockStore) UpdateClient(ctx context.Context, id string, fields map[string]any) (*domain.Client, error) {
	return nil, recordstore.ErrNotFound
}

func (m *mockStore) DeleteClient(ctx context.Context, id string) error {
	return nil
}

func TestCreateClientRequiresName(t *testing.T) {
	store := &mockStore{}
	svc := NewClientService(store)

	_, err := svc.CreateClient(context.Background(), NewClientForm{Name: "   "})
	assert.ErrorIs(t, err, ErrNameRequired)
	assert.Nil(t, store.created)
}

func TestCreateClientBlankFieldsBecomeNull(t *testing.T) {
	store := &mockStore{}
	svc := NewClientService(store)

	client, err := svc.CreateClient(context.Background(), NewClientForm{
		Name:         "  Acme Media  ",
		BillingEmail: "ap@acme.com",
		BillingPhone: "   ",
	})
	require.NoError(t, err)

	assert.Equal(t, "Acme Media", client.Name)
	assert.Equal(t, domain.InvoiceTypeRecurring, client.InvoiceType)
	require.NotNil(t, client.BillingEmail)
	assert.Equal(t, "ap@acme.com", *client.BillingEmail)
	assert.Nil(t, client.BillingPhone)
	assert.Nil(t, client.SendToEmail)
	assert.Nil(t, client.DefaultRate)
	assert.Nil(t, client.Notes)
}

func TestListRecurringFiltersAtTheStore(t *testing.T) {
	store := &mockStore{clients: []*domain.Client{
		{ID: "1", Name: "Invisible Arts", InvoiceType: domain.InvoiceTypeRecurring},
		{ID: "2", Name: "One Off Films", InvoiceType: "one-time"},
	}}
	svc := NewClientService(store)

	clients, err := svc.ListRecurring(context.Background())
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "Invisible Arts", clients[0].Name)

	require.Len(t, store.listFilters, 1)
	assert.Equal(t, domain.InvoiceTypeRecurring, store.listFilters[0].InvoiceType)
}
