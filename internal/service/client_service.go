package service

import (
	"context"
	"errors"
	"strings"

	"github.com/samber/lo"

	"github.com/elevatemedia/invoicer/internal/domain"
	"github.com/elevatemedia/invoicer/internal/recordstore"
)

var ErrNameRequired = errors.New("client name is required")

// NewClientForm is the editable state of the client intake form. Only the
// name is required; every other field persists as null when left blank.
type NewClientForm struct {
	Name                string
	BillingContactName  string
	BillingEmail        string
	BillingPhone        string
	BillingAddressLine1 string
	BillingAddressLine2 string
	BillingCity         string
	BillingState        string
	BillingZip          string
	SendToName          string
	SendToEmail         string
	DefaultRate         float64
	PaymentTerms        string
	Notes               string
}

// ClientService manages client records in the hosted store
type ClientService interface {
	// CreateClient saves a new client from the intake form
	CreateClient(ctx context.Context, form NewClientForm) (*domain.Client, error)

	// GetClient retrieves a client by ID
	GetClient(ctx context.Context, id string) (*domain.Client, error)

	// ListRecurring lists the clients that belong on the dashboard
	ListRecurring(ctx context.Context) ([]*domain.Client, error)

	// ListAll lists every client in the store
	ListAll(ctx context.Context) ([]*domain.Client, error)

	// UpdateClient applies a partial update to a client record
	UpdateClient(ctx context.Context, id string, fields map[string]any) (*domain.Client, error)

	// DeleteClient removes a client record
	DeleteClient(ctx context.Context, id string) error
}

type clientService struct {
	store recordstore.Store
}

// NewClientService creates a new client service
func NewClientService(store recordstore.Store) ClientService {
	return &clientService{store: store}
}

func (s *clientService) CreateClient(ctx context.Context, form NewClientForm) (*domain.Client, error) {
	if strings.TrimSpace(form.Name) == "" {
		return nil, ErrNameRequired
	}

	client := domain.NewClient(form.Name)
	client.BillingContactName = domain.OptionalString(form.BillingContactName)
	client.BillingEmail = domain.OptionalString(form.BillingEmail)
	client.BillingPhone = domain.OptionalString(form.BillingPhone)
	client.BillingAddressLine1 = domain.OptionalString(form.BillingAddressLine1)
	client.BillingAddressLine2 = domain.OptionalString(form.BillingAddressLine2)
	client.BillingCity = domain.OptionalString(form.BillingCity)
	client.BillingState = domain.OptionalString(form.BillingState)
	client.BillingZip = domain.OptionalString(form.BillingZip)
	client.SendToName = domain.OptionalString(form.SendToName)
	client.SendToEmail = domain.OptionalString(form.SendToEmail)
	client.DefaultRate = domain.OptionalRate(form.DefaultRate)
	client.PaymentTerms = domain.OptionalString(form.PaymentTerms)
	client.Notes = domain.OptionalString(form.Notes)

	return s.store.CreateClient(ctx, client)
}

func (s *clientService) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	return s.store.GetClient(ctx, id)
}

func (s *clientService) ListRecurring(ctx context.Context) ([]*domain.Client, error) {
	clients, err := s.store.ListClients(ctx, recordstore.ClientFilter{
		InvoiceType: domain.InvoiceTypeRecurring,
	})
	if err != nil {
		return nil, err
	}

	return lo.Filter(clients, func(c *domain.Client, _ int) bool {
		return c.Recurring()
	}), nil
}

func (s *clientService) ListAll(ctx context.Context) ([]*domain.Client, error) {
	return s.store.ListClients(ctx, recordstore.ClientFilter{})
}

func (s *clientService) UpdateClient(ctx context.Context, id string, fields map[string]any) (*domain.Client, error) {
	return s.store.UpdateClient(ctx, id, fields)
}

func (s *clientService) DeleteClient(ctx context.Context, id string) error {
	return s.store.DeleteClient(ctx, id)
}
