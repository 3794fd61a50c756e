// Package recordstore is the access layer for the hosted client store, a
// PostgREST-style service holding the clients collection. It owns the wire
// conventions (auth headers, representation preference, filter query syntax)
// and the created_at/updated_at stamps, which are never taken from callers.
package recordstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/elevatemedia/invoicer/internal/domain"
)

// ErrNotFound is returned when a lookup matches no client record.
var ErrNotFound = errors.New("client not found")

// ServerError is a non-2xx response from the store. Message carries the
// server-provided text when the response body had one.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status code %d", e.StatusCode)
}

// ClientFilter narrows ListClients. The zero value returns all records.
type ClientFilter struct {
	InvoiceType string
}

// Store is the capability surface for client records.
type Store interface {
	ListClients(ctx context.Context, filter ClientFilter) ([]*domain.Client, error)
	GetClient(ctx context.Context, id string) (*domain.Client, error)
	CreateClient(ctx context.Context, client *domain.Client) (*domain.Client, error)
	UpdateClient(ctx context.Context, id string, fields map[string]any) (*domain.Client, error)
	DeleteClient(ctx context.Context, id string) error
}
