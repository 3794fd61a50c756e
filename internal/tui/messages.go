package tui

import "github.com/elevatemedia/invoicer/internal/domain"

// SwitchScreenMsg requests a screen change
type SwitchScreenMsg struct {
	Screen Screen
}

// RefreshDataMsg requests data refresh
type RefreshDataMsg struct{}

// ErrorMsg carries error information
type ErrorMsg struct {
	Err error
}

// OpenInvoiceFormMsg opens the invoice form routed for a client
type OpenInvoiceFormMsg struct {
	Client  *domain.Client
	Variant domain.FormVariant
}

// OpenNewClientFormMsg opens the client intake form
type OpenNewClientFormMsg struct{}
