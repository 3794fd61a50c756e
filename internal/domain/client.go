package domain

import (
	"errors"
	"strings"
	"time"
)

// InvoiceTypeRecurring marks clients that appear on the recurring dashboard.
// Any other value is treated as non-recurring.
const InvoiceTypeRecurring = "recurring"

// Client is a record in the hosted client store. The ID is assigned by the
// store on insert and never changes. Optional fields are pointers so a blank
// field round-trips as an explicit null rather than an empty string.
type Client struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	InvoiceType string `json:"invoice_type"`

	BillingContactName  *string  `json:"billing_contact_name"`
	BillingEmail        *string  `json:"billing_email"`
	BillingPhone        *string  `json:"billing_phone"`
	BillingAddressLine1 *string  `json:"billing_address_line1"`
	BillingAddressLine2 *string  `json:"billing_address_line2"`
	BillingCity         *string  `json:"billing_city"`
	BillingState        *string  `json:"billing_state"`
	BillingZip          *string  `json:"billing_zip"`
	SendToName          *string  `json:"send_to_name"`
	SendToEmail         *string  `json:"send_to_email"`
	DefaultRate         *float64 `json:"default_rate"`
	PaymentTerms        *string  `json:"payment_terms"`
	Notes               *string  `json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewClient creates a new client with required fields
func NewClient(name string) *Client {
	return &Client{
		Name:        strings.TrimSpace(name),
		InvoiceType: InvoiceTypeRecurring,
	}
}

// Validate returns an error if the client is invalid
func (c *Client) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("client name is required")
	}
	if c.DefaultRate != nil && *c.DefaultRate < 0 {
		return errors.New("default rate cannot be negative")
	}
	return nil
}

// Recurring reports whether the client belongs on the recurring dashboard.
func (c *Client) Recurring() bool {
	return c.InvoiceType == InvoiceTypeRecurring
}

// PreferredEmail returns the send-to address, falling back to the billing
// address. Empty when neither is set.
func (c *Client) PreferredEmail() string {
	if c.SendToEmail != nil && *c.SendToEmail != "" {
		return *c.SendToEmail
	}
	if c.BillingEmail != nil && *c.BillingEmail != "" {
		return *c.BillingEmail
	}
	return ""
}

// OptionalString trims s and returns nil for a blank value, so form fields
// persist as explicit nulls instead of empty strings.
func OptionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// OptionalRate returns nil for a zero rate.
func OptionalRate(f float64) *float64 {
	if f == 0 {
		return nil
	}
	return &f
}
