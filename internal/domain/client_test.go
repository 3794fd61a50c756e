package domain

import "testing"

func TestClientValidate(t *testing.T) {
	c := NewClient("  Acme  ")
	if c.Name != "Acme" {
		t.Errorf("got name %q, want trimmed", c.Name)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	c.Name = "   "
	if err := c.Validate(); err == nil {
		t.Error("expected error for blank name")
	}
}

func TestPreferredEmailFallback(t *testing.T) {
	sendTo := "ap@acme.example"
	billing := "billing@acme.example"

	c := &Client{Name: "Acme", SendToEmail: &sendTo, BillingEmail: &billing}
	if got := c.PreferredEmail(); got != sendTo {
		t.Errorf("got %q, want send-to address", got)
	}

	c.SendToEmail = nil
	if got := c.PreferredEmail(); got != billing {
		t.Errorf("got %q, want billing address", got)
	}

	c.BillingEmail = nil
	if got := c.PreferredEmail(); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestOptionalStringBlankIsNil(t *testing.T) {
	if OptionalString("   ") != nil {
		t.Error("blank string should normalize to nil")
	}
	if got := OptionalString(" x "); got == nil || *got != "x" {
		t.Errorf("got %v, want trimmed value", got)
	}
}
