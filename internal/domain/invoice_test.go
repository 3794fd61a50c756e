package domain

import (
	"strings"
	"testing"
)

func TestBillingPeriodJanuaryWrapsToPreviousDecember(t *testing.T) {
	month, year, err := BillingPeriod("January", 2026)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if month != "December" || year != 2025 {
		t.Errorf("got %s %d, want December 2025", month, year)
	}
}

func TestBillingPeriodMidYear(t *testing.T) {
	month, year, err := BillingPeriod("June", 2026)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if month != "May" || year != 2026 {
		t.Errorf("got %s %d, want May 2026", month, year)
	}
}

func TestBillingPeriodUnknownMonth(t *testing.T) {
	if _, _, err := BillingPeriod("Juneuary", 2026); err == nil {
		t.Error("expected error for unknown month")
	}
}

func TestNextPeriodDecemberWrapsToNextJanuary(t *testing.T) {
	month, year := NextPeriod(11, 2025)
	if month != "January" || year != 2026 {
		t.Errorf("got %s %d, want January 2026", month, year)
	}

	month, year = NextPeriod(4, 2025)
	if month != "June" || year != 2025 {
		t.Errorf("got %s %d, want June 2025", month, year)
	}
}

func TestNormalizeExpensesSynthesizesEmptyRow(t *testing.T) {
	got := NormalizeExpenses(nil)
	if len(got) != 1 {
		t.Fatalf("got %d entries, want 1", len(got))
	}
	if got[0].Description != "" || got[0].Amount != 0 {
		t.Errorf("got %+v, want empty row", got[0])
	}
}

func TestNormalizeExpensesDropsBlankRows(t *testing.T) {
	got := NormalizeExpenses([]ExpenseItem{
		{Description: "", Amount: 0},
		{Description: "Travel", Amount: 12.5},
	})
	if len(got) != 1 {
		t.Fatalf("got %d entries, want 1", len(got))
	}
	if got[0].Description != "Travel" || got[0].Amount != 12.5 {
		t.Errorf("got %+v, want {Travel 12.5}", got[0])
	}
}

func TestNormalizeExpensesAllBlankCollapsesToOne(t *testing.T) {
	got := NormalizeExpenses([]ExpenseItem{{}, {}, {Description: "   "}})
	if len(got) != 1 || !got[0].Blank() {
		t.Errorf("got %+v, want one blank row", got)
	}
}

func TestRetainerDescriptionMentionsPeriod(t *testing.T) {
	desc := RetainerDescription("March", 2026)
	if !strings.Contains(desc, "Monthly Retainer for the month of March, 2026") {
		t.Errorf("description missing period line: %q", desc)
	}
	// Re-rendering is idempotent
	if desc != RetainerDescription("March", 2026) {
		t.Error("description render is not stable")
	}
}

func TestRetainerInvoiceValidateChecksPeriodPairing(t *testing.T) {
	inv := &RetainerInvoice{
		InvoiceMonth: "January",
		InvoiceYear:  2026,
		BillingMonth: "December",
		BillingYear:  2025,
		SendTo:       "billing@example.com",
	}
	if err := inv.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	inv.BillingYear = 2026
	if err := inv.Validate(); err == nil {
		t.Error("expected error for mismatched billing year")
	}
}

func TestHourlyInvoiceValidateRequiresRecipient(t *testing.T) {
	inv := &HourlyInvoice{Week1Hours: 40, Week2Hours: 40, SendTo: "  "}
	if err := inv.Validate(); err == nil {
		t.Error("expected error for blank recipient")
	}
}
