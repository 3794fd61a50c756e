package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Months are the calendar month names used on the retainer form and in the
// dispatch payloads. Order matters for period arithmetic.
var Months = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthIndex returns the zero-based index of a month name, or an error for
// an unknown name.
func MonthIndex(month string) (int, error) {
	for i, m := range Months {
		if m == month {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown month %q", month)
}

// BillingPeriod derives the billing period for a retainer period: the
// calendar month immediately before it, wrapping January back to December of
// the previous year.
func BillingPeriod(retainerMonth string, retainerYear int) (string, int, error) {
	idx, err := MonthIndex(retainerMonth)
	if err != nil {
		return "", 0, err
	}
	if idx == 0 {
		return Months[len(Months)-1], retainerYear - 1, nil
	}
	return Months[idx-1], retainerYear, nil
}

// NextPeriod returns the calendar month after the given one, wrapping
// December forward into January of the next year.
func NextPeriod(monthIndex, year int) (string, int) {
	if monthIndex >= len(Months)-1 {
		return Months[0], year + 1
	}
	return Months[monthIndex+1], year
}

// RetainerDescription renders the templated description for a retainer
// period. It is pure: re-rendering after a month or year edit replaces the
// previous text wholesale.
func RetainerDescription(month string, year int) string {
	return fmt.Sprintf(`Monthly Retainer for the month of %s, %d

Projected Scope of Work:
• Post production for event videos
• On-going Consultations and Planning
• Workload rollover from previous month`, month, year)
}

// ExpenseItem is one reimbursable line on an hourly invoice.
type ExpenseItem struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// Blank reports whether the row carries no information at all.
func (e ExpenseItem) Blank() bool {
	return strings.TrimSpace(e.Description) == "" && e.Amount == 0
}

// HourlyInvoice is the payload for the hourly-billing renderer.
type HourlyInvoice struct {
	Week1Hours         float64       `json:"week1Hours"`
	Week2Hours         float64       `json:"week2Hours"`
	ProjectDescription string        `json:"projectDescription"`
	SendTo             string        `json:"sendTo"`
	Expenses           []ExpenseItem `json:"expenses"`
}

// Validate returns an error if the invoice is invalid
func (i *HourlyInvoice) Validate() error {
	if strings.TrimSpace(i.SendTo) == "" {
		return errors.New("recipient email is required")
	}
	if i.Week1Hours < 0 || i.Week2Hours < 0 {
		return errors.New("week hours cannot be negative")
	}
	for _, e := range i.Expenses {
		if e.Amount < 0 {
			return errors.New("expense amount cannot be negative")
		}
	}
	return nil
}

// NormalizeExpenses drops rows that are entirely blank while guaranteeing at
// least one entry survives: the downstream renderer requires a non-empty
// expenses array, so an all-blank list collapses to a single empty row.
func NormalizeExpenses(items []ExpenseItem) []ExpenseItem {
	kept := make([]ExpenseItem, 0, len(items))
	for _, e := range items {
		if e.Blank() {
			continue
		}
		e.Description = strings.TrimSpace(e.Description)
		kept = append(kept, e)
	}
	if len(kept) == 0 {
		kept = append(kept, ExpenseItem{})
	}
	return kept
}

// RetainerInvoice is the payload for the flat-retainer renderer. The invoice
// period is the retainer month; the billing period always trails it by one
// calendar month.
type RetainerInvoice struct {
	InvoiceMonth string `json:"invoiceMonth"`
	InvoiceYear  int    `json:"invoiceYear"`
	BillingMonth string `json:"billingMonth"`
	BillingYear  int    `json:"billingYear"`
	SubmitDate   string `json:"submitDate"`
	Description  string `json:"description"`
	SendTo       string `json:"sendTo"`
}

// Validate returns an error if the invoice is invalid
func (i *RetainerInvoice) Validate() error {
	if strings.TrimSpace(i.SendTo) == "" {
		return errors.New("recipient email is required")
	}
	if _, err := MonthIndex(i.InvoiceMonth); err != nil {
		return err
	}
	wantMonth, wantYear, err := BillingPeriod(i.InvoiceMonth, i.InvoiceYear)
	if err != nil {
		return err
	}
	if i.BillingMonth != wantMonth || i.BillingYear != wantYear {
		return errors.New("billing period must precede the retainer period by one month")
	}
	return nil
}
