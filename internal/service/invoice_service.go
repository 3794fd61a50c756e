package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/elevatemedia/invoicer/internal/config"
	"github.com/elevatemedia/invoicer/internal/dispatch"
	"github.com/elevatemedia/invoicer/internal/domain"
	"github.com/elevatemedia/invoicer/internal/repository"
)

var (
	ErrClientRequired    = errors.New("a client is required")
	ErrRecipientRequired = errors.New("recipient email is required")
	ErrMonthRequired     = errors.New("invoice month is required")
)

// dateLayout is the calendar-date format used on the retainer form.
const dateLayout = "2006-01-02"

// HourlyForm is the editable state of the hourly invoice form.
type HourlyForm struct {
	Client             *domain.Client
	SendTo             string
	Week1Hours         float64
	Week2Hours         float64
	ProjectDescription string
	Expenses           []domain.ExpenseItem
}

// RetainerForm is the editable state of the retainer invoice form. The
// billing period is never edited directly; it is derived from the retainer
// month at build time.
type RetainerForm struct {
	Client        *domain.Client
	SendTo        string
	RetainerMonth string
	RetainerYear  int
	InvoiceDate   string
	Description   string
}

// InvoiceService prepares, validates, and dispatches the two invoice forms,
// logging every dispatch outcome to the local history.
type InvoiceService interface {
	// HourlyDefaults returns a fresh hourly form pre-filled for a client
	HourlyDefaults(client *domain.Client) HourlyForm

	// RetainerDefaults returns a fresh retainer form for the period after now
	RetainerDefaults(client *domain.Client, now time.Time) RetainerForm

	// BuildHourly validates a form and assembles the dispatch payload
	BuildHourly(form HourlyForm) (*domain.HourlyInvoice, error)

	// BuildRetainer validates a form and assembles the dispatch payload
	BuildRetainer(form RetainerForm) (*domain.RetainerInvoice, error)

	// SubmitHourly builds and dispatches an hourly invoice
	SubmitHourly(ctx context.Context, form HourlyForm) (*domain.Submission, error)

	// SubmitRetainer builds and dispatches a retainer invoice
	SubmitRetainer(ctx context.Context, form RetainerForm) (*domain.Submission, error)
}

type invoiceService struct {
	cfg         *config.Config
	dispatcher  dispatch.Dispatcher
	submissions repository.SubmissionRepository
}

// NewInvoiceService creates a new invoice service. submissions may be nil
// when history logging is unavailable.
func NewInvoiceService(
	cfg *config.Config,
	dispatcher dispatch.Dispatcher,
	submissions repository.SubmissionRepository,
) InvoiceService {
	return &invoiceService{
		cfg:         cfg,
		dispatcher:  dispatcher,
		submissions: submissions,
	}
}

func (s *invoiceService) HourlyDefaults(client *domain.Client) HourlyForm {
	sendTo := s.cfg.Forms.HourlyRecipients
	if client != nil && client.PreferredEmail() != "" {
		sendTo = client.PreferredEmail()
	}

	return HourlyForm{
		Client:     client,
		SendTo:     sendTo,
		Week1Hours: s.cfg.Forms.DefaultWeekHours,
		Week2Hours: s.cfg.Forms.DefaultWeekHours,
		Expenses:   []domain.ExpenseItem{{}},
	}
}

func (s *invoiceService) RetainerDefaults(client *domain.Client, now time.Time) RetainerForm {
	// Invoices go out for the month ahead of the current one
	month, year := domain.NextPeriod(int(now.Month())-1, now.Year())

	sendTo := s.cfg.Forms.RetainerRecipients
	if client != nil && client.PreferredEmail() != "" {
		sendTo = client.PreferredEmail()
	}

	return RetainerForm{
		Client:        client,
		SendTo:        sendTo,
		RetainerMonth: month,
		RetainerYear:  year,
		InvoiceDate:   now.Format(dateLayout),
		Description:   domain.RetainerDescription(month, year),
	}
}

func (s *invoiceService) BuildHourly(form HourlyForm) (*domain.HourlyInvoice, error) {
	if form.Client == nil {
		return nil, ErrClientRequired
	}

	sendTo := strings.TrimSpace(form.SendTo)
	if sendTo == "" {
		return nil, ErrRecipientRequired
	}

	invoice := &domain.HourlyInvoice{
		Week1Hours:         form.Week1Hours,
		Week2Hours:         form.Week2Hours,
		ProjectDescription: strings.TrimSpace(form.ProjectDescription),
		SendTo:             sendTo,
		Expenses:           domain.NormalizeExpenses(form.Expenses),
	}
	if err := invoice.Validate(); err != nil {
		return nil, err
	}

	return invoice, nil
}

func (s *invoiceService) BuildRetainer(form RetainerForm) (*domain.RetainerInvoice, error) {
	sendTo := strings.TrimSpace(form.SendTo)
	if sendTo == "" {
		return nil, ErrRecipientRequired
	}
	if strings.TrimSpace(form.RetainerMonth) == "" {
		return nil, ErrMonthRequired
	}

	billingMonth, billingYear, err := domain.BillingPeriod(form.RetainerMonth, form.RetainerYear)
	if err != nil {
		return nil, err
	}

	submitDate := strings.TrimSpace(form.InvoiceDate)
	if submitDate == "" {
		submitDate = time.Now().Format(dateLayout)
	}

	invoice := &domain.RetainerInvoice{
		InvoiceMonth: form.RetainerMonth,
		InvoiceYear:  form.RetainerYear,
		BillingMonth: billingMonth,
		BillingYear:  billingYear,
		SubmitDate:   submitDate,
		Description:  strings.TrimSpace(form.Description),
		SendTo:       sendTo,
	}
	if err := invoice.Validate(); err != nil {
		return nil, err
	}

	return invoice, nil
}

func (s *invoiceService) SubmitHourly(ctx context.Context, form HourlyForm) (*domain.Submission, error) {
	invoice, err := s.BuildHourly(form)
	if err != nil {
		return nil, err
	}

	dispatchErr := s.dispatcher.SubmitHourly(ctx, s.cfg.Dispatch.HourlyEndpoint, invoice)
	sub := s.record(ctx, form.Client, domain.VariantHourly, s.cfg.Dispatch.HourlyEndpoint, invoice.SendTo, dispatchErr)
	if dispatchErr != nil {
		return sub, dispatchErr
	}

	return sub, nil
}

func (s *invoiceService) SubmitRetainer(ctx context.Context, form RetainerForm) (*domain.Submission, error) {
	invoice, err := s.BuildRetainer(form)
	if err != nil {
		return nil, err
	}

	dispatchErr := s.dispatcher.SubmitRetainer(ctx, s.cfg.Dispatch.RetainerEndpoint, invoice)
	sub := s.record(ctx, form.Client, domain.VariantRetainer, s.cfg.Dispatch.RetainerEndpoint, invoice.SendTo, dispatchErr)
	if dispatchErr != nil {
		return sub, dispatchErr
	}

	return sub, nil
}

// record writes the dispatch outcome to the history log. Logging failures
// never surface to the caller; the invoice has already gone out.
func (s *invoiceService) record(
	ctx context.Context,
	client *domain.Client,
	variant domain.FormVariant,
	endpoint, recipient string,
	dispatchErr error,
) *domain.Submission {
	clientName := ""
	if client != nil {
		clientName = client.Name
	}

	sub := &domain.Submission{
		ID:          uuid.NewString(),
		ClientName:  clientName,
		Variant:     variant,
		Endpoint:    endpoint,
		Recipient:   recipient,
		SubmittedAt: time.Now().UTC(),
		OK:          dispatchErr == nil,
	}
	if dispatchErr != nil {
		sub.Error = dispatchErr.Error()
	}

	if s.submissions != nil {
		_ = s.submissions.Record(ctx, sub)
	}

	return sub
}
