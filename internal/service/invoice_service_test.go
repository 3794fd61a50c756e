package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elevatemedia/invoicer/internal/config"
	"github.com/elevatemedia/invoicer/internal/domain"
)

// mockDispatcher records dispatch calls without touching the network
type mockDispatcher struct {
	hourlyCalls   int
	retainerCalls int
	lastKey       string
	lastHourly    *domain.HourlyInvoice
	lastRetainer  *domain.RetainerInvoice
	err           error
}

func (m *mockDispatcher) SubmitHourly(ctx context.Context, endpointKey string, invoice *domain.HourlyInvoice) error {
	m.hourlyCalls++
	m.lastKey = endpointKey
	m.lastHourly = invoice
	return m.err
}

func (m *mockDispatcher) SubmitRetainer(ctx context.Context, endpointKey string, invoice *domain.RetainerInvoice) error {
	m.retainerCalls++
	m.lastKey = endpointKey
	m.lastRetainer = invoice
	return m.err
}

// mockSubmissionRepo captures history writes in memory
type mockSubmissionRepo struct {
	recorded []*domain.Submission
	err      error
}

func (m *mockSubmissionRepo) Record(ctx context.Context, sub *domain.Submission) error {
	m.recorded = append(m.recorded, sub)
	return m.err
}

func (m *mockSubmissionRepo) ListRecent(ctx context.Context, limit int) ([]*domain.Submission, error) {
	return m.recorded, nil
}

func (m *mockSubmissionRepo) ListByClient(ctx context.Context, clientName string) ([]*domain.Submission, error) {
	return m.recorded, nil
}

func (m *mockSubmissionRepo) DeleteAll(ctx context.Context) error {
	m.recorded = nil
	return nil
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Forms.DefaultWeekHours = 40
	return cfg
}

func strPtr(s string) *string { return &s }

func TestHourlyDefaults(t *testing.T) {
	svc := NewInvoiceService(testConfig(), &mockDispatcher{}, nil)

	client := domain.NewClient("Invisible Arts")
	client.SendToEmail = strPtr("billing@invisiblearts.com")

	form := svc.HourlyDefaults(client)
	assert.Equal(t, 40.0, form.Week1Hours)
	assert.Equal(t, 40.0, form.Week2Hours)
	assert.Equal(t, "billing@invisiblearts.com", form.SendTo)
	assert.Empty(t, form.ProjectDescription)
	require.Len(t, form.Expenses, 1)
	assert.True(t, form.Expenses[0].Blank())
}

func TestHourlyDefaultsFallsBackToBillingEmail(t *testing.T) {
	svc := NewInvoiceService(testConfig(), &mockDispatcher{}, nil)

	client := domain.NewClient("Invisible Arts")
	client.BillingEmail = strPtr("ap@invisiblearts.com")

	form := svc.HourlyDefaults(client)
	assert.Equal(t, "ap@invisiblearts.com", form.SendTo)
}

func TestRetainerDefaultsTargetNextMonth(t *testing.T) {
	cfg := testConfig()
	svc := NewInvoiceService(cfg, &mockDispatcher{}, nil)

	now := time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC)
	form := svc.RetainerDefaults(nil, now)

	assert.Equal(t, "July", form.RetainerMonth)
	assert.Equal(t, 2025, form.RetainerYear)
	assert.Equal(t, "2025-06-15", form.InvoiceDate)
	assert.Equal(t, cfg.Forms.RetainerRecipients, form.SendTo)
	assert.Contains(t, form.Description, "Monthly Retainer for the month of July, 2025")
}

func TestRetainerDefaultsDecemberWrapsToNextYear(t *testing.T) {
	svc := NewInvoiceService(testConfig(), &mockDispatcher{}, nil)

	now := time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)
	form := svc.RetainerDefaults(nil, now)

	assert.Equal(t, "January", form.RetainerMonth)
	assert.Equal(t, 2026, form.RetainerYear)
}

func TestBuildHourlyRequiresClient(t *testing.T) {
	svc := NewInvoiceService(testConfig(), &mockDispatcher{}, nil)

	form := svc.HourlyDefaults(nil)
	form.SendTo = "ap@example.com"

	_, err := svc.BuildHourly(form)
	assert.ErrorIs(t, err, ErrClientRequired)
}

func TestBuildHourlyRequiresRecipient(t *testing.T) {
	svc := NewInvoiceService(testConfig(), &mockDispatcher{}, nil)

	form := svc.HourlyDefaults(domain.NewClient("Invisible Arts"))
	form.SendTo = "   "

	_, err := svc.BuildHourly(form)
	assert.ErrorIs(t, err, ErrRecipientRequired)
}

func TestBuildHourlyNormalizesExpenses(t *testing.T) {
	svc := NewInvoiceService(testConfig(), &mockDispatcher{}, nil)

	form := svc.HourlyDefaults(domain.NewClient("Invisible Arts"))
	form.SendTo = "ap@example.com"
	form.Expenses = []domain.ExpenseItem{
		{},
		{Description: " Parking ", Amount: 24},
		{},
	}

	invoice, err := svc.BuildHourly(form)
	require.NoError(t, err)
	require.Len(t, invoice.Expenses, 1)
	assert.Equal(t, "Parking", invoice.Expenses[0].Description)
	assert.Equal(t, 24.0, invoice.Expenses[0].Amount)
}

func TestBuildRetainerDerivesBillingPeriod(t *testing.T) {
	svc := NewInvoiceService(testConfig(), &mockDispatcher{}, nil)

	invoice, err := svc.BuildRetainer(RetainerForm{
		SendTo:        "robin@touchahearthawaii.org",
		RetainerMonth: "January",
		RetainerYear:  2026,
		InvoiceDate:   "2025-12-20",
		Description:   domain.RetainerDescription("January", 2026),
	})
	require.NoError(t, err)
	assert.Equal(t, "December", invoice.BillingMonth)
	assert.Equal(t, 2025, invoice.BillingYear)
	assert.Equal(t, "2025-12-20", invoice.SubmitDate)
}

func TestBuildRetainerTrimsDescription(t *testing.T) {
	svc := NewInvoiceService(testConfig(), &mockDispatcher{}, nil)

	invoice, err := svc.BuildRetainer(RetainerForm{
		SendTo:        "robin@touchahearthawaii.org",
		RetainerMonth: "June",
		RetainerYear:  2025,
		Description:   "  Monthly Retainer for the month of June, 2025.  \n",
	})
	require.NoError(t, err)
	assert.Equal(t, "Monthly Retainer for the month of June, 2025.", invoice.Description)
}

func TestSubmitHourlyValidationStopsBeforeDispatch(t *testing.T) {
	dispatcher := &mockDispatcher{}
	repo := &mockSubmissionRepo{}
	svc := NewInvoiceService(testConfig(), dispatcher, repo)

	form := svc.HourlyDefaults(domain.NewClient("Invisible Arts"))
	form.SendTo = ""

	_, err := svc.SubmitHourly(context.Background(), form)
	assert.ErrorIs(t, err, ErrRecipientRequired)
	assert.Zero(t, dispatcher.hourlyCalls)
	assert.Empty(t, repo.recorded)
}

func TestSubmitHourlyWithoutClientNeverDispatches(t *testing.T) {
	cfg := testConfig()
	cfg.Forms.HourlyRecipients = "billing@example.com"
	dispatcher := &mockDispatcher{}
	svc := NewInvoiceService(cfg, dispatcher, nil)

	_, err := svc.SubmitHourly(context.Background(), svc.HourlyDefaults(nil))
	assert.ErrorIs(t, err, ErrClientRequired)
	assert.Zero(t, dispatcher.hourlyCalls)
}

func TestSubmitHourlyRecordsOutcome(t *testing.T) {
	cfg := testConfig()
	dispatcher := &mockDispatcher{}
	repo := &mockSubmissionRepo{}
	svc := NewInvoiceService(cfg, dispatcher, repo)

	form := svc.HourlyDefaults(domain.NewClient("Invisible Arts"))
	form.SendTo = "ap@example.com"

	sub, err := svc.SubmitHourly(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, 1, dispatcher.hourlyCalls)
	assert.Equal(t, cfg.Dispatch.HourlyEndpoint, dispatcher.lastKey)

	require.Len(t, repo.recorded, 1)
	assert.Equal(t, sub.ID, repo.recorded[0].ID)
	assert.NotEmpty(t, sub.ID)
	assert.Equal(t, "Invisible Arts", sub.ClientName)
	assert.Equal(t, domain.VariantHourly, sub.Variant)
	assert.True(t, sub.OK)
	assert.Empty(t, sub.Error)
}

func TestSubmitRetainerRecordsDispatchFailure(t *testing.T) {
	dispatcher := &mockDispatcher{err: errors.New("connection refused")}
	repo := &mockSubmissionRepo{}
	svc := NewInvoiceService(testConfig(), dispatcher, repo)

	form := svc.RetainerDefaults(nil, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))

	sub, err := svc.SubmitRetainer(context.Background(), form)
	require.Error(t, err)
	require.NotNil(t, sub)
	assert.False(t, sub.OK)
	assert.Equal(t, "connection refused", sub.Error)
	require.Len(t, repo.recorded, 1)
	assert.Equal(t, domain.VariantRetainer, repo.recorded[0].Variant)
}

func TestSubmitHourlyToleratesHistoryFailure(t *testing.T) {
	dispatcher := &mockDispatcher{}
	repo := &mockSubmissionRepo{err: errors.New("database is locked")}
	svc := NewInvoiceService(testConfig(), dispatcher, repo)

	form := svc.HourlyDefaults(domain.NewClient("Invisible Arts"))
	form.SendTo = "ap@example.com"

	_, err := svc.SubmitHourly(context.Background(), form)
	assert.NoError(t, err)
}
