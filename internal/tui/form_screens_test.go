package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elevatemedia/invoicer/internal/app"
	"github.com/elevatemedia/invoicer/internal/config"
	"github.com/elevatemedia/invoicer/internal/domain"
	"github.com/elevatemedia/invoicer/internal/service"
)

// countingDispatcher stands in for the webhook dispatcher and records calls
type countingDispatcher struct {
	calls int
}

func (d *countingDispatcher) SubmitHourly(ctx context.Context, endpointKey string, invoice *domain.HourlyInvoice) error {
	d.calls++
	return nil
}

func (d *countingDispatcher) SubmitRetainer(ctx context.Context, endpointKey string, invoice *domain.RetainerInvoice) error {
	d.calls++
	return nil
}

func newFormTestApp(dispatcher *countingDispatcher) *app.App {
	cfg := config.DefaultConfig()
	return &app.App{
		Config:   cfg,
		Invoices: service.NewInvoiceService(cfg, dispatcher, nil),
	}
}

func readyHourlyModel(t *testing.T, a *app.App) *HourlyModel {
	t.Helper()
	m := NewHourlyModel(a, domain.NewClient("Invisible Arts")).(*HourlyModel)
	updated, _ := m.Update(m.Init()())
	hm := updated.(*HourlyModel)
	require.Equal(t, hourlyStateReady, hm.state)
	return hm
}

func TestHourlySubmitEmptyRecipientStaysReady(t *testing.T) {
	dispatcher := &countingDispatcher{}
	m := readyHourlyModel(t, newFormTestApp(dispatcher))

	m.fields[hourlyFieldSendTo].SetValue("   ")
	cmd := m.submit()

	assert.Nil(t, cmd)
	assert.Equal(t, hourlyStateReady, m.state)
	assert.ErrorIs(t, m.err, service.ErrRecipientRequired)
	assert.Zero(t, dispatcher.calls)
}

func TestHourlyFormBlocksWithoutClient(t *testing.T) {
	m := NewHourlyModel(newFormTestApp(&countingDispatcher{}), nil).(*HourlyModel)
	updated, _ := m.Update(m.Init()())
	hm := updated.(*HourlyModel)

	assert.ErrorIs(t, hm.loadErr, service.ErrClientRequired)
	assert.NotEqual(t, hourlyStateReady, hm.state)
}

func TestRetainerSubmitEmptyRecipientStaysReady(t *testing.T) {
	dispatcher := &countingDispatcher{}
	m := NewRetainerModel(newFormTestApp(dispatcher), nil).(*RetainerModel)
	updated, _ := m.Update(m.Init()())
	rm := updated.(*RetainerModel)
	require.Equal(t, retainerStateReady, rm.state)

	rm.sendTo.SetValue("")
	cmd := rm.submit()

	assert.Nil(t, cmd)
	assert.Equal(t, retainerStateReady, rm.state)
	assert.ErrorIs(t, rm.err, service.ErrRecipientRequired)
	assert.Zero(t, dispatcher.calls)
}
