package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoiceHourlyRequiresClientFlag(t *testing.T) {
	err := invoiceHourlyCmd.RunE(invoiceHourlyCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--client is required")
}

func TestParseExpense(t *testing.T) {
	item, err := parseExpense("Parking = 24.00")
	require.NoError(t, err)
	assert.Equal(t, "Parking", item.Description)
	assert.Equal(t, 24.0, item.Amount)
}

func TestParseExpenseRejectsMalformedInput(t *testing.T) {
	_, err := parseExpense("Parking")
	assert.Error(t, err)
}
