package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/elevatemedia/invoicer/internal/domain"
)

var invoiceCmd = &cobra.Command{
	Use:   "invoice",
	Short: "Send an invoice",
	Long:  `Build and dispatch an hourly or retainer invoice from the command line.`,
}

var invoiceHourlyCmd = &cobra.Command{
	Use:   "hourly",
	Short: "Send an hourly-billing invoice",
	Long: `Send an hourly-billing invoice. Without flags the form defaults apply:
both weeks at the configured hours and the client's preferred email.

Expenses are passed as "description=amount", repeatable:
  invoicer invoice hourly --client <id> --expense "Parking=24.00"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if id, _ := cmd.Flags().GetString("client"); id == "" {
			return fmt.Errorf("--client is required for hourly invoices")
		}

		client, err := flagClient(ctx, cmd)
		if err != nil {
			return err
		}

		form := appInstance.Invoices.HourlyDefaults(client)
		if cmd.Flags().Changed("send-to") {
			form.SendTo, _ = cmd.Flags().GetString("send-to")
		}
		if cmd.Flags().Changed("week1") {
			form.Week1Hours, _ = cmd.Flags().GetFloat64("week1")
		}
		if cmd.Flags().Changed("week2") {
			form.Week2Hours, _ = cmd.Flags().GetFloat64("week2")
		}
		form.ProjectDescription, _ = cmd.Flags().GetString("description")

		expenseFlags, _ := cmd.Flags().GetStringArray("expense")
		if len(expenseFlags) > 0 {
			form.Expenses = nil
			for _, raw := range expenseFlags {
				item, err := parseExpense(raw)
				if err != nil {
					return err
				}
				form.Expenses = append(form.Expenses, item)
			}
		}

		sub, err := appInstance.Invoices.SubmitHourly(ctx, form)
		if err != nil {
			return fmt.Errorf("failed to send invoice: %w", err)
		}

		fmt.Printf("✓ Invoice sent to %s\n", sub.Recipient)
		return nil
	},
}

var invoiceRetainerCmd = &cobra.Command{
	Use:   "retainer",
	Short: "Send a monthly retainer invoice",
	Long: `Send a monthly retainer invoice. Without flags it targets the month
after the current one and uses the configured recipient list.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		client, err := flagClient(ctx, cmd)
		if err != nil {
			return err
		}

		form := appInstance.Invoices.RetainerDefaults(client, time.Now())
		if cmd.Flags().Changed("send-to") {
			form.SendTo, _ = cmd.Flags().GetString("send-to")
		}
		periodChanged := false
		if cmd.Flags().Changed("month") {
			form.RetainerMonth, _ = cmd.Flags().GetString("month")
			periodChanged = true
		}
		if cmd.Flags().Changed("year") {
			form.RetainerYear, _ = cmd.Flags().GetInt("year")
			periodChanged = true
		}
		if cmd.Flags().Changed("date") {
			form.InvoiceDate, _ = cmd.Flags().GetString("date")
		}
		if cmd.Flags().Changed("description") {
			form.Description, _ = cmd.Flags().GetString("description")
		} else if periodChanged {
			form.Description = domain.RetainerDescription(form.RetainerMonth, form.RetainerYear)
		}

		sub, err := appInstance.Invoices.SubmitRetainer(ctx, form)
		if err != nil {
			return fmt.Errorf("failed to send invoice: %w", err)
		}

		fmt.Printf("✓ Invoice for %s %d submitted to %s\n", form.RetainerMonth, form.RetainerYear, sub.Recipient)
		return nil
	},
}

// flagClient resolves the optional --client flag to a store record
func flagClient(ctx context.Context, cmd *cobra.Command) (*domain.Client, error) {
	id, _ := cmd.Flags().GetString("client")
	if id == "" {
		return nil, nil
	}
	client, err := appInstance.Clients.GetClient(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return client, nil
}

func parseExpense(raw string) (domain.ExpenseItem, error) {
	desc, amountStr, found := strings.Cut(raw, "=")
	if !found {
		return domain.ExpenseItem{}, fmt.Errorf("invalid expense %q, expected description=amount", raw)
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(amountStr), 64)
	if err != nil {
		return domain.ExpenseItem{}, fmt.Errorf("invalid expense amount %q", amountStr)
	}
	return domain.ExpenseItem{Description: strings.TrimSpace(desc), Amount: amount}, nil
}

func init() {
	invoiceCmd.AddCommand(invoiceHourlyCmd)
	invoiceCmd.AddCommand(invoiceRetainerCmd)

	for _, c := range []*cobra.Command{invoiceHourlyCmd, invoiceRetainerCmd} {
		c.Flags().String("client", "", "Client record ID")
		c.Flags().String("send-to", "", "Recipient email(s)")
		c.Flags().String("description", "", "Invoice description")
	}

	invoiceHourlyCmd.Flags().Float64("week1", 0, "Week 1 hours")
	invoiceHourlyCmd.Flags().Float64("week2", 0, "Week 2 hours")
	invoiceHourlyCmd.Flags().StringArray("expense", nil, `Expense as "description=amount" (repeatable)`)

	invoiceRetainerCmd.Flags().String("month", "", "Retainer month (e.g. January)")
	invoiceRetainerCmd.Flags().Int("year", 0, "Retainer year")
	invoiceRetainerCmd.Flags().String("date", "", "Invoice date (YYYY-MM-DD)")
}
