package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/elevatemedia/invoicer/internal/domain"
	"github.com/elevatemedia/invoicer/internal/service"
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Manage client records",
	Long:  `List, show, add, edit, and delete client records in the hosted store.`,
}

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		recurringOnly, _ := cmd.Flags().GetBool("recurring")

		clients, err := listClients(ctx, recurringOnly)
		if err != nil {
			return fmt.Errorf("failed to list clients: %w", err)
		}

		if len(clients) == 0 {
			fmt.Println("No clients found")
			return nil
		}

		fmt.Printf("%-38s %-30s %-10s %-30s\n", "ID", "Name", "Form", "Email")
		fmt.Println("--------------------------------------------------------------------------------------------------------------")

		for _, client := range clients {
			fmt.Printf("%-38s %-30s %-10s %-30s\n",
				client.ID,
				truncate(client.Name, 30),
				appInstance.Router.FormRoute(client.Name),
				truncate(client.PreferredEmail(), 30),
			)
		}

		fmt.Printf("\nTotal: %d client(s)\n", len(clients))
		return nil
	},
}

func listClients(ctx context.Context, recurringOnly bool) ([]*domain.Client, error) {
	if recurringOnly {
		return appInstance.Clients.ListRecurring(ctx)
	}
	return appInstance.Clients.ListAll(ctx)
}

var clientsShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a client record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		client, err := appInstance.Clients.GetClient(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to get client: %w", err)
		}

		fmt.Printf("%s\n", client.Name)
		fmt.Printf("  ID:            %s\n", client.ID)
		fmt.Printf("  Invoice type:  %s\n", client.InvoiceType)
		fmt.Printf("  Form:          %s\n", appInstance.Router.FormRoute(client.Name))
		printOptional("Billing contact", client.BillingContactName)
		printOptional("Billing email", client.BillingEmail)
		printOptional("Billing phone", client.BillingPhone)
		printOptional("Address", client.BillingAddressLine1)
		printOptional("", client.BillingAddressLine2)
		printOptional("City", client.BillingCity)
		printOptional("State", client.BillingState)
		printOptional("Zip", client.BillingZip)
		printOptional("Send-to name", client.SendToName)
		printOptional("Send-to email", client.SendToEmail)
		if client.DefaultRate != nil {
			fmt.Printf("  Default rate:  $%.2f/hr\n", *client.DefaultRate)
		}
		printOptional("Payment terms", client.PaymentTerms)
		printOptional("Notes", client.Notes)
		fmt.Printf("  Created:       %s\n", client.CreatedAt.Local().Format("2006-01-02"))

		return nil
	},
}

var clientsAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a new client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		form := service.NewClientForm{Name: args[0]}
		form.BillingContactName, _ = cmd.Flags().GetString("billing-contact")
		form.BillingEmail, _ = cmd.Flags().GetString("billing-email")
		form.BillingPhone, _ = cmd.Flags().GetString("billing-phone")
		form.SendToName, _ = cmd.Flags().GetString("send-to-name")
		form.SendToEmail, _ = cmd.Flags().GetString("send-to-email")
		form.DefaultRate, _ = cmd.Flags().GetFloat64("rate")
		form.PaymentTerms, _ = cmd.Flags().GetString("terms")
		form.Notes, _ = cmd.Flags().GetString("notes")

		client, err := appInstance.Clients.CreateClient(ctx, form)
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		fmt.Printf("✓ Client created: %s (ID: %s)\n", client.Name, client.ID)
		return nil
	},
}

var clientsEditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit an existing client",
	Long: `Edit an existing client. Only the flags you pass are changed; passing
an empty value clears that field.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		fields := make(map[string]any)
		stringFlags := map[string]string{
			"name":            "name",
			"billing-contact": "billing_contact_name",
			"billing-email":   "billing_email",
			"billing-phone":   "billing_phone",
			"send-to-name":    "send_to_name",
			"send-to-email":   "send_to_email",
			"terms":           "payment_terms",
			"notes":           "notes",
		}
		for flag, column := range stringFlags {
			if cmd.Flags().Changed(flag) {
				value, _ := cmd.Flags().GetString(flag)
				if value == "" && column != "name" {
					fields[column] = nil
				} else {
					fields[column] = value
				}
			}
		}
		if cmd.Flags().Changed("rate") {
			rate, _ := cmd.Flags().GetFloat64("rate")
			if rate == 0 {
				fields["default_rate"] = nil
			} else {
				fields["default_rate"] = rate
			}
		}

		if len(fields) == 0 {
			return fmt.Errorf("nothing to change; pass at least one flag")
		}

		client, err := appInstance.Clients.UpdateClient(ctx, args[0], fields)
		if err != nil {
			return fmt.Errorf("failed to update client: %w", err)
		}

		fmt.Printf("✓ Client updated: %s\n", client.Name)
		return nil
	},
}

var clientsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a client record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		client, err := appInstance.Clients.GetClient(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to get client: %w", err)
		}

		if !confirmPrompt(fmt.Sprintf("Delete client %q? This cannot be undone.", client.Name)) {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := appInstance.Clients.DeleteClient(ctx, args[0]); err != nil {
			return fmt.Errorf("failed to delete client: %w", err)
		}

		fmt.Printf("✓ Client deleted: %s\n", client.Name)
		return nil
	},
}

func printOptional(label string, value *string) {
	if value == nil || *value == "" {
		return
	}
	if label == "" {
		fmt.Printf("  %-14s %s\n", "", *value)
		return
	}
	fmt.Printf("  %-14s %s\n", label+":", *value)
}

func init() {
	clientsCmd.AddCommand(clientsListCmd)
	clientsCmd.AddCommand(clientsShowCmd)
	clientsCmd.AddCommand(clientsAddCmd)
	clientsCmd.AddCommand(clientsEditCmd)
	clientsCmd.AddCommand(clientsDeleteCmd)

	clientsListCmd.Flags().Bool("recurring", false, "Only recurring clients")

	for _, c := range []*cobra.Command{clientsAddCmd, clientsEditCmd} {
		c.Flags().String("billing-contact", "", "Billing contact name")
		c.Flags().String("billing-email", "", "Billing email")
		c.Flags().String("billing-phone", "", "Billing phone")
		c.Flags().String("send-to-name", "", "Invoice recipient name")
		c.Flags().String("send-to-email", "", "Invoice recipient email")
		c.Flags().Float64("rate", 0, "Default hourly rate")
		c.Flags().String("terms", "", "Payment terms")
		c.Flags().String("notes", "", "Notes about the client")
	}
	clientsEditCmd.Flags().String("name", "", "New name")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
