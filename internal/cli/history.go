package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/elevatemedia/invoicer/internal/domain"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past invoice submissions",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if appInstance.Submissions == nil {
			return fmt.Errorf("history is unavailable")
		}

		limit, _ := cmd.Flags().GetInt("limit")
		clientName, _ := cmd.Flags().GetString("client")

		var subs []*domain.Submission
		var err error
		if clientName != "" {
			subs, err = appInstance.Submissions.ListByClient(ctx, clientName)
		} else {
			subs, err = appInstance.Submissions.ListRecent(ctx, limit)
		}
		if err != nil {
			return fmt.Errorf("failed to list history: %w", err)
		}

		if len(subs) == 0 {
			fmt.Println("No submissions yet")
			return nil
		}

		fmt.Printf("%-17s %-20s %-9s %-8s %s\n", "Date", "Client", "Form", "Status", "Recipient")
		fmt.Println("--------------------------------------------------------------------------------------")

		for _, sub := range subs {
			status := "sent"
			if !sub.OK {
				status = "failed"
			}
			name := sub.ClientName
			if name == "" {
				name = "(no client)"
			}
			fmt.Printf("%-17s %-20s %-9s %-8s %s\n",
				sub.SubmittedAt.Local().Format("2006-01-02 15:04"),
				truncate(name, 20),
				sub.Variant,
				status,
				truncate(sub.Recipient, 30),
			)
			if sub.Error != "" {
				fmt.Printf("    %s\n", truncate(sub.Error, 80))
			}
		}

		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum rows to show")
	historyCmd.Flags().String("client", "", "Only submissions for this client name")
}
