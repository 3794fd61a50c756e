package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/elevatemedia/invoicer/internal/crypto"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset local data",
	Long: `Reset local data. Client records live in the hosted store and are
never touched by reset.

Examples:
  invoicer reset history    # Clear the local submission log
  invoicer reset keys       # Forget the stored API key and history password`,
}

var resetHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Clear the local submission log",
	RunE: func(cmd *cobra.Command, args []string) error {
		if appInstance.Submissions == nil {
			return fmt.Errorf("history is unavailable")
		}

		if !confirmPrompt("This will delete the entire submission log. Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := appInstance.Submissions.DeleteAll(context.Background()); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}

		fmt.Println("Submission log cleared.")
		return nil
	},
}

var resetKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Remove stored secrets from the keyring",
	Long: `Remove the record store API key and the history database password from
the system keyring. The next run prompts for the API key again; the old
history database becomes unreadable once its password is gone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmPrompt("This will forget the API key and make the existing history unreadable. Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		keyring := crypto.NewKeyring()
		for _, name := range []string{crypto.APIKeyName, crypto.HistoryKeyName} {
			if err := keyring.Delete(name); err != nil {
				fmt.Fprintf(os.Stderr, "warning: could not delete %s: %v\n", name, err)
			}
		}

		fmt.Println("Stored secrets removed.")
		return nil
	},
}

func confirmPrompt(message string) bool {
	fmt.Printf("%s [y/N] ", message)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func init() {
	resetCmd.AddCommand(resetHistoryCmd)
	resetCmd.AddCommand(resetKeysCmd)
}
