package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/agency360/cli/internal/api"
	"github.com/agency360/cli/internal/config"
)

func newClient() (*api.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return api.NewClient(cfg.APIURL, cfg.Timeout), nil
}

// AccountsCmd returns the `a360 accounts` command group.
func AccountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage accounts",
	}
	cmd.AddCommand(accountsListCmd())
	return cmd
}

func accountsListCmd() *cobra.Command {
	var asJSON bool
	var status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(_ *cobra.Command, _ []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			accounts, err := client.ListAccounts()
			if err != nil {
				return fmt.Errorf("list accounts: %w", err)
			}
			if status != "" {
				filtered := accounts[:0]
				for _, a := range accounts {
					if a.Status == status {
						filtered = append(filtered, a)
					}
				}
				accounts = filtered
			}
			return printAccounts(os.Stdout, accounts, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON instead of a table")
	cmd.Flags().StringVar(&status, "status", "", "filter by status (Active or Inactive)")
	return cmd
}

func printAccounts(out io.Writer, accounts []api.Account, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(accounts)
	}
	if len(accounts) == 0 {
		fmt.Fprintln(out, "no accounts found")
		return nil
	}
	for _, a := range accounts {
		fmt.Fprintf(out, "  %-14s  %-20s  %-26s  %-8s  %s\n",
			a.AccountID, a.Name, a.Email, a.Status, a.JoinedAt)
	}
	return nil
}
