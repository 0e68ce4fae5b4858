package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/agency360/cli/internal/api"
	"github.com/agency360/cli/internal/cmd"
	"github.com/agency360/cli/internal/config"
	"github.com/agency360/cli/internal/ui"
)

func main() {
	root := &cobra.Command{
		Use:   "a360",
		Short: "Agency360 - agency account console",
		Long:  "Agency360 CLI: browse accounts and products and manage the links between them.",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(cmd.InitCmd())
	root.AddCommand(cmd.AccountsCmd())
	root.AddCommand(cmd.ProductsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Force truecolor so hex colors render correctly
	// Must be set before any lipgloss style initialization
	os.Setenv("COLORTERM", "truecolor")
}

func runTUI() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	client := api.NewClient(cfg.APIURL, cfg.Timeout)
	app := ui.NewApp(client, cfg)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
