package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/agency360/cli/internal/api"
)

// ProductsCmd returns the `a360 products` command group.
func ProductsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Manage products",
	}
	cmd.AddCommand(productsListCmd())
	cmd.AddCommand(productsLinksCmd())
	return cmd
}

func productsListCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products",
		RunE: func(_ *cobra.Command, _ []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			products, err := client.ListProducts()
			if err != nil {
				return fmt.Errorf("list products: %w", err)
			}
			return printProducts(os.Stdout, products, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON instead of a table")
	return cmd
}

func productsLinksCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "links <product-id>",
		Short: "List the accounts linked to a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			views, err := client.ListProductLinkViews(args[0])
			if err != nil {
				return fmt.Errorf("list product links: %w", err)
			}
			return printLinkViews(os.Stdout, views, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON instead of a table")
	return cmd
}

func printProducts(out io.Writer, products []api.Product, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(products)
	}
	if len(products) == 0 {
		fmt.Fprintln(out, "no products found")
		return nil
	}
	for _, p := range products {
		fmt.Fprintf(out, "  %-22s  %-18s  %-14s  %s\n", p.Name, p.Owner, p.Position, p.UpdatedAt)
	}
	return nil
}

func printLinkViews(out io.Writer, views []api.LinkView, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(views)
	}
	if len(views) == 0 {
		fmt.Fprintln(out, "no linked accounts")
		return nil
	}
	for _, v := range views {
		fmt.Fprintf(out, "  %-20s  %-26s  %s\n", v.AccountName, v.AccountEmail, v.AccountStatus)
	}
	return nil
}
