package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/agency360/cli/internal/api"
	"github.com/agency360/cli/internal/config"
)

// probeTimeout bounds the connectivity check so a bad URL fails fast
// instead of hanging for the default client timeout.
const probeTimeout = 5 * time.Second

// RunInteractiveInit prompts for the API URL, probes it, and persists config.
func RunInteractiveInit(in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)

	fmt.Fprintf(out, "API URL [%s]: ", config.DefaultAPIURL)
	url, _ := reader.ReadString('\n')
	url = strings.TrimSpace(url)
	if url == "" {
		url = config.DefaultAPIURL
	}

	client := api.NewClient(url).WithTimeout(probeTimeout)
	if _, err := client.ListAccounts(); err != nil {
		return fmt.Errorf("could not reach %s: %w", url, err)
	}

	cfg := &config.Config{
		APIURL: url,
		Theme:  "dark",
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Fprintf(out, "connected to %s\n", url)
	fmt.Fprintf(out, "config saved to %s\n", config.Path())
	return nil
}

// InitCmd returns the `a360 init` command.
func InitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Point the console at an Agency360 server",
		RunE: func(_ *cobra.Command, _ []string) error {
			return RunInteractiveInit(os.Stdin, os.Stdout)
		},
	}
}
