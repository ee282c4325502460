package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/docshare/filesystem/internal/cli/api"
	"github.com/docshare/filesystem/internal/cli/config"
	"github.com/docshare/filesystem/internal/cli/output"
	"github.com/spf13/cobra"
)

var (
	flagJSON       bool
	flagServerURL  string
	flagCustomerID string

	cfg       *config.Config
	apiClient *api.Client

	stdin io.Reader = os.Stdin
)

var rootCmd = &cobra.Command{
	Use:   "contentctl",
	Short: "Manage a customer's content tree from the terminal",
	Long: `contentctl creates, browses, moves and deletes directories and files
in a customer's content tree.

Get started:
  contentctl config set-customer <uuid>   Choose the customer to work on
  contentctl init                         Create the customer's root directory
  contentctl mkdir Documents              Create a directory under the root
  contentctl ls /Documents                List a directory`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if flagServerURL != "" {
			cfg.ServerURL = flagServerURL
		}
		if flagCustomerID != "" {
			cfg.CustomerID = flagCustomerID
		}
		apiClient = api.NewClient(cfg.ServerURL, cfg.CustomerID)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().StringVar(&flagServerURL, "server", "", "Override server URL (default: from config or http://localhost:8080)")
	rootCmd.PersistentFlags().StringVar(&flagCustomerID, "customer", "", "Override customer id (default: from config)")
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func requireCustomer() error {
	_, err := cfg.Customer()
	return err
}

func printf(format string, args ...interface{}) {
	fmt.Fprintf(output.Out, format, args...)
}
