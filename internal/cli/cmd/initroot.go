package cmd

import (
	"fmt"

	"github.com/docshare/filesystem/internal/cli/api"
	"github.com/docshare/filesystem/internal/cli/output"
	"github.com/spf13/cobra"
)

var flagRootName string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the customer's root directory",
	Long: `Create the root directory of the configured customer. Each customer
has exactly one root; running init twice fails.

  contentctl init
  contentctl init --name Root      When the server uses a custom root name`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCustomer(); err != nil {
			return err
		}

		var resp api.Response[api.Content]
		if err := apiClient.Post("/content", api.CreateRequest{Name: flagRootName}, &resp); err != nil {
			return fmt.Errorf("creating root: %w", err)
		}

		if flagJSON {
			output.JSON(resp.Data)
			return nil
		}

		printf("Created root: %s\n", resp.Data.Path)
		return nil
	},
}

func init() {
	initCmd.Flags().StringVar(&flagRootName, "name", "Home", "Root directory name configured on the server")
	rootCmd.AddCommand(initCmd)
}
