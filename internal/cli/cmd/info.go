package cmd

import (
	"fmt"

	"github.com/docshare/filesystem/internal/cli/api"
	"github.com/docshare/filesystem/internal/cli/output"
	"github.com/docshare/filesystem/internal/cli/pathutil"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <path>",
	Short: "Show details of a file or directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCustomer(); err != nil {
			return err
		}

		node, err := pathutil.Resolve(apiClient, args[0])
		if err != nil {
			return err
		}

		// Lookups by id come back without children.
		if node.IsDirectory() && node.Children == nil {
			var resp api.Response[api.Content]
			if err := apiClient.Get(api.ContentPath(node.Path), nil, &resp); err != nil {
				return fmt.Errorf("fetching %s: %w", node.Path, err)
			}
			node = &resp.Data
		}

		if flagJSON {
			output.JSON(node)
			return nil
		}

		output.ContentDetail(*node)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
