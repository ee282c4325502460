package cmd

import (
	"fmt"

	"github.com/docshare/filesystem/internal/cli/api"
	"github.com/docshare/filesystem/internal/cli/output"
	"github.com/docshare/filesystem/internal/cli/pathutil"
	"github.com/spf13/cobra"
)

var mkdirCmd = &cobra.Command{
	Use:   "mkdir <name> [parent-path]",
	Short: "Create a directory",
	Long: `Create a directory. Without a parent path it is created under the root.

  contentctl mkdir Documents
  contentctl mkdir Reports /Documents`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return createContent(args, "directory")
	},
}

var touchCmd = &cobra.Command{
	Use:   "touch <name> [parent-path]",
	Short: "Create a file entry",
	Long: `Create a file entry. Without a parent path it is created under the root.

  contentctl touch notes.txt
  contentctl touch report.pdf /Documents/Reports`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return createContent(args, "file")
	},
}

func createContent(args []string, kind string) error {
	if err := requireCustomer(); err != nil {
		return err
	}

	parentPath := ""
	if len(args) > 1 {
		parentPath = args[1]
	}

	parent, err := pathutil.Resolve(apiClient, parentPath)
	if err != nil {
		return fmt.Errorf("resolving parent: %w", err)
	}
	if !parent.IsDirectory() {
		return fmt.Errorf("%s is not a directory", parent.Path)
	}

	body := api.CreateRequest{Name: args[0], Type: kind, ParentID: &parent.ID}

	var resp api.Response[api.Content]
	if err := apiClient.Post("/content", body, &resp); err != nil {
		return fmt.Errorf("creating %s: %w", kind, err)
	}

	if flagJSON {
		output.JSON(resp.Data)
		return nil
	}

	printf("Created %s: %s\n", kind, resp.Data.Path)
	return nil
}

func init() {
	rootCmd.AddCommand(mkdirCmd)
	rootCmd.AddCommand(touchCmd)
}
