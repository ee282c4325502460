package cmd

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/docshare/filesystem/internal/cli/api"
	"github.com/docshare/filesystem/internal/cli/output"
	"github.com/docshare/filesystem/internal/cli/pathutil"
	"github.com/spf13/cobra"
)

var (
	flagPage  int
	flagLimit int
	flagSort  string
)

var lsCmd = &cobra.Command{
	Use:   "ls [path]",
	Short: "List the children of a directory",
	Long: `List a directory. Without a path the root is listed.

  contentctl ls
  contentctl ls /Documents
  contentctl ls Documents --page 2 --limit 50
  contentctl ls Documents --sort modified:desc`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCustomer(); err != nil {
			return err
		}

		path := ""
		if len(args) > 0 {
			path = args[0]
		}

		node, err := pathutil.Resolve(apiClient, path)
		if err != nil {
			return err
		}

		if !node.IsDirectory() {
			if flagJSON {
				output.JSON([]api.Content{*node})
				return nil
			}
			output.ContentTable([]api.Content{*node})
			return nil
		}

		params := url.Values{}
		params.Set("page", strconv.Itoa(flagPage))
		params.Set("limit", strconv.Itoa(flagLimit))
		if flagSort != "" {
			params.Set("sort", flagSort)
		}

		var resp api.Response[[]api.Content]
		if err := apiClient.Get("/content/"+node.ID+"/children", params, &resp); err != nil {
			return fmt.Errorf("listing %s: %w", node.Path, err)
		}

		if flagJSON {
			output.JSON(resp.Data)
			return nil
		}

		output.ContentTable(resp.Data)
		if p := resp.Pagination; p != nil && p.TotalPages > 1 {
			printf("\nPage %d of %d (%d items)\n", p.Page, p.TotalPages, p.Total)
		}
		return nil
	},
}

func init() {
	lsCmd.Flags().IntVar(&flagPage, "page", 1, "Page number")
	lsCmd.Flags().IntVar(&flagLimit, "limit", 20, "Items per page (max 100)")
	lsCmd.Flags().StringVar(&flagSort, "sort", "", "Order as field[:desc],... over name, path, type, created, modified")
	rootCmd.AddCommand(lsCmd)
}
